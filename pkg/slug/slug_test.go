// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loopspace/backend/pkg/slug"
)

/*
TestFrom verifies the slug transformation pipeline on representative inputs.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Intro to Go", "intro-to-go"},
		{"accents", "Café Périgord", "cafe-perigord"},
		{"special_chars", "C++ & Systems!", "c-systems"},
		{"multi_space", "deep    learning", "deep-learning"},
		{"leading_trailing", "  --hello--  ", "hello"},
		{"numbers", "Top 10 Patterns", "top-10-patterns"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
