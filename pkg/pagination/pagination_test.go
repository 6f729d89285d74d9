// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loopspace/backend/pkg/pagination"
)

/*
TestFromRequest verifies query parameter parsing and clamping.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "?page=3&limit=25", 3, 25},
		{"zero_page_clamped", "?page=0", 1, 10},
		{"negative_limit_clamped", "?limit=-5", 1, 10},
		{"excessive_limit_clamped", "?limit=5000", 1, 100},
		{"garbage_values", "?page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/courses"+tt.query, nil)

			params := pagination.FromRequest(request)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestParams_Offset verifies the SQL offset derivation.
*/
func TestParams_Offset(t *testing.T) {
	tests := []struct {
		name   string
		params pagination.Params
		want   int
	}{
		{"first_page", pagination.Params{Page: 1, Limit: 10}, 0},
		{"second_page", pagination.Params{Page: 2, Limit: 10}, 10},
		{"large_page", pagination.Params{Page: 7, Limit: 25}, 150},
		{"zero_page", pagination.Params{Page: 0, Limit: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Offset())
		})
	}
}

/*
TestNewMeta verifies total page calculation, including partial last pages.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name           string
		limit          int
		total          int
		wantTotalPages int
	}{
		{"exact_fit", 10, 100, 10},
		{"partial_last_page", 10, 101, 11},
		{"empty_result", 10, 0, 0},
		{"single_item", 10, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(1, tt.limit, tt.total)

			assert.Equal(t, tt.wantTotalPages, meta.TotalPages)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}
