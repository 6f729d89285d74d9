// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package channel

import "time"

// Channel is a creator's public space. Courses are published inside a
// channel, and its slug gives it a stable, human-readable URL.
type Channel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
