// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package lesson

import "time"

// Lesson is a single unit of learning content inside a chapter.
//
// OrderNumber is the lesson's slot in the chapter-wide sequence: unique per
// chapter, 1-based, dense except immediately after an explicit sparse
// placement.
type Lesson struct {
	ID          string    `json:"id"`
	ChapterID   string    `json:"chapter_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	OrderNumber int       `json:"order_number"`
	IsPublished bool      `json:"is_published"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChapterRef carries the access metadata of a lesson's chapter and its
// owning course, joined in a single lookup.
type ChapterRef struct {
	ID          string
	CourseID    string
	CourseOwner string
	IsPublic    bool
}

// Detail is the read model for a single lesson. IsCompleted is populated
// for authenticated requesters and omitted for anonymous ones.
type Detail struct {
	*Lesson
	IsCompleted *bool `json:"is_completed,omitempty"`
}
