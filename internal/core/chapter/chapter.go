// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package chapter

import "time"

// Chapter is a titled section of a course holding an ordered set of lessons.
//
// OrderNumber is the chapter's slot in the course-wide sequence maintained
// by the ordering package: unique per course, 1-based, dense except
// immediately after an explicit sparse placement.
type Chapter struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	OrderNumber int       `json:"order_number"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseRef carries the access metadata of the owning course needed for
// authorization decisions, without hydrating the full course entity.
type CourseRef struct {
	ID       string
	OwnerID  string
	IsPublic bool
}
