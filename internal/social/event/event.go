// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

// Package event implements scheduled community events attached to a course,
// such as live sessions or office hours. The course owner manages the
// calendar; anyone who can view the course can read it.
package event

import "time"

// # Entity Definition

// Event represents a scheduled occasion on a course calendar.
type Event struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// CourseRef carries the access control fields of an event's course.
type CourseRef struct {
	ID       string
	OwnerID  string
	IsPublic bool
}
