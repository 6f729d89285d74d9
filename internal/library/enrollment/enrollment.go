// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

/*
Package enrollment implements the learner's library: course enrollments and
per-lesson progress tracking.

It also backs the access checks of the content modules, which accept its
service through small consumer-side interfaces.
*/
package enrollment

import "time"

// # Domain Entities

// Enrollment links a user to a course they joined.
type Enrollment struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// EnrolledCourse is the read model for a user's library listing: the
// course metadata joined with the enrollment date.
type EnrolledCourse struct {
	CourseID     string    `json:"course_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	IsPublic     bool      `json:"is_public"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

// Progress records a user's completion state for one lesson.
type Progress struct {
	LessonID    string     `json:"lesson_id"`
	UserID      string     `json:"user_id"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CourseProgress summarizes how far a user is through a course.
type CourseProgress struct {
	CourseID         string  `json:"course_id"`
	TotalLessons     int     `json:"total_lessons"`
	CompletedLessons int     `json:"completed_lessons"`
	Percent          float64 `json:"percent"`
}

// CourseRef carries the access metadata of a course.
type CourseRef struct {
	ID       string
	OwnerID  string
	IsPublic bool
}
