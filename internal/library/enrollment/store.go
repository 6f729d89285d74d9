// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package enrollment

import "context"

// # Repository Contract

// EnrollmentRepository defines persistence operations for enrollments and
// lesson progress.
type EnrollmentRepository interface {

	// Enroll inserts an enrollment row. Re-enrolling is a silent no-op.
	Enroll(context context.Context, enrollment *Enrollment) error

	// Unenroll removes the enrollment. apperr.NotFound when none exists.
	Unenroll(context context.Context, courseID, userID string) error

	// IsEnrolled reports whether the user holds an enrollment.
	IsEnrolled(context context.Context, courseID, userID string) (bool, error)

	// ListByUser retrieves the user's library, newest enrollment first.
	ListByUser(context context.Context, userID string, limit, offset int) ([]*EnrolledCourse, int, error)

	// FindCourseRef loads a course's owner and visibility, or
	// apperr.NotFound when the course does not exist.
	FindCourseRef(context context.Context, courseID string) (*CourseRef, error)

	// FindLessonCourse resolves the course a lesson belongs to, or
	// apperr.NotFound when the lesson does not exist.
	FindLessonCourse(context context.Context, lessonID string) (*CourseRef, error)

	// SetLessonProgress upserts the user's completion state for a lesson.
	SetLessonProgress(context context.Context, progress *Progress) error

	// IsLessonCompleted reports the user's completion state for a lesson.
	// Absent rows read as not completed.
	IsLessonCompleted(context context.Context, lessonID, userID string) (bool, error)

	// CourseProgress aggregates the user's completion across all published
	// lessons of a course.
	CourseProgress(context context.Context, courseID, userID string) (*CourseProgress, error)
}
