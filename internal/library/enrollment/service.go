// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package enrollment

import (
	"context"
	"log/slog"

	"github.com/loopspace/backend/internal/platform/apperr"
	"github.com/loopspace/backend/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the learner library: enrollments and progress.
//
// It doubles as the access oracle for the content modules, which consume
// IsEnrolled and IsLessonCompleted through their own interfaces.
type Service struct {
	enrollmentRepo EnrollmentRepository
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(enrollmentRepo EnrollmentRepository, logger *slog.Logger) *Service {
	return &Service{
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// # Enrollment Operations

/*
Enroll joins the user to a course. Idempotent.

Description: Public courses are open to everyone. Private courses cannot
be joined directly; access is granted by the owner out of band, so a
direct attempt answers Forbidden. Owners do not enroll in their own
courses.

Parameters:
  - context: context.Context
  - userID: string
  - courseID: string

Returns:
  - *Enrollment: The enrollment record
  - error: Authorization or persistence errors
*/
func (service *Service) Enroll(context context.Context, userID, courseID string) (*Enrollment, error) {
	ref, err := service.enrollmentRepo.FindCourseRef(context, courseID)
	if err != nil {
		return nil, err
	}

	if ref.OwnerID == userID {
		return nil, apperr.Conflict("You already own this course")
	}
	if !ref.IsPublic {
		return nil, apperr.Forbidden("This course is not open for enrollment")
	}

	enrollment := &Enrollment{
		ID:       uuidv7.New(),
		CourseID: courseID,
		UserID:   userID,
	}

	if err := service.enrollmentRepo.Enroll(context, enrollment); err != nil {
		return nil, err
	}

	service.logger.Info("user_enrolled",
		slog.String("course_id", courseID),
		slog.String("user_id", userID),
	)

	return enrollment, nil
}

/*
Unenroll removes the user from a course.

Returns:
  - error: NotFound when no enrollment exists
*/
func (service *Service) Unenroll(context context.Context, userID, courseID string) error {
	if err := service.enrollmentRepo.Unenroll(context, courseID, userID); err != nil {
		return err
	}

	service.logger.Info("user_unenrolled",
		slog.String("course_id", courseID),
		slog.String("user_id", userID),
	)

	return nil
}

// ListMyCourses retrieves the user's library, newest enrollment first.
func (service *Service) ListMyCourses(context context.Context, userID string, limit, offset int) ([]*EnrolledCourse, int, error) {
	return service.enrollmentRepo.ListByUser(context, userID, limit, offset)
}

// IsEnrolled reports whether the user holds an enrollment in the course.
// Exposed for the content modules' access checks.
func (service *Service) IsEnrolled(context context.Context, courseID, userID string) (bool, error) {
	return service.enrollmentRepo.IsEnrolled(context, courseID, userID)
}

// # Progress Operations

// canTrackProgress checks the user may record progress against the course:
// they own it or hold an enrollment (public courses still require joining
// before progress is tracked).
func (service *Service) canTrackProgress(context context.Context, ref *CourseRef, userID string) error {
	if ref.OwnerID == userID {
		return nil
	}

	enrolled, err := service.enrollmentRepo.IsEnrolled(context, ref.ID, userID)
	if err != nil {
		return err
	}
	if !enrolled {
		return apperr.Forbidden("Enroll in the course to track progress")
	}

	return nil
}

/*
SetLessonProgress marks a lesson complete or incomplete for the user.

Description: Upserts the progress row, so repeating the same state is a
safe no-op.

Parameters:
  - context: context.Context
  - userID: string
  - lessonID: string
  - completed: bool

Returns:
  - *Progress: The stored progress state
  - error: Authorization or persistence errors
*/
func (service *Service) SetLessonProgress(context context.Context, userID, lessonID string, completed bool) (*Progress, error) {
	ref, err := service.enrollmentRepo.FindLessonCourse(context, lessonID)
	if err != nil {
		return nil, err
	}
	if err := service.canTrackProgress(context, ref, userID); err != nil {
		return nil, err
	}

	progress := &Progress{
		LessonID:    lessonID,
		UserID:      userID,
		IsCompleted: completed,
	}

	if err := service.enrollmentRepo.SetLessonProgress(context, progress); err != nil {
		return nil, err
	}

	service.logger.Info("lesson_progress_set",
		slog.String("lesson_id", lessonID),
		slog.String("user_id", userID),
		slog.Bool("completed", completed),
	)

	return progress, nil
}

// IsLessonCompleted reports the user's completion state for a lesson.
// Exposed for the lesson module's read model.
func (service *Service) IsLessonCompleted(context context.Context, lessonID, userID string) (bool, error) {
	return service.enrollmentRepo.IsLessonCompleted(context, lessonID, userID)
}

/*
GetCourseProgress aggregates the user's completion across a course.

Parameters:
  - context: context.Context
  - userID: string
  - courseID: string

Returns:
  - *CourseProgress: Totals and completion percentage
  - error: NotFound or storage errors
*/
func (service *Service) GetCourseProgress(context context.Context, userID, courseID string) (*CourseProgress, error) {
	ref, err := service.enrollmentRepo.FindCourseRef(context, courseID)
	if err != nil {
		return nil, err
	}
	if err := service.canTrackProgress(context, ref, userID); err != nil {
		return nil, err
	}

	return service.enrollmentRepo.CourseProgress(context, courseID, userID)
}
