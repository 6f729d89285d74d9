// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package course

import (
	"context"
	"log/slog"

	"github.com/loopspace/backend/internal/platform/apperr"
	"github.com/loopspace/backend/internal/platform/validate"
	"github.com/loopspace/backend/pkg/uuidv7"
)

const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldThumbnailURL = "thumbnail_url"
	FieldChannelID    = "channel_id"

	titleMinLen       = 3
	titleMaxLen       = 255
	descriptionMaxLen = 5000
)

// # Service Layer

// Service orchestrates the business logic for the course catalogue.
type Service struct {
	courseRepo CourseRepository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(courseRepo CourseRepository, logger *slog.Logger) *Service {
	return &Service{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// # Course Lookups

/*
ListCourses retrieves a paginated, filtered collection of visible courses.

Description: The filter's viewer scope is enforced at the repository
level, so listings contain public courses plus the viewer's own.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Course: Page of visible courses
  - int: Total visible count
  - error: Storage errors
*/
func (service *Service) ListCourses(context context.Context, filter Filter, limit, offset int) ([]*Course, int, error) {
	return service.courseRepo.List(context, filter, limit, offset)
}

/*
GetCourse fetches a single course by ID, honoring its visibility.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - userID: string (Requesting user, empty for anonymous)

Returns:
  - *Course: The hydrated entity
  - error: NotFound for missing or hidden courses
*/
func (service *Service) GetCourse(context context.Context, id, userID string) (*Course, error) {
	course, err := service.courseRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Private courses are indistinguishable from missing ones to outsiders.
	if !course.IsPublic && course.CreatedBy != userID {
		return nil, apperr.NotFound("Course")
	}

	return course, nil
}

// # Course Management

func courseValidator(course *Course) *validate.Validator {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, course.Title)
	validator.MinLen(FieldTitle, course.Title, titleMinLen)
	validator.MaxLen(FieldTitle, course.Title, titleMaxLen)
	validator.MaxLen(FieldDescription, course.Description, descriptionMaxLen)
	if course.ThumbnailURL != "" {
		validator.URL(FieldThumbnailURL, course.ThumbnailURL)
	}
	return validator
}

/*
CreateCourse publishes a new course inside a channel the user owns.

Parameters:
  - context: context.Context
  - userID: string (Must own the channel)
  - course: *Course (The new course data)

Returns:
  - error: Validation, authorization, or persistence errors
*/
func (service *Service) CreateCourse(context context.Context, userID string, course *Course) error {
	validator := courseValidator(course)
	validator.Required(FieldChannelID, course.ChannelID)
	if err := validator.Err(); err != nil {
		return err
	}

	ref, err := service.courseRepo.FindChannelRef(context, course.ChannelID)
	if err != nil {
		return err
	}
	if ref.OwnerID != userID {
		return apperr.Forbidden("Only the channel owner can publish courses")
	}

	if course.ID == "" {
		course.ID = uuidv7.New()
	}
	course.CreatedBy = userID

	if err := service.courseRepo.Create(context, course); err != nil {
		return err
	}

	service.logger.Info("course_created",
		slog.String("course_id", course.ID),
		slog.String("channel_id", course.ChannelID),
		slog.String("user_id", userID),
	)

	return nil
}

// UpdateCourseInput carries the optional fields of a course patch. Nil
// pointers leave the stored value untouched.
type UpdateCourseInput struct {
	Title        *string
	Description  *string
	ThumbnailURL *string
	IsPublic     *bool
}

/*
UpdateCourse applies a partial update to an owned course.

Returns:
  - *Course: The updated entity
  - error: Validation, authorization, or persistence errors
*/
func (service *Service) UpdateCourse(context context.Context, userID, id string, input UpdateCourseInput) (*Course, error) {
	course, err := service.courseRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if course.CreatedBy != userID {
		return nil, apperr.Forbidden("Only the course owner can update it")
	}

	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.ThumbnailURL != nil {
		course.ThumbnailURL = *input.ThumbnailURL
	}
	if input.IsPublic != nil {
		course.IsPublic = *input.IsPublic
	}

	if err := courseValidator(course).Err(); err != nil {
		return nil, err
	}

	if err := service.courseRepo.Update(context, course); err != nil {
		return nil, err
	}

	service.logger.Info("course_updated",
		slog.String("course_id", course.ID),
		slog.String("user_id", userID),
	)

	return course, nil
}

/*
DeleteCourse removes an owned course together with its chapters, lessons,
and enrollments.

Returns:
  - error: Authorization or persistence errors
*/
func (service *Service) DeleteCourse(context context.Context, userID, id string) error {
	course, err := service.courseRepo.FindByID(context, id)
	if err != nil {
		return err
	}
	if course.CreatedBy != userID {
		return apperr.Forbidden("Only the course owner can delete it")
	}

	if err := service.courseRepo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("course_deleted",
		slog.String("course_id", id),
		slog.String("user_id", userID),
	)

	return nil
}
