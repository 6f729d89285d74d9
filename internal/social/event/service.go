// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/loopspace/backend/internal/platform/apperr"
	"github.com/loopspace/backend/internal/platform/validate"
	"github.com/loopspace/backend/pkg/uuidv7"
)

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStartsAt    = "starts_at"
	FieldEndsAt      = "ends_at"

	titleMinLen       = 3
	titleMaxLen       = 255
	descriptionMaxLen = 2000
)

// EnrollmentChecker reports whether a user is enrolled in a course.
type EnrollmentChecker interface {
	IsEnrolled(context context.Context, courseID, userID string) (bool, error)
}

// Service implements the course calendar use cases.
type Service struct {
	eventRepo   EventRepository
	enrollments EnrollmentChecker
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(eventRepo EventRepository, enrollments EnrollmentChecker, logger *slog.Logger) *Service {
	return &Service{
		eventRepo:   eventRepo,
		enrollments: enrollments,
		logger:      logger,
	}
}

// # Access Control

func (service *Service) authorizeRead(context context.Context, ref *CourseRef, userID string) error {
	if ref.IsPublic {
		return nil
	}
	if userID == "" {
		return apperr.Unauthorized("Authentication required for this course")
	}
	if ref.OwnerID == userID {
		return nil
	}

	enrolled, err := service.enrollments.IsEnrolled(context, ref.ID, userID)
	if err != nil {
		return err
	}
	if !enrolled {
		return apperr.Forbidden("You do not have access to this course")
	}

	return nil
}

func (service *Service) authorizeOwner(ref *CourseRef, userID string) error {
	if ref.OwnerID != userID {
		return apperr.Forbidden("Only the course owner can manage events")
	}
	return nil
}

// # Event Operations

/*
ListUpcomingEvents retrieves the future events of a course, soonest first.

Parameters:
  - context: context.Context
  - courseID: string
  - userID: string (Requesting user, empty for anonymous)
  - limit, offset: int

Returns:
  - []*Event: Page of upcoming events
  - int: Total upcoming event count
  - error: Access or storage errors
*/
func (service *Service) ListUpcomingEvents(context context.Context, courseID, userID string, limit, offset int) ([]*Event, int, error) {
	ref, err := service.eventRepo.FindCourseRef(context, courseID)
	if err != nil {
		return nil, 0, err
	}
	if err := service.authorizeRead(context, ref, userID); err != nil {
		return nil, 0, err
	}

	return service.eventRepo.ListUpcoming(context, courseID, limit, offset)
}

// GetEvent retrieves a single event, honoring the course visibility rules.
func (service *Service) GetEvent(context context.Context, id, userID string) (*Event, error) {
	event, err := service.eventRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	ref, err := service.eventRepo.FindCourseRef(context, event.CourseID)
	if err != nil {
		return nil, err
	}
	if err := service.authorizeRead(context, ref, userID); err != nil {
		return nil, err
	}

	return event, nil
}

// CreateEventInput carries the caller supplied fields of a new event.
type CreateEventInput struct {
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
}

/*
CreateEvent schedules a new event on an owned course.

Parameters:
  - context: context.Context
  - userID: string (Authenticated requester, must own the course)
  - courseID: string
  - input: CreateEventInput

Returns:
  - *Event: The created event with its storage timestamp
  - error: Validation, access or storage errors
*/
func (service *Service) CreateEvent(context context.Context, userID, courseID string, input CreateEventInput) (*Event, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title)
	validator.MinLen(FieldTitle, input.Title, titleMinLen)
	validator.MaxLen(FieldTitle, input.Title, titleMaxLen)
	validator.MaxLen(FieldDescription, input.Description, descriptionMaxLen)
	validator.Custom(FieldStartsAt, input.StartsAt.IsZero(), "Start time is required")
	validator.Custom(FieldEndsAt, !input.EndsAt.IsZero() && !input.EndsAt.After(input.StartsAt), "End time must be after the start time")
	if validator.HasErrors() {
		return nil, validator.Err()
	}

	ref, err := service.eventRepo.FindCourseRef(context, courseID)
	if err != nil {
		return nil, err
	}
	if err := service.authorizeOwner(ref, userID); err != nil {
		return nil, err
	}

	event := &Event{
		ID:          uuidv7.New(),
		CourseID:    courseID,
		Title:       input.Title,
		Description: input.Description,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		CreatedBy:   userID,
	}

	if err := service.eventRepo.Create(context, event); err != nil {
		return nil, err
	}

	service.logger.Info("event_created",
		slog.String("event_id", event.ID),
		slog.String("course_id", courseID),
		slog.Time("starts_at", event.StartsAt),
	)

	return event, nil
}

/*
DeleteEvent removes an event from an owned course calendar.

Parameters:
  - context: context.Context
  - userID: string (Authenticated requester, must own the course)
  - id: string (Event UUID)

Returns:
  - error: NotFound, access or storage errors
*/
func (service *Service) DeleteEvent(context context.Context, userID, id string) error {
	event, err := service.eventRepo.FindByID(context, id)
	if err != nil {
		return err
	}

	ref, err := service.eventRepo.FindCourseRef(context, event.CourseID)
	if err != nil {
		return err
	}
	if err := service.authorizeOwner(ref, userID); err != nil {
		return err
	}

	if err := service.eventRepo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("event_deleted",
		slog.String("event_id", id),
		slog.String("deleted_by", userID),
	)

	return nil
}
