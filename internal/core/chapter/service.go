// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package chapter

import (
	"context"
	"log/slog"

	"github.com/loopspace/backend/internal/platform/apperr"
	"github.com/loopspace/backend/internal/platform/validate"
	"github.com/loopspace/backend/pkg/uuidv7"
)

const (
	FieldTitle       = "title"
	FieldOrderNumber = "order_number"

	titleMinLen = 3
	titleMaxLen = 255
)

// EnrollmentChecker reports whether a user holds an active enrollment in a
// course. Satisfied by the library enrollment service.
type EnrollmentChecker interface {
	IsEnrolled(context context.Context, courseID, userID string) (bool, error)
}

// # Service Layer

// Service orchestrates the business logic for chapters.
type Service struct {
	chapterRepo ChapterRepository
	enrollments EnrollmentChecker
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(chapterRepo ChapterRepository, enrollments EnrollmentChecker, logger *slog.Logger) *Service {
	return &Service{
		chapterRepo: chapterRepo,
		enrollments: enrollments,
		logger:      logger,
	}
}

// # Access Control

// authorizeRead checks whether userID may view content of the given course.
// Public courses are open to everyone; private ones require ownership or an
// enrollment. userID is empty for anonymous visitors.
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

// authorizeOwner checks that userID is the creator of the course. Only the
// course owner may mutate its chapter structure.
func (service *Service) authorizeOwner(ref *CourseRef, userID string) error {
	if ref.OwnerID != userID {
		return apperr.Forbidden("Only the course owner can manage chapters")
	}
	return nil
}

// # Chapter Operations

/*
ListChapters retrieves the ordered chapter roster of a course.

Parameters:
  - context: context.Context
  - courseID: string (Owner scope)
  - userID: string (Requesting user, empty for anonymous)
  - limit, offset: int

Returns:
  - []*Chapter: Page of chapters sorted by order number
  - int: Total chapter count for the course
  - error: Access or storage errors
*/
func (service *Service) ListChapters(context context.Context, courseID, userID string, limit, offset int) ([]*Chapter, int, error) {
	ref, err := service.chapterRepo.FindCourseRef(context, courseID)
	if err != nil {
		return nil, 0, err
	}
	if err := service.authorizeRead(context, ref, userID); err != nil {
		return nil, 0, err
	}

	return service.chapterRepo.ListByCourse(context, courseID, limit, offset)
}

/*
GetChapter retrieves a single chapter by its ID.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - userID: string (Requesting user, empty for anonymous)

Returns:
  - *Chapter: The hydrated domain entity
  - error: NotFound or access errors
*/
func (service *Service) GetChapter(context context.Context, id, userID string) (*Chapter, error) {
	chapter, err := service.chapterRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	ref, err := service.chapterRepo.FindCourseRef(context, chapter.CourseID)
	if err != nil {
		return nil, err
	}
	if err := service.authorizeRead(context, ref, userID); err != nil {
		return nil, err
	}

	return chapter, nil
}

/*
CreateChapter appends or inserts a new chapter into a course.

Description: An order number of zero requests the next free slot at the
tail. A positive order number claims that slot, shifting any occupants
upward. The resolved slot is written back onto the entity.

Parameters:
  - context: context.Context
  - userID: string (Must own the course)
  - chapter: *Chapter (The new chapter data)

Returns:
  - error: Validation, authorization, or persistence errors
*/
func (service *Service) CreateChapter(context context.Context, userID string, chapter *Chapter) error {
	ref, err := service.chapterRepo.FindCourseRef(context, chapter.CourseID)
	if err != nil {
		return err
	}
	if err := service.authorizeOwner(ref, userID); err != nil {
		return err
	}

	if chapter.ID == "" {
		chapter.ID = uuidv7.New()
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, chapter.Title)
	validator.MinLen(FieldTitle, chapter.Title, titleMinLen)
	validator.MaxLen(FieldTitle, chapter.Title, titleMaxLen)
	validator.Custom(FieldOrderNumber, chapter.OrderNumber < 0, "Order number cannot be negative")

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.chapterRepo.CreateWithOrder(context, chapter); err != nil {
		return err
	}

	service.logger.Info("chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("course_id", chapter.CourseID),
		slog.Int("order_number", chapter.OrderNumber),
	)

	return nil
}

// UpdateChapterInput carries the optional fields of a chapter patch. Nil
// pointers leave the stored value untouched.
type UpdateChapterInput struct {
	Title       *string
	OrderNumber *int
	IsPublished *bool
}

/*
UpdateChapter applies a partial update to a chapter.

Description: When the patch moves the chapter to an occupied order slot,
the current occupants shift upward before the update lands.

Parameters:
  - context: context.Context
  - userID: string (Must own the course)
  - id: string (UUID)
  - input: UpdateChapterInput

Returns:
  - *Chapter: The updated entity
  - error: Validation, authorization, or persistence errors
*/
func (service *Service) UpdateChapter(context context.Context, userID, id string, input UpdateChapterInput) (*Chapter, error) {
	chapter, err := service.chapterRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	ref, err := service.chapterRepo.FindCourseRef(context, chapter.CourseID)
	if err != nil {
		return nil, err
	}
	if err := service.authorizeOwner(ref, userID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		chapter.Title = *input.Title
	}
	if input.OrderNumber != nil {
		chapter.OrderNumber = *input.OrderNumber
	}
	if input.IsPublished != nil {
		chapter.IsPublished = *input.IsPublished
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, chapter.Title)
	validator.MinLen(FieldTitle, chapter.Title, titleMinLen)
	validator.MaxLen(FieldTitle, chapter.Title, titleMaxLen)
	validator.Positive(FieldOrderNumber, chapter.OrderNumber)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.chapterRepo.UpdateWithOrder(context, chapter); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_updated",
		slog.String("chapter_id", chapter.ID),
		slog.String("course_id", chapter.CourseID),
		slog.Int("order_number", chapter.OrderNumber),
	)

	return chapter, nil
}

/*
DeleteChapter removes a chapter and renumbers the survivors so the course
sequence stays gap-free.

Parameters:
  - context: context.Context
  - userID: string (Must own the course)
  - id: string (UUID)

Returns:
  - error: Authorization or persistence errors
*/
func (service *Service) DeleteChapter(context context.Context, userID, id string) error {
	chapter, err := service.chapterRepo.FindByID(context, id)
	if err != nil {
		return err
	}

	ref, err := service.chapterRepo.FindCourseRef(context, chapter.CourseID)
	if err != nil {
		return err
	}
	if err := service.authorizeOwner(ref, userID); err != nil {
		return err
	}

	if err := service.chapterRepo.DeleteAndRenumber(context, id, chapter.CourseID); err != nil {
		return err
	}

	service.logger.Info("chapter_deleted",
		slog.String("chapter_id", id),
		slog.String("course_id", chapter.CourseID),
	)

	return nil
}

// # Reordering

/*
MoveChapterUp swaps a chapter with the one ranked immediately before it.
A chapter already at the head stays where it is.

Parameters:
  - context: context.Context
  - userID: string (Must own the course)
  - id: string (UUID)

Returns:
  - error: Authorization or persistence errors
*/
func (service *Service) MoveChapterUp(context context.Context, userID, id string) error {
	return service.moveChapter(context, userID, id, true)
}

// MoveChapterDown swaps a chapter with the one ranked immediately after it.
// A chapter already at the tail stays where it is.
func (service *Service) MoveChapterDown(context context.Context, userID, id string) error {
	return service.moveChapter(context, userID, id, false)
}

func (service *Service) moveChapter(context context.Context, userID, id string, up bool) error {
	chapter, err := service.chapterRepo.FindByID(context, id)
	if err != nil {
		return err
	}

	ref, err := service.chapterRepo.FindCourseRef(context, chapter.CourseID)
	if err != nil {
		return err
	}
	if err := service.authorizeOwner(ref, userID); err != nil {
		return err
	}

	direction := "down"
	if up {
		err = service.chapterRepo.MoveUp(context, id, chapter.CourseID)
		direction = "up"
	} else {
		err = service.chapterRepo.MoveDown(context, id, chapter.CourseID)
	}
	if err != nil {
		return err
	}

	service.logger.Info("chapter_moved",
		slog.String("chapter_id", id),
		slog.String("course_id", chapter.CourseID),
		slog.String("direction", direction),
	)

	return nil
}
