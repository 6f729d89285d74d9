// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package lesson

import (
	"context"
	"log/slog"

	"github.com/loopspace/backend/internal/platform/apperr"
	"github.com/loopspace/backend/internal/platform/validate"
	"github.com/loopspace/backend/pkg/uuidv7"
)

const (
	FieldTitle       = "title"
	FieldContent     = "content"
	FieldOrderNumber = "order_number"

	titleMinLen   = 3
	titleMaxLen   = 255
	contentMaxLen = 10000
)

// EnrollmentChecker reports whether a user holds an active enrollment in a
// course. Satisfied by the library enrollment service.
type EnrollmentChecker interface {
	IsEnrolled(context context.Context, courseID, userID string) (bool, error)
}

// ProgressReader answers completion lookups for a user and lesson.
// Satisfied by the library enrollment service.
type ProgressReader interface {
	IsLessonCompleted(context context.Context, lessonID, userID string) (bool, error)
}

// # Service Layer

// Service orchestrates the business logic for lessons.
type Service struct {
	lessonRepo  LessonRepository
	enrollments EnrollmentChecker
	progress    ProgressReader
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(lessonRepo LessonRepository, enrollments EnrollmentChecker, progress ProgressReader, logger *slog.Logger) *Service {
	return &Service{
		lessonRepo:  lessonRepo,
		enrollments: enrollments,
		progress:    progress,
		logger:      logger,
	}
}

// # Access Control

func (service *Service) authorizeRead(context context.Context, ref *ChapterRef, userID string) error {
	if ref.IsPublic {
		return nil
	}
	if userID == "" {
		return apperr.Unauthorized("Authentication required for this course")
	}
	if ref.CourseOwner == userID {
		return nil
	}

	enrolled, err := service.enrollments.IsEnrolled(context, ref.CourseID, userID)
	if err != nil {
		return err
	}
	if !enrolled {
		return apperr.Forbidden("You do not have access to this course")
	}

	return nil
}

func (service *Service) authorizeOwner(ref *ChapterRef, userID string) error {
	if ref.CourseOwner != userID {
		return apperr.Forbidden("Only the course owner can manage lessons")
	}
	return nil
}

// # Lesson Operations

/*
ListLessons retrieves the ordered lesson roster of a chapter.

Parameters:
  - context: context.Context
  - chapterID: string (Owner scope)
  - userID: string (Requesting user, empty for anonymous)
  - limit, offset: int

Returns:
  - []*Lesson: Page of lessons sorted by order number
  - int: Total lesson count for the chapter
  - error: Access or storage errors
*/
func (service *Service) ListLessons(context context.Context, chapterID, userID string, limit, offset int) ([]*Lesson, int, error) {
	ref, err := service.lessonRepo.FindChapterRef(context, chapterID)
	if err != nil {
		return nil, 0, err
	}
	if err := service.authorizeRead(context, ref, userID); err != nil {
		return nil, 0, err
	}

	return service.lessonRepo.ListByChapter(context, chapterID, limit, offset)
}

/*
GetLesson retrieves a single lesson together with the requester's
completion state.

Description: Anonymous requesters get a nil completion marker. For
authenticated users the marker reflects their progress records.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - userID: string (Requesting user, empty for anonymous)

Returns:
  - *Detail: The lesson with optional completion state
  - error: NotFound or access errors
*/
func (service *Service) GetLesson(context context.Context, id, userID string) (*Detail, error) {
	lesson, err := service.lessonRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	ref, err := service.lessonRepo.FindChapterRef(context, lesson.ChapterID)
	if err != nil {
		return nil, err
	}
	if err := service.authorizeRead(context, ref, userID); err != nil {
		return nil, err
	}

	detail := &Detail{Lesson: lesson}
	if userID != "" {
		completed, err := service.progress.IsLessonCompleted(context, id, userID)
		if err != nil {
			return nil, err
		}
		detail.IsCompleted = &completed
	}

	return detail, nil
}

func lessonValidator(lesson *Lesson) *validate.Validator {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, lesson.Title)
	validator.MinLen(FieldTitle, lesson.Title, titleMinLen)
	validator.MaxLen(FieldTitle, lesson.Title, titleMaxLen)
	validator.MaxLen(FieldContent, lesson.Content, contentMaxLen)
	return validator
}

/*
CreateLesson appends or inserts a new lesson into a chapter.

Description: An order number of zero requests the next free slot at the
tail. A positive order number claims that slot, shifting any occupants
upward. The resolved slot is written back onto the entity.

Parameters:
  - context: context.Context
  - userID: string (Must own the course)
  - lesson: *Lesson (The new lesson data)

Returns:
  - error: Validation, authorization, or persistence errors
*/
func (service *Service) CreateLesson(context context.Context, userID string, lesson *Lesson) error {
	ref, err := service.lessonRepo.FindChapterRef(context, lesson.ChapterID)
	if err != nil {
		return err
	}
	if err := service.authorizeOwner(ref, userID); err != nil {
		return err
	}

	if lesson.ID == "" {
		lesson.ID = uuidv7.New()
	}
	lesson.CreatedBy = userID

	validator := lessonValidator(lesson)
	validator.Custom(FieldOrderNumber, lesson.OrderNumber < 0, "Order number cannot be negative")
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.lessonRepo.CreateWithOrder(context, lesson); err != nil {
		return err
	}

	service.logger.Info("lesson_created",
		slog.String("lesson_id", lesson.ID),
		slog.String("chapter_id", lesson.ChapterID),
		slog.Int("order_number", lesson.OrderNumber),
	)

	return nil
}

// UpdateLessonInput carries the optional fields of a lesson patch. Nil
// pointers leave the stored value untouched.
type UpdateLessonInput struct {
	Title       *string
	Content     *string
	OrderNumber *int
	IsPublished *bool
}

/*
UpdateLesson applies a partial update to a lesson.

Description: When the patch moves the lesson to an occupied order slot,
the current occupants shift upward before the update lands.

Parameters:
  - context: context.Context
  - userID: string (Must own the course)
  - id: string (UUID)
  - input: UpdateLessonInput

Returns:
  - *Lesson: The updated entity
  - error: Validation, authorization, or persistence errors
*/
func (service *Service) UpdateLesson(context context.Context, userID, id string, input UpdateLessonInput) (*Lesson, error) {
	lesson, err := service.lessonRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	ref, err := service.lessonRepo.FindChapterRef(context, lesson.ChapterID)
	if err != nil {
		return nil, err
	}
	if err := service.authorizeOwner(ref, userID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		lesson.Title = *input.Title
	}
	if input.Content != nil {
		lesson.Content = *input.Content
	}
	if input.OrderNumber != nil {
		lesson.OrderNumber = *input.OrderNumber
	}
	if input.IsPublished != nil {
		lesson.IsPublished = *input.IsPublished
	}

	validator := lessonValidator(lesson)
	validator.Positive(FieldOrderNumber, lesson.OrderNumber)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.lessonRepo.UpdateWithOrder(context, lesson); err != nil {
		return nil, err
	}

	service.logger.Info("lesson_updated",
		slog.String("lesson_id", lesson.ID),
		slog.String("chapter_id", lesson.ChapterID),
		slog.Int("order_number", lesson.OrderNumber),
	)

	return lesson, nil
}

/*
DeleteLesson removes a lesson and renumbers the survivors so the chapter
sequence stays gap-free.

Parameters:
  - context: context.Context
  - userID: string (Must own the course)
  - id: string (UUID)

Returns:
  - error: Authorization or persistence errors
*/
func (service *Service) DeleteLesson(context context.Context, userID, id string) error {
	lesson, err := service.lessonRepo.FindByID(context, id)
	if err != nil {
		return err
	}

	ref, err := service.lessonRepo.FindChapterRef(context, lesson.ChapterID)
	if err != nil {
		return err
	}
	if err := service.authorizeOwner(ref, userID); err != nil {
		return err
	}

	if err := service.lessonRepo.DeleteAndRenumber(context, id, lesson.ChapterID); err != nil {
		return err
	}

	service.logger.Info("lesson_deleted",
		slog.String("lesson_id", id),
		slog.String("chapter_id", lesson.ChapterID),
	)

	return nil
}

// # Reordering

// MoveLessonUp swaps a lesson with the one ranked immediately before it.
// A lesson already at the head stays where it is.
func (service *Service) MoveLessonUp(context context.Context, userID, id string) error {
	return service.moveLesson(context, userID, id, true)
}

// MoveLessonDown swaps a lesson with the one ranked immediately after it.
// A lesson already at the tail stays where it is.
func (service *Service) MoveLessonDown(context context.Context, userID, id string) error {
	return service.moveLesson(context, userID, id, false)
}

func (service *Service) moveLesson(context context.Context, userID, id string, up bool) error {
	lesson, err := service.lessonRepo.FindByID(context, id)
	if err != nil {
		return err
	}

	ref, err := service.lessonRepo.FindChapterRef(context, lesson.ChapterID)
	if err != nil {
		return err
	}
	if err := service.authorizeOwner(ref, userID); err != nil {
		return err
	}

	direction := "down"
	if up {
		err = service.lessonRepo.MoveUp(context, id, lesson.ChapterID)
		direction = "up"
	} else {
		err = service.lessonRepo.MoveDown(context, id, lesson.ChapterID)
	}
	if err != nil {
		return err
	}

	service.logger.Info("lesson_moved",
		slog.String("lesson_id", id),
		slog.String("chapter_id", lesson.ChapterID),
		slog.String("direction", direction),
	)

	return nil
}
