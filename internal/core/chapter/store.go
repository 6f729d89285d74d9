// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package chapter

import "context"

// # Chapter Data Access

// ChapterRepository defines the data access contract for chapters.
//
// All mutating operations that touch order numbers run inside a single
// transaction holding the per-course advisory lock, so the sequence
// invariants survive concurrent requests.
type ChapterRepository interface {

	/*
		ListByCourse returns chapters for a course, ordered ascending by
		order number.

		Parameters:
		  - context: context.Context
		  - courseID: string (Owner scope)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Chapter: Page of chapters
		  - int: Total chapter count for the course
		  - error: Storage failures
	*/
	ListByCourse(context context.Context, courseID string, limit, offset int) ([]*Chapter, int, error)

	/*
		FindByID returns the chapter with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Chapter: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Chapter, error)

	/*
		FindCourseRef returns the access metadata of a course.

		Parameters:
		  - context: context.Context
		  - courseID: string (UUID)

		Returns:
		  - *CourseRef: Owner and visibility
		  - error: apperr.NotFound if the course does not exist
	*/
	FindCourseRef(context context.Context, courseID string) (*CourseRef, error)

	/*
		CreateWithOrder inserts a chapter, resolving its order slot first.

		Description: A zero OrderNumber means append; an explicit value is
		placed per the ordering contract (colliding siblings shift up).
		The resolved order is written back into the passed entity.

		Parameters:
		  - context: context.Context
		  - chapter: *Chapter

		Returns:
		  - error: Validation, conflict, or storage errors
	*/
	CreateWithOrder(context context.Context, chapter *Chapter) error

	/*
		UpdateWithOrder persists chapter changes, shifting siblings when
		the order number moved onto an occupied slot.

		Parameters:
		  - context: context.Context
		  - chapter: *Chapter (Full desired state)

		Returns:
		  - error: apperr.NotFound if the row vanished, storage errors
	*/
	UpdateWithOrder(context context.Context, chapter *Chapter) error

	/*
		DeleteAndRenumber removes a chapter and renumbers the survivors
		back to a dense sequence.

		Parameters:
		  - context: context.Context
		  - id: string (Chapter UUID)
		  - courseID: string (Scope)

		Returns:
		  - error: apperr.NotFound if missing, storage errors
	*/
	DeleteAndRenumber(context context.Context, id, courseID string) error

	/*
		MoveUp swaps the chapter with its previous rank neighbor.
		No-op when the chapter is already first.
	*/
	MoveUp(context context.Context, id, courseID string) error

	/*
		MoveDown swaps the chapter with its next rank neighbor.
		No-op when the chapter is already last.
	*/
	MoveDown(context context.Context, id, courseID string) error
}
