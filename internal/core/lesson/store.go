// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package lesson

import "context"

// # Repository Contract

// LessonRepository defines persistence operations for lessons. Operations
// that touch order numbers run inside a per-chapter locked transaction so
// concurrent reorders of the same chapter cannot interleave.
type LessonRepository interface {

	/*
		ListByChapter retrieves lessons of a chapter, sorted by order number.

		Parameters:
		  - context: context.Context
		  - chapterID: string (Owner scope)
		  - limit, offset: int

		Returns:
		  - []*Lesson: Page of lessons
		  - int: Total lesson count for the chapter
	*/
	ListByChapter(context context.Context, chapterID string, limit, offset int) ([]*Lesson, int, error)

	// FindByID returns a lesson or apperr.NotFound.
	FindByID(context context.Context, id string) (*Lesson, error)

	/*
		FindChapterRef loads a chapter's ID together with the owning
		course's identity, owner, and visibility in one join.

		Returns:
		  - *ChapterRef: Access metadata
		  - error: apperr.NotFound when the chapter does not exist
	*/
	FindChapterRef(context context.Context, chapterID string) (*ChapterRef, error)

	/*
		CreateWithOrder resolves the lesson's order slot and inserts the
		row. A zero OrderNumber appends at the tail; a positive one claims
		that slot, shifting occupants upward. The resolved slot is written
		back onto the entity.
	*/
	CreateWithOrder(context context.Context, lesson *Lesson) error

	// UpdateWithOrder persists the full lesson state, shifting siblings
	// first when the order number landed on an occupied slot.
	UpdateWithOrder(context context.Context, lesson *Lesson) error

	// DeleteAndRenumber removes the lesson and renumbers the surviving
	// siblings to their 1-based ranks.
	DeleteAndRenumber(context context.Context, id, chapterID string) error

	// MoveUp swaps the lesson with its previous rank neighbor. No-op at
	// the head of the sequence.
	MoveUp(context context.Context, id, chapterID string) error

	// MoveDown swaps the lesson with its next rank neighbor. No-op at the
	// tail of the sequence.
	MoveDown(context context.Context, id, chapterID string) error
}
