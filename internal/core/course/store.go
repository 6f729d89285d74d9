// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package course

import "context"

// # Repository Contract

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {

	/*
		List retrieves courses matching the filter, newest first.

		Description: Visibility is enforced at the query level: rows are
		included when they are public or owned by the filter's viewer.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*Course: Page of visible courses
		  - int: Total visible course count
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Course, int, error)

	// FindByID returns a course or apperr.NotFound.
	FindByID(context context.Context, id string) (*Course, error)

	// FindChannelRef loads a channel's owner, or apperr.NotFound when the
	// channel does not exist.
	FindChannelRef(context context.Context, channelID string) (*ChannelRef, error)

	// Create inserts a course row and hydrates its timestamps.
	Create(context context.Context, course *Course) error

	// Update persists the full course state. apperr.NotFound when the row
	// is gone.
	Update(context context.Context, course *Course) error

	// Delete removes the course and, through cascading constraints, its
	// chapters, lessons, and enrollments.
	Delete(context context.Context, id string) error
}
