// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package event

import "context"

// # Repository Contract

// EventRepository defines the persistence operations for course events.
type EventRepository interface {
	// ListUpcoming returns the events of a course that have not ended yet,
	// soonest first, with the total upcoming count.
	ListUpcoming(context context.Context, courseID string, limit, offset int) ([]*Event, int, error)

	// FindByID retrieves a single event.
	FindByID(context context.Context, id string) (*Event, error)

	// Create persists a new event and hydrates its creation timestamp.
	Create(context context.Context, event *Event) error

	// Delete removes an event.
	Delete(context context.Context, id string) error

	// FindCourseRef retrieves the access control fields of a course.
	FindCourseRef(context context.Context, courseID string) (*CourseRef, error)
}
