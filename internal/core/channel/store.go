// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package channel

import "context"

// # Repository Contract

// ChannelRepository defines persistence operations for channels.
type ChannelRepository interface {

	// List retrieves channels, newest first, with the total count.
	List(context context.Context, search string, limit, offset int) ([]*Channel, int, error)

	// FindByID returns a channel or apperr.NotFound.
	FindByID(context context.Context, id string) (*Channel, error)

	// FindBySlug resolves a channel through its unique URL slug.
	FindBySlug(context context.Context, slug string) (*Channel, error)

	// Create inserts a channel row. Slug collisions surface as Conflict.
	Create(context context.Context, channel *Channel) error

	// Update persists name and description changes.
	Update(context context.Context, channel *Channel) error

	// Delete removes the channel and, through cascading constraints, its
	// courses.
	Delete(context context.Context, id string) error
}
