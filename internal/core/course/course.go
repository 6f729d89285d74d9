// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package course

import "time"

// Course is a structured learning track published inside a channel. Private
// courses are visible only to their owner and enrolled users.
type Course struct {
	ID           string    `json:"id"`
	ChannelID    string    `json:"channel_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	IsPublic     bool      `json:"is_public"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter narrows course listings.
type Filter struct {
	ChannelID string
	Search    string

	// ViewerID scopes visibility: listings include public courses plus
	// the viewer's own private ones. Empty for anonymous visitors.
	ViewerID string
}

// ChannelRef carries the ownership metadata of a channel.
type ChannelRef struct {
	ID      string
	OwnerID string
}
