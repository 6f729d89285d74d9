// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package feed

import "context"

// # Repository Contract

// FeedRepository defines persistence operations for posts and comments.
type FeedRepository interface {

	// ListPosts retrieves a course's feed, newest first.
	ListPosts(context context.Context, courseID string, limit, offset int) ([]*Post, int, error)

	// FindPost returns a post or apperr.NotFound.
	FindPost(context context.Context, id string) (*Post, error)

	// CreatePost inserts a post row and hydrates its timestamps.
	CreatePost(context context.Context, post *Post) error

	// DeletePost removes a post and its comments.
	DeletePost(context context.Context, id string) error

	// ListComments retrieves a post's thread, oldest first.
	ListComments(context context.Context, postID string, limit, offset int) ([]*Comment, int, error)

	// FindComment returns a comment or apperr.NotFound.
	FindComment(context context.Context, id string) (*Comment, error)

	// CreateComment inserts a comment row and hydrates its timestamp.
	CreateComment(context context.Context, comment *Comment) error

	// DeleteComment removes a single comment.
	DeleteComment(context context.Context, id string) error

	// FindCourseRef loads a course's owner and visibility, or
	// apperr.NotFound when the course does not exist.
	FindCourseRef(context context.Context, courseID string) (*CourseRef, error)
}
