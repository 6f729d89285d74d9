// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package feed

import (
	"context"
	"log/slog"

	"github.com/loopspace/backend/internal/platform/apperr"
	"github.com/loopspace/backend/internal/platform/validate"
	"github.com/loopspace/backend/pkg/uuidv7"
)

const (
	FieldContent = "content"

	postContentMaxLen    = 2000
	commentContentMaxLen = 1000
)

// EnrollmentChecker reports whether a user is enrolled in a course.
type EnrollmentChecker interface {
	IsEnrolled(context context.Context, courseID, userID string) (bool, error)
}

// Service implements the community feed use cases.
type Service struct {
	feedRepo    FeedRepository
	enrollments EnrollmentChecker
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(feedRepo FeedRepository, enrollments EnrollmentChecker, logger *slog.Logger) *Service {
	return &Service{
		feedRepo:    feedRepo,
		enrollments: enrollments,
		logger:      logger,
	}
}

// # Access Control

// authorizeRead checks whether userID may view the feed of the given course.
// Follows the same visibility rules as course content itself.
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

// authorizeWrite checks that userID is a member of the course community,
// meaning the course owner or an enrolled user. Only members can post.
func (service *Service) authorizeWrite(context context.Context, ref *CourseRef, userID string) error {
	if ref.OwnerID == userID {
		return nil
	}

	enrolled, err := service.enrollments.IsEnrolled(context, ref.ID, userID)
	if err != nil {
		return err
	}
	if !enrolled {
		return apperr.Forbidden("Enroll in the course to join the discussion")
	}

	return nil
}

// # Post Operations

/*
ListPosts retrieves the community posts of a course, newest first.

Parameters:
  - context: context.Context
  - courseID: string (Owner scope)
  - userID: string (Requesting user, empty for anonymous)
  - limit, offset: int

Returns:
  - []*Post: Page of posts
  - int: Total post count for the course
  - error: Access or storage errors
*/
func (service *Service) ListPosts(context context.Context, courseID, userID string, limit, offset int) ([]*Post, int, error) {
	ref, err := service.feedRepo.FindCourseRef(context, courseID)
	if err != nil {
		return nil, 0, err
	}
	if err := service.authorizeRead(context, ref, userID); err != nil {
		return nil, 0, err
	}

	return service.feedRepo.ListPosts(context, courseID, limit, offset)
}

/*
CreatePost publishes a new post on the course feed.

Parameters:
  - context: context.Context
  - userID: string (Authenticated author)
  - courseID: string
  - content: string (Post body)

Returns:
  - *Post: The created post with storage timestamps
  - error: Validation, access or storage errors
*/
func (service *Service) CreatePost(context context.Context, userID, courseID, content string) (*Post, error) {
	validator := &validate.Validator{}
	validator.Required(FieldContent, content)
	validator.MaxLen(FieldContent, content, postContentMaxLen)
	if validator.HasErrors() {
		return nil, validator.Err()
	}

	ref, err := service.feedRepo.FindCourseRef(context, courseID)
	if err != nil {
		return nil, err
	}
	if err := service.authorizeWrite(context, ref, userID); err != nil {
		return nil, err
	}

	post := &Post{
		ID:       uuidv7.New(),
		CourseID: courseID,
		AuthorID: userID,
		Content:  content,
	}

	if err := service.feedRepo.CreatePost(context, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("course_id", courseID),
		slog.String("author_id", userID),
	)

	return post, nil
}

/*
DeletePost removes a post and all its comments. Allowed for the post
author and for the course owner.

Parameters:
  - context: context.Context
  - userID: string (Authenticated user)
  - id: string (Post UUID)

Returns:
  - error: NotFound, access or storage errors
*/
func (service *Service) DeletePost(context context.Context, userID, id string) error {
	post, err := service.feedRepo.FindPost(context, id)
	if err != nil {
		return err
	}

	ref, err := service.feedRepo.FindCourseRef(context, post.CourseID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID && ref.OwnerID != userID {
		return apperr.Forbidden("Only the author or the course owner can delete this post")
	}

	if err := service.feedRepo.DeletePost(context, id); err != nil {
		return err
	}

	service.logger.Info("post_deleted",
		slog.String("post_id", id),
		slog.String("deleted_by", userID),
	)

	return nil
}

// # Comment Operations

/*
ListComments retrieves the comments of a post, oldest first.

Parameters:
  - context: context.Context
  - postID: string
  - userID: string (Requesting user, empty for anonymous)
  - limit, offset: int

Returns:
  - []*Comment: Page of comments
  - int: Total comment count for the post
  - error: Access or storage errors
*/
func (service *Service) ListComments(context context.Context, postID, userID string, limit, offset int) ([]*Comment, int, error) {
	post, err := service.feedRepo.FindPost(context, postID)
	if err != nil {
		return nil, 0, err
	}

	ref, err := service.feedRepo.FindCourseRef(context, post.CourseID)
	if err != nil {
		return nil, 0, err
	}
	if err := service.authorizeRead(context, ref, userID); err != nil {
		return nil, 0, err
	}

	return service.feedRepo.ListComments(context, postID, limit, offset)
}

/*
CreateComment adds a comment under a post.

Parameters:
  - context: context.Context
  - userID: string (Authenticated author)
  - postID: string
  - content: string (Comment body)

Returns:
  - *Comment: The created comment with storage timestamp
  - error: Validation, access or storage errors
*/
func (service *Service) CreateComment(context context.Context, userID, postID, content string) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldContent, content)
	validator.MaxLen(FieldContent, content, commentContentMaxLen)
	if validator.HasErrors() {
		return nil, validator.Err()
	}

	post, err := service.feedRepo.FindPost(context, postID)
	if err != nil {
		return nil, err
	}

	ref, err := service.feedRepo.FindCourseRef(context, post.CourseID)
	if err != nil {
		return nil, err
	}
	if err := service.authorizeWrite(context, ref, userID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuidv7.New(),
		PostID:   postID,
		AuthorID: userID,
		Content:  content,
	}

	if err := service.feedRepo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", postID),
		slog.String("author_id", userID),
	)

	return comment, nil
}

/*
DeleteComment removes a single comment. Allowed for the comment author
and for the course owner.

Parameters:
  - context: context.Context
  - userID: string (Authenticated user)
  - id: string (Comment UUID)

Returns:
  - error: NotFound, access or storage errors
*/
func (service *Service) DeleteComment(context context.Context, userID, id string) error {
	comment, err := service.feedRepo.FindComment(context, id)
	if err != nil {
		return err
	}

	post, err := service.feedRepo.FindPost(context, comment.PostID)
	if err != nil {
		return err
	}

	ref, err := service.feedRepo.FindCourseRef(context, post.CourseID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID && ref.OwnerID != userID {
		return apperr.Forbidden("Only the author or the course owner can delete this comment")
	}

	if err := service.feedRepo.DeleteComment(context, id); err != nil {
		return err
	}

	service.logger.Info("comment_deleted",
		slog.String("comment_id", id),
		slog.String("deleted_by", userID),
	)

	return nil
}
