// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package feed

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/loopspace/backend/internal/platform/middleware"
	requestutil "github.com/loopspace/backend/internal/platform/request"
	"github.com/loopspace/backend/internal/platform/respond"
	"github.com/loopspace/backend/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the course community feed.
type Handler struct {
	service *Service
}

// NewHandler constructs a new feed [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches feed endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Read endpoints, open to anonymous visitors of public courses
	api.Get("/courses/{courseID}/posts", handler.ListPosts)
	api.Get("/posts/{postID}/comments", handler.ListComments)

	// Writing requires course membership
	api.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)
		member.Post("/courses/{courseID}/posts", handler.CreatePost)
		member.Delete("/posts/{id}", handler.DeletePost)
		member.Post("/posts/{postID}/comments", handler.CreateComment)
		member.Delete("/comments/{id}", handler.DeleteComment)
	})
}

// # Posts

/*
GET /api/v1/courses/{courseID}/posts.

Description: Returns the paginated feed of a course, newest first.

Response:
  - 200: []Post: Paginated list
  - 401: Private course, no credentials
  - 403: Private course, no enrollment
  - 404: Course not found
*/
func (handler *Handler) ListPosts(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")
	userID := requestutil.UserID(request)

	paginationParams := pagination.FromRequest(request)

	posts, total, err := handler.service.ListPosts(request.Context(), courseID, userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// createPostRequest defines the inbound JSON schema for new posts.
type createPostRequest struct {
	Content string `json:"content"`
}

/*
POST /api/v1/courses/{courseID}/posts.

Response:
  - 201: Post: The created post
  - 400: Validation failure
  - 403: Requester is not a member of the course
  - 404: Course not found
*/
func (handler *Handler) CreatePost(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body createPostRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.CreatePost(request.Context(), userID, requestutil.ID(request, "courseID"), body.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

/*
DELETE /api/v1/posts/{id}.

Response:
  - 204: Deleted
  - 403: Requester is neither the author nor the course owner
  - 404: Post not found
*/
func (handler *Handler) DeletePost(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePost(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Comments

/*
GET /api/v1/posts/{postID}/comments.

Description: Returns the paginated comments of a post, oldest first.

Response:
  - 200: []Comment: Paginated list
  - 404: Post not found
*/
func (handler *Handler) ListComments(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.ID(request, "postID")
	userID := requestutil.UserID(request)

	paginationParams := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(request.Context(), postID, userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// createCommentRequest defines the inbound JSON schema for new comments.
type createCommentRequest struct {
	Content string `json:"content"`
}

/*
POST /api/v1/posts/{postID}/comments.

Response:
  - 201: Comment: The created comment
  - 400: Validation failure
  - 403: Requester is not a member of the course
  - 404: Post not found
*/
func (handler *Handler) CreateComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body createCommentRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), userID, requestutil.ID(request, "postID"), body.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
DELETE /api/v1/comments/{id}.

Response:
  - 204: Deleted
  - 403: Requester is neither the author nor the course owner
  - 404: Comment not found
*/
func (handler *Handler) DeleteComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
