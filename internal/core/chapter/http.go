// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/loopspace/backend/internal/platform/middleware"
	requestutil "github.com/loopspace/backend/internal/platform/request"
	"github.com/loopspace/backend/internal/platform/respond"
	"github.com/loopspace/backend/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapter management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches chapter endpoints to the root API router.
// Chapter endpoints span both /courses/{id}/... and /chapters/... prefixes.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Read endpoints, open to anonymous visitors of public courses
	api.Get("/courses/{courseID}/chapters", handler.ListChapters)
	api.Get("/chapters/{id}", handler.GetChapter)

	// Mutations require an authenticated course owner
	api.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)
		owner.Post("/courses/{courseID}/chapters", handler.CreateChapter)
		owner.Patch("/chapters/{id}", handler.UpdateChapter)
		owner.Delete("/chapters/{id}", handler.DeleteChapter)
		owner.Post("/chapters/{id}/move-up", handler.MoveUp)
		owner.Post("/chapters/{id}/move-down", handler.MoveDown)
	})
}

// # Chapter Retrieval

/*
GET /api/v1/courses/{courseID}/chapters.

Description: Returns the paginated chapter roster of a course, sorted by
order number.

Request:
  - courseID: string (UUID)
  - limit: int
  - page: int

Response:
  - 200: []Chapter: Paginated list
  - 401: Private course, no credentials
  - 403: Private course, no enrollment
  - 404: Course not found
*/
func (handler *Handler) ListChapters(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")
	userID := requestutil.UserID(request)

	paginationParams := pagination.FromRequest(request)

	chapters, total, err := handler.service.ListChapters(request.Context(), courseID, userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, chapters, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/chapters/{id}.

Response:
  - 200: Chapter
  - 404: Chapter not found
*/
func (handler *Handler) GetChapter(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	userID := requestutil.UserID(request)

	chapter, err := handler.service.GetChapter(request.Context(), id, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

// # Chapter Creation

// createChapterRequest defines the inbound JSON schema for new chapters.
// A zero or absent order_number appends the chapter at the tail.
type createChapterRequest struct {
	Title       string `json:"title"`
	OrderNumber int    `json:"order_number"`
	IsPublished bool   `json:"is_published"`
}

/*
POST /api/v1/courses/{courseID}/chapters.

Description: Creates a chapter inside an owned course. When order_number
names an occupied slot, the occupants shift upward to make room.

Response:
  - 201: Chapter: The created chapter with its resolved order number
  - 400: Validation failure
  - 403: Requester does not own the course
  - 404: Course not found
*/
func (handler *Handler) CreateChapter(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body createChapterRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter := &Chapter{
		CourseID:    requestutil.ID(request, "courseID"),
		Title:       body.Title,
		OrderNumber: body.OrderNumber,
		IsPublished: body.IsPublished,
	}

	if err := handler.service.CreateChapter(request.Context(), userID, chapter); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, chapter)
}

// # Chapter Updates

// updateChapterRequest defines the inbound JSON schema for chapter patches.
type updateChapterRequest struct {
	Title       *string `json:"title"`
	OrderNumber *int    `json:"order_number"`
	IsPublished *bool   `json:"is_published"`
}

/*
PATCH /api/v1/chapters/{id}.

Description: Applies a partial update. Moving the chapter onto an occupied
order slot shifts the occupants upward first.

Response:
  - 200: Chapter: The updated entity
  - 400: Validation failure
  - 403: Requester does not own the course
  - 404: Chapter not found
*/
func (handler *Handler) UpdateChapter(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body updateChapterRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.UpdateChapter(request.Context(), userID, requestutil.ID(request, "id"), UpdateChapterInput{
		Title:       body.Title,
		OrderNumber: body.OrderNumber,
		IsPublished: body.IsPublished,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

/*
DELETE /api/v1/chapters/{id}.

Description: Removes the chapter. Surviving chapters are renumbered so the
course sequence stays dense.

Response:
  - 204: Deleted
  - 403: Requester does not own the course
  - 404: Chapter not found
*/
func (handler *Handler) DeleteChapter(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteChapter(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Reordering

/*
POST /api/v1/chapters/{id}/move-up.

Description: Swaps the chapter with its predecessor. A chapter already at
the head is left unchanged and still answers 204.
*/
func (handler *Handler) MoveUp(writer http.ResponseWriter, request *http.Request) {
	handler.move(writer, request, true)
}

// MoveDown handles POST /api/v1/chapters/{id}/move-down, the mirror of MoveUp.
func (handler *Handler) MoveDown(writer http.ResponseWriter, request *http.Request) {
	handler.move(writer, request, false)
}

func (handler *Handler) move(writer http.ResponseWriter, request *http.Request, up bool) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.ID(request, "id")
	if up {
		err = handler.service.MoveChapterUp(request.Context(), userID, id)
	} else {
		err = handler.service.MoveChapterDown(request.Context(), userID, id)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
