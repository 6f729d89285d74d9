// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package lesson

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/loopspace/backend/internal/platform/middleware"
	requestutil "github.com/loopspace/backend/internal/platform/request"
	"github.com/loopspace/backend/internal/platform/respond"
	"github.com/loopspace/backend/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for lesson management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new lesson [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches lesson endpoints to the root API router.
// Lesson endpoints span both /chapters/{id}/... and /lessons/... prefixes.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Read endpoints, open to anonymous visitors of public courses
	api.Get("/chapters/{chapterID}/lessons", handler.ListLessons)
	api.Get("/lessons/{id}", handler.GetLesson)

	// Mutations require an authenticated course owner
	api.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)
		owner.Post("/chapters/{chapterID}/lessons", handler.CreateLesson)
		owner.Patch("/lessons/{id}", handler.UpdateLesson)
		owner.Delete("/lessons/{id}", handler.DeleteLesson)
		owner.Post("/lessons/{id}/move-up", handler.MoveUp)
		owner.Post("/lessons/{id}/move-down", handler.MoveDown)
	})
}

// # Lesson Retrieval

/*
GET /api/v1/chapters/{chapterID}/lessons.

Description: Returns the paginated lesson roster of a chapter, sorted by
order number.

Request:
  - chapterID: string (UUID)
  - limit: int
  - page: int

Response:
  - 200: []Lesson: Paginated list
  - 401: Private course, no credentials
  - 403: Private course, no enrollment
  - 404: Chapter not found
*/
func (handler *Handler) ListLessons(writer http.ResponseWriter, request *http.Request) {
	chapterID := requestutil.ID(request, "chapterID")
	userID := requestutil.UserID(request)

	paginationParams := pagination.FromRequest(request)

	lessons, total, err := handler.service.ListLessons(request.Context(), chapterID, userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, lessons, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/lessons/{id}.

Description: Returns the lesson content. Authenticated requesters also get
their completion state for the lesson.

Response:
  - 200: Detail
  - 404: Lesson not found
*/
func (handler *Handler) GetLesson(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	userID := requestutil.UserID(request)

	detail, err := handler.service.GetLesson(request.Context(), id, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

// # Lesson Creation

// createLessonRequest defines the inbound JSON schema for new lessons.
// A zero or absent order_number appends the lesson at the tail.
type createLessonRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	OrderNumber int    `json:"order_number"`
	IsPublished bool   `json:"is_published"`
}

/*
POST /api/v1/chapters/{chapterID}/lessons.

Description: Creates a lesson inside an owned chapter. When order_number
names an occupied slot, the occupants shift upward to make room.

Response:
  - 201: Lesson: The created lesson with its resolved order number
  - 400: Validation failure
  - 403: Requester does not own the course
  - 404: Chapter not found
*/
func (handler *Handler) CreateLesson(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body createLessonRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	lesson := &Lesson{
		ChapterID:   requestutil.ID(request, "chapterID"),
		Title:       body.Title,
		Content:     body.Content,
		OrderNumber: body.OrderNumber,
		IsPublished: body.IsPublished,
	}

	if err := handler.service.CreateLesson(request.Context(), userID, lesson); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, lesson)
}

// # Lesson Updates

// updateLessonRequest defines the inbound JSON schema for lesson patches.
type updateLessonRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	OrderNumber *int    `json:"order_number"`
	IsPublished *bool   `json:"is_published"`
}

/*
PATCH /api/v1/lessons/{id}.

Description: Applies a partial update. Moving the lesson onto an occupied
order slot shifts the occupants upward first.

Response:
  - 200: Lesson: The updated entity
  - 400: Validation failure
  - 403: Requester does not own the course
  - 404: Lesson not found
*/
func (handler *Handler) UpdateLesson(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body updateLessonRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	lesson, err := handler.service.UpdateLesson(request.Context(), userID, requestutil.ID(request, "id"), UpdateLessonInput{
		Title:       body.Title,
		Content:     body.Content,
		OrderNumber: body.OrderNumber,
		IsPublished: body.IsPublished,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, lesson)
}

/*
DELETE /api/v1/lessons/{id}.

Description: Removes the lesson. Surviving lessons are renumbered so the
chapter sequence stays dense.

Response:
  - 204: Deleted
  - 403: Requester does not own the course
  - 404: Lesson not found
*/
func (handler *Handler) DeleteLesson(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteLesson(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Reordering

/*
POST /api/v1/lessons/{id}/move-up.

Description: Swaps the lesson with its predecessor. A lesson already at
the head is left unchanged and still answers 204.
*/
func (handler *Handler) MoveUp(writer http.ResponseWriter, request *http.Request) {
	handler.move(writer, request, true)
}

// MoveDown handles POST /api/v1/lessons/{id}/move-down, the mirror of MoveUp.
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
		err = handler.service.MoveLessonUp(request.Context(), userID, id)
	} else {
		err = handler.service.MoveLessonDown(request.Context(), userID, id)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
