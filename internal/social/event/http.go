// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package event

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/loopspace/backend/internal/platform/middleware"
	requestutil "github.com/loopspace/backend/internal/platform/request"
	"github.com/loopspace/backend/internal/platform/respond"
	"github.com/loopspace/backend/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the course calendar.
type Handler struct {
	service *Service
}

// NewHandler constructs a new event [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches event endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/courses/{courseID}/events", handler.ListUpcoming)
	api.Get("/events/{id}", handler.GetEvent)

	api.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)
		owner.Post("/courses/{courseID}/events", handler.CreateEvent)
		owner.Delete("/events/{id}", handler.DeleteEvent)
	})
}

/*
GET /api/v1/courses/{courseID}/events.

Description: Returns the paginated upcoming events of a course, soonest
first. Past events are excluded.

Response:
  - 200: []Event: Paginated list
  - 401: Private course, no credentials
  - 403: Private course, no enrollment
  - 404: Course not found
*/
func (handler *Handler) ListUpcoming(writer http.ResponseWriter, request *http.Request) {
	courseID := requestutil.ID(request, "courseID")
	userID := requestutil.UserID(request)

	paginationParams := pagination.FromRequest(request)

	events, total, err := handler.service.ListUpcomingEvents(request.Context(), courseID, userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, events, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/events/{id}.

Response:
  - 200: Event
  - 404: Event not found
*/
func (handler *Handler) GetEvent(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	userID := requestutil.UserID(request)

	event, err := handler.service.GetEvent(request.Context(), id, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, event)
}

// createEventRequest defines the inbound JSON schema for new events.
type createEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

/*
POST /api/v1/courses/{courseID}/events.

Response:
  - 201: Event: The created event
  - 400: Validation failure
  - 403: Requester does not own the course
  - 404: Course not found
*/
func (handler *Handler) CreateEvent(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body createEventRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.service.CreateEvent(request.Context(), userID, requestutil.ID(request, "courseID"), CreateEventInput{
		Title:       body.Title,
		Description: body.Description,
		StartsAt:    body.StartsAt,
		EndsAt:      body.EndsAt,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, event)
}

/*
DELETE /api/v1/events/{id}.

Response:
  - 204: Deleted
  - 403: Requester does not own the course
  - 404: Event not found
*/
func (handler *Handler) DeleteEvent(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteEvent(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
