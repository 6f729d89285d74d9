// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package course

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/loopspace/backend/internal/platform/middleware"
	requestutil "github.com/loopspace/backend/internal/platform/request"
	"github.com/loopspace/backend/internal/platform/respond"
	"github.com/loopspace/backend/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the course catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new course [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches course endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Discovery endpoints
	api.Get("/courses", handler.ListCourses)
	api.Get("/courses/{id}", handler.GetCourse)

	// Owner endpoints
	api.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)
		owner.Post("/courses", handler.CreateCourse)
		owner.Patch("/courses/{id}", handler.UpdateCourse)
		owner.Delete("/courses/{id}", handler.DeleteCourse)
	})
}

// # Course Discovery

/*
GET /api/v1/courses.

Description: Returns public courses plus the requester's own private
ones, newest first.

Request:
  - channel_id: string (Filter by channel)
  - q: string (Title search)
  - limit: int
  - page: int

Response:
  - 200: []Course: Paginated list
*/
func (handler *Handler) ListCourses(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		ChannelID: request.URL.Query().Get("channel_id"),
		Search:    request.URL.Query().Get("q"),
		ViewerID:  requestutil.UserID(request),
	}

	courses, total, err := handler.service.ListCourses(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, courses, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/courses/{id}.

Response:
  - 200: Course
  - 404: Course missing or hidden from the requester
*/
func (handler *Handler) GetCourse(writer http.ResponseWriter, request *http.Request) {
	course, err := handler.service.GetCourse(request.Context(), requestutil.ID(request, "id"), requestutil.UserID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, course)
}

// # Course Management

// createCourseRequest defines the inbound JSON schema for new courses.
type createCourseRequest struct {
	ChannelID    string `json:"channel_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublic     bool   `json:"is_public"`
}

/*
POST /api/v1/courses.

Response:
  - 201: Course
  - 400: Validation failure
  - 403: Requester does not own the channel
  - 404: Channel not found
*/
func (handler *Handler) CreateCourse(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body createCourseRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	course := &Course{
		ChannelID:    body.ChannelID,
		Title:        body.Title,
		Description:  body.Description,
		ThumbnailURL: body.ThumbnailURL,
		IsPublic:     body.IsPublic,
	}

	if err := handler.service.CreateCourse(request.Context(), userID, course); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, course)
}

// updateCourseRequest defines the inbound JSON schema for course patches.
type updateCourseRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	ThumbnailURL *string `json:"thumbnail_url"`
	IsPublic     *bool   `json:"is_public"`
}

/*
PATCH /api/v1/courses/{id}.

Response:
  - 200: Course
  - 400: Validation failure
  - 403: Requester does not own the course
  - 404: Course not found
*/
func (handler *Handler) UpdateCourse(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body updateCourseRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.service.UpdateCourse(request.Context(), userID, requestutil.ID(request, "id"), UpdateCourseInput{
		Title:        body.Title,
		Description:  body.Description,
		ThumbnailURL: body.ThumbnailURL,
		IsPublic:     body.IsPublic,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, course)
}

/*
DELETE /api/v1/courses/{id}.

Response:
  - 204: Deleted
  - 403: Requester does not own the course
  - 404: Course not found
*/
func (handler *Handler) DeleteCourse(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCourse(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
