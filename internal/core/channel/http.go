// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package channel

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/loopspace/backend/internal/platform/middleware"
	requestutil "github.com/loopspace/backend/internal/platform/request"
	"github.com/loopspace/backend/internal/platform/respond"
	"github.com/loopspace/backend/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for channel management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new channel [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches channel endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Discovery endpoints
	api.Get("/channels", handler.ListChannels)
	api.Get("/channels/{identifier}", handler.GetChannel)

	// Owner endpoints
	api.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)
		owner.Post("/channels", handler.CreateChannel)
		owner.Patch("/channels/{identifier}", handler.UpdateChannel)
		owner.Delete("/channels/{identifier}", handler.DeleteChannel)
	})
}

// # Channel Discovery

/*
GET /api/v1/channels.

Request:
  - q: string (Name search)
  - limit: int
  - page: int

Response:
  - 200: []Channel: Paginated list
*/
func (handler *Handler) ListChannels(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	channels, total, err := handler.service.ListChannels(request.Context(), request.URL.Query().Get("q"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, channels, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/channels/{identifier}.

Description: Resolves the channel by UUID or slug.

Response:
  - 200: Channel
  - 404: Channel not found
*/
func (handler *Handler) GetChannel(writer http.ResponseWriter, request *http.Request) {
	channel, err := handler.service.GetChannel(request.Context(), requestutil.ID(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, channel)
}

// # Channel Management

// createChannelRequest defines the inbound JSON schema for new channels.
type createChannelRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

/*
POST /api/v1/channels.

Response:
  - 201: Channel: Includes the generated slug
  - 400: Validation failure
  - 409: Slug already taken
*/
func (handler *Handler) CreateChannel(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body createChannelRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	channel := &Channel{
		Name:        body.Name,
		Description: body.Description,
	}

	if err := handler.service.CreateChannel(request.Context(), userID, channel); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, channel)
}

// updateChannelRequest defines the inbound JSON schema for channel patches.
type updateChannelRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

/*
PATCH /api/v1/channels/{identifier}.

Response:
  - 200: Channel
  - 400: Validation failure
  - 403: Requester does not own the channel
  - 404: Channel not found
*/
func (handler *Handler) UpdateChannel(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body updateChannelRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	channel, err := handler.service.UpdateChannel(request.Context(), userID, requestutil.ID(request, "identifier"), UpdateChannelInput{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, channel)
}

/*
DELETE /api/v1/channels/{identifier}.

Response:
  - 204: Deleted
  - 403: Requester does not own the channel
  - 404: Channel not found
*/
func (handler *Handler) DeleteChannel(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteChannel(request.Context(), userID, requestutil.ID(request, "identifier")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
