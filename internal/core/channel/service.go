// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package channel

import (
	"context"
	"log/slog"

	"github.com/loopspace/backend/internal/platform/apperr"
	"github.com/loopspace/backend/internal/platform/validate"
	"github.com/loopspace/backend/pkg/slug"
	"github.com/loopspace/backend/pkg/uuidv7"
)

const (
	FieldName        = "name"
	FieldDescription = "description"

	nameMinLen        = 3
	nameMaxLen        = 100
	descriptionMaxLen = 2000
)

// # Service Layer

// Service orchestrates the business logic for creator channels.
type Service struct {
	channelRepo ChannelRepository
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(channelRepo ChannelRepository, logger *slog.Logger) *Service {
	return &Service{
		channelRepo: channelRepo,
		logger:      logger,
	}
}

// # Channel Lookups

// ListChannels retrieves a paginated, optionally searched channel listing.
func (service *Service) ListChannels(context context.Context, search string, limit, offset int) ([]*Channel, int, error) {
	return service.channelRepo.List(context, search, limit, offset)
}

/*
GetChannel fetches a single channel by UUID or URL slug.

Description: If the identifier matches the UUID format, it performs a
primary key lookup; otherwise, it resolves via the unique slug.

Parameters:
  - context: context.Context
  - identifier: string (UUID or Slug)

Returns:
  - *Channel: The hydrated domain entity
  - error: NotFound if no match is found
*/
func (service *Service) GetChannel(context context.Context, identifier string) (*Channel, error) {
	if isUUID(identifier) {
		return service.channelRepo.FindByID(context, identifier)
	}
	return service.channelRepo.FindBySlug(context, identifier)
}

// # Channel Management

/*
CreateChannel opens a new channel for the user.

Description: Generates a stable UUID v7 identity and an SEO-friendly slug
from the channel name before persisting.

Parameters:
  - context: context.Context
  - userID: string (The creator)
  - channel: *Channel (The new channel data)

Returns:
  - error: Validation or persistence errors; Conflict on a slug collision
*/
func (service *Service) CreateChannel(context context.Context, userID string, channel *Channel) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, channel.Name)
	validator.MinLen(FieldName, channel.Name, nameMinLen)
	validator.MaxLen(FieldName, channel.Name, nameMaxLen)
	validator.MaxLen(FieldDescription, channel.Description, descriptionMaxLen)
	if err := validator.Err(); err != nil {
		return err
	}

	// Identity & Slug generation
	if channel.ID == "" {
		channel.ID = uuidv7.New()
	}
	channel.Slug = slug.From(channel.Name)
	channel.CreatedBy = userID

	if err := service.channelRepo.Create(context, channel); err != nil {
		return err
	}

	service.logger.Info("channel_created",
		slog.String("channel_id", channel.ID),
		slog.String("slug", channel.Slug),
		slog.String("user_id", userID),
	)

	return nil
}

// UpdateChannelInput carries the optional fields of a channel patch. The
// slug is fixed at creation so existing URLs keep working.
type UpdateChannelInput struct {
	Name        *string
	Description *string
}

// UpdateChannel applies a partial update to an owned channel.
func (service *Service) UpdateChannel(context context.Context, userID, id string, input UpdateChannelInput) (*Channel, error) {
	channel, err := service.channelRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if channel.CreatedBy != userID {
		return nil, apperr.Forbidden("Only the channel owner can update it")
	}

	if input.Name != nil {
		channel.Name = *input.Name
	}
	if input.Description != nil {
		channel.Description = *input.Description
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, channel.Name)
	validator.MinLen(FieldName, channel.Name, nameMinLen)
	validator.MaxLen(FieldName, channel.Name, nameMaxLen)
	validator.MaxLen(FieldDescription, channel.Description, descriptionMaxLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.channelRepo.Update(context, channel); err != nil {
		return nil, err
	}

	service.logger.Info("channel_updated",
		slog.String("channel_id", channel.ID),
		slog.String("user_id", userID),
	)

	return channel, nil
}

// DeleteChannel removes an owned channel and everything published in it.
func (service *Service) DeleteChannel(context context.Context, userID, id string) error {
	channel, err := service.channelRepo.FindByID(context, id)
	if err != nil {
		return err
	}
	if channel.CreatedBy != userID {
		return apperr.Forbidden("Only the channel owner can delete it")
	}

	if err := service.channelRepo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("channel_deleted",
		slog.String("channel_id", id),
		slog.String("user_id", userID),
	)

	return nil
}

// # Internal Helpers

// isUUID returns true if the string matches the standard UUID length.
func isUUID(s string) bool {
	return len(s) == 36
}
