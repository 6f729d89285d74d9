// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

/*
Package profile handles user profile management.

It lets users view and update their own identity data (display name,
avatar, bio). The package depends on the auth package for the User entity
and its repository.
*/
package profile

import (
	"context"
	"log/slog"

	"github.com/loopspace/backend/internal/platform/validate"
	"github.com/loopspace/backend/internal/users/auth"
)

const (
	FieldDisplayName = "display_name"
	FieldAvatarURL   = "avatar_url"
	FieldBio         = "bio"

	displayNameMinLen = 3
	displayNameMaxLen = 100
	bioMaxLen         = 1000
)

// # Service Layer

// Service orchestrates business logic for user profiles.
type Service struct {
	userRepository auth.UserRepository
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(userRepo auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		logger:         logger,
	}
}

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: NotFound or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	return service.userRepository.FindByID(context, userID)
}

// UpdateProfileInput defines the mutable subset of user profile fields.
// Nil pointers leave the stored value untouched.
type UpdateProfileInput struct {
	DisplayName *string
	AvatarURL   *string
	Bio         *string
}

/*
UpdateProfile applies a partial set of changes to a user's profile.

Description: Fetches the existing user state, overrides provided fields,
and synchronizes the change to persistent storage.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Validation or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	validator := &validate.Validator{}
	validator.Required(FieldDisplayName, user.DisplayName)
	validator.MinLen(FieldDisplayName, user.DisplayName, displayNameMinLen)
	validator.MaxLen(FieldDisplayName, user.DisplayName, displayNameMaxLen)
	validator.MaxLen(FieldBio, user.Bio, bioMaxLen)
	if user.AvatarURL != "" {
		validator.URL(FieldAvatarURL, user.AvatarURL)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.userRepository.UpdateProfile(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("profile_updated", slog.String("user_id", userID))

	return user, nil
}
