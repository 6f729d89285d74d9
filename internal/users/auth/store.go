// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package auth

import (
	"context"
	"time"
)

// # Repository Contracts

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {

	// FindByID returns a user or apperr.NotFound.
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail resolves a user through the unique email column.
	FindByEmail(context context.Context, email string) (*User, error)

	// Create inserts a user row. Email collisions surface as Conflict.
	Create(context context.Context, user *User) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(context context.Context, id, passwordHash string) error

	// UpdateProfile persists display name, avatar, and bio changes.
	UpdateProfile(context context.Context, user *User) error
}

// SessionRepository tracks refresh-token sessions. Keys are SHA-256
// digests of the raw token; the raw token never touches storage.
type SessionRepository interface {

	// Create stores the session under the token hash with the given TTL
	// and indexes it by user for bulk revocation.
	Create(context context.Context, tokenHash, userID string, ttl time.Duration) error

	// FindUserID resolves the owning user of a live session, or
	// apperr.Unauthorized when the session is expired or revoked.
	FindUserID(context context.Context, tokenHash string) (string, error)

	// Revoke removes a single session.
	Revoke(context context.Context, tokenHash, userID string) error

	// RevokeAll removes every live session of a user.
	RevokeAll(context context.Context, userID string) error
}

// ResetTokenRepository tracks single-use password reset tokens.
type ResetTokenRepository interface {

	// Set stores a reset token with its associated userID and TTL.
	Set(context context.Context, token, userID string, ttl time.Duration) error

	// Get retrieves the userID for a token, or apperr.NotFound when the
	// token is absent or expired.
	Get(context context.Context, token string) (string, error)

	// Delete removes a used token.
	Delete(context context.Context, token string) error
}
