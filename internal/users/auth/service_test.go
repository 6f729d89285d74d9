// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopspace/backend/internal/platform/apperr"
	"github.com/loopspace/backend/internal/platform/sec"
)

// # Test Fakes

type fakeUserRepo struct {
	usersByID    map[string]*User
	usersByEmail map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByID:    make(map[string]*User),
		usersByEmail: make(map[string]*User),
	}
}

func (repo *fakeUserRepo) FindByID(_ context.Context, id string) (*User, error) {
	user, ok := repo.usersByID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repo *fakeUserRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	user, ok := repo.usersByEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repo *fakeUserRepo) Create(_ context.Context, user *User) error {
	repo.usersByID[user.ID] = user
	repo.usersByEmail[user.Email] = user
	return nil
}

func (repo *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	user, ok := repo.usersByID[id]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = passwordHash
	return nil
}

func (repo *fakeUserRepo) UpdateProfile(_ context.Context, user *User) error {
	stored, ok := repo.usersByID[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.DisplayName = user.DisplayName
	stored.AvatarURL = user.AvatarURL
	stored.Bio = user.Bio
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]string // tokenHash -> userID
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]string)}
}

func (repo *fakeSessionRepo) Create(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	repo.sessions[tokenHash] = userID
	return nil
}

func (repo *fakeSessionRepo) FindUserID(_ context.Context, tokenHash string) (string, error) {
	userID, ok := repo.sessions[tokenHash]
	if !ok {
		return "", apperr.Unauthorized("Invalid or expired refresh token")
	}
	return userID, nil
}

func (repo *fakeSessionRepo) Revoke(_ context.Context, tokenHash, _ string) error {
	delete(repo.sessions, tokenHash)
	return nil
}

func (repo *fakeSessionRepo) RevokeAll(_ context.Context, userID string) error {
	for hash, owner := range repo.sessions {
		if owner == userID {
			delete(repo.sessions, hash)
		}
	}
	return nil
}

type fakeResetRepo struct {
	tokens map[string]string // token -> userID
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]string)}
}

func (repo *fakeResetRepo) Set(_ context.Context, token, userID string, _ time.Duration) error {
	repo.tokens[token] = userID
	return nil
}

func (repo *fakeResetRepo) Get(_ context.Context, token string) (string, error) {
	userID, ok := repo.tokens[token]
	if !ok {
		return "", apperr.NotFound("Reset token")
	}
	return userID, nil
}

func (repo *fakeResetRepo) Delete(_ context.Context, token string) error {
	delete(repo.tokens, token)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "access-token-for-" + userID, nil
}

type authTestEnv struct {
	service  *Service
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	resets   *fakeResetRepo
}

func newAuthTestEnv() *authTestEnv {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	resets := newFakeResetRepo()

	logger := slog.New(slog.DiscardHandler)
	service := NewService(users, sessions, resets, fakeTokenProvider{}, logger)

	return &authTestEnv{service: service, users: users, sessions: sessions, resets: resets}
}

// # Tests

/*
TestService_Register verifies account creation and email conflicts.
*/
func TestService_Register(t *testing.T) {
	env := newAuthTestEnv()
	ctx := context.Background()

	user, err := env.service.Register(ctx, RegisterInput{
		Email:       "dev@loopspace.app",
		Password:    "correct-horse-battery",
		DisplayName: "Dev",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct-horse-battery", user.PasswordHash, "password must be stored hashed")
	assert.True(t, sec.CheckPasswordHash("correct-horse-battery", user.PasswordHash))

	// Same email again must conflict.
	_, err = env.service.Register(ctx, RegisterInput{
		Email:       "dev@loopspace.app",
		Password:    "another-password",
		DisplayName: "Impostor",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestService_Login verifies credential checks and session issuance.
*/
func TestService_Login(t *testing.T) {
	env := newAuthTestEnv()
	ctx := context.Background()

	_, err := env.service.Register(ctx, RegisterInput{
		Email:       "dev@loopspace.app",
		Password:    "correct-horse-battery",
		DisplayName: "Dev",
	})
	require.NoError(t, err)

	t.Run("valid_credentials", func(t *testing.T) {
		session, err := env.service.Login(ctx, LoginInput{
			Email:    "dev@loopspace.app",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.True(t, session.RefreshTokenExpiresAt.After(time.Now()))

		// Session must be tracked under the token hash, not the raw token.
		_, tracked := env.sessions.sessions[session.RefreshToken]
		assert.False(t, tracked, "raw token must never be a storage key")
		_, tracked = env.sessions.sessions[sec.HashToken(session.RefreshToken)]
		assert.True(t, tracked)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := env.service.Login(ctx, LoginInput{
			Email:    "dev@loopspace.app",
			Password: "wrong",
		})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("unknown_email", func(t *testing.T) {
		_, err := env.service.Login(ctx, LoginInput{
			Email:    "ghost@loopspace.app",
			Password: "whatever",
		})
		require.Error(t, err)

		// Must be indistinguishable from a wrong password.
		assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
	})
}

/*
TestService_RefreshSession verifies refresh token rotation.
*/
func TestService_RefreshSession(t *testing.T) {
	env := newAuthTestEnv()
	ctx := context.Background()

	_, err := env.service.Register(ctx, RegisterInput{
		Email:       "dev@loopspace.app",
		Password:    "correct-horse-battery",
		DisplayName: "Dev",
	})
	require.NoError(t, err)

	session, err := env.service.Login(ctx, LoginInput{
		Email:    "dev@loopspace.app",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	rotated, err := env.service.RefreshSession(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// The old token is dead after rotation: a replay must fail.
	_, err = env.service.RefreshSession(ctx, session.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// The rotated token still works.
	_, err = env.service.RefreshSession(ctx, rotated.RefreshToken)
	assert.NoError(t, err)
}

/*
TestService_Logout verifies revocation and idempotency.
*/
func TestService_Logout(t *testing.T) {
	env := newAuthTestEnv()
	ctx := context.Background()

	_, err := env.service.Register(ctx, RegisterInput{
		Email:       "dev@loopspace.app",
		Password:    "correct-horse-battery",
		DisplayName: "Dev",
	})
	require.NoError(t, err)

	session, err := env.service.Login(ctx, LoginInput{
		Email:    "dev@loopspace.app",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	require.NoError(t, env.service.Logout(ctx, session.RefreshToken))
	assert.Empty(t, env.sessions.sessions)

	// Logging out twice is fine.
	assert.NoError(t, env.service.Logout(ctx, session.RefreshToken))
}

/*
TestService_PasswordReset verifies the full forgot-password flow and its
anti-enumeration behavior.
*/
func TestService_PasswordReset(t *testing.T) {
	env := newAuthTestEnv()
	ctx := context.Background()

	user, err := env.service.Register(ctx, RegisterInput{
		Email:       "dev@loopspace.app",
		Password:    "old-password-123",
		DisplayName: "Dev",
	})
	require.NoError(t, err)

	// An active session that must die with the password.
	session, err := env.service.Login(ctx, LoginInput{
		Email:    "dev@loopspace.app",
		Password: "old-password-123",
	})
	require.NoError(t, err)

	t.Run("unknown_email_is_silent", func(t *testing.T) {
		token, err := env.service.RequestPasswordReset(ctx, "ghost@loopspace.app")
		assert.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("full_flow", func(t *testing.T) {
		token, err := env.service.RequestPasswordReset(ctx, "dev@loopspace.app")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		require.NoError(t, env.service.ResetPassword(ctx, token, "new-password-456"))

		// New password works, the old one does not.
		_, err = env.service.Login(ctx, LoginInput{Email: "dev@loopspace.app", Password: "new-password-456"})
		assert.NoError(t, err)
		_, err = env.service.Login(ctx, LoginInput{Email: "dev@loopspace.app", Password: "old-password-123"})
		assert.Error(t, err)

		// Old sessions were revoked and the token is single use.
		_, err = env.service.RefreshSession(ctx, session.RefreshToken)
		assert.Error(t, err)
		assert.Error(t, env.service.ResetPassword(ctx, token, "yet-another-789"))
	})

	t.Run("change_password_requires_current", func(t *testing.T) {
		err := env.service.ChangePassword(ctx, user.ID, "wrong-current", "whatever-123")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

		assert.NoError(t, env.service.ChangePassword(ctx, user.ID, "new-password-456", "final-password-789"))
	})
}
