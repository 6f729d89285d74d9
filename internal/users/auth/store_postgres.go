// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loopspace/backend/internal/platform/apperr"
	"github.com/loopspace/backend/internal/platform/database/schema"
	"github.com/loopspace/backend/internal/platform/dberr"
)

// # PostgreSQL Repository

// userRepository implements the [UserRepository] interface using pgx.
type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed user store.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (repository *userRepository) findBy(context context.Context, column, value string) (*User, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.UsersProfile.ID, schema.UsersProfile.Email, schema.UsersProfile.DisplayName,
		schema.UsersProfile.PasswordHash, schema.UsersProfile.AvatarURL, schema.UsersProfile.Bio,
		schema.UsersProfile.CreatedAt, schema.UsersProfile.UpdatedAt,
		schema.UsersProfile.Table,
		column,
	)

	var user User
	err := repository.pool.QueryRow(context, query, value).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&user.AvatarURL,
		&user.Bio,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres: failed to find user: %w", err)
	}

	return &user, nil
}

func (repository *userRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findBy(context, schema.UsersProfile.ID, id)
}

func (repository *userRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findBy(context, schema.UsersProfile.Email, email)
}

func (repository *userRepository) Create(context context.Context, user *User) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s
	`,
		schema.UsersProfile.Table,
		schema.UsersProfile.ID, schema.UsersProfile.Email, schema.UsersProfile.DisplayName,
		schema.UsersProfile.PasswordHash, schema.UsersProfile.AvatarURL, schema.UsersProfile.Bio,
		schema.UsersProfile.CreatedAt, schema.UsersProfile.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		user.AvatarURL,
		user.Bio,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "insert user")
	}

	return nil
}

func (repository *userRepository) UpdatePassword(context context.Context, id, passwordHash string) error {

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2
	`,
		schema.UsersProfile.Table,
		schema.UsersProfile.PasswordHash, schema.UsersProfile.UpdatedAt,
		schema.UsersProfile.ID,
	)

	result, err := repository.pool.Exec(context, query, passwordHash, id)
	if err != nil {
		return dberr.Wrap(err, "update password")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

func (repository *userRepository) UpdateProfile(context context.Context, user *User) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = NOW()
		WHERE %s = $4
	`,
		schema.UsersProfile.Table,
		schema.UsersProfile.DisplayName, schema.UsersProfile.AvatarURL,
		schema.UsersProfile.Bio, schema.UsersProfile.UpdatedAt,
		schema.UsersProfile.ID,
	)

	result, err := repository.pool.Exec(context, query,
		user.DisplayName,
		user.AvatarURL,
		user.Bio,
		user.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update profile")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
