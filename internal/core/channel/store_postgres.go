// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

// Package channel provides the PostgreSQL implementation for channel data
// access.
package channel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loopspace/backend/internal/platform/apperr"
	"github.com/loopspace/backend/internal/platform/database/schema"
	"github.com/loopspace/backend/internal/platform/dberr"
)

// # PostgreSQL Repository

// channelRepository implements the [ChannelRepository] interface using pgx.
type channelRepository struct {
	pool *pgxpool.Pool
}

// NewChannelRepository constructs a PostgreSQL backed channel store.
func NewChannelRepository(pool *pgxpool.Pool) ChannelRepository {
	return &channelRepository{pool: pool}
}

func (repository *channelRepository) List(context context.Context, search string, limit, offset int) ([]*Channel, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s,
			COUNT(*) OVER() AS total_count
		FROM %s
		WHERE TRUE
	`,
		schema.CoreChannel.ID, schema.CoreChannel.Name, schema.CoreChannel.Slug,
		schema.CoreChannel.Description, schema.CoreChannel.CreatedBy,
		schema.CoreChannel.CreatedAt, schema.CoreChannel.UpdatedAt,
		schema.CoreChannel.Table,
	))

	if search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE '%%' || $%d || '%%'", schema.CoreChannel.Name, argID))
		args = append(args, search)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", schema.CoreChannel.CreatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list channels: %w", err)
	}
	defer rows.Close()

	var channels []*Channel
	var totalCount int

	for rows.Next() {
		var channel Channel
		err := rows.Scan(
			&channel.ID,
			&channel.Name,
			&channel.Slug,
			&channel.Description,
			&channel.CreatedBy,
			&channel.CreatedAt,
			&channel.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan channel: %w", err)
		}
		channels = append(channels, &channel)
	}

	return channels, totalCount, nil
}

func (repository *channelRepository) findBy(context context.Context, column, value string) (*Channel, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreChannel.ID, schema.CoreChannel.Name, schema.CoreChannel.Slug,
		schema.CoreChannel.Description, schema.CoreChannel.CreatedBy,
		schema.CoreChannel.CreatedAt, schema.CoreChannel.UpdatedAt,
		schema.CoreChannel.Table,
		column,
	)

	var channel Channel
	err := repository.pool.QueryRow(context, query, value).Scan(
		&channel.ID,
		&channel.Name,
		&channel.Slug,
		&channel.Description,
		&channel.CreatedBy,
		&channel.CreatedAt,
		&channel.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Channel")
		}
		return nil, fmt.Errorf("postgres: failed to find channel: %w", err)
	}

	return &channel, nil
}

func (repository *channelRepository) FindByID(context context.Context, id string) (*Channel, error) {
	return repository.findBy(context, schema.CoreChannel.ID, id)
}

func (repository *channelRepository) FindBySlug(context context.Context, slug string) (*Channel, error) {
	return repository.findBy(context, schema.CoreChannel.Slug, slug)
}

func (repository *channelRepository) Create(context context.Context, channel *Channel) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`,
		schema.CoreChannel.Table,
		schema.CoreChannel.ID, schema.CoreChannel.Name, schema.CoreChannel.Slug,
		schema.CoreChannel.Description, schema.CoreChannel.CreatedBy,
		schema.CoreChannel.CreatedAt, schema.CoreChannel.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		channel.ID,
		channel.Name,
		channel.Slug,
		channel.Description,
		channel.CreatedBy,
	).Scan(&channel.CreatedAt, &channel.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "insert channel")
	}

	return nil
}

func (repository *channelRepository) Update(context context.Context, channel *Channel) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = NOW()
		WHERE %s = $3
	`,
		schema.CoreChannel.Table,
		schema.CoreChannel.Name, schema.CoreChannel.Description,
		schema.CoreChannel.UpdatedAt,
		schema.CoreChannel.ID,
	)

	result, err := repository.pool.Exec(context, query,
		channel.Name,
		channel.Description,
		channel.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update channel")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Channel")
	}

	return nil
}

func (repository *channelRepository) Delete(context context.Context, id string) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreChannel.Table, schema.CoreChannel.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete channel")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Channel")
	}

	return nil
}
