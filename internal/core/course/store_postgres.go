// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

/*
Package course provides the PostgreSQL implementation for the course
catalogue's data access.

Listings enforce visibility at the query level: a row is returned when it
is public or owned by the requesting viewer, so private courses never leak
through pagination metadata.
*/
package course

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

// courseRepository implements the [CourseRepository] interface using pgx.
type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository constructs a PostgreSQL backed course store.
func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

/*
List returns a filtered, paginated slice of courses and the total count.

Description: Uses COUNT(*) OVER() to retrieve the total without a second
query. The WHERE clause is built dynamically from the filter.

Parameters:
  - context: context.Context
  - filter: Filter (Channel, search text, viewer scope)
  - limit: int
  - offset: int

Returns:
  - []*Course: Slice of hydrated course entities
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *courseRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Course, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			COUNT(*) OVER() AS total_count
		FROM %s c
		WHERE TRUE
	`,
		schema.CoreCourse.ID,
		schema.CoreCourse.ChannelID,
		schema.CoreCourse.Title,
		schema.CoreCourse.Description,
		schema.CoreCourse.ThumbnailURL,
		schema.CoreCourse.IsPublic,
		schema.CoreCourse.CreatedBy,
		schema.CoreCourse.CreatedAt,
		schema.CoreCourse.UpdatedAt,
		schema.CoreCourse.Table,
	))

	// Visibility scoping: public rows, plus the viewer's own
	if filter.ViewerID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (c.%s OR c.%s = $%d)", schema.CoreCourse.IsPublic, schema.CoreCourse.CreatedBy, argID))
		args = append(args, filter.ViewerID)
		argID++
	} else {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s", schema.CoreCourse.IsPublic))
	}

	// Channel Filtering
	if filter.ChannelID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", schema.CoreCourse.ChannelID, argID))
		args = append(args, filter.ChannelID)
		argID++
	}

	// Search Query Filtering
	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s ILIKE '%%' || $%d || '%%'", schema.CoreCourse.Title, argID))
		args = append(args, filter.Search)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY c.%s DESC LIMIT $%d OFFSET $%d", schema.CoreCourse.CreatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []*Course
	var totalCount int

	for rows.Next() {
		var course Course
		err := rows.Scan(
			&course.ID,
			&course.ChannelID,
			&course.Title,
			&course.Description,
			&course.ThumbnailURL,
			&course.IsPublic,
			&course.CreatedBy,
			&course.CreatedAt,
			&course.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan course: %w", err)
		}
		courses = append(courses, &course)
	}

	return courses, totalCount, nil
}

func (repository *courseRepository) FindByID(context context.Context, id string) (*Course, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreCourse.ID, schema.CoreCourse.ChannelID, schema.CoreCourse.Title,
		schema.CoreCourse.Description, schema.CoreCourse.ThumbnailURL, schema.CoreCourse.IsPublic,
		schema.CoreCourse.CreatedBy, schema.CoreCourse.CreatedAt, schema.CoreCourse.UpdatedAt,
		schema.CoreCourse.Table,
		schema.CoreCourse.ID,
	)

	var course Course
	err := repository.pool.QueryRow(context, query, id).Scan(
		&course.ID,
		&course.ChannelID,
		&course.Title,
		&course.Description,
		&course.ThumbnailURL,
		&course.IsPublic,
		&course.CreatedBy,
		&course.CreatedAt,
		&course.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Course")
		}
		return nil, fmt.Errorf("postgres: failed to find course by id: %w", err)
	}

	return &course, nil
}

func (repository *courseRepository) FindChannelRef(context context.Context, channelID string) (*ChannelRef, error) {

	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.CoreChannel.ID, schema.CoreChannel.CreatedBy,
		schema.CoreChannel.Table, schema.CoreChannel.ID)

	var ref ChannelRef
	err := repository.pool.QueryRow(context, query, channelID).Scan(&ref.ID, &ref.OwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Channel")
		}
		return nil, fmt.Errorf("postgres: failed to find channel ref: %w", err)
	}

	return &ref, nil
}

func (repository *courseRepository) Create(context context.Context, course *Course) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s
	`,
		schema.CoreCourse.Table,
		schema.CoreCourse.ID, schema.CoreCourse.ChannelID, schema.CoreCourse.Title,
		schema.CoreCourse.Description, schema.CoreCourse.ThumbnailURL, schema.CoreCourse.IsPublic,
		schema.CoreCourse.CreatedBy,
		schema.CoreCourse.CreatedAt, schema.CoreCourse.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		course.ID,
		course.ChannelID,
		course.Title,
		course.Description,
		course.ThumbnailURL,
		course.IsPublic,
		course.CreatedBy,
	).Scan(&course.CreatedAt, &course.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "insert course")
	}

	return nil
}

func (repository *courseRepository) Update(context context.Context, course *Course) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $5
	`,
		schema.CoreCourse.Table,
		schema.CoreCourse.Title, schema.CoreCourse.Description,
		schema.CoreCourse.ThumbnailURL, schema.CoreCourse.IsPublic,
		schema.CoreCourse.UpdatedAt,
		schema.CoreCourse.ID,
	)

	result, err := repository.pool.Exec(context, query,
		course.Title,
		course.Description,
		course.ThumbnailURL,
		course.IsPublic,
		course.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update course")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Course")
	}

	return nil
}

func (repository *courseRepository) Delete(context context.Context, id string) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreCourse.Table, schema.CoreCourse.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete course")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Course")
	}

	return nil
}
