// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package event

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

// eventRepository implements the [EventRepository] interface using pgx.
type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository constructs a PostgreSQL backed event store.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func (repository *eventRepository) ListUpcoming(context context.Context, courseID string, limit, offset int) ([]*Event, int, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s,
			COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1 AND %s > NOW()
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`,
		schema.SocialEvent.ID, schema.SocialEvent.CourseID, schema.SocialEvent.Title,
		schema.SocialEvent.Description, schema.SocialEvent.StartsAt, schema.SocialEvent.EndsAt,
		schema.SocialEvent.CreatedBy, schema.SocialEvent.CreatedAt,
		schema.SocialEvent.Table,
		schema.SocialEvent.CourseID, schema.SocialEvent.EndsAt,
		schema.SocialEvent.StartsAt,
	)

	rows, err := repository.pool.Query(context, query, courseID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	var totalCount int

	for rows.Next() {
		var event Event
		err := rows.Scan(
			&event.ID,
			&event.CourseID,
			&event.Title,
			&event.Description,
			&event.StartsAt,
			&event.EndsAt,
			&event.CreatedBy,
			&event.CreatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	return events, totalCount, nil
}

func (repository *eventRepository) FindByID(context context.Context, id string) (*Event, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.SocialEvent.ID, schema.SocialEvent.CourseID, schema.SocialEvent.Title,
		schema.SocialEvent.Description, schema.SocialEvent.StartsAt, schema.SocialEvent.EndsAt,
		schema.SocialEvent.CreatedBy, schema.SocialEvent.CreatedAt,
		schema.SocialEvent.Table,
		schema.SocialEvent.ID,
	)

	var event Event
	err := repository.pool.QueryRow(context, query, id).Scan(
		&event.ID,
		&event.CourseID,
		&event.Title,
		&event.Description,
		&event.StartsAt,
		&event.EndsAt,
		&event.CreatedBy,
		&event.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Event")
		}
		return nil, fmt.Errorf("postgres: failed to find event: %w", err)
	}

	return &event, nil
}

func (repository *eventRepository) Create(context context.Context, event *Event) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`,
		schema.SocialEvent.Table,
		schema.SocialEvent.ID, schema.SocialEvent.CourseID, schema.SocialEvent.Title,
		schema.SocialEvent.Description, schema.SocialEvent.StartsAt, schema.SocialEvent.EndsAt,
		schema.SocialEvent.CreatedBy,
		schema.SocialEvent.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		event.ID,
		event.CourseID,
		event.Title,
		event.Description,
		event.StartsAt,
		event.EndsAt,
		event.CreatedBy,
	).Scan(&event.CreatedAt)

	if err != nil {
		return dberr.Wrap(err, "insert event")
	}

	return nil
}

func (repository *eventRepository) Delete(context context.Context, id string) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialEvent.Table, schema.SocialEvent.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete event")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Event")
	}

	return nil
}

func (repository *eventRepository) FindCourseRef(context context.Context, courseID string) (*CourseRef, error) {

	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CoreCourse.ID, schema.CoreCourse.CreatedBy, schema.CoreCourse.IsPublic,
		schema.CoreCourse.Table, schema.CoreCourse.ID)

	var ref CourseRef
	err := repository.pool.QueryRow(context, query, courseID).Scan(&ref.ID, &ref.OwnerID, &ref.IsPublic)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Course")
		}
		return nil, fmt.Errorf("postgres: failed to find course ref: %w", err)
	}

	return &ref, nil
}
