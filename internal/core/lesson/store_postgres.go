// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

/*
Package lesson provides the PostgreSQL implementation for lesson data
access. Order mutations follow the same discipline as chapters: one
transaction per mutation, a pg_advisory_xact_lock on the chapter ID, and a
deferred (chapterid, ordernumber) uniqueness constraint.
*/
package lesson

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loopspace/backend/internal/core/ordering"
	"github.com/loopspace/backend/internal/platform/apperr"
	"github.com/loopspace/backend/internal/platform/database/schema"
	"github.com/loopspace/backend/internal/platform/dberr"
)

// # PostgreSQL Repository

// lessonRepository implements the [LessonRepository] interface using pgx.
type lessonRepository struct {
	pool *pgxpool.Pool
}

// NewLessonRepository constructs a PostgreSQL backed lesson store.
func NewLessonRepository(pool *pgxpool.Pool) LessonRepository {
	return &lessonRepository{pool: pool}
}

// # Reads

func (repository *lessonRepository) ListByChapter(context context.Context, chapterID string, limit, offset int) ([]*Lesson, int, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s,
			COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`,
		schema.CoreLesson.ID, schema.CoreLesson.ChapterID, schema.CoreLesson.Title,
		schema.CoreLesson.Content, schema.CoreLesson.OrderNumber, schema.CoreLesson.IsPublished,
		schema.CoreLesson.CreatedBy, schema.CoreLesson.CreatedAt, schema.CoreLesson.UpdatedAt,
		schema.CoreLesson.Table,
		schema.CoreLesson.ChapterID,
		schema.CoreLesson.OrderNumber,
	)

	rows, err := repository.pool.Query(context, query, chapterID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*Lesson
	var totalCount int

	for rows.Next() {
		var lesson Lesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.ChapterID,
			&lesson.Title,
			&lesson.Content,
			&lesson.OrderNumber,
			&lesson.IsPublished,
			&lesson.CreatedBy,
			&lesson.CreatedAt,
			&lesson.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan lesson: %w", err)
		}
		lessons = append(lessons, &lesson)
	}

	return lessons, totalCount, nil
}

func (repository *lessonRepository) FindByID(context context.Context, id string) (*Lesson, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreLesson.ID, schema.CoreLesson.ChapterID, schema.CoreLesson.Title,
		schema.CoreLesson.Content, schema.CoreLesson.OrderNumber, schema.CoreLesson.IsPublished,
		schema.CoreLesson.CreatedBy, schema.CoreLesson.CreatedAt, schema.CoreLesson.UpdatedAt,
		schema.CoreLesson.Table,
		schema.CoreLesson.ID,
	)

	var lesson Lesson
	err := repository.pool.QueryRow(context, query, id).Scan(
		&lesson.ID,
		&lesson.ChapterID,
		&lesson.Title,
		&lesson.Content,
		&lesson.OrderNumber,
		&lesson.IsPublished,
		&lesson.CreatedBy,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Lesson")
		}
		return nil, fmt.Errorf("postgres: failed to find lesson by id: %w", err)
	}

	return &lesson, nil
}

func (repository *lessonRepository) FindChapterRef(context context.Context, chapterID string) (*ChapterRef, error) {

	query := fmt.Sprintf(`
		SELECT ch.%s, co.%s, co.%s, co.%s
		FROM %s ch
		JOIN %s co ON co.%s = ch.%s
		WHERE ch.%s = $1
	`,
		schema.CoreChapter.ID, schema.CoreCourse.ID, schema.CoreCourse.CreatedBy, schema.CoreCourse.IsPublic,
		schema.CoreChapter.Table,
		schema.CoreCourse.Table, schema.CoreCourse.ID, schema.CoreChapter.CourseID,
		schema.CoreChapter.ID,
	)

	var ref ChapterRef
	err := repository.pool.QueryRow(context, query, chapterID).Scan(&ref.ID, &ref.CourseID, &ref.CourseOwner, &ref.IsPublic)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Chapter")
		}
		return nil, fmt.Errorf("postgres: failed to find chapter ref: %w", err)
	}

	return &ref, nil
}

// # Ordered Writes

// lessonOrderStore adapts a transaction to the [ordering.Store] contract
// for the core.lesson table, scoped by chapter ID.
type lessonOrderStore struct {
	tx pgx.Tx
}

func (store *lessonOrderStore) ListByParent(context context.Context, parentID string) ([]ordering.Item, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.CoreLesson.ID, schema.CoreLesson.OrderNumber,
		schema.CoreLesson.Table, schema.CoreLesson.ChapterID, schema.CoreLesson.OrderNumber)

	rows, err := store.tx.Query(context, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list lesson order slots: %w", err)
	}
	defer rows.Close()

	var items []ordering.Item
	for rows.Next() {
		var item ordering.Item
		if err := rows.Scan(&item.ID, &item.Order); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan lesson order slot: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (store *lessonOrderStore) FindByParentAndOrder(context context.Context, parentID string, order int) (*ordering.Item, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CoreLesson.ID, schema.CoreLesson.OrderNumber,
		schema.CoreLesson.Table, schema.CoreLesson.ChapterID, schema.CoreLesson.OrderNumber)

	var item ordering.Item
	err := store.tx.QueryRow(context, query, parentID, order).Scan(&item.ID, &item.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: failed to probe lesson order slot: %w", err)
	}

	return &item, nil
}

func (store *lessonOrderStore) UpdateOrder(context context.Context, id string, order int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		schema.CoreLesson.Table, schema.CoreLesson.OrderNumber,
		schema.CoreLesson.UpdatedAt, schema.CoreLesson.ID)

	if _, err := store.tx.Exec(context, query, order, id); err != nil {
		return fmt.Errorf("postgres: failed to shift lesson order: %w", err)
	}
	return nil
}

// withOrderTx runs fn inside a transaction that holds the per-chapter
// advisory lock, providing an ordering manager bound to that transaction.
func (repository *lessonRepository) withOrderTx(context context.Context, chapterID string, fn func(tx pgx.Tx, manager *ordering.Manager) error) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin reorder transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context) }()

	// Serialize all reorders of this chapter.
	if _, err := tx.Exec(context, `SELECT pg_advisory_xact_lock(hashtext($1))`, chapterID); err != nil {
		return fmt.Errorf("postgres: failed to take chapter order lock: %w", err)
	}

	manager := ordering.NewManager(&lessonOrderStore{tx: tx})
	if err := fn(tx, manager); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit lesson reorder")
	}

	return nil
}

func (repository *lessonRepository) CreateWithOrder(context context.Context, lesson *Lesson) error {
	return repository.withOrderTx(context, lesson.ChapterID, func(tx pgx.Tx, manager *ordering.Manager) error {

		assigned, err := manager.PlaceNew(context, lesson.ChapterID, lesson.OrderNumber)
		if err != nil {
			return err
		}
		lesson.OrderNumber = assigned

		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING %s, %s
		`,
			schema.CoreLesson.Table,
			schema.CoreLesson.ID, schema.CoreLesson.ChapterID, schema.CoreLesson.Title,
			schema.CoreLesson.Content, schema.CoreLesson.OrderNumber, schema.CoreLesson.IsPublished,
			schema.CoreLesson.CreatedBy,
			schema.CoreLesson.CreatedAt, schema.CoreLesson.UpdatedAt,
		)

		err = tx.QueryRow(context, query,
			lesson.ID,
			lesson.ChapterID,
			lesson.Title,
			lesson.Content,
			lesson.OrderNumber,
			lesson.IsPublished,
			lesson.CreatedBy,
		).Scan(&lesson.CreatedAt, &lesson.UpdatedAt)

		if err != nil {
			return dberr.Wrap(err, "insert lesson")
		}

		return nil
	})
}

func (repository *lessonRepository) UpdateWithOrder(context context.Context, lesson *Lesson) error {
	return repository.withOrderTx(context, lesson.ChapterID, func(tx pgx.Tx, manager *ordering.Manager) error {

		if err := manager.PlaceExisting(context, lesson.ID, lesson.ChapterID, lesson.OrderNumber); err != nil {
			return err
		}

		query := fmt.Sprintf(`
			UPDATE %s
			SET %s = $1, %s = $2, %s = $3, %s = $4, %s = NOW()
			WHERE %s = $5
		`,
			schema.CoreLesson.Table,
			schema.CoreLesson.Title, schema.CoreLesson.Content,
			schema.CoreLesson.OrderNumber, schema.CoreLesson.IsPublished,
			schema.CoreLesson.UpdatedAt,
			schema.CoreLesson.ID,
		)

		result, err := tx.Exec(context, query,
			lesson.Title,
			lesson.Content,
			lesson.OrderNumber,
			lesson.IsPublished,
			lesson.ID,
		)
		if err != nil {
			return dberr.Wrap(err, "update lesson")
		}

		if result.RowsAffected() == 0 {
			return apperr.NotFound("Lesson")
		}

		return nil
	})
}

func (repository *lessonRepository) DeleteAndRenumber(context context.Context, id, chapterID string) error {
	return repository.withOrderTx(context, chapterID, func(tx pgx.Tx, manager *ordering.Manager) error {

		query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.CoreLesson.Table, schema.CoreLesson.ID)

		result, err := tx.Exec(context, query, id)
		if err != nil {
			return dberr.Wrap(err, "delete lesson")
		}

		if result.RowsAffected() == 0 {
			return apperr.NotFound("Lesson")
		}

		_, err = manager.Renumber(context, chapterID)
		return err
	})
}

func (repository *lessonRepository) MoveUp(context context.Context, id, chapterID string) error {
	return repository.withOrderTx(context, chapterID, func(tx pgx.Tx, manager *ordering.Manager) error {
		return manager.MoveUp(context, id, chapterID)
	})
}

func (repository *lessonRepository) MoveDown(context context.Context, id, chapterID string) error {
	return repository.withOrderTx(context, chapterID, func(tx pgx.Tx, manager *ordering.Manager) error {
		return manager.MoveDown(context, id, chapterID)
	})
}
