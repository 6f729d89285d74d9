// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

/*
Package chapter provides the PostgreSQL implementation for course chapter
data access.

Reordering strategy:

  - Every multi-row order mutation runs inside one transaction.
  - The transaction first takes pg_advisory_xact_lock on the course ID, so
    concurrent reorders of the same course queue up instead of interleaving.
  - The (courseid, ordernumber) uniqueness constraint is deferred to commit,
    letting the shift writes pass through intermediate states safely.
*/
package chapter

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

// chapterRepository implements the [ChapterRepository] interface using pgx.
type chapterRepository struct {
	pool *pgxpool.Pool
}

// NewChapterRepository constructs a PostgreSQL backed chapter store.
func NewChapterRepository(pool *pgxpool.Pool) ChapterRepository {
	return &chapterRepository{pool: pool}
}

// # Reads

/*
ListByCourse retrieves all chapters linked to a specific course.

Description: Uses a COUNT(*) window function to return the total match
count without a second round-trip.

Parameters:
  - context: context.Context
  - courseID: string (Owner scope)
  - limit, offset: int

Returns:
  - []*Chapter: Page of chapters sorted by order number
  - int: Total matching chapters
*/
func (repository *chapterRepository) ListByCourse(context context.Context, courseID string, limit, offset int) ([]*Chapter, int, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s,
			COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`,
		schema.CoreChapter.ID, schema.CoreChapter.CourseID, schema.CoreChapter.Title,
		schema.CoreChapter.OrderNumber, schema.CoreChapter.IsPublished,
		schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt,
		schema.CoreChapter.Table,
		schema.CoreChapter.CourseID,
		schema.CoreChapter.OrderNumber,
	)

	rows, err := repository.pool.Query(context, query, courseID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*Chapter
	var totalCount int

	for rows.Next() {
		var chapter Chapter
		err := rows.Scan(
			&chapter.ID,
			&chapter.CourseID,
			&chapter.Title,
			&chapter.OrderNumber,
			&chapter.IsPublished,
			&chapter.CreatedAt,
			&chapter.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}
		chapters = append(chapters, &chapter)
	}

	return chapters, totalCount, nil
}

/*
FindByID returns the chapter row for a unique identifier.

Returns:
  - *Chapter: Hydrated entity
  - error: apperr.NotFound on absent rows
*/
func (repository *chapterRepository) FindByID(context context.Context, id string) (*Chapter, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreChapter.ID, schema.CoreChapter.CourseID, schema.CoreChapter.Title,
		schema.CoreChapter.OrderNumber, schema.CoreChapter.IsPublished,
		schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID,
	)

	var chapter Chapter
	err := repository.pool.QueryRow(context, query, id).Scan(
		&chapter.ID,
		&chapter.CourseID,
		&chapter.Title,
		&chapter.OrderNumber,
		&chapter.IsPublished,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Chapter")
		}
		return nil, fmt.Errorf("postgres: failed to find chapter by id: %w", err)
	}

	return &chapter, nil
}

/*
FindCourseRef loads the owning course's visibility and owner columns.

Returns:
  - *CourseRef: Access metadata
  - error: apperr.NotFound when the course does not exist
*/
func (repository *chapterRepository) FindCourseRef(context context.Context, courseID string) (*CourseRef, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreCourse.ID, schema.CoreCourse.CreatedBy, schema.CoreCourse.IsPublic,
		schema.CoreCourse.Table,
		schema.CoreCourse.ID,
	)

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

// # Ordered Writes

// chapterOrderStore adapts a transaction to the [ordering.Store] contract
// for the core.chapter table, scoped by course ID.
type chapterOrderStore struct {
	tx pgx.Tx
}

func (store *chapterOrderStore) ListByParent(context context.Context, parentID string) ([]ordering.Item, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.CoreChapter.ID, schema.CoreChapter.OrderNumber,
		schema.CoreChapter.Table, schema.CoreChapter.CourseID, schema.CoreChapter.OrderNumber)

	rows, err := store.tx.Query(context, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapter order slots: %w", err)
	}
	defer rows.Close()

	var items []ordering.Item
	for rows.Next() {
		var item ordering.Item
		if err := rows.Scan(&item.ID, &item.Order); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan chapter order slot: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (store *chapterOrderStore) FindByParentAndOrder(context context.Context, parentID string, order int) (*ordering.Item, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CoreChapter.ID, schema.CoreChapter.OrderNumber,
		schema.CoreChapter.Table, schema.CoreChapter.CourseID, schema.CoreChapter.OrderNumber)

	var item ordering.Item
	err := store.tx.QueryRow(context, query, parentID, order).Scan(&item.ID, &item.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: failed to probe chapter order slot: %w", err)
	}

	return &item, nil
}

func (store *chapterOrderStore) UpdateOrder(context context.Context, id string, order int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		schema.CoreChapter.Table, schema.CoreChapter.OrderNumber,
		schema.CoreChapter.UpdatedAt, schema.CoreChapter.ID)

	if _, err := store.tx.Exec(context, query, order, id); err != nil {
		return fmt.Errorf("postgres: failed to shift chapter order: %w", err)
	}
	return nil
}

// withOrderTx runs fn inside a transaction that holds the per-course
// advisory lock, providing an ordering manager bound to that transaction.
func (repository *chapterRepository) withOrderTx(context context.Context, courseID string, fn func(tx pgx.Tx, manager *ordering.Manager) error) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin reorder transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context) }()

	// Serialize all reorders of this course.
	if _, err := tx.Exec(context, `SELECT pg_advisory_xact_lock(hashtext($1))`, courseID); err != nil {
		return fmt.Errorf("postgres: failed to take course order lock: %w", err)
	}

	manager := ordering.NewManager(&chapterOrderStore{tx: tx})
	if err := fn(tx, manager); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit chapter reorder")
	}

	return nil
}

/*
CreateWithOrder resolves the chapter's order slot and inserts the row,
both inside the locked transaction.
*/
func (repository *chapterRepository) CreateWithOrder(context context.Context, chapter *Chapter) error {
	return repository.withOrderTx(context, chapter.CourseID, func(tx pgx.Tx, manager *ordering.Manager) error {

		assigned, err := manager.PlaceNew(context, chapter.CourseID, chapter.OrderNumber)
		if err != nil {
			return err
		}
		chapter.OrderNumber = assigned

		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING %s, %s
		`,
			schema.CoreChapter.Table,
			schema.CoreChapter.ID, schema.CoreChapter.CourseID, schema.CoreChapter.Title,
			schema.CoreChapter.OrderNumber, schema.CoreChapter.IsPublished,
			schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt,
		)

		err = tx.QueryRow(context, query,
			chapter.ID,
			chapter.CourseID,
			chapter.Title,
			chapter.OrderNumber,
			chapter.IsPublished,
		).Scan(&chapter.CreatedAt, &chapter.UpdatedAt)

		if err != nil {
			return dberr.Wrap(err, "insert chapter")
		}

		return nil
	})
}

/*
UpdateWithOrder persists the full chapter state. The ordering manager
shifts siblings first when the order number landed on an occupied slot.
*/
func (repository *chapterRepository) UpdateWithOrder(context context.Context, chapter *Chapter) error {
	return repository.withOrderTx(context, chapter.CourseID, func(tx pgx.Tx, manager *ordering.Manager) error {

		if err := manager.PlaceExisting(context, chapter.ID, chapter.CourseID, chapter.OrderNumber); err != nil {
			return err
		}

		query := fmt.Sprintf(`
			UPDATE %s
			SET %s = $1, %s = $2, %s = $3, %s = NOW()
			WHERE %s = $4
		`,
			schema.CoreChapter.Table,
			schema.CoreChapter.Title, schema.CoreChapter.OrderNumber,
			schema.CoreChapter.IsPublished, schema.CoreChapter.UpdatedAt,
			schema.CoreChapter.ID,
		)

		result, err := tx.Exec(context, query,
			chapter.Title,
			chapter.OrderNumber,
			chapter.IsPublished,
			chapter.ID,
		)
		if err != nil {
			return dberr.Wrap(err, "update chapter")
		}

		if result.RowsAffected() == 0 {
			return apperr.NotFound("Chapter")
		}

		return nil
	})
}

/*
DeleteAndRenumber removes the chapter and closes the gap it left by
renumbering the surviving siblings to their 1-based ranks.
*/
func (repository *chapterRepository) DeleteAndRenumber(context context.Context, id, courseID string) error {
	return repository.withOrderTx(context, courseID, func(tx pgx.Tx, manager *ordering.Manager) error {

		query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.CoreChapter.Table, schema.CoreChapter.ID)

		result, err := tx.Exec(context, query, id)
		if err != nil {
			return dberr.Wrap(err, "delete chapter")
		}

		if result.RowsAffected() == 0 {
			return apperr.NotFound("Chapter")
		}

		_, err = manager.Renumber(context, courseID)
		return err
	})
}

// MoveUp swaps the chapter with its previous rank neighbor.
func (repository *chapterRepository) MoveUp(context context.Context, id, courseID string) error {
	return repository.withOrderTx(context, courseID, func(tx pgx.Tx, manager *ordering.Manager) error {
		return manager.MoveUp(context, id, courseID)
	})
}

// MoveDown swaps the chapter with its next rank neighbor.
func (repository *chapterRepository) MoveDown(context context.Context, id, courseID string) error {
	return repository.withOrderTx(context, courseID, func(tx pgx.Tx, manager *ordering.Manager) error {
		return manager.MoveDown(context, id, courseID)
	})
}
