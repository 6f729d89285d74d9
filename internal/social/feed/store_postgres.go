// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package feed

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

// feedRepository implements the [FeedRepository] interface using pgx.
type feedRepository struct {
	pool *pgxpool.Pool
}

// NewFeedRepository constructs a PostgreSQL backed feed store.
func NewFeedRepository(pool *pgxpool.Pool) FeedRepository {
	return &feedRepository{pool: pool}
}

// # Posts

func (repository *feedRepository) ListPosts(context context.Context, courseID string, limit, offset int) ([]*Post, int, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s,
			COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.SocialPost.ID, schema.SocialPost.CourseID, schema.SocialPost.AuthorID,
		schema.SocialPost.Content, schema.SocialPost.CreatedAt, schema.SocialPost.UpdatedAt,
		schema.SocialPost.Table,
		schema.SocialPost.CourseID,
		schema.SocialPost.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, courseID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*Post
	var totalCount int

	for rows.Next() {
		var post Post
		err := rows.Scan(
			&post.ID,
			&post.CourseID,
			&post.AuthorID,
			&post.Content,
			&post.CreatedAt,
			&post.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan post: %w", err)
		}
		posts = append(posts, &post)
	}

	return posts, totalCount, nil
}

func (repository *feedRepository) FindPost(context context.Context, id string) (*Post, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.SocialPost.ID, schema.SocialPost.CourseID, schema.SocialPost.AuthorID,
		schema.SocialPost.Content, schema.SocialPost.CreatedAt, schema.SocialPost.UpdatedAt,
		schema.SocialPost.Table,
		schema.SocialPost.ID,
	)

	var post Post
	err := repository.pool.QueryRow(context, query, id).Scan(
		&post.ID,
		&post.CourseID,
		&post.AuthorID,
		&post.Content,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Post")
		}
		return nil, fmt.Errorf("postgres: failed to find post: %w", err)
	}

	return &post, nil
}

func (repository *feedRepository) CreatePost(context context.Context, post *Post) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		schema.SocialPost.Table,
		schema.SocialPost.ID, schema.SocialPost.CourseID, schema.SocialPost.AuthorID,
		schema.SocialPost.Content,
		schema.SocialPost.CreatedAt, schema.SocialPost.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		post.ID,
		post.CourseID,
		post.AuthorID,
		post.Content,
	).Scan(&post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "insert post")
	}

	return nil
}

func (repository *feedRepository) DeletePost(context context.Context, id string) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialPost.Table, schema.SocialPost.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete post")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	return nil
}

// # Comments

func (repository *feedRepository) ListComments(context context.Context, postID string, limit, offset int) ([]*Comment, int, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s,
			COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`,
		schema.SocialComment.ID, schema.SocialComment.PostID, schema.SocialComment.AuthorID,
		schema.SocialComment.Content, schema.SocialComment.CreatedAt,
		schema.SocialComment.Table,
		schema.SocialComment.PostID,
		schema.SocialComment.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, postID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	var totalCount int

	for rows.Next() {
		var comment Comment
		err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Content,
			&comment.CreatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}

	return comments, totalCount, nil
}

func (repository *feedRepository) FindComment(context context.Context, id string) (*Comment, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.SocialComment.ID, schema.SocialComment.PostID, schema.SocialComment.AuthorID,
		schema.SocialComment.Content, schema.SocialComment.CreatedAt,
		schema.SocialComment.Table,
		schema.SocialComment.ID,
	)

	var comment Comment
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Content,
		&comment.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres: failed to find comment: %w", err)
	}

	return &comment, nil
}

func (repository *feedRepository) CreateComment(context context.Context, comment *Comment) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.SocialComment.Table,
		schema.SocialComment.ID, schema.SocialComment.PostID, schema.SocialComment.AuthorID,
		schema.SocialComment.Content,
		schema.SocialComment.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		comment.ID,
		comment.PostID,
		comment.AuthorID,
		comment.Content,
	).Scan(&comment.CreatedAt)

	if err != nil {
		return dberr.Wrap(err, "insert comment")
	}

	return nil
}

func (repository *feedRepository) DeleteComment(context context.Context, id string) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialComment.Table, schema.SocialComment.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete comment")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

// # Access Lookups

func (repository *feedRepository) FindCourseRef(context context.Context, courseID string) (*CourseRef, error) {

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
