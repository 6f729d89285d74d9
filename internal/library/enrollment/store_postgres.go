// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package enrollment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loopspace/backend/internal/platform/apperr"
	"github.com/loopspace/backend/internal/platform/database/schema"
	"github.com/loopspace/backend/internal/platform/dberr"
	"github.com/loopspace/backend/pkg/uuidv7"
)

// # PostgreSQL Repository

// enrollmentRepository implements the [EnrollmentRepository] interface
// using pgx.
type enrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository constructs a PostgreSQL backed enrollment store.
func NewEnrollmentRepository(pool *pgxpool.Pool) EnrollmentRepository {
	return &enrollmentRepository{pool: pool}
}

// # Enrollments

func (repository *enrollmentRepository) Enroll(context context.Context, enrollment *Enrollment) error {

	// Idempotent join: the (courseid, userid) constraint absorbs repeats.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO NOTHING
	`,
		schema.LibraryEnrollment.Table,
		schema.LibraryEnrollment.ID, schema.LibraryEnrollment.CourseID, schema.LibraryEnrollment.UserID,
		schema.LibraryEnrollment.CourseID, schema.LibraryEnrollment.UserID,
	)

	if _, err := repository.pool.Exec(context, query, enrollment.ID, enrollment.CourseID, enrollment.UserID); err != nil {
		return dberr.Wrap(err, "insert enrollment")
	}

	return nil
}

func (repository *enrollmentRepository) Unenroll(context context.Context, courseID, userID string) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryEnrollment.Table,
		schema.LibraryEnrollment.CourseID, schema.LibraryEnrollment.UserID)

	result, err := repository.pool.Exec(context, query, courseID, userID)
	if err != nil {
		return dberr.Wrap(err, "delete enrollment")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Enrollment")
	}

	return nil
}

func (repository *enrollmentRepository) IsEnrolled(context context.Context, courseID, userID string) (bool, error) {

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.LibraryEnrollment.Table,
		schema.LibraryEnrollment.CourseID, schema.LibraryEnrollment.UserID)

	var enrolled bool
	if err := repository.pool.QueryRow(context, query, courseID, userID).Scan(&enrolled); err != nil {
		return false, fmt.Errorf("postgres: failed to check enrollment: %w", err)
	}

	return enrolled, nil
}

func (repository *enrollmentRepository) ListByUser(context context.Context, userID string, limit, offset int) ([]*EnrolledCourse, int, error) {

	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, e.%s,
			COUNT(*) OVER() AS total_count
		FROM %s e
		JOIN %s c ON c.%s = e.%s
		WHERE e.%s = $1
		ORDER BY e.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.CoreCourse.ID, schema.CoreCourse.Title, schema.CoreCourse.Description,
		schema.CoreCourse.ThumbnailURL, schema.CoreCourse.IsPublic,
		schema.LibraryEnrollment.CreatedAt,
		schema.LibraryEnrollment.Table,
		schema.CoreCourse.Table, schema.CoreCourse.ID, schema.LibraryEnrollment.CourseID,
		schema.LibraryEnrollment.UserID,
		schema.LibraryEnrollment.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list enrollments: %w", err)
	}
	defer rows.Close()

	var courses []*EnrolledCourse
	var totalCount int

	for rows.Next() {
		var course EnrolledCourse
		err := rows.Scan(
			&course.CourseID,
			&course.Title,
			&course.Description,
			&course.ThumbnailURL,
			&course.IsPublic,
			&course.EnrolledAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan enrollment: %w", err)
		}
		courses = append(courses, &course)
	}

	return courses, totalCount, nil
}

// # Access Lookups

func (repository *enrollmentRepository) FindCourseRef(context context.Context, courseID string) (*CourseRef, error) {

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

func (repository *enrollmentRepository) FindLessonCourse(context context.Context, lessonID string) (*CourseRef, error) {

	query := fmt.Sprintf(`
		SELECT co.%s, co.%s, co.%s
		FROM %s l
		JOIN %s ch ON ch.%s = l.%s
		JOIN %s co ON co.%s = ch.%s
		WHERE l.%s = $1
	`,
		schema.CoreCourse.ID, schema.CoreCourse.CreatedBy, schema.CoreCourse.IsPublic,
		schema.CoreLesson.Table,
		schema.CoreChapter.Table, schema.CoreChapter.ID, schema.CoreLesson.ChapterID,
		schema.CoreCourse.Table, schema.CoreCourse.ID, schema.CoreChapter.CourseID,
		schema.CoreLesson.ID,
	)

	var ref CourseRef
	err := repository.pool.QueryRow(context, query, lessonID).Scan(&ref.ID, &ref.OwnerID, &ref.IsPublic)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Lesson")
		}
		return nil, fmt.Errorf("postgres: failed to find lesson course: %w", err)
	}

	return &ref, nil
}

// # Progress

func (repository *enrollmentRepository) SetLessonProgress(context context.Context, progress *Progress) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, CASE WHEN $4 THEN NOW() ELSE NULL END)
		ON CONFLICT (%s, %s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = NOW()
		RETURNING %s, %s
	`,
		schema.LibraryProgress.Table,
		schema.LibraryProgress.ID, schema.LibraryProgress.LessonID, schema.LibraryProgress.UserID,
		schema.LibraryProgress.IsCompleted, schema.LibraryProgress.CompletedAt,
		schema.LibraryProgress.LessonID, schema.LibraryProgress.UserID,
		schema.LibraryProgress.IsCompleted, schema.LibraryProgress.IsCompleted,
		schema.LibraryProgress.CompletedAt, schema.LibraryProgress.CompletedAt,
		schema.LibraryProgress.UpdatedAt,
		schema.LibraryProgress.CompletedAt, schema.LibraryProgress.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		uuidv7.New(),
		progress.LessonID,
		progress.UserID,
		progress.IsCompleted,
	).Scan(&progress.CompletedAt, &progress.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "upsert progress")
	}

	return nil
}

func (repository *enrollmentRepository) IsLessonCompleted(context context.Context, lessonID, userID string) (bool, error) {

	query := fmt.Sprintf(`
		SELECT COALESCE((SELECT %s FROM %s WHERE %s = $1 AND %s = $2), FALSE)
	`,
		schema.LibraryProgress.IsCompleted, schema.LibraryProgress.Table,
		schema.LibraryProgress.LessonID, schema.LibraryProgress.UserID,
	)

	var completed bool
	if err := repository.pool.QueryRow(context, query, lessonID, userID).Scan(&completed); err != nil {
		return false, fmt.Errorf("postgres: failed to check lesson progress: %w", err)
	}

	return completed, nil
}

func (repository *enrollmentRepository) CourseProgress(context context.Context, courseID, userID string) (*CourseProgress, error) {

	// Published lessons only: drafts don't count toward completion.
	query := fmt.Sprintf(`
		SELECT
			COUNT(l.%s),
			COUNT(l.%s) FILTER (WHERE p.%s)
		FROM %s l
		JOIN %s ch ON ch.%s = l.%s
		LEFT JOIN %s p ON p.%s = l.%s AND p.%s = $2
		WHERE ch.%s = $1 AND l.%s
	`,
		schema.CoreLesson.ID,
		schema.CoreLesson.ID, schema.LibraryProgress.IsCompleted,
		schema.CoreLesson.Table,
		schema.CoreChapter.Table, schema.CoreChapter.ID, schema.CoreLesson.ChapterID,
		schema.LibraryProgress.Table, schema.LibraryProgress.LessonID, schema.CoreLesson.ID,
		schema.LibraryProgress.UserID,
		schema.CoreChapter.CourseID, schema.CoreLesson.IsPublished,
	)

	summary := &CourseProgress{CourseID: courseID}
	if err := repository.pool.QueryRow(context, query, courseID, userID).Scan(&summary.TotalLessons, &summary.CompletedLessons); err != nil {
		return nil, fmt.Errorf("postgres: failed to aggregate course progress: %w", err)
	}

	if summary.TotalLessons > 0 {
		summary.Percent = float64(summary.CompletedLessons) / float64(summary.TotalLessons) * 100
	}

	return summary, nil
}
