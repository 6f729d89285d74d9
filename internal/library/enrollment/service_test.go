// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package enrollment

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopspace/backend/internal/platform/apperr"
)

// # Test Fakes

type fakeEnrollmentRepo struct {
	courses      map[string]*CourseRef  // courseID -> ref
	lessonCourse map[string]*CourseRef  // lessonID -> owning course ref
	enrollments  map[string]*Enrollment // courseID/userID -> enrollment
	progress     map[string]bool        // lessonID/userID -> completed
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{
		courses:      make(map[string]*CourseRef),
		lessonCourse: make(map[string]*CourseRef),
		enrollments:  make(map[string]*Enrollment),
		progress:     make(map[string]bool),
	}
}

func (repo *fakeEnrollmentRepo) Enroll(_ context.Context, enrollment *Enrollment) error {
	key := enrollment.CourseID + "/" + enrollment.UserID
	if _, exists := repo.enrollments[key]; exists {
		return nil // mirrors ON CONFLICT DO NOTHING
	}
	repo.enrollments[key] = enrollment
	return nil
}

func (repo *fakeEnrollmentRepo) Unenroll(_ context.Context, courseID, userID string) error {
	key := courseID + "/" + userID
	if _, exists := repo.enrollments[key]; !exists {
		return apperr.NotFound("Enrollment")
	}
	delete(repo.enrollments, key)
	return nil
}

func (repo *fakeEnrollmentRepo) IsEnrolled(_ context.Context, courseID, userID string) (bool, error) {
	_, exists := repo.enrollments[courseID+"/"+userID]
	return exists, nil
}

func (repo *fakeEnrollmentRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*EnrolledCourse, int, error) {
	var courses []*EnrolledCourse
	for _, enrollment := range repo.enrollments {
		if enrollment.UserID == userID {
			courses = append(courses, &EnrolledCourse{CourseID: enrollment.CourseID, EnrolledAt: enrollment.CreatedAt})
		}
	}
	return courses, len(courses), nil
}

func (repo *fakeEnrollmentRepo) FindCourseRef(_ context.Context, courseID string) (*CourseRef, error) {
	ref, ok := repo.courses[courseID]
	if !ok {
		return nil, apperr.NotFound("Course")
	}
	return ref, nil
}

func (repo *fakeEnrollmentRepo) FindLessonCourse(_ context.Context, lessonID string) (*CourseRef, error) {
	ref, ok := repo.lessonCourse[lessonID]
	if !ok {
		return nil, apperr.NotFound("Lesson")
	}
	return ref, nil
}

func (repo *fakeEnrollmentRepo) SetLessonProgress(_ context.Context, progress *Progress) error {
	repo.progress[progress.LessonID+"/"+progress.UserID] = progress.IsCompleted
	return nil
}

func (repo *fakeEnrollmentRepo) IsLessonCompleted(_ context.Context, lessonID, userID string) (bool, error) {
	return repo.progress[lessonID+"/"+userID], nil
}

func (repo *fakeEnrollmentRepo) CourseProgress(_ context.Context, courseID, userID string) (*CourseProgress, error) {
	total, completed := 0, 0
	for _, done := range repo.progress {
		total++
		if done {
			completed++
		}
	}
	return &CourseProgress{CourseID: courseID, TotalLessons: total, CompletedLessons: completed}, nil
}

func newTestService(repo *fakeEnrollmentRepo) *Service {
	return NewService(repo, slog.New(slog.DiscardHandler))
}

// # Tests

/*
TestService_Enroll verifies the enrollment gate: open public courses,
rejected owners, and closed private courses.
*/
func TestService_Enroll(t *testing.T) {
	tests := []struct {
		name     string
		courseID string
		userID   string
		wantCode string
	}{
		{"public_course_stranger", "course-public", "user-1", ""},
		{"owner_blocked", "course-public", "owner-1", "CONFLICT"},
		{"private_course_blocked", "course-private", "user-1", "FORBIDDEN"},
		{"unknown_course", "course-ghost", "user-1", "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeEnrollmentRepo()
			repo.courses["course-public"] = &CourseRef{ID: "course-public", OwnerID: "owner-1", IsPublic: true}
			repo.courses["course-private"] = &CourseRef{ID: "course-private", OwnerID: "owner-1", IsPublic: false}

			service := newTestService(repo)

			enrollment, err := service.Enroll(context.Background(), tt.userID, tt.courseID)

			if tt.wantCode == "" {
				require.NoError(t, err)
				require.NotNil(t, enrollment)
				assert.NotEmpty(t, enrollment.ID)

				enrolled, err := service.IsEnrolled(context.Background(), tt.courseID, tt.userID)
				require.NoError(t, err)
				assert.True(t, enrolled)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

/*
TestService_Unenroll verifies removal and the NotFound answer for users
who never joined.
*/
func TestService_Unenroll(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	repo.courses["course-1"] = &CourseRef{ID: "course-1", OwnerID: "owner-1", IsPublic: true}
	service := newTestService(repo)
	ctx := context.Background()

	_, err := service.Enroll(ctx, "user-1", "course-1")
	require.NoError(t, err)

	require.NoError(t, service.Unenroll(ctx, "user-1", "course-1"))

	err = service.Unenroll(ctx, "user-1", "course-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_SetLessonProgress verifies that progress tracking requires
course membership.
*/
func TestService_SetLessonProgress(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	repo.courses["course-1"] = &CourseRef{ID: "course-1", OwnerID: "owner-1", IsPublic: true}
	repo.lessonCourse["lesson-1"] = repo.courses["course-1"]
	service := newTestService(repo)
	ctx := context.Background()

	t.Run("stranger_blocked", func(t *testing.T) {
		_, err := service.SetLessonProgress(ctx, "drifter", "lesson-1", true)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("owner_allowed", func(t *testing.T) {
		progress, err := service.SetLessonProgress(ctx, "owner-1", "lesson-1", true)
		require.NoError(t, err)
		assert.True(t, progress.IsCompleted)
	})

	t.Run("enrolled_user_allowed", func(t *testing.T) {
		_, err := service.Enroll(ctx, "user-1", "course-1")
		require.NoError(t, err)

		progress, err := service.SetLessonProgress(ctx, "user-1", "lesson-1", true)
		require.NoError(t, err)
		assert.True(t, progress.IsCompleted)

		completed, err := service.IsLessonCompleted(ctx, "lesson-1", "user-1")
		require.NoError(t, err)
		assert.True(t, completed)

		// Unmarking is the same upsert with the flag flipped.
		progress, err = service.SetLessonProgress(ctx, "user-1", "lesson-1", false)
		require.NoError(t, err)
		assert.False(t, progress.IsCompleted)
	})

	t.Run("unknown_lesson", func(t *testing.T) {
		_, err := service.SetLessonProgress(ctx, "owner-1", "lesson-ghost", true)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}
