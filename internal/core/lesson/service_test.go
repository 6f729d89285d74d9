// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package lesson

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopspace/backend/internal/platform/apperr"
)

type fakeLessonRepo struct {
	lessons  map[string]*Lesson
	chapters map[string]*ChapterRef
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{
		lessons:  make(map[string]*Lesson),
		chapters: make(map[string]*ChapterRef),
	}
}

func (repo *fakeLessonRepo) ListByChapter(_ context.Context, chapterID string, limit, offset int) ([]*Lesson, int, error) {
	var matched []*Lesson
	for _, lesson := range repo.lessons {
		if lesson.ChapterID == chapterID {
			matched = append(matched, lesson)
		}
	}
	return matched, len(matched), nil
}

func (repo *fakeLessonRepo) FindByID(_ context.Context, id string) (*Lesson, error) {
	lesson, ok := repo.lessons[id]
	if !ok {
		return nil, apperr.NotFound("Lesson")
	}
	copied := *lesson
	return &copied, nil
}

func (repo *fakeLessonRepo) FindChapterRef(_ context.Context, chapterID string) (*ChapterRef, error) {
	ref, ok := repo.chapters[chapterID]
	if !ok {
		return nil, apperr.NotFound("Chapter")
	}
	return ref, nil
}

func (repo *fakeLessonRepo) CreateWithOrder(_ context.Context, lesson *Lesson) error {
	if lesson.OrderNumber == 0 {
		highest := 0
		for _, sibling := range repo.lessons {
			if sibling.ChapterID == lesson.ChapterID && sibling.OrderNumber > highest {
				highest = sibling.OrderNumber
			}
		}
		lesson.OrderNumber = highest + 1
	}
	copied := *lesson
	repo.lessons[lesson.ID] = &copied
	return nil
}

func (repo *fakeLessonRepo) UpdateWithOrder(_ context.Context, lesson *Lesson) error {
	if _, ok := repo.lessons[lesson.ID]; !ok {
		return apperr.NotFound("Lesson")
	}
	copied := *lesson
	repo.lessons[lesson.ID] = &copied
	return nil
}

func (repo *fakeLessonRepo) DeleteAndRenumber(_ context.Context, id, _ string) error {
	if _, ok := repo.lessons[id]; !ok {
		return apperr.NotFound("Lesson")
	}
	delete(repo.lessons, id)
	return nil
}

func (repo *fakeLessonRepo) MoveUp(_ context.Context, id, _ string) error   { return nil }
func (repo *fakeLessonRepo) MoveDown(_ context.Context, id, _ string) error { return nil }

type fakeAccess struct {
	enrolled  map[string]bool
	completed map[string]bool
}

func (fake *fakeAccess) IsEnrolled(_ context.Context, courseID, userID string) (bool, error) {
	return fake.enrolled[courseID+"/"+userID], nil
}

func (fake *fakeAccess) IsLessonCompleted(_ context.Context, lessonID, userID string) (bool, error) {
	return fake.completed[lessonID+"/"+userID], nil
}

func newTestService(repo *fakeLessonRepo, access *fakeAccess) *Service {
	if access == nil {
		access = &fakeAccess{}
	}
	if access.enrolled == nil {
		access.enrolled = map[string]bool{}
	}
	if access.completed == nil {
		access.completed = map[string]bool{}
	}
	return NewService(repo, access, access, slog.New(slog.DiscardHandler))
}

func seedPublicChapter(repo *fakeLessonRepo) {
	repo.chapters["chapter-1"] = &ChapterRef{ID: "chapter-1", CourseID: "course-1", CourseOwner: "owner-1", IsPublic: true}
}

/*
TestService_GetLesson_Progress verifies the completion marker: absent for
anonymous visitors, present and accurate for authenticated users.
*/
func TestService_GetLesson_Progress(t *testing.T) {
	repo := newFakeLessonRepo()
	seedPublicChapter(repo)
	repo.lessons["lesson-1"] = &Lesson{ID: "lesson-1", ChapterID: "chapter-1", Title: "Basics", OrderNumber: 1}

	access := &fakeAccess{completed: map[string]bool{"lesson-1/user-2": true}}
	service := newTestService(repo, access)

	anonymous, err := service.GetLesson(context.Background(), "lesson-1", "")
	require.NoError(t, err)
	assert.Nil(t, anonymous.IsCompleted)

	finished, err := service.GetLesson(context.Background(), "lesson-1", "user-2")
	require.NoError(t, err)
	require.NotNil(t, finished.IsCompleted)
	assert.True(t, *finished.IsCompleted)

	fresh, err := service.GetLesson(context.Background(), "lesson-1", "user-3")
	require.NoError(t, err)
	require.NotNil(t, fresh.IsCompleted)
	assert.False(t, *fresh.IsCompleted)
}

/*
TestService_CreateLesson covers content validation, creator stamping, and
ownership enforcement.
*/
func TestService_CreateLesson(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		title    string
		content  string
		wantCode string
	}{
		{"owner_creates", "owner-1", "Basics", "Welcome to the course.", ""},
		{"empty_content_allowed", "owner-1", "Basics", "", ""},
		{"content_too_long", "owner-1", "Basics", strings.Repeat("x", 10001), "VALIDATION_ERROR"},
		{"title_too_short", "owner-1", "ab", "Welcome.", "VALIDATION_ERROR"},
		{"non_owner_rejected", "user-2", "Basics", "Welcome.", "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeLessonRepo()
			seedPublicChapter(repo)
			service := newTestService(repo, nil)

			lesson := &Lesson{ChapterID: "chapter-1", Title: tt.title, Content: tt.content}
			err := service.CreateLesson(context.Background(), tt.userID, lesson)

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.NotEmpty(t, lesson.ID)
				assert.Equal(t, tt.userID, lesson.CreatedBy)
				assert.Equal(t, 1, lesson.OrderNumber)
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
TestService_CreateLesson_UnknownChapter ensures lessons cannot be attached
to chapters that do not exist.
*/
func TestService_CreateLesson_UnknownChapter(t *testing.T) {
	service := newTestService(newFakeLessonRepo(), nil)

	err := service.CreateLesson(context.Background(), "owner-1", &Lesson{ChapterID: "missing", Title: "Basics"})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_UpdateLesson verifies patch semantics and the positive order
requirement on existing lessons.
*/
func TestService_UpdateLesson(t *testing.T) {
	repo := newFakeLessonRepo()
	seedPublicChapter(repo)
	repo.lessons["lesson-1"] = &Lesson{ID: "lesson-1", ChapterID: "chapter-1", Title: "Basics", Content: "Old body", OrderNumber: 1}
	service := newTestService(repo, nil)

	newContent := "New body"
	updated, err := service.UpdateLesson(context.Background(), "owner-1", "lesson-1", UpdateLessonInput{
		Content: &newContent,
	})
	require.NoError(t, err)
	assert.Equal(t, "New body", updated.Content)
	assert.Equal(t, "Basics", updated.Title, "untouched field keeps its stored value")

	zero := 0
	_, err = service.UpdateLesson(context.Background(), "owner-1", "lesson-1", UpdateLessonInput{OrderNumber: &zero})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_PrivateCourseAccess checks that lesson reads inside a private
course require ownership or an enrollment.
*/
func TestService_PrivateCourseAccess(t *testing.T) {
	repo := newFakeLessonRepo()
	repo.chapters["chapter-1"] = &ChapterRef{ID: "chapter-1", CourseID: "course-1", CourseOwner: "owner-1", IsPublic: false}
	repo.lessons["lesson-1"] = &Lesson{ID: "lesson-1", ChapterID: "chapter-1", Title: "Basics", OrderNumber: 1}

	access := &fakeAccess{enrolled: map[string]bool{"course-1/student-1": true}}
	service := newTestService(repo, access)

	_, err := service.GetLesson(context.Background(), "lesson-1", "student-1")
	assert.NoError(t, err)

	_, err = service.GetLesson(context.Background(), "lesson-1", "stranger")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	_, _, err = service.ListLessons(context.Background(), "chapter-1", "", 10, 0)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}
