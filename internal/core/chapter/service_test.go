// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package chapter

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopspace/backend/internal/platform/apperr"
)

// fakeChapterRepo is an in-memory stand-in for the PostgreSQL store. It
// keeps chapters keyed by ID and course refs keyed by course ID.
type fakeChapterRepo struct {
	chapters map[string]*Chapter
	courses  map[string]*CourseRef
}

func newFakeChapterRepo() *fakeChapterRepo {
	return &fakeChapterRepo{
		chapters: make(map[string]*Chapter),
		courses:  make(map[string]*CourseRef),
	}
}

func (repo *fakeChapterRepo) ListByCourse(_ context.Context, courseID string, limit, offset int) ([]*Chapter, int, error) {
	var matched []*Chapter
	for _, chapter := range repo.chapters {
		if chapter.CourseID == courseID {
			matched = append(matched, chapter)
		}
	}
	return matched, len(matched), nil
}

func (repo *fakeChapterRepo) FindByID(_ context.Context, id string) (*Chapter, error) {
	chapter, ok := repo.chapters[id]
	if !ok {
		return nil, apperr.NotFound("Chapter")
	}
	copied := *chapter
	return &copied, nil
}

func (repo *fakeChapterRepo) FindCourseRef(_ context.Context, courseID string) (*CourseRef, error) {
	ref, ok := repo.courses[courseID]
	if !ok {
		return nil, apperr.NotFound("Course")
	}
	return ref, nil
}

func (repo *fakeChapterRepo) CreateWithOrder(_ context.Context, chapter *Chapter) error {
	if chapter.OrderNumber == 0 {
		highest := 0
		for _, sibling := range repo.chapters {
			if sibling.CourseID == chapter.CourseID && sibling.OrderNumber > highest {
				highest = sibling.OrderNumber
			}
		}
		chapter.OrderNumber = highest + 1
	}
	copied := *chapter
	repo.chapters[chapter.ID] = &copied
	return nil
}

func (repo *fakeChapterRepo) UpdateWithOrder(_ context.Context, chapter *Chapter) error {
	if _, ok := repo.chapters[chapter.ID]; !ok {
		return apperr.NotFound("Chapter")
	}
	copied := *chapter
	repo.chapters[chapter.ID] = &copied
	return nil
}

func (repo *fakeChapterRepo) DeleteAndRenumber(_ context.Context, id, _ string) error {
	if _, ok := repo.chapters[id]; !ok {
		return apperr.NotFound("Chapter")
	}
	delete(repo.chapters, id)
	return nil
}

func (repo *fakeChapterRepo) MoveUp(_ context.Context, id, _ string) error {
	if _, ok := repo.chapters[id]; !ok {
		return apperr.NotFound("Chapter")
	}
	return nil
}

func (repo *fakeChapterRepo) MoveDown(_ context.Context, id, _ string) error {
	if _, ok := repo.chapters[id]; !ok {
		return apperr.NotFound("Chapter")
	}
	return nil
}

// fakeEnrollments answers enrollment checks from a fixed allow set keyed
// by "courseID/userID".
type fakeEnrollments struct {
	enrolled map[string]bool
}

func (fake *fakeEnrollments) IsEnrolled(_ context.Context, courseID, userID string) (bool, error) {
	return fake.enrolled[courseID+"/"+userID], nil
}

func newTestService(repo *fakeChapterRepo, enrolled map[string]bool) *Service {
	if enrolled == nil {
		enrolled = map[string]bool{}
	}
	return NewService(repo, &fakeEnrollments{enrolled: enrolled}, slog.New(slog.DiscardHandler))
}

/*
TestService_ReadAccess exercises the visibility matrix of course content:
public courses are open, private ones take ownership or an enrollment.
*/
func TestService_ReadAccess(t *testing.T) {
	tests := []struct {
		name     string
		isPublic bool
		userID   string
		enrolled bool
		wantCode string
	}{
		{"public_anonymous", true, "", false, ""},
		{"public_stranger", true, "user-2", false, ""},
		{"private_owner", false, "owner-1", false, ""},
		{"private_enrolled", false, "user-2", true, ""},
		{"private_stranger", false, "user-2", false, "FORBIDDEN"},
		{"private_anonymous", false, "", false, "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeChapterRepo()
			repo.courses["course-1"] = &CourseRef{ID: "course-1", OwnerID: "owner-1", IsPublic: tt.isPublic}
			repo.chapters["chapter-1"] = &Chapter{ID: "chapter-1", CourseID: "course-1", Title: "Intro", OrderNumber: 1}

			enrolled := map[string]bool{}
			if tt.enrolled {
				enrolled["course-1/"+tt.userID] = true
			}
			service := newTestService(repo, enrolled)

			_, _, listErr := service.ListChapters(context.Background(), "course-1", tt.userID, 10, 0)
			_, getErr := service.GetChapter(context.Background(), "chapter-1", tt.userID)

			if tt.wantCode == "" {
				assert.NoError(t, listErr)
				assert.NoError(t, getErr)
				return
			}

			for _, err := range []error{listErr, getErr} {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, tt.wantCode, ae.Code)
			}
		})
	}
}

/*
TestService_CreateChapter covers ownership enforcement, title validation,
and ID assignment on creation.
*/
func TestService_CreateChapter(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		title    string
		order    int
		wantCode string
	}{
		{"owner_appends", "owner-1", "Getting Started", 0, ""},
		{"owner_explicit_slot", "owner-1", "Getting Started", 3, ""},
		{"non_owner_rejected", "user-2", "Getting Started", 0, "FORBIDDEN"},
		{"title_too_short", "owner-1", "ab", 0, "VALIDATION_ERROR"},
		{"title_missing", "owner-1", "", 0, "VALIDATION_ERROR"},
		{"negative_order", "owner-1", "Getting Started", -1, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeChapterRepo()
			repo.courses["course-1"] = &CourseRef{ID: "course-1", OwnerID: "owner-1", IsPublic: true}
			service := newTestService(repo, nil)

			chapter := &Chapter{CourseID: "course-1", Title: tt.title, OrderNumber: tt.order}
			err := service.CreateChapter(context.Background(), tt.userID, chapter)

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.NotEmpty(t, chapter.ID)
				assert.Positive(t, chapter.OrderNumber)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
			assert.Empty(t, repo.chapters)
		})
	}
}

/*
TestService_UpdateChapter verifies partial patch semantics: absent fields
keep their stored values, present fields replace them.
*/
func TestService_UpdateChapter(t *testing.T) {
	repo := newFakeChapterRepo()
	repo.courses["course-1"] = &CourseRef{ID: "course-1", OwnerID: "owner-1", IsPublic: true}
	repo.chapters["chapter-1"] = &Chapter{ID: "chapter-1", CourseID: "course-1", Title: "Old Title", OrderNumber: 2}
	service := newTestService(repo, nil)

	newTitle := "New Title"
	updated, err := service.UpdateChapter(context.Background(), "owner-1", "chapter-1", UpdateChapterInput{
		Title: &newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, 2, updated.OrderNumber, "untouched field keeps its stored value")

	zero := 0
	_, err = service.UpdateChapter(context.Background(), "owner-1", "chapter-1", UpdateChapterInput{
		OrderNumber: &zero,
	})
	require.Error(t, err, "an existing chapter cannot be patched to order zero")
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.UpdateChapter(context.Background(), "user-2", "chapter-1", UpdateChapterInput{Title: &newTitle})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

/*
TestService_DeleteChapter checks owner-only deletion and NotFound mapping.
*/
func TestService_DeleteChapter(t *testing.T) {
	repo := newFakeChapterRepo()
	repo.courses["course-1"] = &CourseRef{ID: "course-1", OwnerID: "owner-1", IsPublic: false}
	repo.chapters["chapter-1"] = &Chapter{ID: "chapter-1", CourseID: "course-1", Title: "Intro", OrderNumber: 1}
	service := newTestService(repo, nil)

	err := service.DeleteChapter(context.Background(), "user-2", "chapter-1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.DeleteChapter(context.Background(), "owner-1", "chapter-1"))
	assert.Empty(t, repo.chapters)

	err = service.DeleteChapter(context.Background(), "owner-1", "chapter-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
