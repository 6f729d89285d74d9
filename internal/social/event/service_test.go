// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package event

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopspace/backend/internal/platform/apperr"
)

// # Test Fakes

type fakeEventRepo struct {
	courses map[string]*CourseRef
	events  map[string]*Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		courses: make(map[string]*CourseRef),
		events:  make(map[string]*Event),
	}
}

func (repo *fakeEventRepo) ListUpcoming(_ context.Context, courseID string, limit, offset int) ([]*Event, int, error) {
	var events []*Event
	for _, event := range repo.events {
		if event.CourseID == courseID && event.EndsAt.After(time.Now()) {
			events = append(events, event)
		}
	}
	return events, len(events), nil
}

func (repo *fakeEventRepo) FindByID(_ context.Context, id string) (*Event, error) {
	event, ok := repo.events[id]
	if !ok {
		return nil, apperr.NotFound("Event")
	}
	return event, nil
}

func (repo *fakeEventRepo) Create(_ context.Context, event *Event) error {
	repo.events[event.ID] = event
	return nil
}

func (repo *fakeEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := repo.events[id]; !ok {
		return apperr.NotFound("Event")
	}
	delete(repo.events, id)
	return nil
}

func (repo *fakeEventRepo) FindCourseRef(_ context.Context, courseID string) (*CourseRef, error) {
	ref, ok := repo.courses[courseID]
	if !ok {
		return nil, apperr.NotFound("Course")
	}
	return ref, nil
}

type fakeEnrollments struct {
	enrolled map[string]bool
}

func (fake *fakeEnrollments) IsEnrolled(_ context.Context, courseID, userID string) (bool, error) {
	return fake.enrolled[courseID+"/"+userID], nil
}

// # Tests

/*
TestService_CreateEvent verifies scheduling validation and the owner-only
gate.
*/
func TestService_CreateEvent(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		userID   string
		input    CreateEventInput
		wantCode string
	}{
		{
			name:   "owner_schedules",
			userID: "owner-1",
			input: CreateEventInput{
				Title:    "Live Q&A",
				StartsAt: now.Add(24 * time.Hour),
				EndsAt:   now.Add(25 * time.Hour),
			},
		},
		{
			name:   "enrolled_user_blocked",
			userID: "member-1",
			input: CreateEventInput{
				Title:    "Takeover session",
				StartsAt: now.Add(24 * time.Hour),
				EndsAt:   now.Add(25 * time.Hour),
			},
			wantCode: "FORBIDDEN",
		},
		{
			name:   "end_before_start",
			userID: "owner-1",
			input: CreateEventInput{
				Title:    "Backwards event",
				StartsAt: now.Add(25 * time.Hour),
				EndsAt:   now.Add(24 * time.Hour),
			},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:   "missing_start",
			userID: "owner-1",
			input: CreateEventInput{
				Title:  "Undated event",
				EndsAt: now.Add(24 * time.Hour),
			},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "missing_title",
			userID:   "owner-1",
			input:    CreateEventInput{StartsAt: now.Add(24 * time.Hour), EndsAt: now.Add(25 * time.Hour)},
			wantCode: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeEventRepo()
			repo.courses["course-1"] = &CourseRef{ID: "course-1", OwnerID: "owner-1", IsPublic: true}
			enrollments := &fakeEnrollments{enrolled: map[string]bool{"course-1/member-1": true}}

			service := NewService(repo, enrollments, slog.New(slog.DiscardHandler))

			event, err := service.CreateEvent(context.Background(), tt.userID, "course-1", tt.input)

			if tt.wantCode == "" {
				require.NoError(t, err)
				require.NotNil(t, event)
				assert.NotEmpty(t, event.ID)
				assert.Equal(t, tt.userID, event.CreatedBy)
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
TestService_DeleteEvent verifies that only the course owner may cancel an
event.
*/
func TestService_DeleteEvent(t *testing.T) {
	repo := newFakeEventRepo()
	repo.courses["course-1"] = &CourseRef{ID: "course-1", OwnerID: "owner-1", IsPublic: true}
	repo.events["event-1"] = &Event{ID: "event-1", CourseID: "course-1", CreatedBy: "owner-1"}

	enrollments := &fakeEnrollments{enrolled: map[string]bool{"course-1/member-1": true}}
	service := NewService(repo, enrollments, slog.New(slog.DiscardHandler))
	ctx := context.Background()

	err := service.DeleteEvent(ctx, "member-1", "event-1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.DeleteEvent(ctx, "owner-1", "event-1"))
	assert.Empty(t, repo.events)

	err = service.DeleteEvent(ctx, "owner-1", "event-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
