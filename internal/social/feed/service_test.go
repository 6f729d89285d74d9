// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

package feed

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopspace/backend/internal/platform/apperr"
)

// # Test Fakes

type fakeFeedRepo struct {
	courses  map[string]*CourseRef
	posts    map[string]*Post
	comments map[string]*Comment
}

func newFakeFeedRepo() *fakeFeedRepo {
	return &fakeFeedRepo{
		courses:  make(map[string]*CourseRef),
		posts:    make(map[string]*Post),
		comments: make(map[string]*Comment),
	}
}

func (repo *fakeFeedRepo) ListPosts(_ context.Context, courseID string, limit, offset int) ([]*Post, int, error) {
	var posts []*Post
	for _, post := range repo.posts {
		if post.CourseID == courseID {
			posts = append(posts, post)
		}
	}
	return posts, len(posts), nil
}

func (repo *fakeFeedRepo) FindPost(_ context.Context, id string) (*Post, error) {
	post, ok := repo.posts[id]
	if !ok {
		return nil, apperr.NotFound("Post")
	}
	return post, nil
}

func (repo *fakeFeedRepo) CreatePost(_ context.Context, post *Post) error {
	repo.posts[post.ID] = post
	return nil
}

func (repo *fakeFeedRepo) DeletePost(_ context.Context, id string) error {
	if _, ok := repo.posts[id]; !ok {
		return apperr.NotFound("Post")
	}
	delete(repo.posts, id)
	for commentID, comment := range repo.comments {
		if comment.PostID == id {
			delete(repo.comments, commentID)
		}
	}
	return nil
}

func (repo *fakeFeedRepo) ListComments(_ context.Context, postID string, limit, offset int) ([]*Comment, int, error) {
	var comments []*Comment
	for _, comment := range repo.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	return comments, len(comments), nil
}

func (repo *fakeFeedRepo) FindComment(_ context.Context, id string) (*Comment, error) {
	comment, ok := repo.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	return comment, nil
}

func (repo *fakeFeedRepo) CreateComment(_ context.Context, comment *Comment) error {
	repo.comments[comment.ID] = comment
	return nil
}

func (repo *fakeFeedRepo) DeleteComment(_ context.Context, id string) error {
	if _, ok := repo.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(repo.comments, id)
	return nil
}

func (repo *fakeFeedRepo) FindCourseRef(_ context.Context, courseID string) (*CourseRef, error) {
	ref, ok := repo.courses[courseID]
	if !ok {
		return nil, apperr.NotFound("Course")
	}
	return ref, nil
}

type fakeEnrollments struct {
	enrolled map[string]bool // courseID/userID
}

func (fake *fakeEnrollments) IsEnrolled(_ context.Context, courseID, userID string) (bool, error) {
	return fake.enrolled[courseID+"/"+userID], nil
}

func newFeedTestService(repo *fakeFeedRepo, enrollments *fakeEnrollments) *Service {
	return NewService(repo, enrollments, slog.New(slog.DiscardHandler))
}

// # Tests

/*
TestService_CreatePost verifies that only course members may post, and
that content limits hold.
*/
func TestService_CreatePost(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		content  string
		wantCode string
	}{
		{"owner_posts", "owner-1", "Welcome everyone!", ""},
		{"enrolled_posts", "member-1", "Glad to be here.", ""},
		{"stranger_blocked", "drifter", "Hello?", "FORBIDDEN"},
		{"empty_content", "owner-1", "", "VALIDATION_ERROR"},
		{"oversized_content", "owner-1", strings.Repeat("a", 2001), "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeFeedRepo()
			repo.courses["course-1"] = &CourseRef{ID: "course-1", OwnerID: "owner-1", IsPublic: true}
			enrollments := &fakeEnrollments{enrolled: map[string]bool{"course-1/member-1": true}}

			service := newFeedTestService(repo, enrollments)

			post, err := service.CreatePost(context.Background(), tt.userID, "course-1", tt.content)

			if tt.wantCode == "" {
				require.NoError(t, err)
				require.NotNil(t, post)
				assert.NotEmpty(t, post.ID)
				assert.Equal(t, tt.userID, post.AuthorID)
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
TestService_DeletePost verifies the deletion rule: author or course owner,
nobody else. Comments go down with the post.
*/
func TestService_DeletePost(t *testing.T) {
	setup := func() (*Service, *fakeFeedRepo) {
		repo := newFakeFeedRepo()
		repo.courses["course-1"] = &CourseRef{ID: "course-1", OwnerID: "owner-1", IsPublic: true}
		repo.posts["post-1"] = &Post{ID: "post-1", CourseID: "course-1", AuthorID: "member-1"}
		repo.comments["comment-1"] = &Comment{ID: "comment-1", PostID: "post-1", AuthorID: "member-2"}

		enrollments := &fakeEnrollments{enrolled: map[string]bool{
			"course-1/member-1": true,
			"course-1/member-2": true,
		}}
		return newFeedTestService(repo, enrollments), repo
	}

	t.Run("author_deletes", func(t *testing.T) {
		service, repo := setup()
		require.NoError(t, service.DeletePost(context.Background(), "member-1", "post-1"))
		assert.Empty(t, repo.posts)
		assert.Empty(t, repo.comments, "comments must cascade with the post")
	})

	t.Run("course_owner_deletes", func(t *testing.T) {
		service, repo := setup()
		require.NoError(t, service.DeletePost(context.Background(), "owner-1", "post-1"))
		assert.Empty(t, repo.posts)
	})

	t.Run("other_member_blocked", func(t *testing.T) {
		service, _ := setup()
		err := service.DeletePost(context.Background(), "member-2", "post-1")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})
}

/*
TestService_PrivateCourseFeed verifies that a private course feed follows
the course visibility matrix.
*/
func TestService_PrivateCourseFeed(t *testing.T) {
	repo := newFakeFeedRepo()
	repo.courses["course-1"] = &CourseRef{ID: "course-1", OwnerID: "owner-1", IsPublic: false}
	repo.posts["post-1"] = &Post{ID: "post-1", CourseID: "course-1", AuthorID: "owner-1"}

	enrollments := &fakeEnrollments{enrolled: map[string]bool{"course-1/member-1": true}}
	service := newFeedTestService(repo, enrollments)
	ctx := context.Background()

	t.Run("anonymous_unauthorized", func(t *testing.T) {
		_, _, err := service.ListPosts(ctx, "course-1", "", 10, 0)
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("stranger_forbidden", func(t *testing.T) {
		_, _, err := service.ListPosts(ctx, "course-1", "drifter", 10, 0)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("member_reads", func(t *testing.T) {
		posts, total, err := service.ListPosts(ctx, "course-1", "member-1", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, posts, 1)
	})

	t.Run("member_comments", func(t *testing.T) {
		comment, err := service.CreateComment(ctx, "member-1", "post-1", "Great point.")
		require.NoError(t, err)
		assert.Equal(t, "post-1", comment.PostID)
	})

	t.Run("comment_content_limits", func(t *testing.T) {
		_, err := service.CreateComment(ctx, "member-1", "post-1", "")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

		_, err = service.CreateComment(ctx, "member-1", "post-1", strings.Repeat("a", 1001))
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}
