// Copyright (c) 2026 Loopspace. All rights reserved.
// Author: dev@loopspace.app

/*
Package feed implements the per-course community feed: posts written by
course members and the comment threads under them.

Access follows the course: members (owner plus enrolled users) can write,
and anyone who can view the course can read.
*/
package feed

import "time"

// # Domain Entities

// Post is a message on a course's community feed.
type Post struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment is a reply under a feed post.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CourseRef carries the access metadata of a course.
type CourseRef struct {
	ID       string
	OwnerID  string
	IsPublic bool
}
