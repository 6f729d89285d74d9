package schema

// SocialPostTable represents the 'social.post' table
type SocialPostTable struct {
	Table     string
	ID        string
	CourseID  string
	AuthorID  string
	Content   string
	CreatedAt string
	UpdatedAt string
}

// SocialPost is the schema definition for social.post
var SocialPost = SocialPostTable{
	Table:     "social.post",
	ID:        "id",
	CourseID:  "courseid",
	AuthorID:  "authorid",
	Content:   "content",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t SocialPostTable) Columns() []string {
	return []string{t.ID, t.CourseID, t.AuthorID, t.Content, t.CreatedAt, t.UpdatedAt}
}
