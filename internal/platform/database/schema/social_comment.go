package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	PostID    string
	AuthorID  string
	Content   string
	CreatedAt string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	PostID:    "postid",
	AuthorID:  "authorid",
	Content:   "content",
	CreatedAt: "createdat",
}

func (t SocialCommentTable) Columns() []string {
	return []string{t.ID, t.PostID, t.AuthorID, t.Content, t.CreatedAt}
}
