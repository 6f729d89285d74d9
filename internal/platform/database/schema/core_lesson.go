package schema

// CoreLessonTable represents the 'core.lesson' table
type CoreLessonTable struct {
	Table       string
	ID          string
	ChapterID   string
	Title       string
	Content     string
	OrderNumber string
	IsPublished string
	CreatedBy   string
	CreatedAt   string
	UpdatedAt   string
}

// CoreLesson is the schema definition for core.lesson
var CoreLesson = CoreLessonTable{
	Table:       "core.lesson",
	ID:          "id",
	ChapterID:   "chapterid",
	Title:       "title",
	Content:     "content",
	OrderNumber: "ordernumber",
	IsPublished: "ispublished",
	CreatedBy:   "createdby",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreLessonTable) Columns() []string {
	return []string{
		t.ID, t.ChapterID, t.Title, t.Content, t.OrderNumber, t.IsPublished,
		t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	}
}
