package schema

// CoreChapterTable represents the 'core.chapter' table
type CoreChapterTable struct {
	Table       string
	ID          string
	CourseID    string
	Title       string
	OrderNumber string
	IsPublished string
	CreatedAt   string
	UpdatedAt   string
}

// CoreChapter is the schema definition for core.chapter
var CoreChapter = CoreChapterTable{
	Table:       "core.chapter",
	ID:          "id",
	CourseID:    "courseid",
	Title:       "title",
	OrderNumber: "ordernumber",
	IsPublished: "ispublished",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreChapterTable) Columns() []string {
	return []string{
		t.ID, t.CourseID, t.Title, t.OrderNumber, t.IsPublished,
		t.CreatedAt, t.UpdatedAt,
	}
}
