package schema

// LibraryProgressTable represents the 'library.progress' table
type LibraryProgressTable struct {
	Table       string
	ID          string
	LessonID    string
	UserID      string
	IsCompleted string
	CompletedAt string
	UpdatedAt   string
}

// LibraryProgress is the schema definition for library.progress
var LibraryProgress = LibraryProgressTable{
	Table:       "library.progress",
	ID:          "id",
	LessonID:    "lessonid",
	UserID:      "userid",
	IsCompleted: "iscompleted",
	CompletedAt: "completedat",
	UpdatedAt:   "updatedat",
}

func (t LibraryProgressTable) Columns() []string {
	return []string{
		t.ID, t.LessonID, t.UserID, t.IsCompleted, t.CompletedAt, t.UpdatedAt,
	}
}
