package schema

// LibraryEnrollmentTable represents the 'library.enrollment' table
type LibraryEnrollmentTable struct {
	Table     string
	ID        string
	CourseID  string
	UserID    string
	CreatedAt string
}

// LibraryEnrollment is the schema definition for library.enrollment
var LibraryEnrollment = LibraryEnrollmentTable{
	Table:     "library.enrollment",
	ID:        "id",
	CourseID:  "courseid",
	UserID:    "userid",
	CreatedAt: "createdat",
}

func (t LibraryEnrollmentTable) Columns() []string {
	return []string{t.ID, t.CourseID, t.UserID, t.CreatedAt}
}
