package schema

// SocialEventTable represents the 'social.event' table
type SocialEventTable struct {
	Table       string
	ID          string
	CourseID    string
	Title       string
	Description string
	StartsAt    string
	EndsAt      string
	CreatedBy   string
	CreatedAt   string
}

// SocialEvent is the schema definition for social.event
var SocialEvent = SocialEventTable{
	Table:       "social.event",
	ID:          "id",
	CourseID:    "courseid",
	Title:       "title",
	Description: "description",
	StartsAt:    "startsat",
	EndsAt:      "endsat",
	CreatedBy:   "createdby",
	CreatedAt:   "createdat",
}

func (t SocialEventTable) Columns() []string {
	return []string{
		t.ID, t.CourseID, t.Title, t.Description, t.StartsAt, t.EndsAt,
		t.CreatedBy, t.CreatedAt,
	}
}
