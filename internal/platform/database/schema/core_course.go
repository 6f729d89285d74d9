package schema

// CoreCourseTable represents the 'core.course' table
type CoreCourseTable struct {
	Table        string
	ID           string
	ChannelID    string
	Title        string
	Description  string
	ThumbnailURL string
	IsPublic     string
	CreatedBy    string
	CreatedAt    string
	UpdatedAt    string
}

// CoreCourse is the schema definition for core.course
var CoreCourse = CoreCourseTable{
	Table:        "core.course",
	ID:           "id",
	ChannelID:    "channelid",
	Title:        "title",
	Description:  "description",
	ThumbnailURL: "thumbnailurl",
	IsPublic:     "ispublic",
	CreatedBy:    "createdby",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t CoreCourseTable) Columns() []string {
	return []string{
		t.ID, t.ChannelID, t.Title, t.Description, t.ThumbnailURL, t.IsPublic,
		t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	}
}
