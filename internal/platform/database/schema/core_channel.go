package schema

// CoreChannelTable represents the 'core.channel' table
type CoreChannelTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	CreatedBy   string
	CreatedAt   string
	UpdatedAt   string
}

// CoreChannel is the schema definition for core.channel
var CoreChannel = CoreChannelTable{
	Table:       "core.channel",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	CreatedBy:   "createdby",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreChannelTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Slug, t.Description, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	}
}
