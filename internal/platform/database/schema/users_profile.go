package schema

// UsersProfileTable represents the 'users.profile' table
type UsersProfileTable struct {
	Table        string
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	AvatarURL    string
	Bio          string
	CreatedAt    string
	UpdatedAt    string
}

// UsersProfile is the schema definition for users.profile
var UsersProfile = UsersProfileTable{
	Table:        "users.profile",
	ID:           "id",
	Email:        "email",
	DisplayName:  "displayname",
	PasswordHash: "passwordhash",
	AvatarURL:    "avatarurl",
	Bio:          "bio",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t UsersProfileTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.DisplayName, t.PasswordHash, t.AvatarURL, t.Bio,
		t.CreatedAt, t.UpdatedAt,
	}
}
