package schema

// UserChannelTable represents the 'users.channel' table
type UserChannelTable struct {
	Table       string
	ID          string
	OwnerID     string
	Handle      string
	Title       string
	Description string
	AvatarURL   string
	CoverURL    string
	Subscribers string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// UserChannel is the schema definition for users.channel
var UserChannel = UserChannelTable{
	Table:       "users.channel",
	ID:          "id",
	OwnerID:     "ownerid",
	Handle:      "handle",
	Title:       "title",
	Description: "description",
	AvatarURL:   "avatarurl",
	CoverURL:    "coverurl",
	Subscribers: "subscribers",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

// Columns returns all standard column names
func (t UserChannelTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Handle, t.Title, t.Description,
		t.AvatarURL, t.CoverURL, t.Subscribers,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
