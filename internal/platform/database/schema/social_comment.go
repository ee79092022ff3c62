package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	VideoID   string
	UserID    string
	Body      string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	VideoID:   "videoid",
	UserID:    "userid",
	Body:      "body",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

// Columns returns all standard column names
func (t SocialCommentTable) Columns() []string {
	return []string{
		t.ID, t.VideoID, t.UserID, t.Body,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
