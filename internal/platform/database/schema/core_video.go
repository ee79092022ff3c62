package schema

// CoreVideoTable represents the 'core.video' table
type CoreVideoTable struct {
	Table       string
	ID          string
	ChannelID   string
	Title       string
	Description string
	Slug        string
	VideoURL    string
	CoverURL    string
	Duration    string
	Visibility  string
	Views       string
	Likes       string
	Dislikes    string
	PublishedAt string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// CoreVideo is the schema definition for core.video
//
// Likes and Dislikes are denormalized counters kept consistent with
// social.likestate inside a single transaction.
var CoreVideo = CoreVideoTable{
	Table:       "core.video",
	ID:          "id",
	ChannelID:   "channelid",
	Title:       "title",
	Description: "description",
	Slug:        "slug",
	VideoURL:    "videourl",
	CoverURL:    "coverurl",
	Duration:    "duration",
	Visibility:  "visibility",
	Views:       "views",
	Likes:       "likes",
	Dislikes:    "dislikes",
	PublishedAt: "publishedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

// Columns returns all standard column names
func (t CoreVideoTable) Columns() []string {
	return []string{
		t.ID, t.ChannelID, t.Title, t.Description, t.Slug, t.VideoURL,
		t.CoverURL, t.Duration, t.Visibility, t.Views, t.Likes, t.Dislikes,
		t.PublishedAt, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
