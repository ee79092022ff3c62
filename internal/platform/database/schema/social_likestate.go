package schema

// SocialLikeStateTable represents the 'social.likestate' table
type SocialLikeStateTable struct {
	Table     string
	UserID    string
	VideoID   string
	State     string
	CreatedAt string
	UpdatedAt string
}

// SocialLikeState is the schema definition for social.likestate
//
// Primary key is (userid, videoid); state is LIKED or DISLIKED, a missing
// row means no reaction.
var SocialLikeState = SocialLikeStateTable{
	Table:     "social.likestate",
	UserID:    "userid",
	VideoID:   "videoid",
	State:     "state",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
