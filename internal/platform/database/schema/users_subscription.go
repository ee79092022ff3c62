package schema

// UserSubscriptionTable represents the 'users.subscription' table
type UserSubscriptionTable struct {
	Table     string
	UserID    string
	ChannelID string
	CreatedAt string
}

// UserSubscription is the schema definition for users.subscription
//
// Primary key is (userid, channelid): subscribing twice is a no-op.
var UserSubscription = UserSubscriptionTable{
	Table:     "users.subscription",
	UserID:    "userid",
	ChannelID: "channelid",
	CreatedAt: "createdat",
}
