package schema

// UserCredentialTable represents the 'users.credential' table
type UserCredentialTable struct {
	Table      string
	UserID     string
	Method     string
	Username   string
	SecretHash string
	CreatedAt  string
	UpdatedAt  string
}

// UserCredential is the schema definition for users.credential
//
// Primary key is (userid, method): one credential per sign-in method per user.
var UserCredential = UserCredentialTable{
	Table:      "users.credential",
	UserID:     "userid",
	Method:     "method",
	Username:   "username",
	SecretHash: "secrethash",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}
