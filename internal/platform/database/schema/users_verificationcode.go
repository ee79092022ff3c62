package schema

// UserVerificationCodeTable represents the 'users.verificationcode' table
type UserVerificationCodeTable struct {
	Table    string
	Username string
	Purpose  string
	CodeHash string
	IssuedAt string
}

// UserVerificationCode is the schema definition for users.verificationcode
//
// Primary key is (username, purpose): re-requesting a code replaces the
// previous one rather than accumulating rows.
var UserVerificationCode = UserVerificationCodeTable{
	Table:    "users.verificationcode",
	Username: "username",
	Purpose:  "purpose",
	CodeHash: "codehash",
	IssuedAt: "issuedat",
}
