package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Nick      string
	Name      string
	Bio       string
	Tel       string
	Email     string
	AvatarURL string
	Role      string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	Nick:      "nick",
	Name:      "name",
	Bio:       "bio",
	Tel:       "tel",
	Email:     "email",
	AvatarURL: "avatarurl",
	Role:      "role",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Nick, t.Name, t.Bio, t.Tel, t.Email, t.AvatarURL,
		t.Role, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
