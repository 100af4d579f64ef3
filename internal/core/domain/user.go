package domain

const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
)

// DefaultRoles are seeded into an empty role collection, highest tier first.
var DefaultRoles = []string{RoleSuperAdmin, RoleAdmin, RoleUser}

// User is an account as persisted in the users collection.
// Password holds a bcrypt hash; plaintext values only appear in legacy data
// files and are upgraded on the next successful sign-in.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Identity returns the credential payload for u.
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

// Identity is the actor snapshot carried inside a credential. Its Role is the
// role at issuance time, not necessarily the stored one.
type Identity struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Authenticated reports whether the identity came from a verified credential.
func (i Identity) Authenticated() bool {
	return i.ID > 0 && i.Role != ""
}
