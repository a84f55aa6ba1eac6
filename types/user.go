package types

// Roles recognized by the API. Officers are scoped to a department, admins
// see everything.
const (
	RoleCitizen = "citizen"
	RoleOfficer = "officer"
	RoleAdmin   = "city_admin"
)

// User is an account stored in Firestore. PasswordHash never leaves the
// server.
type User struct {
	ID           string `firestore:"-" json:"id"`
	Name         string `firestore:"name" json:"name"`
	Email        string `firestore:"email" json:"email"`
	PasswordHash string `firestore:"passwordHash" json:"-"`
	Role         string `firestore:"role" json:"role"`
	Department   string `firestore:"department,omitempty" json:"department,omitempty"`
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	Subject    string `json:"sub"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}
