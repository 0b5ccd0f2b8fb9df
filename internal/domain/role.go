package domain

// RoleID enumerates the closed set of operator roles. The roles table is
// seeded by migration and never grows at runtime.
type RoleID int

const (
	RoleAdmin    RoleID = 1
	RoleSubAdmin RoleID = 2
)

// Role pairs a role identifier with its display label.
type Role struct {
	ID    RoleID
	Label string
}

// Valid reports whether the id belongs to the closed role set.
func (r RoleID) Valid() bool {
	switch r {
	case RoleAdmin, RoleSubAdmin:
		return true
	default:
		return false
	}
}

// Label returns the display label for the role.
func (r RoleID) Label() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleSubAdmin:
		return "SUB ADMIN"
	default:
		return ""
	}
}
