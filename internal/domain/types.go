package domain

import "strings"

// Role represents the capability level attached to an authenticated viewer.
type Role string

const (
	// RoleAdmin unlocks edit affordances and write operations.
	RoleAdmin Role = "admin"
	// RoleUser identifies an authenticated viewer without edit rights.
	RoleUser Role = "user"
)

// ParseRole normalizes a stored role string. Anything that is not an exact
// admin match degrades to RoleUser so unknown or malformed records never
// grant edit capability.
func ParseRole(value string) Role {
	if strings.EqualFold(strings.TrimSpace(value), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

// IsAdmin reports whether the role unlocks write operations.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Actor identifies the viewer attempting an operation. Services receive the
// actor explicitly instead of reading ambient session state.
type Actor struct {
	UID  string
	Role Role
}

// IsAdmin reports whether the actor may perform write operations.
func (a Actor) IsAdmin() bool { return a.UID != "" && a.Role.IsAdmin() }
