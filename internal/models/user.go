package models

import "strings"

// Role is the closed set of identities the front-end renders for
type Role int

const (
	RoleAnonymous Role = iota
	RoleVolunteer
	RoleOrganization
	RoleAdmin
)

// ParseRole maps a role claim to a Role. Both the full names and the backend's one-letter
// codes are accepted; anything else is anonymous.
func ParseRole(claim string) Role {
	switch strings.ToLower(strings.TrimSpace(claim)) {
	case "volunteer", "v":
		return RoleVolunteer
	case "organization", "o":
		return RoleOrganization
	case "admin", "a":
		return RoleAdmin
	default:
		return RoleAnonymous
	}
}

// String returns the lower-case name of the role
func (r Role) String() string {
	switch r {
	case RoleVolunteer:
		return "volunteer"
	case RoleOrganization:
		return "organization"
	case RoleAdmin:
		return "admin"
	case RoleAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// User represents a platform user as returned by the backend
type User struct {
	ID        int64  `json:"id" yaml:"id"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	FirstName string `json:"firstName,omitempty" yaml:"first_name,omitempty"`
	LastName  string `json:"lastName,omitempty" yaml:"last_name,omitempty"`
	Role      string `json:"role,omitempty" yaml:"role,omitempty"`
}

// Principal is the identity the current session acts as
type Principal struct {
	Role   Role
	UserID int64
	Email  string
	Token  string
}

// Anonymous returns the principal of a visitor who is not logged in
func Anonymous() Principal {
	return Principal{Role: RoleAnonymous}
}

// Authenticated reports whether the principal carries a token and a usable user id
func (p Principal) Authenticated() bool {
	return p.Role != RoleAnonymous && p.Token != "" && p.UserID != 0
}
