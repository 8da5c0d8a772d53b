package models

import "strings"

// Role is a user's global role in the platform. Roles are stored lowercase;
// ParseRole is the single canonicalization point for external input.
type Role string

const (
	RoleMOA        Role = "moa" // maître d'ouvrage, the only role that owns projects
	RoleArchitecte Role = "architecte"
	RoleAMOA       Role = "amoa"
	RoleBET        Role = "bet"
	RoleBCT        Role = "bct"
	RoleLabo       Role = "labo"
	RoleTopographe Role = "topographe"
)

var allRoles = []Role{
	RoleMOA,
	RoleArchitecte,
	RoleAMOA,
	RoleBET,
	RoleBCT,
	RoleLabo,
	RoleTopographe,
}

// AllRoles returns the closed set of accepted roles.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// ParseRole canonicalizes raw input (trim + lowercase) and validates it
// against the allowed set. Empty input defaults to RoleMOA.
func ParseRole(raw string) (Role, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return RoleMOA, true
	}
	for _, r := range allRoles {
		if Role(s) == r {
			return r, true
		}
	}
	return "", false
}

func (r Role) String() string { return string(r) }
