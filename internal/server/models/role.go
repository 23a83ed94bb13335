package models

import (
	"fmt"
	"slices"
	"strings"
)

// Role is one of the closed set of recognised roles.
type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleUserManager Role = "UserManager"
	RoleRegularUser Role = "RegularUser"
)

// AllRoles lists every recognised role.
var AllRoles = []Role{RoleAdmin, RoleUserManager, RoleRegularUser}

// Valid reports whether r is a recognised role.
func (r Role) Valid() bool {
	return slices.Contains(AllRoles, r)
}

func (r Role) String() string { return string(r) }

// ParseRole matches s case-insensitively against the recognised roles.
func ParseRole(s string) (Role, error) {
	for _, r := range AllRoles {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// ParseRoles converts role names taken from a token into roles. Unknown
// names are dropped.
func ParseRoles(names []string) []Role {
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		if r, err := ParseRole(n); err == nil && !slices.Contains(roles, r) {
			roles = append(roles, r)
		}
	}
	return roles
}

// RoleNames is the inverse of ParseRoles.
func RoleNames(roles []Role) []string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}

// AnyOf reports whether held and required share at least one role.
func AnyOf(held, required []Role) bool {
	for _, r := range held {
		if slices.Contains(required, r) {
			return true
		}
	}
	return false
}
