package models

import "time"

type User struct {
	ID           string
	UserName     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash []byte
	Roles        []Role
	CreatedAt    time.Time
}

// HasRole reports whether u holds role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
