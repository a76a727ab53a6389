// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is an account. IDs are opaque strings issued at registration.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	FullName     string
	PhoneNumber  string
	AvatarURL    string
	PushToken    string // Firebase registration token, empty when the user has no device
	IsHost       bool
	IsAdmin      bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Roles derives the role set carried in access tokens.
func (u *User) Roles() Roles {
	roles := Roles{RoleGuest}
	if u.IsHost {
		roles = append(roles, RoleHost)
	}
	if u.IsAdmin {
		roles = append(roles, RoleAdmin)
	}

	return roles
}
