package domain

import (
	"strings"
	"time"
)

// Role is the coarse account category shown in the admin UI.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// User is an account. Accounts are never deleted; IsActive=false is the
// tombstone.
type User struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	MobileNumber    *string // E.164, nil when not provided
	Bio             string
	Role            Role
	PasswordHash    string // argon2id PHC string
	IsActive        bool
	IsEmailVerified bool
	IsStaff         bool
	IsSuperuser     bool
	LastLogin       *time.Time
	DateJoined      time.Time
	LastUpdated     time.Time
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
