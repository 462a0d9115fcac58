package entity

import (
	"time"
)

// UserRole distinguishes regular hosts from pro hosts.
type UserRole string

const (
	RoleRegular UserRole = "regular"
	RolePro     UserRole = "pro"
)

func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RoleRegular, RolePro:
		return UserRole(s), true
	default:
		return "", false
	}
}

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	AvatarURL string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}
