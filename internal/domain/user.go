package domain

import "time"

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// Valid reports whether s is a known status.
func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// User is an account that can sign in. Every user belongs to exactly one office and one role.
type User struct {
	ID           string
	Name         string
	Email        string
	MobileNumber string
	PasswordHash string
	OfficeID     string
	RoleID       string
	RoleName     string
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
