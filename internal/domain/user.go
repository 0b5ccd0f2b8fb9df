package domain

import "time"

// User is the domain model for managed accounts.
type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	Contact      *string
	PasswordHash string
	IsActive     bool
	RoleID       RoleID
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
