package domain

import "time"

// Role names the two roles the admin gate distinguishes. Registration accepts
// any non-empty string, so these are comparison constants, not a closed set.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the domain model for registered accounts.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
