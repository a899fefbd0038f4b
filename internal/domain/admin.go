package domain

import "time"

// Admin models an operator account. Admins live in their own table, separate
// from users, and always carry the admin role.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
