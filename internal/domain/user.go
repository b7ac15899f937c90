package domain

import "time"

// UserRole distinguishes platform administrators from regular accounts.
type UserRole string

const (
	UserRoleStandard UserRole = "STANDARD"
	UserRoleAdmin    UserRole = "ADMIN"
)

// User is the domain model for platform accounts. Users are never
// hard-deleted.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
