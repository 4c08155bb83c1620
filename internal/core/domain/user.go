package domain

import "time"

type UserID string

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleInstructor UserRole = "instructor"
	RoleStudent    UserRole = "student"
)

// Privileged reports whether the role bypasses entitlement checks.
func (r UserRole) Privileged() bool {
	return r == RoleAdmin || r == RoleInstructor
}

type UserStatus string

const (
	StatusPending  UserStatus = "pending"
	StatusApproved UserStatus = "approved"
	StatusRejected UserStatus = "rejected"
)

type User struct {
	ID           UserID
	Email        string
	Name         string
	Role         UserRole
	Status       UserStatus
	Active       bool
	PasswordHash string
	CreatedAt    time.Time
}

// CanLogin reports whether the account may start a session.
func (u *User) CanLogin() bool {
	return u.Active && u.Status == StatusApproved
}
