package entity

import (
	"time"
)

// Role is the coarse authorization tier assigned to a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole validates a raw role string against the known set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}

// User is an account. Deactivation is a soft delete: the row stays and
// is_active flips to false. RefreshToken holds the single currently valid
// refresh token for the account, or nil when logged out.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	RefreshToken *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser builds a fresh account with the default role. Registration never
// assigns admin; role changes go through the admin role operation.
func NewUser(email, username, fullName, passwordHash string) *User {
	now := time.Now()
	return &User{
		Email:        email,
		Username:     username,
		FullName:     fullName,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
