package model

import (
	"time"

	"github.com/google/uuid"
)

// Role values stored on a user record. An empty role is an ordinary customer.
const (
	RoleAdmin = "admin"
)

// User represents a registered identity and its role.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name,omitempty" db:"name"`
	Role      string    `json:"role,omitempty" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// RegisterRequest represents the request payload for registering a user.
type RegisterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
