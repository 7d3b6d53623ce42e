package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the platform.
type Role string

const (
	RoleTourist      Role = "tourist"
	RoleOrganization Role = "organization"
	// RoleAdmin is never stored: the admin is a virtual identity validated
	// against env credentials and carries uuid.Nil as user id.
	RoleAdmin Role = "admin"
)

// User represents a platform account (tourist or organization owner).
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
