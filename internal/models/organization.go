package models

import (
	"time"

	"github.com/google/uuid"
)

// ProfileStatus is the lifecycle status shared by organization profiles and programs.
type ProfileStatus string

const (
	StatusActive   ProfileStatus = "active"
	StatusInactive ProfileStatus = "inactive"
	StatusPending  ProfileStatus = "pending"
)

// Organization is the business profile attached 1:1 to an organization user.
type Organization struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"userId"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Description   string        `json:"description"`
	Logo          string        `json:"logo"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	Website       string        `json:"website"`
	Rating        float64       `json:"rating"`
	TotalPrograms int           `json:"totalPrograms"`
	Status        ProfileStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
