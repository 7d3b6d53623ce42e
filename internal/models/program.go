package models

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty grades a travel program.
type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyModerate    Difficulty = "moderate"
	DifficultyChallenging Difficulty = "challenging"
)

// Valid reports whether d is one of the known difficulty grades.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyChallenging:
		return true
	}
	return false
}

// DefaultPriceDescription is used when a program does not specify one.
const DefaultPriceDescription = "Үнэ нь бүлгийн хэмжээнээс хамаарна"

// Program is a catalog entry owned by an organization user.
// OrganizationName is a snapshot of the owner's name at creation time.
type Program struct {
	ID               uuid.UUID     `json:"id"`
	OrganizationID   uuid.UUID     `json:"organizationId"`
	OrganizationName string        `json:"organizationName"`
	Title            string        `json:"title"`
	Subtitle         string        `json:"subtitle"`
	Description      string        `json:"description"`
	FullDescription  string        `json:"fullDescription"`
	Highlights       []string      `json:"highlights"`
	Activities       []string      `json:"activities"`
	Duration         string        `json:"duration"`
	Price            float64       `json:"price"`
	PriceDescription string        `json:"priceDescription"`
	Image            string        `json:"image"`
	Difficulty       Difficulty    `json:"difficulty"`
	BestTime         string        `json:"bestTime"`
	Status           ProfileStatus `json:"status"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}
