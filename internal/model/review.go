package model

import "github.com/google/uuid"

// Review represents a customer review of the restaurant.
type Review struct {
	ID      uuid.UUID `json:"id" db:"id"`
	Name    string    `json:"name" db:"name"`
	Details string    `json:"details" db:"details"`
	Rating  float64   `json:"rating" db:"rating"`
}
