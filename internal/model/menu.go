package model

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem represents a dish on the restaurant menu.
type MenuItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Price       float64   `json:"price" db:"price"`
	Image       string    `json:"image,omitempty" db:"image"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// MenuItemRequest represents the request payload for creating a menu item.
type MenuItemRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

// MenuItemUpdate carries partial updates for a menu item. Nil fields are
// left unchanged.
type MenuItemUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Description *string  `json:"description,omitempty"`
}
