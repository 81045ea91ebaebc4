package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a single purchase intent in a user's cart. Name, price, and
// image are denormalised from the menu item at the time it was added, so a
// later menu edit does not reprice a pending cart line.
type CartItem struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Email      string    `json:"email" db:"email"`
	MenuItemID uuid.UUID `json:"menuItemId" db:"menu_item_id"`
	Name       string    `json:"name" db:"name"`
	Price      float64   `json:"price" db:"price"`
	Image      string    `json:"image,omitempty" db:"image"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// EnrichedCartItem is a cart line joined with the live menu item it
// references. Food is nil when the menu item has since been removed.
type EnrichedCartItem struct {
	CartItem
	Food *MenuItem `json:"food,omitempty"`
}

// CartItemRequest represents the request payload for adding a cart line.
type CartItemRequest struct {
	Email      string    `json:"email"`
	MenuItemID uuid.UUID `json:"menuItemId"`
}
