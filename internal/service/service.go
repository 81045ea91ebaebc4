package service

import (
	"context"

	"bistro-api/internal/model"
	"bistro-api/internal/payment"

	"github.com/google/uuid"
)

// UserService defines operations for registration and role management.
type UserService interface {
	// Register creates a user record for the email if one does not already
	// exist. The bool reports whether a new record was created; re-registering
	// an existing email is a no-op.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, bool, error)

	// GetAll retrieves all user records.
	GetAll(ctx context.Context) ([]model.User, error)

	// IsAdmin reports whether the user with the given email holds the admin
	// role. An unknown email is simply not an admin.
	IsAdmin(ctx context.Context, email string) (bool, error)

	// PromoteToAdmin grants the admin role to the user with the given ID and
	// returns the number of records updated.
	PromoteToAdmin(ctx context.Context, id uuid.UUID) (int64, error)
}

// MenuService defines operations for menu management.
type MenuService interface {
	// GetAll retrieves menu items, optionally filtered by category.
	GetAll(ctx context.Context, category string) ([]model.MenuItem, error)

	// GetByID retrieves a single menu item.
	GetByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)

	// Create adds a new menu item.
	Create(ctx context.Context, req *model.MenuItemRequest) (*model.MenuItem, error)

	// Update applies a partial update and returns the number of rows updated.
	Update(ctx context.Context, id uuid.UUID, upd *model.MenuItemUpdate) (int64, error)

	// Delete removes a menu item and returns the number of rows deleted.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// ReviewService defines operations for review browsing.
type ReviewService interface {
	// GetAll retrieves all reviews.
	GetAll(ctx context.Context) ([]model.Review, error)
}

// CartService defines operations on the cart ledger.
type CartService interface {
	// Add appends a purchase intent, denormalising the menu item's name,
	// price, and image onto the cart line.
	Add(ctx context.Context, req *model.CartItemRequest) (*model.CartItem, error)

	// ListForOwner retrieves the cart lines owned by ownerEmail, each
	// enriched with its live menu item. The requester must be the owner.
	ListForOwner(ctx context.Context, requesterEmail, ownerEmail string) ([]model.EnrichedCartItem, error)

	// Remove deletes a single cart line and returns the number of rows
	// deleted. Removing an absent line is not an error.
	Remove(ctx context.Context, id uuid.UUID) (int64, error)
}

// CheckoutService coordinates the cart-to-payment transition.
type CheckoutService interface {
	// CreateIntent asks the gateway to authorise a charge and returns the
	// client secret for the frontend to confirm.
	CreateIntent(ctx context.Context, amountCents int64) (*payment.Intent, error)

	// Checkout settles the referenced cart items for the given owner:
	// validates the amount against stored prices, authorises the charge,
	// records the payment, and clears the cart lines as one logical commit.
	Checkout(ctx context.Context, email string, req *model.CheckoutRequest) (*model.CheckoutResponse, error)
}
