package repository

import (
	"context"

	"bistro-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines the interface for user and role data access.
type UserRepository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user by email. Returns (nil, nil) when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetAll retrieves all user records.
	GetAll(ctx context.Context) ([]model.User, error)

	// PromoteToAdmin sets the admin role on the user with the given ID and
	// returns the number of rows updated.
	PromoteToAdmin(ctx context.Context, id uuid.UUID) (int64, error)
}

// MenuRepository defines the interface for menu item data access.
type MenuRepository interface {
	// GetAll retrieves menu items, optionally filtered by category.
	GetAll(ctx context.Context, category string) ([]model.MenuItem, error)

	// GetByID retrieves a single menu item. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)

	// Create inserts a new menu item.
	Create(ctx context.Context, item *model.MenuItem) error

	// Update applies a partial update and returns the number of rows updated.
	Update(ctx context.Context, id uuid.UUID, upd *model.MenuItemUpdate) (int64, error)

	// Delete removes a menu item and returns the number of rows deleted.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// UpsertBatch inserts or refreshes menu items keyed by name. Used by the
	// catalog seed importer.
	UpsertBatch(ctx context.Context, items []model.MenuItem) error
}

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	// GetAll retrieves all reviews.
	GetAll(ctx context.Context) ([]model.Review, error)
}

// CartRepository defines the interface for cart ledger data access.
type CartRepository interface {
	// Create appends a new cart line.
	Create(ctx context.Context, item *model.CartItem) error

	// GetByOwner retrieves all cart lines owned by the given email.
	GetByOwner(ctx context.Context, email string) ([]model.CartItem, error)

	// GetByIDs retrieves cart lines by their IDs.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.CartItem, error)

	// Delete removes a single cart line and returns the number of rows
	// deleted. Deleting an absent line is not an error.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// DeleteMany removes every cart line whose ID is in the set, within the
	// provided transaction, and returns the number of rows deleted.
	DeleteMany(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) (int64, error)
}

// PaymentRepository defines the interface for payment record data access.
type PaymentRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new payment record within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) error

	// GetByID retrieves a payment record. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
}
