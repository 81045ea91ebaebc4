package repository

import (
	"context"
	"fmt"

	"bistro-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// Create appends a new cart line.
func (r *cartRepository) Create(ctx context.Context, item *model.CartItem) error {
	query := `
		INSERT INTO cart_items (id, email, menu_item_id, name, price, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.Email, item.MenuItemID, item.Name, item.Price, item.Image, item.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("email", item.Email).
			Str("menu_item_id", item.MenuItemID.String()).
			Msg("failed to create cart item")
		return fmt.Errorf("failed to create cart item: %w", err)
	}

	r.logger.Debug().
		Str("cart_item_id", item.ID.String()).
		Str("email", item.Email).
		Msg("cart item created successfully")

	return nil
}

// GetByOwner retrieves all cart lines owned by the given email.
func (r *cartRepository) GetByOwner(ctx context.Context, email string) ([]model.CartItem, error) {
	query := `
		SELECT id, email, menu_item_id, name, price, image, created_at
		FROM cart_items
		WHERE email = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	return scanCartItems(rows, r.logger)
}

// GetByIDs retrieves cart lines by their IDs.
func (r *cartRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.CartItem, error) {
	if len(ids) == 0 {
		return []model.CartItem{}, nil
	}

	query := `
		SELECT id, email, menu_item_id, name, price, image, created_at
		FROM cart_items
		WHERE id = ANY($1)
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query cart items by IDs")
		return nil, fmt.Errorf("failed to query cart items by IDs: %w", err)
	}
	defer rows.Close()

	return scanCartItems(rows, r.logger)
}

// Delete removes a single cart line.
func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `
		DELETE FROM cart_items
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_item_id", id.String()).Msg("failed to delete cart item")
		return 0, fmt.Errorf("failed to delete cart item: %w", err)
	}

	return tag.RowsAffected(), nil
}

// DeleteMany removes every cart line whose ID is in the set, within the
// provided transaction.
func (r *cartRepository) DeleteMany(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `
		DELETE FROM cart_items
		WHERE id = ANY($1)
	`

	tag, err := tx.Exec(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to delete cart items")
		return 0, fmt.Errorf("failed to delete cart items: %w", err)
	}

	r.logger.Debug().
		Int("requested", len(ids)).
		Int64("deleted", tag.RowsAffected()).
		Msg("cart items deleted")

	return tag.RowsAffected(), nil
}

// scanCartItems drains rows into cart items.
func scanCartItems(rows pgx.Rows, logger zerolog.Logger) ([]model.CartItem, error) {
	var items []model.CartItem
	for rows.Next() {
		var c model.CartItem
		err := rows.Scan(&c.ID, &c.Email, &c.MenuItemID, &c.Name, &c.Price, &c.Image, &c.CreatedAt)
		if err != nil {
			logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, c)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}
