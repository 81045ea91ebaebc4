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

// menuRepository implements the MenuRepository interface using PostgreSQL.
type menuRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMenuRepository creates a new PostgreSQL-backed menu repository.
func NewMenuRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuRepository {
	return &menuRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menu").Logger(),
	}
}

// GetAll retrieves menu items, optionally filtered by category.
func (r *menuRepository) GetAll(ctx context.Context, category string) ([]model.MenuItem, error) {
	query := `
		SELECT id, name, category, price, image, description, created_at
		FROM menu_items
		WHERE $1 = '' OR category = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		r.logger.Error().Err(err).Str("category", category).Msg("failed to query menu items")
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.Price, &m.Image, &m.Description, &m.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu item row")
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu item rows")
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}

// GetByID retrieves a single menu item by its ID.
func (r *menuRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	query := `
		SELECT id, name, category, price, image, description, created_at
		FROM menu_items
		WHERE id = $1
	`

	var m model.MenuItem
	err := r.pool.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Category, &m.Price, &m.Image, &m.Description, &m.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("menu_item_id", id.String()).Msg("menu item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to query menu item")
		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}

	return &m, nil
}

// Create inserts a new menu item.
func (r *menuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, name, category, price, image, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.Price, item.Image, item.Description, item.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", item.Name).Msg("failed to create menu item")
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	r.logger.Debug().
		Str("menu_item_id", item.ID.String()).
		Str("name", item.Name).
		Msg("menu item created successfully")

	return nil
}

// Update applies a partial update to a menu item. Nil fields keep their
// current values.
func (r *menuRepository) Update(ctx context.Context, id uuid.UUID, upd *model.MenuItemUpdate) (int64, error) {
	query := `
		UPDATE menu_items
		SET name        = COALESCE($2, name),
		    category    = COALESCE($3, category),
		    price       = COALESCE($4, price),
		    image       = COALESCE($5, image),
		    description = COALESCE($6, description)
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, upd.Name, upd.Category, upd.Price, upd.Image, upd.Description)
	if err != nil {
		r.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to update menu item")
		return 0, fmt.Errorf("failed to update menu item: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Delete removes a menu item.
func (r *menuRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `
		DELETE FROM menu_items
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to delete menu item")
		return 0, fmt.Errorf("failed to delete menu item: %w", err)
	}

	return tag.RowsAffected(), nil
}

// UpsertBatch inserts or refreshes menu items keyed by name.
func (r *menuRepository) UpsertBatch(ctx context.Context, items []model.MenuItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO menu_items (id, name, category, price, image, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE
		SET category    = EXCLUDED.category,
		    price       = EXCLUDED.price,
		    image       = EXCLUDED.image,
		    description = EXCLUDED.description
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.Name, item.Category, item.Price, item.Image, item.Description, item.CreatedAt)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("name", items[i].Name).
				Msg("failed to upsert menu item")
			return fmt.Errorf("failed to upsert menu item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("menu items upserted successfully")

	return nil
}
