package catalog

import (
	"context"
	"fmt"
	"time"

	"bistro-api/internal/model"
	"bistro-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Importer loads a catalog seed document and upserts its entries into the
// menu store. Items are keyed by name, so re-running an import refreshes
// prices and descriptions without duplicating rows.
type Importer struct {
	loader Loader
	menu   repository.MenuRepository
	logger zerolog.Logger
}

// NewImporter creates a new catalog importer.
func NewImporter(loader Loader, menu repository.MenuRepository, logger zerolog.Logger) *Importer {
	return &Importer{
		loader: loader,
		menu:   menu,
		logger: logger.With().Str("component", "catalog-importer").Logger(),
	}
}

// Run imports the seed document at the given path.
func (i *Importer) Run(ctx context.Context, path string) error {
	seed, err := i.loader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load catalog seed: %w", err)
	}

	if len(seed) == 0 {
		i.logger.Warn().Str("path", path).Msg("catalog seed document is empty, nothing to import")
		return nil
	}

	now := time.Now()
	items := make([]model.MenuItem, len(seed))
	for idx, entry := range seed {
		items[idx] = model.MenuItem{
			ID:          uuid.New(),
			Name:        entry.Name,
			Category:    entry.Category,
			Price:       entry.Price,
			Image:       entry.Image,
			Description: entry.Description,
			CreatedAt:   now,
		}
	}

	if err := i.menu.UpsertBatch(ctx, items); err != nil {
		return fmt.Errorf("failed to import catalog seed: %w", err)
	}

	i.logger.Info().
		Str("path", path).
		Int("items_imported", len(items)).
		Msg("catalog seed imported")

	return nil
}
