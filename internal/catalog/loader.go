package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading seed documents from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalog loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a JSON seed document and returns its menu entries. The file is
// expected to contain a JSON array of seed items.
func (l *fileLoader) Load(ctx context.Context, path string) ([]SeedItem, error) {
	l.logger.Info().Str("file", path).Msg("loading catalog seed file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open catalog seed file")
		return nil, fmt.Errorf("failed to open catalog seed file %s: %w", path, err)
	}
	defer file.Close()

	items, err := decodeSeed(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode catalog seed file")
		return nil, fmt.Errorf("failed to decode catalog seed file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("items_loaded", len(items)).
		Msg("catalog seed file loaded successfully")

	return items, nil
}

// decodeSeed decodes a JSON array of seed items, dropping entries without a
// name or with a negative price.
func decodeSeed(ctx context.Context, r io.Reader) ([]SeedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw []SeedItem
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	items := make([]SeedItem, 0, len(raw))
	for _, item := range raw {
		if item.Name == "" || item.Price < 0 {
			continue
		}
		items = append(items, item)
	}

	return items, nil
}
