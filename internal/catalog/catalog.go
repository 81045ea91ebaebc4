package catalog

import "context"

// SeedItem is one menu entry in a catalog seed document.
type SeedItem struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Loader defines the interface for loading catalog seed documents.
type Loader interface {
	// Load reads a JSON seed document and returns its menu entries.
	Load(ctx context.Context, path string) ([]SeedItem, error)
}
