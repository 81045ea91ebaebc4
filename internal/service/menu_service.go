package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bistro-api/internal/model"
	"bistro-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// menuService implements MenuService.
type menuService struct {
	menuRepo repository.MenuRepository
	logger   zerolog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(menuRepo repository.MenuRepository, logger zerolog.Logger) MenuService {
	return &menuService{
		menuRepo: menuRepo,
		logger:   logger.With().Str("service", "menu").Logger(),
	}
}

// GetAll retrieves menu items, optionally filtered by category.
func (s *menuService) GetAll(ctx context.Context, category string) ([]model.MenuItem, error) {
	items, err := s.menuRepo.GetAll(ctx, category)
	if err != nil {
		s.logger.Error().Err(err).Str("category", category).Msg("failed to get menu items")
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}

	s.logger.Debug().
		Int("count", len(items)).
		Str("category", category).
		Msg("retrieved menu items")

	return items, nil
}

// GetByID retrieves a single menu item.
func (s *menuService) GetByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to get menu item")
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	if item == nil {
		return nil, model.ErrMenuItemNotFound
	}

	return item, nil
}

// Create adds a new menu item.
func (s *menuService) Create(ctx context.Context, req *model.MenuItemRequest) (*model.MenuItem, error) {
	if req == nil {
		return nil, fmt.Errorf("menu item request is nil")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("menu item name is required")
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("menu item price cannot be negative")
	}

	item := &model.MenuItem{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Category:    req.Category,
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.menuRepo.Create(ctx, item); err != nil {
		s.logger.Error().Err(err).Str("name", item.Name).Msg("failed to create menu item")
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.logger.Info().
		Str("menu_item_id", item.ID.String()).
		Str("name", item.Name).
		Msg("menu item created")

	return item, nil
}

// Update applies a partial update to a menu item.
func (s *menuService) Update(ctx context.Context, id uuid.UUID, upd *model.MenuItemUpdate) (int64, error) {
	if upd == nil {
		return 0, fmt.Errorf("menu item update is nil")
	}
	if upd.Price != nil && *upd.Price < 0 {
		return 0, fmt.Errorf("menu item price cannot be negative")
	}

	updated, err := s.menuRepo.Update(ctx, id, upd)
	if err != nil {
		s.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to update menu item")
		return 0, fmt.Errorf("failed to update menu item: %w", err)
	}

	return updated, nil
}

// Delete removes a menu item.
func (s *menuService) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	deleted, err := s.menuRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("menu_item_id", id.String()).Msg("failed to delete menu item")
		return 0, fmt.Errorf("failed to delete menu item: %w", err)
	}

	s.logger.Info().
		Str("menu_item_id", id.String()).
		Int64("deleted", deleted).
		Msg("menu item deleted")

	return deleted, nil
}

// reviewService implements ReviewService.
type reviewService struct {
	reviewRepo repository.ReviewRepository
	logger     zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, logger zerolog.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		logger:     logger.With().Str("service", "review").Logger(),
	}
}

// GetAll retrieves all reviews.
func (s *reviewService) GetAll(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.reviewRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get reviews")
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}
