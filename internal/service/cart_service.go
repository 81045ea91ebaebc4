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

// cartService implements CartService.
type cartService struct {
	cartRepo repository.CartRepository
	menuRepo repository.MenuRepository
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	menuRepo repository.MenuRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo: cartRepo,
		menuRepo: menuRepo,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

// Add appends a purchase intent to the cart. The ledger keeps one line per
// add; adding the same menu item twice yields two lines.
func (s *cartService) Add(ctx context.Context, req *model.CartItemRequest) (*model.CartItem, error) {
	if req == nil {
		return nil, fmt.Errorf("cart item request is nil")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("email is required")
	}
	if req.MenuItemID == uuid.Nil {
		return nil, fmt.Errorf("menu item ID is required")
	}

	menuItem, err := s.menuRepo.GetByID(ctx, req.MenuItemID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("menu_item_id", req.MenuItemID.String()).
			Msg("failed to resolve menu item")
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	if menuItem == nil {
		s.logger.Warn().
			Str("menu_item_id", req.MenuItemID.String()).
			Msg("cart add references unknown menu item")
		return nil, model.ErrMenuItemNotFound
	}

	item := &model.CartItem{
		ID:         uuid.New(),
		Email:      strings.TrimSpace(req.Email),
		MenuItemID: menuItem.ID,
		Name:       menuItem.Name,
		Price:      menuItem.Price,
		Image:      menuItem.Image,
		CreatedAt:  time.Now(),
	}

	if err := s.cartRepo.Create(ctx, item); err != nil {
		s.logger.Error().Err(err).Str("email", item.Email).Msg("failed to create cart item")
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	s.logger.Info().
		Str("cart_item_id", item.ID.String()).
		Str("email", item.Email).
		Str("menu_item_id", menuItem.ID.String()).
		Msg("cart item added")

	return item, nil
}

// ListForOwner retrieves and enriches the cart lines of ownerEmail. The
// requester must be the owner; a mismatch is forbidden. A cart line whose
// menu item has since been removed is returned with a nil Food rather than
// failing the whole listing.
func (s *cartService) ListForOwner(ctx context.Context, requesterEmail, ownerEmail string) ([]model.EnrichedCartItem, error) {
	if requesterEmail != ownerEmail {
		s.logger.Warn().
			Str("requester", requesterEmail).
			Str("owner", ownerEmail).
			Msg("cart access denied for non-owner")
		return nil, model.ErrForbidden
	}

	items, err := s.cartRepo.GetByOwner(ctx, ownerEmail)
	if err != nil {
		s.logger.Error().Err(err).Str("email", ownerEmail).Msg("failed to list cart items")
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	enriched := make([]model.EnrichedCartItem, 0, len(items))
	for _, item := range items {
		line := model.EnrichedCartItem{CartItem: item}

		food, err := s.menuRepo.GetByID(ctx, item.MenuItemID)
		if err != nil {
			// Degrade gracefully: one failed enrichment must not fail the view.
			s.logger.Warn().
				Err(err).
				Str("cart_item_id", item.ID.String()).
				Str("menu_item_id", item.MenuItemID.String()).
				Msg("failed to enrich cart item, returning line without menu details")
		} else {
			line.Food = food
		}

		enriched = append(enriched, line)
	}

	s.logger.Debug().
		Str("email", ownerEmail).
		Int("count", len(enriched)).
		Msg("listed cart items")

	return enriched, nil
}

// Remove deletes a single cart line.
func (s *cartService) Remove(ctx context.Context, id uuid.UUID) (int64, error) {
	deleted, err := s.cartRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_item_id", id.String()).Msg("failed to remove cart item")
		return 0, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return deleted, nil
}
