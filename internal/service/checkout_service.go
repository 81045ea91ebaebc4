package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"bistro-api/internal/model"
	"bistro-api/internal/payment"
	"bistro-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Currency for all charges, matching the gateway account.
const checkoutCurrency = "usd"

// checkoutService implements CheckoutService. Checkouts for the same owner
// are serialised with a per-owner lock so two concurrent requests cannot both
// authorise a charge for the same cart lines.
type checkoutService struct {
	paymentRepo repository.PaymentRepository
	cartRepo    repository.CartRepository
	gateway     payment.Gateway
	logger      zerolog.Logger

	mu     sync.Mutex
	owners map[string]*sync.Mutex
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	paymentRepo repository.PaymentRepository,
	cartRepo repository.CartRepository,
	gateway payment.Gateway,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		paymentRepo: paymentRepo,
		cartRepo:    cartRepo,
		gateway:     gateway,
		logger:      logger.With().Str("service", "checkout").Logger(),
		owners:      make(map[string]*sync.Mutex),
	}
}

// CreateIntent asks the gateway to authorise a charge.
func (s *checkoutService) CreateIntent(ctx context.Context, amountCents int64) (*payment.Intent, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	intent, err := s.gateway.CreateIntent(ctx, amountCents, checkoutCurrency)
	if err != nil {
		s.logger.Error().Err(err).Int64("amount_cents", amountCents).Msg("gateway refused payment intent")
		return nil, model.ErrPaymentGateway
	}

	return intent, nil
}

// Checkout settles the referenced cart items for the given owner.
//
// Sequence: validate the client amount against stored cart prices, authorise
// the charge with the gateway, then record the payment and clear the cart
// lines in a single transaction keyed by a pre-generated payment ID. A
// gateway failure aborts before any store mutation; a store failure rolls the
// whole commit back, so a settled cart line can never coexist with its
// payment record.
func (s *checkoutService) Checkout(ctx context.Context, email string, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("checkout request is nil")
	}
	if len(req.CartIDs) == 0 {
		return nil, model.ErrEmptySelection
	}

	unlock := s.lockOwner(email)
	defer unlock()

	items, err := s.cartRepo.GetByIDs(ctx, req.CartIDs)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to load cart items for checkout")
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}
	if len(items) != len(req.CartIDs) {
		s.logger.Warn().
			Str("email", email).
			Int("requested", len(req.CartIDs)).
			Int("found", len(items)).
			Msg("checkout references missing cart items")
		return nil, model.ErrCartItemNotFound
	}

	for _, item := range items {
		if item.Email != email {
			s.logger.Warn().
				Str("email", email).
				Str("cart_item_id", item.ID.String()).
				Str("owner", item.Email).
				Msg("checkout references another user's cart item")
			return nil, model.ErrForbidden
		}
	}

	// The client's amount is advisory: the ledger's stored prices are the
	// source of truth.
	expectedCents := totalCents(items)
	if expectedCents != req.AmountCents {
		s.logger.Warn().
			Str("email", email).
			Int64("claimed_cents", req.AmountCents).
			Int64("expected_cents", expectedCents).
			Msg("checkout amount does not match cart total")
		return nil, model.ErrAmountMismatch
	}

	intent, err := s.gateway.CreateIntent(ctx, expectedCents, checkoutCurrency)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("email", email).
			Int64("amount_cents", expectedCents).
			Msg("gateway authorisation failed, checkout aborted")
		return nil, model.ErrPaymentGateway
	}

	record := &model.Payment{
		ID:             uuid.New(),
		Email:          email,
		AmountCents:    expectedCents,
		Currency:       checkoutCurrency,
		CartIDs:        req.CartIDs,
		TransactionRef: intent.TransactionRef,
		CreatedAt:      time.Now(),
	}

	tx, err := s.paymentRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin checkout transaction")
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	// Ensure the transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback checkout transaction")
			}
		}
	}()

	if err = s.paymentRepo.Create(ctx, tx, record); err != nil {
		s.logger.Error().
			Err(err).
			Str("payment_id", record.ID.String()).
			Msg("failed to record payment")
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	var deleted int64
	if deleted, err = s.cartRepo.DeleteMany(ctx, tx, req.CartIDs); err != nil {
		s.logger.Error().
			Err(err).
			Str("payment_id", record.ID.String()).
			Msg("failed to clear settled cart items")
		return nil, fmt.Errorf("failed to clear settled cart items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().
			Err(err).
			Str("payment_id", record.ID.String()).
			Msg("failed to commit checkout transaction")
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	s.logger.Info().
		Str("payment_id", record.ID.String()).
		Str("email", email).
		Int64("amount_cents", expectedCents).
		Int64("cart_items_cleared", deleted).
		Str("transaction_ref", intent.TransactionRef).
		Msg("checkout settled")

	return &model.CheckoutResponse{
		PaymentID:      record.ID,
		TransactionRef: intent.TransactionRef,
		DeletedCount:   deleted,
	}, nil
}

// lockOwner acquires the per-owner checkout lock, returning the unlock func.
func (s *checkoutService) lockOwner(email string) func() {
	s.mu.Lock()
	lock, ok := s.owners[email]
	if !ok {
		lock = &sync.Mutex{}
		s.owners[email] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// totalCents sums cart line prices in minor currency units.
func totalCents(items []model.CartItem) int64 {
	var total int64
	for _, item := range items {
		total += int64(math.Round(item.Price * 100))
	}
	return total
}
