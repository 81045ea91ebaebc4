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

// paymentRepository implements the PaymentRepository interface using PostgreSQL.
type paymentRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPaymentRepository creates a new PostgreSQL-backed payment repository.
func NewPaymentRepository(pool *pgxpool.Pool, logger zerolog.Logger) PaymentRepository {
	return &paymentRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "payment").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *paymentRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new payment record within the provided transaction.
func (r *paymentRepository) Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) error {
	query := `
		INSERT INTO payments (id, email, amount_cents, currency, cart_ids, transaction_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := tx.Exec(ctx, query,
		payment.ID,
		payment.Email,
		payment.AmountCents,
		payment.Currency,
		payment.CartIDs,
		payment.TransactionRef,
		payment.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("payment_id", payment.ID.String()).
			Str("email", payment.Email).
			Msg("failed to create payment")
		return fmt.Errorf("failed to create payment: %w", err)
	}

	r.logger.Debug().
		Str("payment_id", payment.ID.String()).
		Int64("amount_cents", payment.AmountCents).
		Msg("payment created successfully")

	return nil
}

// GetByID retrieves a payment record by its ID.
func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	query := `
		SELECT id, email, amount_cents, currency, cart_ids, transaction_ref, created_at
		FROM payments
		WHERE id = $1
	`

	var p model.Payment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Email,
		&p.AmountCents,
		&p.Currency,
		&p.CartIDs,
		&p.TransactionRef,
		&p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("payment_id", id.String()).Msg("payment not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("payment_id", id.String()).Msg("failed to query payment")
		return nil, fmt.Errorf("failed to query payment: %w", err)
	}

	return &p, nil
}
