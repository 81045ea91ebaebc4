package repository

import (
	"context"
	"fmt"

	"bistro-api/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

// GetAll retrieves all reviews.
func (r *reviewRepository) GetAll(ctx context.Context) ([]model.Review, error) {
	query := `
		SELECT id, name, details, rating
		FROM reviews
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		err := rows.Scan(&rv.ID, &rv.Name, &rv.Details, &rv.Rating)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating review rows")
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}
