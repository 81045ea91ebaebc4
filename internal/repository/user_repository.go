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

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// Create inserts a new user record.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, email, name, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, user.ID, user.Email, user.Name, user.Role, user.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("email", user.Email).
			Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug().
		Str("user_id", user.ID.String()).
		Str("email", user.Email).
		Msg("user created successfully")

	return nil
}

// GetByEmail retrieves a user by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, name, role, created_at
		FROM users
		WHERE email = $1
	`

	var u model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("email", email).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// GetAll retrieves all user records.
func (r *userRepository) GetAll(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT id, email, name, role, created_at
		FROM users
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query users")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan user row")
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating user rows")
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// PromoteToAdmin sets the admin role on the user with the given ID.
func (r *userRepository) PromoteToAdmin(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `
		UPDATE users
		SET role = $2
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, model.RoleAdmin)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to promote user")
		return 0, fmt.Errorf("failed to promote user: %w", err)
	}

	r.logger.Debug().
		Str("user_id", id.String()).
		Int64("rows_updated", tag.RowsAffected()).
		Msg("user role updated")

	return tag.RowsAffected(), nil
}
