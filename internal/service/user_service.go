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

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// Register creates a user record for the email if one does not already exist.
func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, bool, error) {
	if req == nil || strings.TrimSpace(req.Email) == "" {
		return nil, false, fmt.Errorf("email is required")
	}

	email := strings.TrimSpace(req.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to look up user")
		return nil, false, fmt.Errorf("failed to register user: %w", err)
	}
	if existing != nil {
		s.logger.Debug().Str("email", email).Msg("user already registered")
		return existing, false, nil
	}

	user := &model.User{
		ID:        uuid.New(),
		Email:     email,
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to create user")
		return nil, false, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Str("email", email).
		Msg("user registered successfully")

	return user, true, nil
}

// GetAll retrieves all user records.
func (s *userService) GetAll(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all users")
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	s.logger.Debug().Int("count", len(users)).Msg("retrieved users")

	return users, nil
}

// IsAdmin reports whether the user with the given email holds the admin role.
func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to look up user role")
		return false, fmt.Errorf("failed to look up user role: %w", err)
	}

	return user.IsAdmin(), nil
}

// PromoteToAdmin grants the admin role to the user with the given ID.
func (s *userService) PromoteToAdmin(ctx context.Context, id uuid.UUID) (int64, error) {
	updated, err := s.userRepo.PromoteToAdmin(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to promote user")
		return 0, fmt.Errorf("failed to promote user: %w", err)
	}

	s.logger.Info().
		Str("user_id", id.String()).
		Int64("updated", updated).
		Msg("user promoted to admin")

	return updated, nil
}
