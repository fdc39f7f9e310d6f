package service

import (
	"context"
	"errors"

	userserrors "github.com/Farhatmahi/dentist-spa-server/internal/users/errors"
	"github.com/Farhatmahi/dentist-spa-server/internal/users/repository"
	"github.com/Farhatmahi/dentist-spa-server/internal/users/validator"
	"github.com/Farhatmahi/dentist-spa-server/pkg/config"
	apperrors "github.com/Farhatmahi/dentist-spa-server/pkg/errors"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
)

type UserService interface {
	Upsert(ctx context.Context, user *model.User) (*model.User, error)
	GetAll(ctx context.Context) ([]*model.User, error)
	// IsAdmin is default-deny: unknown emails and records without the admin
	// role both resolve to false.
	IsAdmin(ctx context.Context, email string) (bool, error)
	Promote(ctx context.Context, id string) error
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(repo repository.UserRepository, validator *validator.UserValidator, cfg *config.Config) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *userService) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	// Role is never accepted from the request body; admin is reachable only
	// through the promotion operation.
	user.Role = ""

	if err := s.validator.Validate(user); err != nil {
		s.cfg.Log.Warn("User validation failed", "error", err)
		return nil, apperrors.Validation("Invalid user", map[string]any{"error": err.Error()})
	}

	stored, err := s.repo.Upsert(ctx, user)
	if err != nil {
		s.cfg.Log.Error("Failed to upsert user", "email", user.Email, "error", err)
		return nil, apperrors.Unavailable("document store", err)
	}

	s.cfg.Log.Info("User upserted", "id", stored.ID, "email", stored.Email)
	return stored, nil
}

func (s *userService) GetAll(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Unavailable("document store", err)
	}
	return users, nil
}

func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return false, nil
		}
		return false, apperrors.Unavailable("document store", err)
	}

	return user.IsAdmin(), nil
}

func (s *userService) Promote(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}

	err := s.repo.Promote(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to promote user", "id", id, "error", err)
		return apperrors.Unavailable("document store", err)
	}

	s.cfg.Log.Info("User promoted to admin", "id", id)
	return nil
}
