package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// GetAll returns every stored user in the order the repository yields them.
func (s *UserService) GetAll(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

// GetByID looks up a single user. A miss is reported as domain.ErrUserNotFound
// carrying the id in its message.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) || (err == nil && user == nil) {
		s.logger.Debug().Str("user_id", id.String()).Msg("user not found")
		return nil, domain.UserNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}

// Create persists a new user. Clients must not pre-assign identifiers; the
// repository assigns the id and creation time.
func (s *UserService) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.ID != nil {
		return nil, domain.MalformedRequest("User id must not be set")
	}

	created, err := s.repo.Upsert(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			s.logger.Info().Str("name", user.Name).Msg("user name already taken")
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID.String()).Str("name", created.Name).Msg("user created")
	return created, nil
}
