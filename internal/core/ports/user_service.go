package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// UserService defines use-case operations for users.
type UserService interface {
	GetAll(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
