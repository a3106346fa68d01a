package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetAll(ctx context.Context) ([]*domain.User, error)
	// GetByID returns domain.ErrUserNotFound when no user has the given id.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// Upsert stores the user and returns the persisted copy. A nil ID is
	// assigned a fresh UUID and the creation time is stamped by the store.
	// A name already held by a different user fails with domain.ErrDuplicateName.
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
}
