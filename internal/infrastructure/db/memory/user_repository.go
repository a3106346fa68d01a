// Package memory provides an in-memory user repository for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// UserRepository is an in-memory implementation of ports.UserRepository.
// Contents are lost when the process exits.
type UserRepository struct {
	mu sync.RWMutex

	users  map[uuid.UUID]domain.User
	byName map[string]uuid.UUID
	order  []uuid.UUID

	now func() time.Time
}

// NewUserRepository creates an empty repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[uuid.UUID]domain.User),
		byName: make(map[string]uuid.UUID),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ping always succeeds.
func (r *UserRepository) Ping(ctx context.Context) error {
	return nil
}

// GetAll returns every user in insertion order.
func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		u := r.users[id]
		out = append(out, clone(u))
	}
	return out, nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return clone(u), nil
}

// Upsert inserts a new user or renames an existing one.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var id uuid.UUID
	if user.ID != nil {
		id = *user.ID
	} else {
		id = uuid.New()
	}

	if holder, taken := r.byName[user.Name]; taken && holder != id {
		return nil, domain.DuplicateName(user.Name)
	}

	stored, exists := r.users[id]
	if exists {
		delete(r.byName, stored.Name)
		stored.Name = user.Name
	} else {
		createdAt := r.now()
		stored = domain.User{ID: &id, Name: user.Name, CreatedAt: &createdAt}
		r.order = append(r.order, id)
	}

	r.users[id] = stored
	r.byName[stored.Name] = id
	return clone(stored), nil
}

func clone(u domain.User) *domain.User {
	out := u
	if u.ID != nil {
		id := *u.ID
		out.ID = &id
	}
	if u.CreatedAt != nil {
		ts := *u.CreatedAt
		out.CreatedAt = &ts
	}
	return &out
}
