package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// SQLSTATE codes mapped to user error kinds.
const (
	uniqueViolation          = "23505"
	characterNotInRepertoire = "22021" // e.g. NUL in a text value
)

const createUsersTable = `
	CREATE TABLE IF NOT EXISTS users (
		id         UUID PRIMARY KEY,
		name       VARCHAR(255) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at);
`

// UserRepository implements ports.UserRepository on PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		pool: pool,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Migrate creates the users table when it does not exist yet.
func (r *UserRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createUsersTable); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	return nil
}

// Ping checks connectivity of the pool.
func (r *UserRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// GetAll returns every user ordered by creation time.
func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `SELECT id, name, created_at FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	return u, err
}

// Upsert inserts a user or renames it when the id already exists. created_at
// is never overwritten; the UNIQUE constraint on name rejects collisions.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := uuid.New()
	if user.ID != nil {
		id = *user.ID
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at`,
		id, user.Name, r.now(),
	)

	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case uniqueViolation:
				return nil, domain.DuplicateName(user.Name)
			case characterNotInRepertoire:
				return nil, domain.MalformedRequest("User name contains characters that cannot be stored")
			}
		}
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		id        uuid.UUID
		name      string
		createdAt time.Time
	)
	if err := row.Scan(&id, &name, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	createdAt = createdAt.UTC()
	return &domain.User{ID: &id, Name: name, CreatedAt: &createdAt}, nil
}
