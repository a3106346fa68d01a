// Package db opens the user store selected by STORE_DRIVER.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/core/ports"
	"github.com/taskboard/taskboard-api/internal/infrastructure/config"
	"github.com/taskboard/taskboard-api/internal/infrastructure/db/memory"
	mongostore "github.com/taskboard/taskboard-api/internal/infrastructure/db/mongo"
	pgstore "github.com/taskboard/taskboard-api/internal/infrastructure/db/postgres"
	redisstore "github.com/taskboard/taskboard-api/internal/infrastructure/db/redis"
)

// Repository is a user store that can report its own health.
type Repository interface {
	ports.UserRepository
	Ping(ctx context.Context) error
}

// Store is an opened user store.
type Store struct {
	// Name is the driver name, used as the readiness check key.
	Name  string
	Users Repository

	closeFn func(ctx context.Context) error
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.Users.Ping(ctx)
}

// Close releases the underlying connection. Safe to call on a memory store.
func (s *Store) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}

// Open connects to the configured store and prepares its schema.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	store := &Store{Name: cfg.StoreDriver}

	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn().Msg("Using in-memory user store; data is lost on restart")
		store.Users = memory.NewUserRepository()

	case config.DriverMongo:
		repo, err := mongostore.Open(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB")
		store.Users, store.closeFn = repo, repo.Close

	case config.DriverPostgres:
		repo, err := pgstore.Open(ctx, pgstore.Config{
			DSN:      cfg.Postgres.URL,
			MaxConns: cfg.Postgres.MaxConns,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Msg("Connected to PostgreSQL")
		store.Users = repo
		store.closeFn = func(context.Context) error {
			repo.Close()
			return nil
		}

	case config.DriverRedis:
		repo, err := redisstore.Open(ctx, redisstore.Config{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
		store.Users = repo
		store.closeFn = func(context.Context) error {
			return repo.Close()
		}

	default:
		return nil, fmt.Errorf("db: unsupported store driver %q", cfg.StoreDriver)
	}

	return store, nil
}
