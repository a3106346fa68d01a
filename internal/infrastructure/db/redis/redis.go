// Package redis stores users in Redis hashes.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout   = 5 * time.Second
	defaultKeyPrefix = "taskboard:"
)

// Config holds the settings Open needs to reach the user hashes.
type Config struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces every key. Defaults to "taskboard:".
	KeyPrefix string
	// Timeout bounds dialing and the initial ping. Defaults to 5s.
	Timeout time.Duration
}

// Open creates a client, checks it with a ping and returns a repository
// that owns it. Call Close to release the connection pool.
func Open(ctx context.Context, cfg Config) (*UserRepository, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: timeout,
	})
	repo := NewUserRepository(client, prefix)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := repo.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return repo, nil
}

// Close closes the client the repository was opened with.
func (r *UserRepository) Close() error {
	return r.client.Close()
}
