// Package mongo stores users in a MongoDB collection.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	indexTimeout   = 30 * time.Second
	appName        = "taskboard-api"
)

// Config holds the settings Open needs to reach the users collection.
type Config struct {
	URI      string
	Database string
	// Timeout bounds server selection and the initial ping. Defaults to 10s.
	Timeout time.Duration
}

// Open connects to MongoDB, makes sure the users collection is indexed and
// returns a repository that owns the client. Call Close to disconnect.
func Open(ctx context.Context, cfg Config) (*UserRepository, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	repo := NewUserRepository(client.Database(cfg.Database))

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := repo.Ping(pingCtx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return repo, nil
}

// Close disconnects the client the repository was opened with.
func (r *UserRepository) Close(ctx context.Context) error {
	return r.col.Database().Client().Disconnect(ctx)
}
