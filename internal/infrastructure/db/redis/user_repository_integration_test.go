//go:build integration

package redis

import (
	"context"
	"os"
	"testing"

	"github.com/taskboard/taskboard-api/internal/infrastructure/db/dbtest"
)

// Address can be overridden via REDIS_ADDR.
var redisAddr = getEnv("REDIS_ADDR", "localhost:6379")

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func TestUserRepository_Integration(t *testing.T) {
	ctx := context.Background()

	repo, err := Open(ctx, Config{Addr: redisAddr, DB: 15, KeyPrefix: "taskboard_test:"})
	if err != nil {
		t.Skipf("Skipping Redis tests: %v", err)
	}
	defer repo.Close()

	dbtest.RunUserRepositoryContract(t, func(t *testing.T) dbtest.Repository {
		if err := repo.client.Del(ctx, repo.usersKey, repo.namesKey).Err(); err != nil {
			t.Fatalf("reset keys: %v", err)
		}
		return repo
	})
}
