package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewUserRepository_KeyPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	repo := NewUserRepository(client, "taskboard:")
	if repo.usersKey != "taskboard:users" {
		t.Fatalf("unexpected users key: %s", repo.usersKey)
	}
	if repo.namesKey != "taskboard:user_names" {
		t.Fatalf("unexpected names key: %s", repo.namesKey)
	}
}

func TestDecodeRecord(t *testing.T) {
	u, err := decodeRecord(`{"id":"3f1c1a52-3b0e-4c55-9d0c-6a4e2f0b7d11","name":"Denise","created_at":"2026-10-19T08:00:00.123456789Z"}`)
	if err != nil {
		t.Fatalf("decodeRecord() error = %v", err)
	}
	if u.ID.String() != "3f1c1a52-3b0e-4c55-9d0c-6a4e2f0b7d11" || u.Name != "Denise" {
		t.Fatalf("unexpected user: %+v", u)
	}
	want := time.Date(2026, 10, 19, 8, 0, 0, 123456789, time.UTC)
	if !u.CreatedAt.Equal(want) {
		t.Fatalf("expected %v, got %v", want, u.CreatedAt)
	}
}

func TestDecodeRecord_Invalid(t *testing.T) {
	for _, raw := range []string{`not json`, `{"id":"nope","name":"x"}`} {
		if _, err := decodeRecord(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestOpen_Unreachable(t *testing.T) {
	_, err := Open(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 500 * time.Millisecond})
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
	if !strings.Contains(err.Error(), "redis ping 127.0.0.1:1") {
		t.Errorf("unexpected error: %v", err)
	}
}
