// Package dbtest holds the behavioural suite every user repository must pass.
package dbtest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// Repository is a user repository that can report its own health.
type Repository interface {
	ports.UserRepository
	Ping(ctx context.Context) error
}

// RunUserRepositoryContract runs the suite. newRepo must return an empty
// repository for every call.
func RunUserRepositoryContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	t.Helper()
	ctx := context.Background()

	t.Run("Ping", func(t *testing.T) {
		if err := newRepo(t).Ping(ctx); err != nil {
			t.Fatalf("Ping() error = %v", err)
		}
	})

	t.Run("EmptyList", func(t *testing.T) {
		users, err := newRepo(t).GetAll(ctx)
		if err != nil {
			t.Fatalf("GetAll() error = %v", err)
		}
		if len(users) != 0 {
			t.Fatalf("expected no users, got %d", len(users))
		}
	})

	t.Run("UpsertAssignsIDAndCreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Upsert(ctx, &domain.User{Name: "Denise"})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		if created.ID == nil || *created.ID == uuid.Nil {
			t.Fatalf("expected assigned id, got %v", created.ID)
		}
		if created.CreatedAt == nil || created.CreatedAt.IsZero() {
			t.Fatal("expected CreatedAt to be stamped")
		}
		if created.Name != "Denise" {
			t.Fatalf("expected name Denise, got %q", created.Name)
		}
	})

	t.Run("GetByIDReturnsUpsertedUser", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Upsert(ctx, &domain.User{Name: "Denise"})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}

		got, err := repo.GetByID(ctx, *created.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		assertSameUser(t, created, got)
	})

	t.Run("GetByIDMiss", func(t *testing.T) {
		_, err := newRepo(t).GetByID(ctx, uuid.New())
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("DuplicateNameLeavesSetUnchanged", func(t *testing.T) {
		repo := newRepo(t)
		if _, err := repo.Upsert(ctx, &domain.User{Name: "Denise"}); err != nil {
			t.Fatalf("first Upsert() error = %v", err)
		}

		_, err := repo.Upsert(ctx, &domain.User{Name: "Denise"})
		if !errors.Is(err, domain.ErrDuplicateName) {
			t.Fatalf("expected ErrDuplicateName, got %v", err)
		}

		users, _ := repo.GetAll(ctx)
		if len(users) != 1 {
			t.Fatalf("expected 1 user, got %d", len(users))
		}
	})

	t.Run("NamesAreCaseSensitive", func(t *testing.T) {
		repo := newRepo(t)
		if _, err := repo.Upsert(ctx, &domain.User{Name: "Denise"}); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		if _, err := repo.Upsert(ctx, &domain.User{Name: "denise"}); err != nil {
			t.Fatalf("expected differently-cased name to be accepted, got %v", err)
		}
	})

	t.Run("UpsertExistingIDRenames", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Upsert(ctx, &domain.User{Name: "Denise"})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}

		renamed, err := repo.Upsert(ctx, &domain.User{ID: created.ID, Name: "Denise B."})
		if err != nil {
			t.Fatalf("rename error = %v", err)
		}
		if *renamed.ID != *created.ID || renamed.Name != "Denise B." {
			t.Fatalf("unexpected renamed user: %+v", renamed)
		}
		if !renamed.CreatedAt.Equal(*created.CreatedAt) {
			t.Fatalf("rename must keep CreatedAt: %v -> %v", created.CreatedAt, renamed.CreatedAt)
		}

		// The old name is free again.
		if _, err := repo.Upsert(ctx, &domain.User{Name: "Denise"}); err != nil {
			t.Fatalf("expected released name to be reusable, got %v", err)
		}
	})

	t.Run("RenameToTakenNameFails", func(t *testing.T) {
		repo := newRepo(t)
		ann, _ := repo.Upsert(ctx, &domain.User{Name: "Ann"})
		if _, err := repo.Upsert(ctx, &domain.User{Name: "Bob"}); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}

		_, err := repo.Upsert(ctx, &domain.User{ID: ann.ID, Name: "Bob"})
		if !errors.Is(err, domain.ErrDuplicateName) {
			t.Fatalf("expected ErrDuplicateName, got %v", err)
		}

		got, _ := repo.GetByID(ctx, *ann.ID)
		if got == nil || got.Name != "Ann" {
			t.Fatalf("failed rename must leave the user untouched, got %+v", got)
		}
	})

	t.Run("GetAllListsEveryUser", func(t *testing.T) {
		repo := newRepo(t)
		want := map[string]bool{}
		for i := 0; i < 5; i++ {
			name := fmt.Sprintf("user-%d", i)
			if _, err := repo.Upsert(ctx, &domain.User{Name: name}); err != nil {
				t.Fatalf("Upsert(%s) error = %v", name, err)
			}
			want[name] = true
		}

		users, err := repo.GetAll(ctx)
		if err != nil {
			t.Fatalf("GetAll() error = %v", err)
		}
		if len(users) != len(want) {
			t.Fatalf("expected %d users, got %d", len(want), len(users))
		}
		for _, u := range users {
			if !want[u.Name] || u.ID == nil || u.CreatedAt == nil {
				t.Fatalf("unexpected user in listing: %+v", u)
			}
		}
	})

	t.Run("ConcurrentSameNameHasOneWinner", func(t *testing.T) {
		repo := newRepo(t)
		const workers = 16

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
			dupes     int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Upsert(ctx, &domain.User{Name: "Denise"})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					successes++
				case errors.Is(err, domain.ErrDuplicateName):
					dupes++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		if successes != 1 || dupes != workers-1 {
			t.Fatalf("expected exactly one winner, got %d successes and %d duplicates", successes, dupes)
		}
	})
}

func assertSameUser(t *testing.T, want, got *domain.User) {
	t.Helper()
	if got == nil {
		t.Fatal("expected user, got nil")
	}
	if *got.ID != *want.ID || got.Name != want.Name || !got.CreatedAt.Equal(*want.CreatedAt) {
		t.Fatalf("expected %s/%s/%v, got %s/%s/%v",
			want.ID, want.Name, want.CreatedAt, got.ID, got.Name, got.CreatedAt)
	}
}
