package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// Key suffixes appended to the configured prefix.
const (
	keyUsers     = "users"      // hash: id -> JSON record
	keyUserNames = "user_names" // hash: name -> id
)

// upsertScript claims the name and writes the record atomically.
//
//	KEYS[1] users hash, KEYS[2] name index
//	ARGV[1] id, ARGV[2] name, ARGV[3] record used when the id is new
//
// Returns the stored record, or nil when the name belongs to another id.
var upsertScript = redis.NewScript(`
local holder = redis.call('HGET', KEYS[2], ARGV[2])
if holder and holder ~= ARGV[1] then
	return false
end
local record = redis.call('HGET', KEYS[1], ARGV[1])
if record then
	local rec = cjson.decode(record)
	if rec.name ~= ARGV[2] then
		redis.call('HDEL', KEYS[2], rec.name)
	end
	rec.name = ARGV[2]
	record = cjson.encode(rec)
else
	record = ARGV[3]
end
redis.call('HSET', KEYS[1], ARGV[1], record)
redis.call('HSET', KEYS[2], ARGV[2], ARGV[1])
return record
`)

// UserRepository implements ports.UserRepository using Redis.
type UserRepository struct {
	client   redis.UniversalClient
	usersKey string
	namesKey string
	now      func() time.Time
}

// NewUserRepository wraps client; every key is prefixed with keyPrefix.
func NewUserRepository(client redis.UniversalClient, keyPrefix string) *UserRepository {
	return &UserRepository{
		client:   client,
		usersKey: keyPrefix + keyUsers,
		namesKey: keyPrefix + keyUserNames,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type userRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func decodeRecord(raw string) (*domain.User, error) {
	var rec userRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("decode user id %q: %w", rec.ID, err)
	}
	createdAt := rec.CreatedAt.UTC()
	return &domain.User{ID: &id, Name: rec.Name, CreatedAt: &createdAt}, nil
}

// Ping checks connectivity of the client.
func (r *UserRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// GetAll returns every user ordered by creation time.
func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	raws, err := r.client.HVals(ctx, r.usersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*domain.User, 0, len(raws))
	for _, raw := range raws {
		u, err := decodeRecord(raw)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(*users[j].CreatedAt) {
			return users[i].CreatedAt.Before(*users[j].CreatedAt)
		}
		return users[i].ID.String() < users[j].ID.String()
	})
	return users, nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	raw, err := r.client.HGet(ctx, r.usersKey, id.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return decodeRecord(raw)
}

// Upsert inserts or renames a user through upsertScript.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	id := uuid.New()
	if user.ID != nil {
		id = *user.ID
	}

	fresh, err := json.Marshal(userRecord{ID: id.String(), Name: user.Name, CreatedAt: r.now()})
	if err != nil {
		return nil, fmt.Errorf("encode user record: %w", err)
	}

	raw, err := upsertScript.Run(ctx, r.client,
		[]string{r.usersKey, r.namesKey},
		id.String(), user.Name, string(fresh),
	).Text()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.DuplicateName(user.Name)
		}
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return decodeRecord(raw)
}
