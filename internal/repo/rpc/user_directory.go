package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clipstream/internal/entity"

	"github.com/redis/go-redis/v9"
)

// UserDirectory resolves user profiles owned by the identity service.
// A missing responder is a failure, not an empty result.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*entity.User, error)
}

// Caller is the request/response transport behind the directory. The queue
// client satisfies it; tests inject their own.
type Caller interface {
	Call(ctx context.Context, queueName string, payload interface{}) ([]byte, error)
}

type getUserRequest struct {
	ID string `json:"id"`
}

type getUserResponse struct {
	User  *entity.User `json:"user,omitempty"`
	Error string       `json:"error,omitempty"`
}

type userDirectory struct {
	caller  Caller
	queue   string
	timeout time.Duration
}

func NewUserDirectory(caller Caller, queue string, timeout time.Duration) UserDirectory {
	return &userDirectory{
		caller:  caller,
		queue:   queue,
		timeout: timeout,
	}
}

func (d *userDirectory) GetUser(ctx context.Context, id string) (*entity.User, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	body, err := d.caller.Call(ctx, d.queue, getUserRequest{ID: id})
	if err != nil {
		return nil, fmt.Errorf("user directory call failed: %w", err)
	}

	var resp getUserResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user directory reply: %w", err)
	}

	if resp.Error == "not_found" {
		return nil, entity.ErrNotFound
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("user directory error: %s", resp.Error)
	}
	if resp.User == nil {
		return nil, fmt.Errorf("user directory returned empty reply")
	}

	return resp.User, nil
}

type cachedUserDirectory struct {
	next        UserDirectory
	redisClient *redis.Client
	ttl         time.Duration
}

// NewCachedUserDirectory wraps a directory with a redis profile cache.
// Lookup failures of the cache itself fall through to the directory.
func NewCachedUserDirectory(next UserDirectory, redisClient *redis.Client, ttl time.Duration) UserDirectory {
	return &cachedUserDirectory{
		next:        next,
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func (d *cachedUserDirectory) GetUser(ctx context.Context, id string) (*entity.User, error) {
	key := fmt.Sprintf("user:%s", id)

	if data, err := d.redisClient.Get(ctx, key).Bytes(); err == nil {
		var user entity.User
		if err := json.Unmarshal(data, &user); err == nil {
			return &user, nil
		}
	}

	user, err := d.next.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(user); err == nil {
		d.redisClient.Set(ctx, key, data, d.ttl)
	}

	return user, nil
}
