package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MichalMitros/google-feed-generator/internal/platform"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Release releases acquired lock.
type Release func(ctx context.Context) error

// releaseScript deletes the key only if it still holds the owner's token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Redis is lock shared between service instances.
type Redis struct {
	client redis.Cmdable
}

// NewRedis returns new Redis lock.
func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

// Acquire takes the key for ttl or returns platform.ErrAlreadyRunning if it's already taken.
func (r *Redis) Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error) {
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("can't acquire lock %s: %w", key, err)
	}

	if !ok {
		return nil, fmt.Errorf("lock %s is taken: %w", key, platform.ErrAlreadyRunning)
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, r.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("can't release lock %s: %w", key, err)
		}
		return nil
	}, nil
}

// Local is in-process lock.
type Local struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocal returns new Local lock.
func NewLocal() *Local {
	return &Local{held: map[string]struct{}{}}
}

// Acquire takes the key until released or returns platform.ErrAlreadyRunning if it's already taken.
// Local locks don't expire.
func (l *Local) Acquire(_ context.Context, key string, _ time.Duration) (Release, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, fmt.Errorf("lock %s is taken: %w", key, platform.ErrAlreadyRunning)
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
		return nil
	}, nil
}
