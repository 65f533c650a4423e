package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-credentials/internal/domain/entity"
	"github.com/oksasatya/go-ddd-credentials/internal/domain/repository"
)

// atomic INCR, expiry is set only on the first failure of a window
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// AttemptCounter stores failed password attempts in Redis. A count disappears
// once window has elapsed since the first failure.
type AttemptCounter struct {
	rdb    redis.UniversalClient
	window time.Duration
}

func NewAttemptCounter(rdb redis.UniversalClient, window time.Duration) *AttemptCounter {
	return &AttemptCounter{rdb: rdb, window: window}
}

func keyFailedAttempts(identifier entity.Identifier) string {
	return "auth:failed:" + identifier.String()
}

func (c *AttemptCounter) Current(ctx context.Context, identifier entity.Identifier) (entity.FailedAttemptCount, error) {
	v, err := c.rdb.Get(ctx, keyFailedAttempts(identifier)).Result()
	if errors.Is(err, redis.Nil) {
		return entity.InitialFailedAttemptCount(), nil
	}
	if err != nil {
		return entity.FailedAttemptCount{}, fmt.Errorf("read failed attempts: %w", err)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return entity.FailedAttemptCount{}, fmt.Errorf("parse failed attempts %q: %w", v, err)
	}
	return entity.NewFailedAttemptCount(n)
}

func (c *AttemptCounter) Increment(ctx context.Context, identifier entity.Identifier) (entity.FailedAttemptCount, error) {
	n, err := incrExpireScript.Run(ctx, c.rdb, []string{keyFailedAttempts(identifier)}, c.window.Milliseconds()).Int()
	if err != nil {
		return entity.FailedAttemptCount{}, fmt.Errorf("increment failed attempts: %w", err)
	}
	return entity.NewFailedAttemptCount(n)
}

func (c *AttemptCounter) Reset(ctx context.Context, identifier entity.Identifier) error {
	if err := c.rdb.Del(ctx, keyFailedAttempts(identifier)).Err(); err != nil {
		return fmt.Errorf("reset failed attempts: %w", err)
	}
	return nil
}

var _ repository.AttemptCounter = (*AttemptCounter)(nil)
