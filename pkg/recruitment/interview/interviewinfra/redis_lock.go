package interviewinfra

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/logx"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "hrms:lock:"

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-acquired by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implementación en Redis del Locker (SET NX PX + token)
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
}

// NewRedisLocker crea un locker distribuido. ttl acota cuánto vive una clave si
// el proceso muere sin liberarla.
func NewRedisLocker(client *redis.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		retry:  50 * time.Millisecond,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = normalizeKeys(keys)
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	held := make([]string, 0, len(keys))
	releaseHeld := func() {
		// la liberación no debe depender del ctx de la petición
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		for _, k := range held {
			if err := releaseScript.Run(rctx, l.client, []string{lockKeyPrefix + k}, token).Err(); err != nil {
				logx.WithField("key", k).Warnf("failed to release scheduling lock: %v", err)
			}
		}
	}

	for _, key := range keys {
		if err := l.acquire(ctx, key, token, deadline); err != nil {
			releaseHeld()
			return nil, err
		}
		held = append(held, key)
	}

	var once sync.Once
	return func() { once.Do(releaseHeld) }, nil
}

func (l *RedisLocker) acquire(ctx context.Context, key, token string, deadline time.Time) error {
	for {
		ok, err := l.client.SetNX(ctx, lockKeyPrefix+key, token, l.ttl).Result()
		if err != nil {
			return errx.Wrap(err, "failed to acquire scheduling lock", errx.TypeExternal).
				WithDetail("key", key)
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return interview.ErrSchedulingBusy().WithDetail("key", key)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

func (l *RedisLocker) String() string {
	return fmt.Sprintf("redis(ttl=%s, wait=%s)", l.ttl, l.wait)
}
