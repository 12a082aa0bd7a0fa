package otpcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tradewire/ibdesk/internal/auth/entity"
	"github.com/tradewire/ibdesk/internal/pkg/clock"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
)

const redisKeyPrefix = "otp:"

// Redis stores records as JSON values. The key TTL is the record TTL plus a
// grace window, so a record read after its expiry still reports "expired"
// rather than vanishing into "not found".
type Redis struct {
	client *redis.Client
	clock  clock.Clocker
	grace  time.Duration
}

func NewRedis(client *redis.Client, clk clock.Clocker, grace time.Duration) *Redis {
	if grace <= 0 {
		grace = 10 * time.Minute
	}

	return &Redis{client: client, clock: clk, grace: grace}
}

func (r *Redis) Put(ctx context.Context, rec entity.OtpRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	ttl := rec.ExpiresAt.Sub(r.clock.Now()) + r.grace

	return r.client.Set(ctx, redisKeyPrefix+rec.Identity, payload, ttl).Err()
}

func (r *Redis) Get(ctx context.Context, identity string) (*entity.OtpRecord, error) {
	payload, err := r.client.Get(ctx, redisKeyPrefix+identity).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec entity.OtpRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *Redis) Delete(ctx context.Context, identity string) error {
	return r.client.Del(ctx, redisKeyPrefix+identity).Err()
}
