package throttler

import (
	"context"
	"fmt"
	"time"

	"pgbot/sources/platform"
	"pgbot/sources/tracing"

	"github.com/redis/go-redis/v9"
)

type keySetter interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

type Throttler struct {
	client keySetter
	config *ThrottlerConfig
	log    *tracing.Logger
}

func NewThrottler(client *redis.Client, config *ThrottlerConfig, log *tracing.Logger) *Throttler {
	return &Throttler{client: client, config: config, log: log}
}

// IsAllowed claims the user's throttle window. Redis failures let the request through.
func (x *Throttler) IsAllowed(ctx context.Context, userId int64) bool {
	if x.config.Limit <= 0 {
		return true
	}

	ctx, cancel := platform.ContextTimeout(ctx)
	defer cancel()

	key := fmt.Sprintf("throttle:%d", userId)

	success, err := x.client.SetNX(ctx, key, time.Now().Unix(), x.config.Limit).Result()
	if err != nil {
		x.log.E("Error setting throttle key", tracing.UserId, userId, tracing.InnerError, err)
		return true
	}

	if !success {
		x.log.D("Request throttled", tracing.UserId, userId)
	}

	return success
}
