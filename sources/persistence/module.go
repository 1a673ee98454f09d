package persistence

import (
	"context"

	"pgbot/sources/tracing"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Module("persistence",
	fx.Provide(
		NewRedis,
	),

	fx.Invoke(func(redis *redis.Client, lc fx.Lifecycle, log *tracing.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := redis.Ping(ctx).Err(); err != nil {
					log.F("Failed to ping Redis", tracing.InnerError, err)
				}
				log.I("Redis connection verified")
				return nil
			},
			OnStop: func(ctx context.Context) error {
				log.I("Closing redis connection")
				if err := redis.Close(); err != nil {
					log.E("Failed to close Redis", tracing.InnerError, err)
				}
				return nil
			},
		})
	}),
)
