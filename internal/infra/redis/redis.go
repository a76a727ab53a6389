// Package redis provides the shared Redis client.
package redis

import (
	"context"
	"log/slog"

	"homestay/config"
	"homestay/internal/domain/lifecycle"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the Redis client. It returns nil when no address is configured.
func New(params Params) (*goredis.Client, error) {
	cfg := params.Config.Redis
	if cfg == nil || cfg.Addr == "" {
		return nil, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			// An unreachable Redis is not fatal; callers fall back to local state.
			if err := client.Ping(ctx).Err(); err != nil {
				params.Logger.WarnContext(ctx, "Redis ping failed",
					slog.String("addr", cfg.Addr),
					slog.Any("error", err),
				)

				return nil
			}
			params.Logger.InfoContext(ctx, "Redis connected", slog.String("addr", cfg.Addr))

			return nil
		},
		OnStop: func(_ context.Context) error {
			if err := client.Close(); err != nil {
				return errors.Wrap(err, "failed to close Redis client")
			}

			return nil
		},
	})

	return client, nil
}
