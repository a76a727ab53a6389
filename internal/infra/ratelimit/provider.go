package ratelimit

import (
	"log/slog"
	"time"

	"homestay/config"
	"homestay/internal/domain/constants"
	"homestay/internal/util"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params defines the dependencies for building the configured store.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Redis  *redis.Client `optional:"true"`
}

// NewStore builds the store selected by rateLimit.store. A Redis store always
// degrades to an in-memory one when Redis cannot be reached.
func NewStore(params Params) (Store, error) {
	cfg := params.Config.RateLimit
	limit, window := cfg.Limit, cfg.Window
	if window <= 0 {
		window = time.Minute
	}

	params.Logger.Info("Rate limiting configured",
		slog.Bool("enabled", cfg.Enabled),
		slog.String("store", cfg.Store),
		slog.Int("limit", limit),
		slog.String("window", util.FormatDuration(window)),
	)

	switch cfg.Store {
	case "", constants.RateLimitStoreMemory:
		return NewMemoryStore(limit, window), nil
	case constants.RateLimitStoreRedis:
		if params.Redis == nil {
			return nil, errors.New("rate limit store is redis but no redis client is configured")
		}

		return NewFallbackStore(
			NewRedisStore(params.Redis, limit, window),
			NewMemoryStore(limit, window),
			params.Logger,
		), nil
	default:
		return nil, errors.Errorf("unsupported rate limit store: %s", cfg.Store)
	}
}
