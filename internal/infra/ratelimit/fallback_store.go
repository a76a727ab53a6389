package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// FallbackStore answers from primary and switches to fallback for any call
// the primary cannot serve.
type FallbackStore struct {
	primary  Store
	fallback Store
	logger   *slog.Logger
}

// NewFallbackStore wraps primary with a fallback store.
func NewFallbackStore(primary, fallback Store, logger *slog.Logger) *FallbackStore {
	return &FallbackStore{primary: primary, fallback: fallback, logger: logger}
}

// Allow implements Store.
func (s *FallbackStore) Allow(ctx context.Context, key string, now time.Time) (Result, error) {
	result, err := s.primary.Allow(ctx, key, now)
	if err == nil {
		return result, nil
	}

	s.logger.WarnContext(ctx, "Rate limit store unavailable, using fallback",
		slog.String("key", key),
		slog.Any("error", err),
	)

	return s.fallback.Allow(ctx, key, now)
}
