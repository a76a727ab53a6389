package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"homestay/config"
	deliverycontext "homestay/internal/delivery/context"
	"homestay/internal/infra/ratelimit"

	"github.com/labstack/echo/v4"
)

// RateLimitMessage is the plain-text body of a rejected request.
const RateLimitMessage = "Rate limit exceeded. Please try again later."

// RateLimitMiddleware admits at most the configured number of requests per
// client and window. Rejected requests never reach later stages.
type RateLimitMiddleware struct {
	store   ratelimit.Store
	logger  *slog.Logger
	enabled bool
	now     func() time.Time
}

// NewRateLimitMiddleware creates the rate limit middleware
func NewRateLimitMiddleware(store ratelimit.Store, logger *slog.Logger, cfg *config.Config) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		store:   store,
		logger:  logger,
		enabled: cfg.RateLimit == nil || cfg.RateLimit.Enabled,
		now:     time.Now,
	}
}

// ClientID derives the counter key: the authenticated user name when known,
// otherwise the remote address.
func ClientID(c echo.Context) string {
	if identity := deliverycontext.GetIdentity(c); identity != nil && identity.UserName != "" {
		return "user_" + identity.UserName
	}
	if ip := c.RealIP(); ip != "" {
		return "ip_" + ip
	}

	return "ip_unknown"
}

// Handle checks the caller's budget before continuing the chain
func (m *RateLimitMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.enabled {
			return next(c)
		}

		clientID := ClientID(c)
		ctx := deliverycontext.WithClient(c.Request().Context(), clientID)
		c.SetRequest(c.Request().WithContext(ctx))

		now := m.now()
		result, err := m.store.Allow(ctx, clientID, now)
		if err != nil {
			// Fail open when the store errors.
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).ErrorContext(ctx, "Rate limit check failed",
				slog.String("client", clientID),
				slog.Any("error", err),
			)

			return next(c)
		}

		header := c.Response().Header()
		header.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		header.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		header.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			retryAfter := int(result.ResetAt.Sub(now).Seconds() + 0.5)
			header.Set("Retry-After", strconv.Itoa(max(retryAfter, 1)))

			deliverycontext.GetLoggerOrDefault(ctx, m.logger).WarnContext(ctx, "Rate limit exceeded",
				slog.String("client", clientID),
				slog.String("path", c.Request().URL.Path),
			)

			return c.String(http.StatusTooManyRequests, RateLimitMessage)
		}

		return next(c)
	}
}
