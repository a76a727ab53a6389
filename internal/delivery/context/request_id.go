package context

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyLogger    ContextKey = "logger"
	// KeyClient holds the rate limiter's key for the caller, e.g. "user_alice" or "ip_10.0.0.1".
	KeyClient ContextKey = "client"

	HeaderXRequestID = "X-Request-Id"
)

// wellFormedRequestID limits which caller-supplied IDs are echoed back.
var wellFormedRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// AcceptRequestID returns candidate when it is safe to log and echo,
// otherwise a fresh UUID.
func AcceptRequestID(candidate string) string {
	if wellFormedRequestID.MatchString(candidate) {
		return candidate
	}

	return uuid.NewString()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns the request ID, or "" outside a request.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// WithClient records the caller's rate limit key so lower layers can tag their logs.
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, KeyClient, client)
}

// GetClientFromContext returns the caller's rate limit key, or "".
func GetClientFromContext(ctx context.Context) string {
	if client, ok := ctx.Value(KeyClient).(string); ok {
		return client
	}

	return ""
}

// GetLogger returns the request-scoped logger, or nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
