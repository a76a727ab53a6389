package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"homestay/config"
	deliverycontext "homestay/internal/delivery/context"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultGormSlowThreshold = 200 * time.Millisecond

// gormSlogLogger routes GORM output through slog. Inside a request it writes
// to the request-scoped logger, so SQL lines carry the request ID and the
// rate limit client of the booking or listing call that issued them.
type gormSlogLogger struct {
	logger        *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newGormSlogLogger(baseLogger *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	return &gormSlogLogger{
		logger:        baseLogger,
		level:         level,
		slowThreshold: defaultGormSlowThreshold,
	}
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, args...)
}

func (l *gormSlogLogger) printf(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.level < threshold || l.logger == nil {
		return
	}

	l.forContext(ctx).LogAttrs(ctx, level, "GORM "+level.String(), slog.String("message", fmt.Sprintf(msg, args...)))
}

// Trace logs one statement. Missing rows are expected lookups and constraint
// violations become domain errors upstream (a user with bookings, a taken
// promotion code), so neither is reported as a failure.
func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.logger == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	log := l.forContext(ctx)

	switch {
	case err != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return
	case err != nil && isConstraintViolation(err):
		if l.level >= logger.Warn {
			log.LogAttrs(ctx, slog.LevelWarn, "GORM constraint rejected",
				append(queryAttrs(sqlAndRowsFn, elapsed), slog.String("error", err.Error()))...)
		}
	case err != nil:
		if l.level >= logger.Error {
			log.LogAttrs(ctx, slog.LevelError, "GORM query failed",
				append(queryAttrs(sqlAndRowsFn, elapsed), slog.String("error", err.Error()))...)
		}
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		log.LogAttrs(ctx, slog.LevelWarn, "GORM slow query",
			append(queryAttrs(sqlAndRowsFn, elapsed), slog.Duration("slowThreshold", l.slowThreshold))...)
	case l.level >= logger.Info:
		log.LogAttrs(ctx, slog.LevelInfo, "GORM query", queryAttrs(sqlAndRowsFn, elapsed)...)
	}
}

func (l *gormSlogLogger) forContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return l.logger
	}
	log := deliverycontext.GetLoggerOrDefault(ctx, l.logger)
	if client := deliverycontext.GetClientFromContext(ctx); client != "" {
		log = log.With(slog.String("client", client))
	}

	return log
}

func queryAttrs(sqlAndRowsFn func() (string, int64), elapsed time.Duration) []slog.Attr {
	sql, rows := sqlAndRowsFn()

	return []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
}
