package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storefront/config"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold marks queries worth a warning in production logs.
const slowQueryThreshold = 200 * time.Millisecond

// slogGormLogger adapts gorm's logger interface onto slog. Record-not-found
// is a domain condition here, not an error, so it is never logged.
type slogGormLogger struct {
	base  *slog.Logger
	level gormlogger.LogLevel
}

func newGormSlogLogger(base *slog.Logger, cfg *config.Config) gormlogger.Interface {
	level := gormlogger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = gormlogger.Info
	}

	return &slogGormLogger{base: base, level: level}
}

func (l *slogGormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &slogGormLogger{base: l.base, level: level}
}

func (l *slogGormLogger) Info(ctx context.Context, msg string, args ...any) {
	l.logf(ctx, gormlogger.Info, slog.LevelInfo, msg, args...)
}

func (l *slogGormLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.logf(ctx, gormlogger.Warn, slog.LevelWarn, msg, args...)
}

func (l *slogGormLogger) Error(ctx context.Context, msg string, args ...any) {
	l.logf(ctx, gormlogger.Error, slog.LevelError, msg, args...)
}

func (l *slogGormLogger) logf(ctx context.Context, min gormlogger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.base == nil || l.level < min {
		return
	}

	l.base.LogAttrs(ctx, level, "GORM", slog.String("message", fmt.Sprintf(msg, args...)))
}

func (l *slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.base == nil || l.level == gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		l.trace(ctx, slog.LevelError, "GORM query failed", fc, elapsed, slog.String("error", err.Error()))
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		l.trace(ctx, slog.LevelWarn, "GORM slow query", fc, elapsed, slog.Duration("slowThreshold", slowQueryThreshold))
	case l.level >= gormlogger.Info:
		l.trace(ctx, slog.LevelInfo, "GORM query", fc, elapsed)
	}
}

func (l *slogGormLogger) trace(ctx context.Context, level slog.Level, msg string, fc func() (string, int64), elapsed time.Duration, extra ...slog.Attr) {
	sql, rows := fc()
	attrs := append([]slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}, extra...)

	l.base.LogAttrs(ctx, level, msg, attrs...)
}
