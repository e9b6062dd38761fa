package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slowQueryThreshold marks queries that are logged at Warn regardless of level.
const slowQueryThreshold = 500 * time.Millisecond

// maxSQLLength caps SQL text in log records.
const maxSQLLength = 200

// slogGormLogger routes GORM output through the default slog logger. SQL is
// only formatted when Debug is enabled or the query failed or was slow.
type slogGormLogger struct{}

// LogMode is a no-op; level filtering is handled by slog.
func (l slogGormLogger) LogMode(logger.LogLevel) logger.Interface { return l }

// Info logs informational messages from GORM.
func (l slogGormLogger) Info(ctx context.Context, msg string, args ...any) {
	slog.InfoContext(ctx, fmt.Sprintf(msg, args...))
}

// Warn logs warning messages from GORM.
func (l slogGormLogger) Warn(ctx context.Context, msg string, args ...any) {
	slog.WarnContext(ctx, fmt.Sprintf(msg, args...))
}

// Error logs error messages from GORM.
func (l slogGormLogger) Error(ctx context.Context, msg string, args ...any) {
	slog.ErrorContext(ctx, fmt.Sprintf(msg, args...))
}

func truncateSQL(sql string) string {
	if len(sql) <= maxSQLLength {
		return sql
	}
	half := (maxSQLLength - 3) / 2
	return sql[:half] + "..." + sql[len(sql)-half:]
}

// Trace is called by GORM after every statement. gorm.ErrRecordNotFound is
// the normal empty result of First and is not treated as an error.
func (l slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		slog.ErrorContext(ctx, "gorm query error",
			"sql", truncateSQL(sql),
			"rows", rows,
			"duration", elapsed,
			"error", err,
		)
	case elapsed > slowQueryThreshold:
		sql, rows := fc()
		slog.WarnContext(ctx, "slow gorm query",
			"sql", truncateSQL(sql),
			"rows", rows,
			"duration", elapsed,
		)
	case slog.Default().Enabled(ctx, slog.LevelDebug):
		sql, rows := fc()
		slog.DebugContext(ctx, "gorm query",
			"sql", truncateSQL(sql),
			"rows", rows,
			"duration", elapsed,
		)
	}
}
