package logger

import (
	"log/slog"
	"time"
)

// LogStream logs a stream lifecycle event.
func LogStream(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "stream")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogEconomy logs a money/subscriber mutation.
func LogEconomy(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "econ")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogQuery logs database operations.
func LogQuery(query string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "db"),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Query failed", append(attrs,
			slog.String("query", query),
			slog.Any("error", err),
		)...)
	} else {
		slog.Debug("Query executed", append(attrs,
			slog.String("query", query),
		)...)
	}
}

// LogDB logs non-query persistence events at debug level.
func LogDB(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "db")}
	slog.Debug(msg, append(baseAttrs, attrs...)...)
}

// LogSystem logs system events.
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events.
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
