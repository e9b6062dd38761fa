// Package log builds the portal's slog logger and carries request
// identifiers through context so every record logged with a request context
// can be traced back to the HTTP call that produced it.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chamberhub/bizportal/internal/config"
	"github.com/lmittmann/tint"
)

type ctxKey int

const (
	correlationIDKey ctxKey = iota
	requestIDKey
)

// Attribute names added to records logged with a request context.
const (
	CorrelationIDAttr = "correlation_id"
	RequestIDAttr     = "request_id"
)

// Logger owns the configured slog logger.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a Logger writing to stdout using the configured format
// and level.
func NewLogger(cfg config.AppConfig) *Logger {
	return NewLoggerWithWriter(os.Stdout, cfg.LogFormat(), cfg.LogLevel())
}

// NewLoggerWithWriter creates a Logger that writes to w.
func NewLoggerWithWriter(w io.Writer, format config.LogFormat, level string) *Logger {
	lvl := ParseLevel(level)

	var base slog.Handler
	if format == config.LogFormatJSON {
		base = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	} else {
		// Colour only when writing to a terminal-bound stdout.
		base = tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: "15:04:05.000",
			NoColor:    w != os.Stdout,
		})
	}
	return &Logger{logger: slog.New(contextHandler{Handler: base})}
}

// Slog returns the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

// Handler returns the handler behind the logger.
func (l *Logger) Handler() slog.Handler {
	return l.logger.Handler()
}

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values are INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// contextHandler stamps request identifiers found in the record's context.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := CorrelationID(ctx); id != "" {
		r.AddAttrs(slog.String(CorrelationIDAttr, id))
	}
	if id := RequestID(ctx); id != "" {
		r.AddAttrs(slog.String(RequestIDAttr, id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{Handler: h.Handler.WithGroup(name)}
}

// WithCorrelationID adds a correlation ID to the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// CorrelationID extracts the correlation ID from context.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// RequestID extracts the request ID from context.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Configure builds the logger for cfg and installs it as the slog default.
func Configure(cfg config.AppConfig) *Logger {
	l := NewLogger(cfg)
	slog.SetDefault(l.logger)
	return l
}
