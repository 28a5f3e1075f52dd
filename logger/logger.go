package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log/global"
)

const serviceName = "article-search"

var Logger *slog.Logger
var otelEnabled bool

// Options control how records are rendered. The zero value writes JSON at
// INFO to stdout.
type Options struct {
	Output io.Writer
	Level  slog.Level
	// Format is "json" or "text".
	Format string
	OTel   bool
}

// OptionsFromEnv reads LOG_LEVEL and LOG_FORMAT.
func OptionsFromEnv(enableOTel bool) Options {
	return Options{
		Output: os.Stdout,
		Level:  parseLevel(os.Getenv("LOG_LEVEL")),
		Format: strings.ToLower(os.Getenv("LOG_FORMAT")),
		OTel:   enableOTel,
	}
}

// OTelEnabled reports whether logs are also exported through OpenTelemetry.
func OTelEnabled() bool {
	return otelEnabled
}

// InitWithOTel installs the global logger from the environment.
func InitWithOTel(enableOTel bool) {
	Setup(OptionsFromEnv(enableOTel))
}

// Setup installs Logger and GlobalContext and makes Logger the slog default.
func Setup(opts Options) {
	otelEnabled = opts.OTel

	var handler slog.Handler = NewTraceContextHandler(newLocalHandler(opts))
	if opts.OTel {
		handler = &MultiHandler{
			handlers: []slog.Handler{handler, newOTelHandler()},
		}
	}

	Logger = slog.New(handler).With("service", serviceName)
	GlobalContext = NewContextLogger(Logger)
	slog.SetDefault(Logger)

	Logger.Info("Logger initialized", "otel_enabled", opts.OTel, "level", opts.Level.String())
}

func newLocalHandler(opts Options) slog.Handler {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if opts.Format == "text" {
		return slog.NewTextHandler(out, handlerOpts)
	}
	return slog.NewJSONHandler(out, handlerOpts)
}

func newOTelHandler() slog.Handler {
	return otelslog.NewHandler(
		serviceName,
		otelslog.WithLoggerProvider(global.GetLoggerProvider()),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MultiHandler fans a record out to every handler that accepts its level.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler writes JSON to stdout and exports the same records through
// the otelslog bridge.
func NewMultiHandler(level slog.Level) *MultiHandler {
	local := newLocalHandler(Options{Output: os.Stdout, Level: level})
	return &MultiHandler{
		handlers: []slog.Handler{NewTraceContextHandler(local), newOTelHandler()},
	}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes a clone to each handler; one failing sink does not stop the
// others.
func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: next}
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}
	return &MultiHandler{handlers: next}
}
