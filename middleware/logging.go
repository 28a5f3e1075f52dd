package middleware

import (
	"log/slog"
	"time"

	"article-search/logger"

	"github.com/labstack/echo/v4"
)

// LoggingMiddleware logs one line per request. Health and metrics probes are
// skipped.
func LoggingMiddleware(baseLogger *slog.Logger) echo.MiddlewareFunc {
	contextLogger := logger.NewContextLogger(baseLogger)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.URL.Path == "/health" || req.URL.Path == "/metrics" {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			// Read the context after next so values added by later middleware
			// (user id) are included.
			ctx := c.Request().Context()
			res := c.Response()
			attrs := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"duration_ms", duration.Milliseconds(),
				"response_size", res.Size,
				"remote_addr", c.RealIP(),
			}

			log := contextLogger.WithContext(ctx)
			switch {
			case res.Status >= 500:
				log.ErrorContext(ctx, "request completed", attrs...)
			case res.Status >= 400:
				log.WarnContext(ctx, "request completed", attrs...)
			default:
				log.InfoContext(ctx, "request completed", attrs...)
			}

			if err != nil {
				log.ErrorContext(ctx, "request error",
					"method", req.Method,
					"path", req.URL.Path,
					"error", err,
				)
			}

			return err
		}
	}
}
