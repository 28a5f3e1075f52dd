package bootstrap

import (
	"article-search/config"
	authmw "article-search/internal/auth/middleware"
	"article-search/logger"
	"article-search/middleware"
	"article-search/rest"
	appOtel "article-search/utils/otel"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// newHTTPServer creates the Echo server with the REST routes and /metrics.
func newHTTPServer(cfg config.HTTPConfig, h *rest.Handler, auth *authmw.AuthMiddleware, registry *prometheus.Registry, otelCfg appOtel.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadHeaderTimeout = cfg.ReadHeaderTimeout

	e.Use(echomw.Recover())
	if otelCfg.Enabled {
		e.Use(otelecho.Middleware(otelCfg.ServiceName))
		e.Use(middleware.SpanStatus())
	}
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.LoggingMiddleware(logger.Logger))
	e.Use(echomw.BodyLimit("1M"))

	rest.RegisterRoutes(e, h, auth)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return e
}
