package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"article-search/config"
	"article-search/consumer"
	"article-search/domain"
	"article-search/driver"
	"article-search/gateway"
	"article-search/internal/auth"
	authmw "article-search/internal/auth/middleware"
	"article-search/logger"
	"article-search/port"
	"article-search/recorder"
	"article-search/rest"
	"article-search/usecase"
	appOtel "article-search/utils/otel"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// App holds the long-lived components of the service.
type App struct {
	cfg           *config.Config
	server        *echo.Echo
	pool          *pgxpool.Pool
	redisClient   *redis.Client
	redisConsumer *consumer.Consumer
	recorder      *recorder.AsyncRecorder
	otelShutdown  appOtel.ShutdownFunc
}

// Run initializes all components and serves until ctx is cancelled, then
// shuts down gracefully.
func Run(ctx context.Context) error {
	// ── Metrics registry + OpenTelemetry ──
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	otelCfg := appOtel.ConfigFromEnv()
	otelShutdown, err := appOtel.InitProvider(ctx, otelCfg, registry)
	if err != nil {
		fmt.Printf("Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// ── Logger ──
	logger.InitWithOTel(otelCfg.Enabled)
	logger.Logger.Info("Starting article-search",
		"service", otelCfg.ServiceName,
		"otel_enabled", otelCfg.Enabled,
	)

	// ── Config ──
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Error("Failed to load config", "err", err)
		return err
	}

	app := &App{cfg: cfg, otelShutdown: otelShutdown}
	if err := app.init(ctx, registry, otelCfg); err != nil {
		logger.Logger.Error("Failed to initialize", "err", err)
		app.shutdown()
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Logger.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := app.server.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Logger.Info("shutting down")
		app.shutdown()
		return nil
	})

	return g.Wait()
}

func (a *App) init(ctx context.Context, registry *prometheus.Registry, otelCfg appOtel.Config) error {
	// ── Search engine ──
	searchDriver, err := initSearchDriver(a.cfg.SearchEngine)
	if err != nil {
		return err
	}
	searchEngine := gateway.NewSearchEngineGateway(searchDriver)

	if err := waitFor(ctx, "search engine", searchEngine.Ping); err != nil {
		return err
	}
	if err := searchEngine.EnsureIndex(ctx); err != nil {
		return err
	}

	// ── Postgres ──
	a.pool, err = initDatabase(ctx, a.cfg.Database)
	if err != nil {
		return err
	}

	historyUsecase := usecase.NewSearchHistoryUsecase(
		gateway.NewSearchHistoryGateway(driver.NewSearchHistoryDriver(a.pool)),
	)
	associateUsecase := usecase.NewAssociateWordsUsecase(
		gateway.NewAssociateWordsGateway(driver.NewAssociateWordsDriver(a.pool)),
	)

	// ── Search history sink ──
	var sink port.SearchHistorySink = historyUsecase
	if a.cfg.History.Mode == config.HistoryModeStream {
		a.redisClient, err = initRedis(ctx, a.cfg.Stream)
		if err != nil {
			return err
		}

		sink = gateway.NewSearchEventGateway(
			driver.NewRedisStreamDriver(a.redisClient, a.cfg.Stream.StreamKey, a.cfg.Stream.MaxLen),
		)

		consumerCfg := consumer.DefaultConfig()
		consumerCfg.Enabled = true
		consumerCfg.StreamKey = a.cfg.Stream.StreamKey
		consumerCfg.GroupName = a.cfg.Stream.GroupName
		consumerCfg.ConsumerName = a.cfg.Stream.ConsumerName
		consumerCfg.ClaimMinIdle = a.cfg.Stream.ClaimMinIdle
		consumerCfg.ClaimInterval = a.cfg.Stream.ClaimMinIdle
		consumerCfg.MaxDeliveries = a.cfg.Stream.MaxDeliveries

		a.redisConsumer = consumer.NewConsumer(
			a.redisClient,
			consumerCfg,
			consumer.NewHistoryEventHandler(historyUsecase, logger.Logger),
			logger.Logger,
		)
		if err := a.redisConsumer.Start(ctx); err != nil {
			return fmt.Errorf("start consumer: %w", err)
		}
	}

	a.recorder = recorder.NewAsyncRecorder(sink, recorder.Config{
		MaxInFlight:  a.cfg.History.MaxInFlight,
		WriteTimeout: a.cfg.History.WriteTimeout,
	}, logger.Logger)

	// ── Use case + transport ──
	searchUsecase := usecase.NewSearchArticlesUsecase(searchEngine, a.recorder, domain.HighlightSpec{
		Field:   domain.FieldTitle,
		PreTag:  a.cfg.Highlight.PreTag,
		PostTag: a.cfg.Highlight.PostTag,
	})

	authMiddleware := authmw.NewAuthMiddleware(auth.NewTokenValidator(auth.Config{
		Secret:   a.cfg.Auth.JWTSecret,
		Issuer:   a.cfg.Auth.JWTIssuer,
		Audience: a.cfg.Auth.JWTAudience,
	}))

	handler := rest.NewHandler(searchUsecase, historyUsecase, associateUsecase, searchEngine)
	a.server = newHTTPServer(a.cfg.HTTP, handler, authMiddleware, registry, otelCfg)

	return nil
}

// shutdown stops the HTTP server first so no new records arrive, drains the
// recorder, then releases the stores.
func (a *App) shutdown() {
	timeout := 30 * time.Second
	if a.cfg != nil && a.cfg.HTTP.ShutdownTimeout > 0 {
		timeout = a.cfg.HTTP.ShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if a.server != nil {
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("http shutdown error", "err", err)
		}
	}
	if a.recorder != nil {
		if err := a.recorder.Close(shutdownCtx); err != nil {
			logger.Logger.Error("recorder drain incomplete", "err", err)
		}
	}
	if a.redisConsumer != nil {
		a.redisConsumer.Stop()
	}
	if a.redisClient != nil {
		_ = a.redisClient.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer otelCancel()
	if err := a.otelShutdown(otelCtx); err != nil {
		fmt.Printf("Failed to shutdown OpenTelemetry: %v\n", err)
	}
}
