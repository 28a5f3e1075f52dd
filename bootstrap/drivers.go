package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"article-search/config"
	"article-search/driver"
	"article-search/gateway"
	"article-search/logger"

	"github.com/cenkalti/backoff/v5"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
)

// newRetryBackoff is the policy used while waiting for dependencies at startup.
func newRetryBackoff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 10 * time.Second
	bo.Multiplier = 2
	return bo
}

// waitFor retries op until it succeeds or config.StartupRetryTimeout elapses.
func waitFor(ctx context.Context, name string, op func(context.Context) error) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, op(ctx)
	},
		backoff.WithBackOff(newRetryBackoff()),
		backoff.WithMaxElapsedTime(config.StartupRetryTimeout),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Logger.Warn("dependency not ready, retrying", "dependency", name, "retry_in", next, "err", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("%s not ready: %w", name, err)
	}
	logger.Logger.Info("dependency ready", "dependency", name)
	return nil
}

// initSearchDriver builds the driver for the configured engine.
func initSearchDriver(cfg config.SearchEngineConfig) (gateway.SearchDriver, error) {
	switch cfg.Kind {
	case config.EngineElasticsearch:
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: cfg.Elasticsearch.Addresses,
			Username:  cfg.Elasticsearch.Username,
			Password:  cfg.Elasticsearch.Password,
			APIKey:    cfg.Elasticsearch.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("elasticsearch client: %w", err)
		}
		logger.Logger.Info("Using Elasticsearch", "addresses", cfg.Elasticsearch.Addresses, "index", cfg.Index)
		return driver.NewElasticsearchDriver(client, cfg.Index), nil

	case config.EngineMeilisearch:
		client := meilisearch.New(cfg.Meilisearch.Host,
			meilisearch.WithAPIKey(cfg.Meilisearch.APIKey),
			meilisearch.WithCustomClient(&http.Client{Timeout: cfg.Meilisearch.Timeout}),
		)
		logger.Logger.Info("Using Meilisearch", "host", cfg.Meilisearch.Host, "index", cfg.Index)
		return driver.NewMeilisearchDriver(client, cfg.Index), nil

	default:
		return nil, fmt.Errorf("unsupported search engine %q", cfg.Kind)
	}
}

// initDatabase opens the pool once Postgres answers and applies migrations.
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	err := waitFor(ctx, "postgres", func(ctx context.Context) error {
		p, err := driver.NewDatabasePool(ctx, cfg.BuildPgxConnectionString())
		if err != nil {
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := driver.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return pool, nil
}

func initRedis(ctx context.Context, cfg config.StreamConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	client := redis.NewClient(opts)

	if err := waitFor(ctx, "redis", func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
