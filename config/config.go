package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"article-search/domain"

	"github.com/joho/godotenv"
)

const (
	EngineElasticsearch = "elasticsearch"
	EngineMeilisearch   = "meilisearch"

	HistoryModeDirect = "direct"
	HistoryModeStream = "stream"
)

type Config struct {
	SearchEngine SearchEngineConfig
	Database     DatabaseConfig
	History      HistoryConfig
	Stream       StreamConfig
	Auth         AuthConfig
	HTTP         HTTPConfig
	Highlight    HighlightConfig
}

type SearchEngineConfig struct {
	Kind          string
	Index         string
	Elasticsearch ElasticsearchConfig
	Meilisearch   MeilisearchConfig
}

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
	APIKey    string
}

type MeilisearchConfig struct {
	Host    string
	APIKey  string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	Timeout  time.Duration
	SSL      SSLConfig
}

type SSLConfig struct {
	Mode     string
	RootCert string
	Cert     string
	Key      string
}

type HistoryConfig struct {
	Mode         string
	MaxInFlight  int64
	WriteTimeout time.Duration
}

type StreamConfig struct {
	RedisURL      string
	StreamKey     string
	GroupName     string
	ConsumerName  string
	MaxLen        int64
	ClaimMinIdle  time.Duration
	MaxDeliveries int64
}

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
}

type HTTPConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

type HighlightConfig struct {
	PreTag  string
	PostTag string
}

// envReader collects missing required keys so Load can report all of them.
type envReader struct {
	missing []string
}

func (r *envReader) required(key string) string {
	value := getEnvOrDefault(key, "")
	if value == "" {
		r.missing = append(r.missing, key)
	}
	return value
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	r := &envReader{}

	cfg := &Config{
		SearchEngine: SearchEngineConfig{
			Kind:  strings.ToLower(getEnvOrDefault("SEARCH_ENGINE", EngineElasticsearch)),
			Index: getEnvOrDefault("SEARCH_INDEX", domain.DefaultArticleIndex),
		},
		Database: DatabaseConfig{
			Host:     r.required("DB_HOST"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			Name:     r.required("DB_NAME"),
			User:     r.required("ARTICLE_SEARCH_DB_USER"),
			Password: r.required("ARTICLE_SEARCH_DB_PASSWORD"),
			Timeout:  DBTimeout,
			SSL: SSLConfig{
				Mode:     getEnvOrDefault("DB_SSL_MODE", "prefer"),
				RootCert: getEnvOrDefault("DB_SSL_ROOT_CERT", ""),
				Cert:     getEnvOrDefault("DB_SSL_CERT", ""),
				Key:      getEnvOrDefault("DB_SSL_KEY", ""),
			},
		},
		History: HistoryConfig{
			Mode:         strings.ToLower(getEnvOrDefault("HISTORY_MODE", HistoryModeDirect)),
			MaxInFlight:  int64(HistoryMaxInFlight),
			WriteTimeout: HistoryWriteTimeout,
		},
		Auth: AuthConfig{
			JWTSecret:   getEnvOrDefault("JWT_SECRET", ""),
			JWTIssuer:   getEnvOrDefault("JWT_ISSUER", ""),
			JWTAudience: getEnvOrDefault("JWT_AUDIENCE", ""),
		},
		HTTP: HTTPConfig{
			Addr:              HTTPAddr,
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   ShutdownTimeout,
		},
		Highlight: HighlightConfig{
			PreTag:  getEnvOrDefault("HIGHLIGHT_PRE_TAG", domain.DefaultHighlightPreTag),
			PostTag: getEnvOrDefault("HIGHLIGHT_POST_TAG", domain.DefaultHighlightPostTag),
		},
	}

	switch cfg.SearchEngine.Kind {
	case EngineElasticsearch:
		cfg.SearchEngine.Elasticsearch = ElasticsearchConfig{
			Addresses: splitList(r.required("ELASTICSEARCH_ADDRESSES")),
			Username:  getEnvOrDefault("ELASTICSEARCH_USERNAME", ""),
			Password:  getEnvOrDefault("ELASTICSEARCH_PASSWORD", ""),
			APIKey:    getEnvOrDefault("ELASTICSEARCH_API_KEY", ""),
		}
	case EngineMeilisearch:
		cfg.SearchEngine.Meilisearch = MeilisearchConfig{
			Host:    r.required("MEILISEARCH_HOST"),
			APIKey:  getEnvOrDefault("MEILISEARCH_API_KEY", ""),
			Timeout: MeiliTimeout,
		}
	default:
		return nil, fmt.Errorf("unsupported SEARCH_ENGINE %q", cfg.SearchEngine.Kind)
	}

	switch cfg.History.Mode {
	case HistoryModeDirect:
	case HistoryModeStream:
		cfg.Stream = StreamConfig{
			RedisURL:      r.required("REDIS_STREAMS_URL"),
			StreamKey:     getEnvOrDefault("HISTORY_STREAM_KEY", "article-search:events:search"),
			GroupName:     getEnvOrDefault("CONSUMER_GROUP", "article-search-history"),
			ConsumerName:  getEnvOrDefault("CONSUMER_NAME", hostnameOr("article-search-1")),
			MaxLen:        int64(StreamMaxLen),
			ClaimMinIdle:  StreamClaimMinIdle,
			MaxDeliveries: int64(StreamMaxDeliveries),
		}
	default:
		return nil, fmt.Errorf("unsupported HISTORY_MODE %q", cfg.History.Mode)
	}

	if len(r.missing) > 0 {
		return nil, fmt.Errorf("required environment variables not set: %s", strings.Join(r.missing, ", "))
	}

	if err := cfg.Database.ValidateSSLConfig(); err != nil {
		slog.Error("Invalid SSL configuration", "error", err)
		return nil, fmt.Errorf("SSL configuration error: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set, every request is treated as anonymous")
	}

	slog.Info("Configuration loaded",
		"search_engine", cfg.SearchEngine.Kind,
		"search_index", cfg.SearchEngine.Index,
		"db_host", cfg.Database.Host,
		"db_sslmode", cfg.Database.SSL.Mode,
		"history_mode", cfg.History.Mode,
	)

	return cfg, nil
}

func (c *DatabaseConfig) BuildPgxConnectionString() string {
	conn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSL.Mode,
	)

	if c.SSL.RootCert != "" {
		conn += " sslrootcert=" + c.SSL.RootCert
	}
	if c.SSL.Cert != "" {
		conn += " sslcert=" + c.SSL.Cert
	}
	if c.SSL.Key != "" {
		conn += " sslkey=" + c.SSL.Key
	}
	if c.Timeout > 0 {
		conn += " connect_timeout=" + strconv.Itoa(int(c.Timeout.Seconds()))
	}

	return conn
}

var errSSLDisabled = errors.New("SSL disable mode is not allowed")

func (c *DatabaseConfig) ValidateSSLConfig() error {
	switch c.SSL.Mode {
	case "disable":
		return errSSLDisabled
	case "allow", "prefer", "require":
		return nil
	case "verify-ca", "verify-full":
		if c.SSL.RootCert == "" {
			return fmt.Errorf("SSL root certificate required for mode %s", c.SSL.Mode)
		}
		return nil
	default:
		return fmt.Errorf("invalid SSL mode: %s", c.SSL.Mode)
	}
}

// getEnvOrDefault prefers the contents of the file named by key_FILE, then
// the value of key, then defaultValue.
func getEnvOrDefault(key, defaultValue string) string {
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
		slog.Warn("failed to read secret file", "key", key+"_FILE", "error", err)
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func hostnameOr(fallback string) string {
	if name, err := os.Hostname(); err == nil && name != "" {
		return name
	}
	return fallback
}
