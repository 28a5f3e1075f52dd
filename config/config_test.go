package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"SEARCH_ENGINE", "SEARCH_INDEX", "ELASTICSEARCH_ADDRESSES", "MEILISEARCH_HOST",
	"DB_HOST", "DB_PORT", "DB_NAME", "ARTICLE_SEARCH_DB_USER", "ARTICLE_SEARCH_DB_PASSWORD",
	"ARTICLE_SEARCH_DB_PASSWORD_FILE", "DB_SSL_MODE", "DB_SSL_ROOT_CERT",
	"HISTORY_MODE", "REDIS_STREAMS_URL", "JWT_SECRET", "HIGHLIGHT_PRE_TAG",
}

// setEnv clears every key Load reads and applies vars. t.Setenv restores the
// previous values when the test ends.
func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"DB_HOST":                    "localhost",
		"DB_NAME":                    "testdb",
		"ARTICLE_SEARCH_DB_USER":     "user",
		"ARTICLE_SEARCH_DB_PASSWORD": "pass",
		"ELASTICSEARCH_ADDRESSES":    "http://es1:9200, http://es2:9200",
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	setEnv(t, baseEnv())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EngineElasticsearch, cfg.SearchEngine.Kind)
	assert.Equal(t, "app_info_article", cfg.SearchEngine.Index)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.SearchEngine.Elasticsearch.Addresses)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, 10*time.Second, cfg.Database.Timeout)
	assert.Equal(t, HistoryModeDirect, cfg.History.Mode)
	assert.Equal(t, ":9300", cfg.HTTP.Addr)
	assert.Equal(t, "<font style='color: red; font-size: inherit;'>", cfg.Highlight.PreTag)
	assert.Equal(t, "</font>", cfg.Highlight.PostTag)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]string)
		wantErr string
	}{
		{
			name:    "missing database keys",
			mutate:  func(env map[string]string) { delete(env, "DB_HOST"); delete(env, "DB_NAME") },
			wantErr: "DB_HOST, DB_NAME",
		},
		{
			name:    "unknown engine",
			mutate:  func(env map[string]string) { env["SEARCH_ENGINE"] = "solr" },
			wantErr: `unsupported SEARCH_ENGINE "solr"`,
		},
		{
			name:    "meilisearch without host",
			mutate:  func(env map[string]string) { env["SEARCH_ENGINE"] = "meilisearch" },
			wantErr: "MEILISEARCH_HOST",
		},
		{
			name:    "stream mode without redis",
			mutate:  func(env map[string]string) { env["HISTORY_MODE"] = "stream" },
			wantErr: "REDIS_STREAMS_URL",
		},
		{
			name:    "unknown history mode",
			mutate:  func(env map[string]string) { env["HISTORY_MODE"] = "kafka" },
			wantErr: `unsupported HISTORY_MODE "kafka"`,
		},
		{
			name:    "ssl disabled",
			mutate:  func(env map[string]string) { env["DB_SSL_MODE"] = "disable" },
			wantErr: "SSL disable mode is not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			env := baseEnv()
			tt.mutate(env)
			setEnv(t, env)

			cfg, err := Load()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_StreamMode(t *testing.T) {
	t.Chdir(t.TempDir())
	env := baseEnv()
	env["HISTORY_MODE"] = "STREAM"
	env["REDIS_STREAMS_URL"] = "redis://localhost:6379/0"
	setEnv(t, env)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, HistoryModeStream, cfg.History.Mode)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Stream.RedisURL)
	assert.Equal(t, "article-search:events:search", cfg.Stream.StreamKey)
	assert.NotEmpty(t, cfg.Stream.ConsumerName)
	assert.Equal(t, StreamClaimMinIdle, cfg.Stream.ClaimMinIdle)
	assert.Equal(t, int64(StreamMaxDeliveries), cfg.Stream.MaxDeliveries)
}

func TestLoad_SecretFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	secret := filepath.Join(dir, "db_password")
	require.NoError(t, os.WriteFile(secret, []byte("from-file\n"), 0o600))

	env := baseEnv()
	env["ARTICLE_SEARCH_DB_PASSWORD"] = "from-env"
	env["ARTICLE_SEARCH_DB_PASSWORD_FILE"] = secret
	setEnv(t, env)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Database.Password)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	setEnv(t, baseEnv())
	require.NoError(t, os.Unsetenv("HIGHLIGHT_PRE_TAG"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HIGHLIGHT_PRE_TAG=<em>\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("HIGHLIGHT_PRE_TAG") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "<em>", cfg.Highlight.PreTag)
}

func TestDatabaseConfig_BuildPgxConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		config   *DatabaseConfig
		expected string
	}{
		{
			name: "SSL prefer mode",
			config: &DatabaseConfig{
				Host: "localhost", Port: "5432", User: "user", Password: "pass", Name: "testdb",
				SSL: SSLConfig{Mode: "prefer"},
			},
			expected: "host=localhost port=5432 user=user password=pass dbname=testdb sslmode=prefer",
		},
		{
			name: "verify-full with certificates and timeout",
			config: &DatabaseConfig{
				Host: "db.example.com", Port: "5432", User: "appuser", Password: "secret", Name: "appdb",
				Timeout: 10 * time.Second,
				SSL: SSLConfig{
					Mode:     "verify-full",
					RootCert: "/app/ssl/ca.crt",
					Cert:     "/app/ssl/client.crt",
					Key:      "/app/ssl/client.key",
				},
			},
			expected: "host=db.example.com port=5432 user=appuser password=secret dbname=appdb sslmode=verify-full sslrootcert=/app/ssl/ca.crt sslcert=/app/ssl/client.crt sslkey=/app/ssl/client.key connect_timeout=10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.BuildPgxConnectionString())
		})
	}
}

func TestSSLConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		sslConfig SSLConfig
		expectErr bool
		errMsg    string
	}{
		{"prefer mode", SSLConfig{Mode: "prefer"}, false, ""},
		{"require mode", SSLConfig{Mode: "require"}, false, ""},
		{"verify-ca with cert", SSLConfig{Mode: "verify-ca", RootCert: "/path/to/ca.crt"}, false, ""},
		{"verify-full with cert", SSLConfig{Mode: "verify-full", RootCert: "/path/to/ca.crt"}, false, ""},
		{"disable mode", SSLConfig{Mode: "disable"}, true, "SSL disable mode is not allowed"},
		{"verify-ca without cert", SSLConfig{Mode: "verify-ca"}, true, "SSL root certificate required"},
		{"invalid mode", SSLConfig{Mode: "invalid"}, true, "invalid SSL mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &DatabaseConfig{SSL: tt.sslConfig}
			err := config.ValidateSSLConfig()

			if tt.expectErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
