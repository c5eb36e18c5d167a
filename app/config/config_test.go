package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  env: test\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "test", cfg.App.Env)
	assert.Equal(t, 2048, cfg.Parser.MaxUtteranceBytes)
	assert.Equal(t, 50, cfg.Parser.MaxBatchSize)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "grocery_products", cfg.Meilisearch.Index)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
app:
  port: "9090"
cache:
  backend: hybrid
  ttl: 1h
mongo:
  enabled: true
meilisearch:
  enabled: true
  limit: 5
`)
	t.Setenv("APP_ENV", "production")
	t.Setenv("PARSER_MAX_BATCH_SIZE", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 7, cfg.Parser.MaxBatchSize)
	assert.Equal(t, CacheHybrid, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.True(t, cfg.Mongo.Enabled)
	assert.Equal(t, 5, cfg.Meilisearch.Limit)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown backend", "cache:\n  backend: memcached\n"},
		{"mongo backend without mongo", "cache:\n  backend: mongo\n"},
		{"negative limit", "parser:\n  max_batch_size: -1\n"},
		{"zero l1", "cache:\n  l1_size: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
