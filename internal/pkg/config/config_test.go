package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Options{EnvFiles: []string{}})
	require.NoError(t, err)

	assert.Equal(t, "v1", cfg.Cleaner.Profile)
	assert.Equal(t, "div.content-text", cfg.Cleaner.HTMLSelector)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Cache.Addr())
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 10, cfg.Queue.Concurrency)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("CLEANER_PROFILE", "no-translations")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CACHE_TTL_MINUTES", "5")
	t.Setenv("ENV", "production")

	cfg, err := Load(Options{EnvFiles: []string{}})
	require.NoError(t, err)

	assert.Equal(t, "no-translations", cfg.Cleaner.Profile)
	assert.Equal(t, 6380, cfg.Queue.RedisPort)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("HTML_CONTENT_SELECTOR=article.main\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("HTML_CONTENT_SELECTOR") })

	cfg, err := Load(Options{EnvFiles: []string{envFile}})
	require.NoError(t, err)
	assert.Equal(t, "article.main", cfg.Cleaner.HTMLSelector)
}

func TestLoad_RequireDatabase(t *testing.T) {
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load(Options{EnvFiles: []string{}, RequireDatabase: true})
	assert.Error(t, err)

	t.Setenv("DB_USER", "cleaner")
	t.Setenv("DB_PASSWORD", "secret")
	cfg, err := Load(Options{EnvFiles: []string{}, RequireDatabase: true})
	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5432 user=cleaner password=secret dbname=textcleaner sslmode=disable", cfg.Database.DSN())
}
