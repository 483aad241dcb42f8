package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PUBLIC_STORE_DOMAIN", "homura.myshopify.com")
	t.Setenv("PUBLIC_STOREFRONT_API_TOKEN", "sf-token")
	t.Setenv("SESSION_SECRET", strings.Repeat("s", 32))
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "2024-10", cfg.StorefrontVersion)
		assert.Equal(t, "US", cfg.DefaultCountry)
		assert.Equal(t, "EN", cfg.DefaultLanguage)
		assert.Equal(t, "main-menu", cfg.HeaderMenuHandle)
		assert.Equal(t, "footer", cfg.FooterMenuHandle)
		assert.Equal(t, "sqlite", cfg.DBDriver)
		assert.Equal(t, time.Second, cfg.CacheTTL)
		assert.Equal(t, 512, cfg.CacheSize)
		assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, "https://homura.myshopify.com/api/2024-10/graphql.json", cfg.Endpoint())
	})

	t.Run("overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DEFAULT_COUNTRY", "ca")
		t.Setenv("DEFAULT_LANGUAGE", "fr")
		t.Setenv("CACHE_TTL", "5s")
		t.Setenv("CACHE_SIZE", "10")
		t.Setenv("COOKIE_SECURE", "true")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("STOREFRONT_API_ENDPOINT", "http://localhost:9999/graphql")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "CA", cfg.DefaultCountry)
		assert.Equal(t, "FR", cfg.DefaultLanguage)
		assert.Equal(t, 5*time.Second, cfg.CacheTTL)
		assert.Equal(t, 10, cfg.CacheSize)
		assert.True(t, cfg.CookieSecure)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, "http://localhost:9999/graphql", cfg.Endpoint())
	})

	t.Run("missing store domain", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PUBLIC_STORE_DOMAIN", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PublicStoreDomain")
	})

	t.Run("short session secret", func(t *testing.T) {
		setRequired(t)
		t.Setenv("SESSION_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SessionSecret")
	})

	t.Run("unknown db driver", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DB_DRIVER", "oracle")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		setRequired(t)
		t.Setenv("CACHE_TTL", "soon")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CACHE_TTL")
	})
}
