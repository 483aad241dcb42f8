package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the runtime configuration of the storefront, read from the
// environment (a .env file is loaded by the caller in development).
type Config struct {
	HTTPAddr string `validate:"required"`

	PublicStoreDomain string `validate:"required,hostname"`
	StorefrontToken   string `validate:"required"`
	StorefrontVersion string `validate:"required"`
	// StorefrontEndpoint overrides the URL derived from the store domain.
	StorefrontEndpoint string `validate:"omitempty,url"`

	DefaultCountry  string `validate:"required,len=2,alpha"`
	DefaultLanguage string `validate:"required,len=2,alpha"`

	HeaderMenuHandle string `validate:"required"`
	FooterMenuHandle string `validate:"required"`

	SessionSecret string        `validate:"required,min=32"`
	SessionTTL    time.Duration `validate:"gt=0"`
	CookieSecure  bool

	DBDriver string `validate:"oneof=sqlite mysql postgres"`
	DBDSN    string `validate:"required"`

	CacheTTL  time.Duration `validate:"gte=0"`
	CacheSize int           `validate:"gte=0"`

	LogLevel slog.Level
}

var validate = validator.New()

// Load reads the configuration from environment variables and validates it.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:           envOr("HTTP_ADDR", ":8080"),
		PublicStoreDomain:  strings.TrimSpace(os.Getenv("PUBLIC_STORE_DOMAIN")),
		StorefrontToken:    strings.TrimSpace(os.Getenv("PUBLIC_STOREFRONT_API_TOKEN")),
		StorefrontVersion:  envOr("STOREFRONT_API_VERSION", "2024-10"),
		StorefrontEndpoint: os.Getenv("STOREFRONT_API_ENDPOINT"),
		DefaultCountry:     strings.ToUpper(envOr("DEFAULT_COUNTRY", "US")),
		DefaultLanguage:    strings.ToUpper(envOr("DEFAULT_LANGUAGE", "EN")),
		HeaderMenuHandle:   envOr("HEADER_MENU_HANDLE", "main-menu"),
		FooterMenuHandle:   envOr("FOOTER_MENU_HANDLE", "footer"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		DBDriver:           strings.ToLower(envOr("DB_DRIVER", "sqlite")),
		DBDSN:              envOr("DB_DSN", "file:homura.db"),
		CacheSize:          512,
	}

	var err error
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 30*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", time.Second); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("CACHE_SIZE: %w", err)
		}
		cfg.CacheSize = n
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = b
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Endpoint returns the Storefront API GraphQL URL.
func (c Config) Endpoint() string {
	if c.StorefrontEndpoint != "" {
		return c.StorefrontEndpoint
	}
	return fmt.Sprintf("https://%s/api/%s/graphql.json", c.PublicStoreDomain, c.StorefrontVersion)
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func durationEnv(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return d, nil
}
