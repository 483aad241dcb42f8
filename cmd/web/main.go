package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"homura.shop/app/internal/config"
	apphttp "homura.shop/app/internal/http"
	"homura.shop/app/internal/store"
	"homura.shop/app/internal/storefront"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(store.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := store.Migrate(ctx, db, cfg.DBDriver, logger); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	sf, err := storefront.New(storefront.Options{
		Endpoint:  cfg.Endpoint(),
		Token:     cfg.StorefrontToken,
		Default:   storefront.I18n{Language: cfg.DefaultLanguage, Country: cfg.DefaultCountry},
		CacheTTL:  cfg.CacheTTL,
		CacheSize: cfg.CacheSize,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("storefront client: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apphttp.NewRouter(logger, cfg, apphttp.NewServices(cfg, sf, db, logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http_listen", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_serve_failed", slog.Any("err", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_shutdown_failed", slog.Any("err", err))
	}
	logger.Info("http_stopped")
}
