// Package store opens the database that holds server-side customer
// sessions and applies its migrations.
package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Config struct {
	Driver string // sqlite | mysql | postgres
	DSN    string
}

// Open connects to the configured database.
func Open(cfg Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// One writer; also keeps ":memory:" databases on a single connection.
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func dialectorFor(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return sqlite.Open(cfg.DSN), nil
	case "mysql":
		mc, err := mysqldrv.ParseDSN(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("mysql dsn: %w", err)
		}
		// Session timestamps are scanned into time.Time.
		mc.ParseTime = true
		return mysql.Open(mc.FormatDSN()), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.Driver)
	}
}

func gooseDialect(driver string) (goose.Dialect, error) {
	switch driver {
	case "sqlite", "":
		return goose.DialectSQLite3, nil
	case "mysql":
		return goose.DialectMySQL, nil
	case "postgres":
		return goose.DialectPostgres, nil
	default:
		return "", fmt.Errorf("unknown DB_DRIVER: %s", driver)
	}
}

// Migrate applies all pending migrations.
func Migrate(ctx context.Context, db *gorm.DB, driver string, l *slog.Logger) error {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	p, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	for _, r := range results {
		if l != nil {
			l.LogAttrs(ctx, slog.LevelInfo, "migration_applied",
				slog.Int64("version", r.Source.Version),
				slog.String("file", strings.TrimPrefix(r.Source.Path, "migrations/")),
				slog.Duration("duration", r.Duration),
			)
		}
	}
	return nil
}
