// Command migrate applies the session store migrations and can prune
// expired customer sessions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"homura.shop/app/internal/modules/customer"
	"homura.shop/app/internal/store"
)

func main() {
	_ = godotenv.Load()

	driver := flag.String("driver", envOr("DB_DRIVER", "sqlite"), "Database driver (sqlite, mysql, postgres)")
	dsn := flag.String("dsn", envOr("DB_DSN", "file:homura.db"), "Database DSN")
	prune := flag.Bool("prune", false, "Also delete expired customer sessions")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := store.Open(store.Config{Driver: *driver, DSN: *dsn})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := store.Migrate(ctx, db, *driver, logger); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	fmt.Println("Migrations applied.")

	if *prune {
		n, err := customer.NewRepo(db).DeleteExpired(ctx, time.Now().UTC())
		if err != nil {
			log.Fatalf("Failed to prune sessions: %v", err)
		}
		fmt.Printf("Pruned %d expired sessions.\n", n)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
