package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tentative-route-service/internal/adapters/repositories"
	"tentative-route-service/internal/config"
	"tentative-route-service/internal/platform/db"
	"tentative-route-service/internal/platform/logger"

	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()
	log := logger.Setup()
	if envErr != nil {
		log.Info("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	defer conn.Close()

	seedPath := config.Get("DEPOT_SEED_PATH", "data/seeds/depots.json")
	if err := initAndSeed(ctx, conn, seedPath); err != nil {
		log.WithError(err).Fatal("dbtool failed")
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	log := logger.Component("dbtool")

	log.Info("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Info("Schema ready.")

	log.WithField("path", seedPath).Info("Seeding depots...")
	if err := repositories.SeedFromJSON(ctx, conn, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Info("Seeding complete.")

	return nil
}
