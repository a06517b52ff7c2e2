package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"truck-route-service/internal/adapters/repositories"
	"truck-route-service/internal/config"
	"truck-route-service/internal/platform/db"
)

// dbtool initializes the Postgres schema and loads trip seed data. It is
// meant for provisioning a fresh database out-of-band from the server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	sqlDB, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/trips.json")
	initAndSeed(ctx, sqlDB, seedPath)
}

func initAndSeed(ctx context.Context, sqlDB *sql.DB, seedPath string) {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchemaSQL(ctx, sqlDB); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSONSQL(ctx, sqlDB, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
