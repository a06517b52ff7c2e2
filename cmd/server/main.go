package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"truck-route-service/internal/adapters/cache"
	"truck-route-service/internal/adapters/osrm"
	"truck-route-service/internal/adapters/repositories"
	"truck-route-service/internal/api"
	"truck-route-service/internal/config"
	"truck-route-service/internal/hazards"
	"truck-route-service/internal/platform/db"
	"truck-route-service/internal/ports"
)

// main is the application composition root. It wires concrete adapters
// (SQLite or Postgres storage, Redis or SQL route caching, OSRM routing)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	seedPath := config.Get("SEED_PATH", "data/seeds/trips.json")
	osrmURL := config.Get("OSRM_BASE_URL", "")
	hazardPath := config.Get("HAZARD_CATALOG_PATH", "")

	ctx := context.Background()

	sqlDB, usingPostgres, err := openStorage(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(ctx, sqlDB, usingPostgres, seedPath); err != nil {
		log.Fatal(err)
	}

	catalog, err := loadCatalog(hazardPath)
	if err != nil {
		log.Fatal(err)
	}

	provider := osrm.NewOSRMRouteProvider(osrmURL)

	var repo ports.TripRepository
	var routeCache ports.RouteCache
	if usingPostgres {
		repo = repositories.NewSQLTripRepository(sqlDB)
		routeCache = cache.NewSQLRouteCache(sqlDB)
	} else {
		repo = repositories.NewSqliteTripRepository(sqlDB)
		routeCache = cache.NewSqliteRouteCache(sqlDB)
	}

	// A configured Redis address takes over route caching from the database.
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis ping failed addr=%s err=%v", addr, err)
		}
		routeCache = cache.NewRedisRouteCache(client, 0)
		log.Printf("route cache backend=redis addr=%s", addr)
	}

	router := api.NewRouter(api.RouterDeps{
		DB:          sqlDB,
		Repo:        repo,
		Provider:    provider,
		Cache:       routeCache,
		Catalog:     catalog,
		CORSOrigins: config.CORSOrigins(),
	})

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStorage connects to Postgres when DATABASE_URL is set, otherwise to a
// local SQLite file.
func openStorage(ctx context.Context) (*sql.DB, bool, error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		sqlDB, err := db.Open(ctx, databaseURL)
		if err != nil {
			return nil, false, err
		}
		log.Println("storage backend=postgres")
		return sqlDB, true, nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, false, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, false, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	log.Printf("storage backend=sqlite path=%s", dbPath)
	return sqlDB, false, nil
}

func initAndSeed(ctx context.Context, sqlDB *sql.DB, usingPostgres bool, seedPath string) error {
	if usingPostgres {
		if err := repositories.InitSchemaSQL(ctx, sqlDB); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		if err := repositories.SeedFromJSONSQL(ctx, sqlDB, seedPath); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		return nil
	}

	if err := repositories.InitSchema(sqlDB); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if err := repositories.SeedFromJSON(sqlDB, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	return nil
}

// loadCatalog reads the hazard catalog from a YAML file when configured,
// falling back to the built-in reference data.
func loadCatalog(path string) (*hazards.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		log.Println("hazard catalog=builtin")
		return hazards.Default(), nil
	}

	catalog, err := hazards.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load hazard catalog %q: %w", path, err)
	}

	log.Printf("hazard catalog=%s hazards=%d", path, catalog.Size())
	return catalog, nil
}
