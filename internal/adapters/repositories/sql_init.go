package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres database schema.
func InitSchemaSQL(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);
	`

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		trip_id TEXT NOT NULL REFERENCES trips(trip_id),
		stop_sequence INTEGER NOT NULL,
		stop_type TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		zip TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		earliest_time TIMESTAMPTZ,
		latest_time TIMESTAMPTZ,
		service_minutes INTEGER NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (trip_id, stop_sequence)
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		cache_key TEXT PRIMARY KEY,
		distance_meters DOUBLE PRECISION NOT NULL,
		duration_seconds DOUBLE PRECISION NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_stops_trip_sequence
	ON stops(trip_id, stop_sequence);
	`

	statements := []string{
		createTripsQuery,
		createStopsQuery,
		createRouteCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the Postgres database with trip and stop data from a JSON file.
func SeedFromJSONSQL(ctx context.Context, db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed trips: read %q: %w", jsonPath, err)
	}

	var data []TripSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed trips: parse json: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed trips: begin tx: %w", err)
	}
	defer tx.Rollback()

	tripStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO trips (trip_id, name)
	VALUES ($1, $2)
	ON CONFLICT (trip_id) DO UPDATE SET name = EXCLUDED.name;
	`)
	if err != nil {
		return fmt.Errorf("seed trips: prepare trip insert: %w", err)
	}
	defer tripStmt.Close()

	stopStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO stops (
		trip_id, stop_sequence, stop_type,
		address, city, state, zip,
		latitude, longitude,
		earliest_time, latest_time,
		service_minutes, notes
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (trip_id, stop_sequence) DO UPDATE
	SET stop_type = EXCLUDED.stop_type,
		address = EXCLUDED.address,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		zip = EXCLUDED.zip,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		earliest_time = EXCLUDED.earliest_time,
		latest_time = EXCLUDED.latest_time,
		service_minutes = EXCLUDED.service_minutes,
		notes = EXCLUDED.notes;
	`)
	if err != nil {
		return fmt.Errorf("seed trips: prepare stop insert: %w", err)
	}
	defer stopStmt.Close()

	for i, trip := range data {
		if strings.TrimSpace(trip.TripID) == "" {
			return fmt.Errorf("seed trips: empty trip_id at index %d", i+1)
		}

		if _, err := tripStmt.ExecContext(ctx, trip.TripID, trip.Name); err != nil {
			return fmt.Errorf("seed trips: insert trip_id=%q: %w", trip.TripID, err)
		}

		for _, s := range trip.Stops {
			_, err := stopStmt.ExecContext(ctx,
				trip.TripID,
				s.Sequence,
				strings.ToUpper(strings.TrimSpace(s.Type)),
				s.Address, s.City, s.State, s.Zip,
				s.Latitude, s.Longitude,
				nullable(s.EarliestTime), nullable(s.LatestTime),
				s.ServiceMinutes, s.Notes,
			)
			if err != nil {
				return fmt.Errorf("seed trips: insert trip_id=%q stop=%d: %w", trip.TripID, s.Sequence, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed trips: commit tx: %w", err)
	}

	return nil
}
