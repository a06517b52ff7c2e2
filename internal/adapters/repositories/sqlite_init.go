package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
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
		latitude REAL,
		longitude REAL,
		earliest_time TEXT,
		latest_time TEXT,
		service_minutes INTEGER NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (trip_id, stop_sequence)
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		cache_key TEXT PRIMARY KEY,
		distance_meters REAL NOT NULL,
		duration_seconds REAL NOT NULL
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
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type StopSeed struct {
	Sequence       int      `json:"stop_sequence"`
	Type           string   `json:"stop_type"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	Zip            string   `json:"zip"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	EarliestTime   string   `json:"earliest_time"`
	LatestTime     string   `json:"latest_time"`
	ServiceMinutes int      `json:"service_duration_minutes"`
	Notes          string   `json:"notes"`
}

type TripSeed struct {
	TripID string     `json:"trip_id"`
	Name   string     `json:"name"`
	Stops  []StopSeed `json:"stops"`
}

// Populate the database with trip and stop data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed trips: read %q: %w", jsonPath, err)
	}

	var data []TripSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed trips: parse json: %w", err)
	}

	for i, trip := range data {
		if strings.TrimSpace(trip.TripID) == "" {
			return fmt.Errorf("seed trips: empty trip_id at index %d", i+1)
		}
		for _, s := range trip.Stops {
			if s.Sequence < 1 {
				return fmt.Errorf("seed trips: trip %q stop_sequence %d must be positive", trip.TripID, s.Sequence)
			}
			for _, ts := range []string{s.EarliestTime, s.LatestTime} {
				if ts == "" {
					continue
				}
				if _, err := time.Parse(time.RFC3339, ts); err != nil {
					return fmt.Errorf("seed trips: trip %q stop %d: bad timestamp %q: %w", trip.TripID, s.Sequence, ts, err)
				}
			}
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed trips: begin tx: %w", err)
	}
	defer tx.Rollback()

	tripStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO trips (trip_id, name)
	VALUES (?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed trips: prepare trip insert: %w", err)
	}
	defer tripStmt.Close()

	stopStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO stops (
		trip_id,
		stop_sequence,
		stop_type,
		address, city, state, zip,
		latitude, longitude,
		earliest_time, latest_time,
		service_minutes, notes
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed trips: prepare stop insert: %w", err)
	}
	defer stopStmt.Close()

	for _, trip := range data {
		if _, err := tripStmt.Exec(trip.TripID, trip.Name); err != nil {
			return fmt.Errorf("seed trips: insert trip_id=%q: %w", trip.TripID, err)
		}

		for _, s := range trip.Stops {
			_, err := stopStmt.Exec(
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

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
