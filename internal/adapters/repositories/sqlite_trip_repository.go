package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"truck-route-service/internal/domain"
)

// SQLite-backed implementation of the TripRepository port.
type SqliteTripRepository struct{ DB *sql.DB }

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

// GetTrip returns the trip, or nil when no trip has that id.
func (s *SqliteTripRepository) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	query := `
	SELECT trip_id, name
	FROM trips
	WHERE trip_id = ?;
	`

	var trip domain.Trip
	err := s.DB.QueryRowContext(ctx, query, tripID).Scan(&trip.TripID, &trip.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %q: %w", tripID, err)
	}

	return &trip, nil
}

// ListStops returns the trip's stops ordered by sequence.
func (s *SqliteTripRepository) ListStops(ctx context.Context, tripID string) ([]domain.Stop, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	query := `
	SELECT
		stop_sequence,
		stop_type,
		address, city, state, zip,
		latitude, longitude,
		earliest_time, latest_time,
		service_minutes, notes
	FROM stops
	WHERE trip_id = ?
	ORDER BY stop_sequence;
	`

	rows, err := s.DB.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("list stops for trip %q: query stops table: %w", tripID, err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 16)
	for rows.Next() {
		stop, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("list stops for trip %q: %w", tripID, err)
		}
		stops = append(stops, stop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops for trip %q: row iteration: %w", tripID, err)
	}

	return stops, nil
}

// scanStop converts one stops row, decoding nullable coordinates and the
// RFC 3339 arrival window columns.
func scanStop(rows *sql.Rows) (domain.Stop, error) {
	var (
		stop      domain.Stop
		stopType  string
		lat, lon  sql.NullFloat64
		earliest  sql.NullString
		latest    sql.NullString
	)

	err := rows.Scan(
		&stop.Sequence,
		&stopType,
		&stop.Address, &stop.City, &stop.State, &stop.Zip,
		&lat, &lon,
		&earliest, &latest,
		&stop.ServiceMinutes, &stop.Notes,
	)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("scan row: %w", err)
	}

	parsed, err := domain.ParseStopType(stopType)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("stop %d: %w", stop.Sequence, err)
	}
	stop.Type = parsed

	if lat.Valid {
		stop.Latitude = &lat.Float64
	}
	if lon.Valid {
		stop.Longitude = &lon.Float64
	}

	if earliest.Valid {
		t, err := time.Parse(time.RFC3339, earliest.String)
		if err != nil {
			return domain.Stop{}, fmt.Errorf("stop %d: parse earliest_time: %w", stop.Sequence, err)
		}
		stop.EarliestTime = &t
	}
	if latest.Valid {
		t, err := time.Parse(time.RFC3339, latest.String)
		if err != nil {
			return domain.Stop{}, fmt.Errorf("stop %d: parse latest_time: %w", stop.Sequence, err)
		}
		stop.LatestTime = &t
	}

	return stop, nil
}
