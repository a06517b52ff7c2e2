package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/platform/obs"
)

// SQLTripRepository is a Postgres-backed implementation of the
// TripRepository port. Timestamps are stored as timestamptz so no string
// decoding is needed on scan.
type SQLTripRepository struct{ DB *sql.DB }

func NewSQLTripRepository(db *sql.DB) *SQLTripRepository {
	return &SQLTripRepository{DB: db}
}

func (s *SQLTripRepository) GetTrip(ctx context.Context, tripID string) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "trips.repo.GetTrip")(&err)

	if s.DB == nil {
		return nil, errors.New("sql trip repository: DB is nil")
	}

	query := `
	SELECT trip_id, name
	FROM trips
	WHERE trip_id = $1;
	`

	var trip domain.Trip
	err = s.DB.QueryRowContext(ctx, query, tripID).Scan(&trip.TripID, &trip.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %q: %w", tripID, err)
	}

	return &trip, nil
}

func (s *SQLTripRepository) ListStops(ctx context.Context, tripID string) (_ []domain.Stop, err error) {
	defer obs.Time(ctx, "trips.repo.ListStops")(&err)

	if s.DB == nil {
		return nil, errors.New("sql trip repository: DB is nil")
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
	WHERE trip_id = $1
	ORDER BY stop_sequence;
	`

	rows, err := s.DB.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("list stops for trip %q: query stops table: %w", tripID, err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 16)
	for rows.Next() {
		var (
			stop     domain.Stop
			stopType string
			lat, lon sql.NullFloat64
			earliest sql.NullTime
			latest   sql.NullTime
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
			return nil, fmt.Errorf("list stops for trip %q: scan row: %w", tripID, err)
		}

		parsed, err := domain.ParseStopType(stopType)
		if err != nil {
			return nil, fmt.Errorf("list stops for trip %q: stop %d: %w", tripID, stop.Sequence, err)
		}
		stop.Type = parsed

		if lat.Valid {
			stop.Latitude = &lat.Float64
		}
		if lon.Valid {
			stop.Longitude = &lon.Float64
		}
		if earliest.Valid {
			t := earliest.Time
			stop.EarliestTime = &t
		}
		if latest.Valid {
			t := latest.Time
			stop.LatestTime = &t
		}

		stops = append(stops, stop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops for trip %q: row iteration: %w", tripID, err)
	}

	return stops, nil
}
