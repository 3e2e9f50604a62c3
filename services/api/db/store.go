package db

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps database access helpers.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Station represents a monitoring station record.
type Station struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	TopSource *string   `json:"top_source,omitempty"`
	Metadata  []byte    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const listStationsSQL = `
    SELECT id, name, lat, lon, top_source, metadata, created_at, updated_at
    FROM airsight.stations
    ORDER BY id
`

// ListStations returns all station metadata.
func (s *Store) ListStations(ctx context.Context) ([]Station, error) {
	rows, err := s.pool.Query(ctx, listStationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stations := make([]Station, 0)
	for rows.Next() {
		var st Station
		if err := rows.Scan(
			&st.ID,
			&st.Name,
			&st.Lat,
			&st.Lon,
			&st.TopSource,
			&st.Metadata,
			&st.CreatedAt,
			&st.UpdatedAt,
		); err != nil {
			return nil, err
		}
		stations = append(stations, st)
	}
	return stations, rows.Err()
}

// Reading is one stored AQI observation.
type Reading struct {
	StationID string    `json:"station_id"`
	Timestamp time.Time `json:"ts"`
	AQI       int       `json:"aqi"`
	Category  string    `json:"category"`
	PM25      *float64  `json:"pm25,omitempty"`
	PM10      *float64  `json:"pm10,omitempty"`
	NO2       *float64  `json:"no2,omitempty"`
	SO2       *float64  `json:"so2,omitempty"`
	CO        *float64  `json:"co,omitempty"`
	O3        *float64  `json:"o3,omitempty"`
	Source    string    `json:"source"`
}

// ReadingQuery holds filters for retrieving readings.
type ReadingQuery struct {
	StationID string
	Limit     int
	Since     *time.Time
	Until     *time.Time
}

const readingsBase = `
    SELECT station_id, ts, aqi, category, pm25, pm10, no2, so2, co, o3, source
    FROM airsight.readings
    WHERE station_id = $1
`

// FetchReadings returns readings for a station based on the query, newest
// first.
func (s *Store) FetchReadings(ctx context.Context, q ReadingQuery) ([]Reading, error) {
	args := []any{q.StationID}
	clause := ""
	argPos := 2
	if q.Since != nil {
		clause += " AND ts >= $" + strconv.Itoa(argPos)
		args = append(args, *q.Since)
		argPos++
	}
	if q.Until != nil {
		clause += " AND ts <= $" + strconv.Itoa(argPos)
		args = append(args, *q.Until)
		argPos++
	}
	order := " ORDER BY ts DESC"
	limit := ""
	if q.Limit > 0 {
		limit = " LIMIT $" + strconv.Itoa(argPos)
		args = append(args, q.Limit)
	}

	rows, err := s.pool.Query(ctx, readingsBase+clause+order+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReadings(rows)
}

const latestReadingsSQL = `
    SELECT DISTINCT ON (station_id) station_id, ts, aqi, category, pm25, pm10, no2, so2, co, o3, source
    FROM airsight.readings
    ORDER BY station_id, ts DESC
`

// LatestReadings returns the most recent reading per station.
func (s *Store) LatestReadings(ctx context.Context) ([]Reading, error) {
	rows, err := s.pool.Query(ctx, latestReadingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReadings(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanReadings(rows rowScanner) ([]Reading, error) {
	out := make([]Reading, 0)
	for rows.Next() {
		var r Reading
		if err := rows.Scan(
			&r.StationID,
			&r.Timestamp,
			&r.AQI,
			&r.Category,
			&r.PM25,
			&r.PM10,
			&r.NO2,
			&r.SO2,
			&r.CO,
			&r.O3,
			&r.Source,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
