package db

import (
	"context"
	"time"

	"github.com/airsight/airsight/pkg/trend"
)

const dailyAQISQL = `
    SELECT date_trunc('day', ts) AS day, AVG(aqi)::double precision
    FROM airsight.readings
    WHERE station_id = $1 AND ts >= $2
    GROUP BY day
    ORDER BY day
`

// DailyAQI returns one mean AQI sample per day for a station since the
// given time.
func (s *Store) DailyAQI(ctx context.Context, stationID string, since time.Time) ([]trend.Sample, error) {
	rows, err := s.pool.Query(ctx, dailyAQISQL, stationID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	samples := make([]trend.Sample, 0)
	for rows.Next() {
		var sample trend.Sample
		if err := rows.Scan(&sample.Date, &sample.AQI); err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}

const stationExistsSQL = `SELECT EXISTS (SELECT 1 FROM airsight.stations WHERE id = $1)`

// StationExists reports whether a station id is known.
func (s *Store) StationExists(ctx context.Context, id string) (bool, error) {
	var ok bool
	if err := s.pool.QueryRow(ctx, stationExistsSQL, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
