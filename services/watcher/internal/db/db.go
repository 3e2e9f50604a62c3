package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/airsight/airsight/services/watcher/internal/models"
)

// SourceCurrent tags readings ingested from the current-conditions feed.
const SourceCurrent = "current"

// UpsertStations inserts/updates station metadata records.
func UpsertStations(ctx context.Context, pool *pgxpool.Pool, stations []models.StationRow) error {
	if len(stations) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO airsight.stations (id, name, lat, lon, top_source, metadata, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    lat = EXCLUDED.lat,
    lon = EXCLUDED.lon,
    top_source = EXCLUDED.top_source,
    metadata = EXCLUDED.metadata,
    updated_at = NOW()`

	for _, s := range stations {
		batch.Queue(query, s.ID, s.Name, s.Lat, s.Lon, s.TopSource, s.Metadata)
	}

	res := pool.SendBatch(ctx, batch)
	defer res.Close()

	for range stations {
		if _, err := res.Exec(); err != nil {
			return err
		}
	}

	return nil
}

// FetchLastReadings loads the most recent stored reading per station.
func FetchLastReadings(ctx context.Context, pool *pgxpool.Pool, stationIDs []string) (map[string]models.LastReading, error) {
	result := make(map[string]models.LastReading, len(stationIDs))
	if len(stationIDs) == 0 {
		return result, nil
	}

	rows, err := pool.Query(ctx, `
SELECT DISTINCT ON (station_id) station_id, COALESCE(pm25, 0), ts
FROM airsight.readings
WHERE station_id = ANY($1) AND source = $2
ORDER BY station_id, ts DESC`, stationIDs, SourceCurrent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var stationID string
		var pm25 float64
		var ts time.Time
		if err := rows.Scan(&stationID, &pm25, &ts); err != nil {
			return nil, err
		}
		result[stationID] = models.LastReading{PM25: pm25, TS: ts}
	}

	return result, rows.Err()
}

// InsertReadings writes new readings to airsight.readings.
func InsertReadings(ctx context.Context, pool *pgxpool.Pool, readings []models.ReadingCandidate) error {
	if len(readings) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO airsight.readings (station_id, ts, aqi, category, pm25, pm10, no2, so2, co, o3, source, ingested_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW())
ON CONFLICT (station_id, ts, source) DO UPDATE
SET aqi = EXCLUDED.aqi,
    category = EXCLUDED.category,
    pm25 = EXCLUDED.pm25,
    pm10 = EXCLUDED.pm10,
    no2 = EXCLUDED.no2,
    so2 = EXCLUDED.so2,
    co = EXCLUDED.co,
    o3 = EXCLUDED.o3,
    ingested_at = NOW()`

	for _, r := range readings {
		batch.Queue(query, r.StationID, r.TS, r.AQI, r.Category, r.PM25, r.PM10, r.NO2, r.SO2, r.CO, r.O3, SourceCurrent)
	}

	res := pool.SendBatch(ctx, batch)
	defer res.Close()

	for range readings {
		if _, err := res.Exec(); err != nil {
			return err
		}
	}

	return nil
}
