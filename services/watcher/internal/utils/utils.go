package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/airsight/airsight/internal/openweather"
	"github.com/airsight/airsight/pkg/aqi"
	"github.com/airsight/airsight/services/watcher/internal/models"
)

// BuildStationRows converts catalog stations into database-ready rows.
func BuildStationRows(stations []models.Station) []models.StationRow {
	rows := make([]models.StationRow, 0, len(stations))
	for _, st := range stations {
		var top *string
		if st.TopSource != "" {
			s := st.TopSource
			top = &s
		}
		rows = append(rows, models.StationRow{
			ID:        st.ID,
			Name:      st.Name,
			Lat:       st.Lat,
			Lon:       st.Lon,
			TopSource: top,
			Metadata: map[string]any{
				"source":   "catalog",
				"provider": "openweather",
			},
		})
	}
	return rows
}

// StationIDs extracts station identifiers from station rows.
func StationIDs(rows []models.StationRow) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}

// BuildReadingCandidate normalizes an observation into a reading candidate.
// The observation's own timestamp is used; a zero timestamp falls back to
// the retrieval time.
func BuildReadingCandidate(stationID string, obs openweather.Observation, retrievalTS time.Time) models.ReadingCandidate {
	ts := obs.Timestamp
	if ts.IsZero() {
		ts = retrievalTS
	}
	p := obs.Pollutants()
	value := obs.AQI()
	return models.ReadingCandidate{
		StationID: stationID,
		TS:        ts.UTC(),
		AQI:       value,
		Category:  string(aqi.CategoryOf(value)),
		PM25:      p[aqi.PM25],
		PM10:      p[aqi.PM10],
		NO2:       p[aqi.NO2],
		SO2:       p[aqi.SO2],
		CO:        p[aqi.CO],
		O3:        p[aqi.O3],
	}
}

// FilterNewReadings selects candidates that should be inserted: stations
// without history, readings at least minInterval after the last one, and
// readings whose PM2.5 moved by more than epsilon.
func FilterNewReadings(
	candidates []models.ReadingCandidate,
	last map[string]models.LastReading,
	minInterval time.Duration,
	epsilon float64,
) []models.ReadingCandidate {
	out := make([]models.ReadingCandidate, 0, len(candidates))
	for _, cand := range candidates {
		prev, ok := last[cand.StationID]
		if !ok {
			out = append(out, cand)
			continue
		}

		if !cand.TS.After(prev.TS) {
			continue
		}

		if cand.TS.Sub(prev.TS) >= minInterval {
			out = append(out, cand)
			continue
		}

		if !ValuesEqual(prev.PM25, cand.PM25, epsilon) {
			out = append(out, cand)
		}
	}
	return out
}

// ValuesEqual compares two values with tolerance.
func ValuesEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// Describe prints a candidate for logging.
func Describe(c models.ReadingCandidate) string {
	return fmt.Sprintf("station=%s ts=%s aqi=%d pm25=%.1f", c.StationID, c.TS.Format(time.RFC3339), c.AQI, c.PM25)
}
