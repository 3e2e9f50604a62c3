package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/airsight/airsight/pkg/aqi"
	"github.com/airsight/airsight/pkg/trend"
	"github.com/airsight/airsight/services/api/db"
)

func (s *Server) requireStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.deps.Store == nil {
			abortError(c, http.StatusServiceUnavailable, "reading storage not configured")
			return
		}
		c.Next()
	}
}

// handleV1ListStations returns all stations
// GET /api/v1/stations
func (s *Server) handleV1ListStations(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stations, err := s.deps.Store.ListStations(ctx)
	if err != nil {
		abortError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": stations,
		"meta": gin.H{"count": len(stations)},
	})
}

type marker struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Lat       float64              `json:"lat"`
	Lon       float64              `json:"lon"`
	TopSource *string              `json:"top_source,omitempty"`
	AQI       *int                 `json:"aqi,omitempty"`
	Timestamp *time.Time           `json:"ts,omitempty"`
	Band      *aqi.HealthRiskLevel `json:"band,omitempty"`
}

// handleV1Map returns one marker per station with its latest reading
// GET /api/v1/map
func (s *Server) handleV1Map(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	stations, err := s.deps.Store.ListStations(ctx)
	if err != nil {
		abortError(c, http.StatusInternalServerError, err.Error())
		return
	}
	latest, err := s.deps.Store.LatestReadings(ctx)
	if err != nil {
		abortError(c, http.StatusInternalServerError, err.Error())
		return
	}

	byStation := make(map[string]db.Reading, len(latest))
	for _, r := range latest {
		byStation[r.StationID] = r
	}

	markers := make([]marker, 0, len(stations))
	for _, st := range stations {
		m := marker{ID: st.ID, Name: st.Name, Lat: st.Lat, Lon: st.Lon, TopSource: st.TopSource}
		if r, ok := byStation[st.ID]; ok {
			value, ts := r.AQI, r.Timestamp
			band := aqi.Classify(float64(value))
			m.AQI, m.Timestamp, m.Band = &value, &ts, &band
		}
		markers = append(markers, m)
	}

	c.JSON(http.StatusOK, gin.H{
		"data": markers,
		"meta": gin.H{
			"count":        len(markers),
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// handleV1StationReadings returns stored readings for a station
// GET /api/v1/stations/:id/readings?last_n=100&last_n_days=7&start=...&end=...
func (s *Server) handleV1StationReadings(c *gin.Context) {
	stationID := c.Param("id")

	limit := s.cfg.DefaultLimit
	if limitStr := c.Query("last_n"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			abortError(c, http.StatusBadRequest, "invalid last_n")
			return
		}
		limit = parsed
	}

	var since, until *time.Time

	if daysStr := c.Query("last_n_days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days <= 0 {
			abortError(c, http.StatusBadRequest, "invalid last_n_days")
			return
		}
		t := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
		since = &t
	}

	if startStr := c.Query("start"); startStr != "" {
		t, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			abortError(c, http.StatusBadRequest, "invalid start timestamp")
			return
		}
		tt := t.UTC()
		since = &tt
	}

	if endStr := c.Query("end"); endStr != "" {
		t, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			abortError(c, http.StatusBadRequest, "invalid end timestamp")
			return
		}
		tt := t.UTC()
		until = &tt
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if !s.stationExists(ctx, c, stationID) {
		return
	}

	readings, err := s.deps.Store.FetchReadings(ctx, db.ReadingQuery{
		StationID: stationID,
		Limit:     limit,
		Since:     since,
		Until:     until,
	})
	if err != nil {
		abortError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": readings,
		"meta": gin.H{
			"station_id": stationID,
			"count":      len(readings),
		},
	})
}

// handleV1StationPatterns returns monthly AQI patterns for a station
// GET /api/v1/stations/:id/patterns?days=365
func (s *Server) handleV1StationPatterns(c *gin.Context) {
	stationID := c.Param("id")

	days := 365
	if daysStr := c.Query("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed <= 0 {
			abortError(c, http.StatusBadRequest, "invalid days")
			return
		}
		days = parsed
	}
	since := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if !s.stationExists(ctx, c, stationID) {
		return
	}

	samples, err := s.deps.Store.DailyAQI(ctx, stationID, since)
	if err != nil {
		abortError(c, http.StatusInternalServerError, err.Error())
		return
	}

	patterns, err := trend.Detect(samples)
	if errors.Is(err, trend.ErrNoSamples) {
		abortError(c, http.StatusNotFound, "no readings in range")
		return
	}
	if err != nil {
		abortError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": patterns,
		"meta": gin.H{
			"station_id": stationID,
			"samples":    len(samples),
			"since":      since.Format(time.RFC3339),
		},
	})
}

func (s *Server) stationExists(ctx context.Context, c *gin.Context, id string) bool {
	ok, err := s.deps.Store.StationExists(ctx, id)
	if err != nil {
		abortError(c, http.StatusInternalServerError, err.Error())
		return false
	}
	if !ok {
		abortError(c, http.StatusNotFound, "station not found")
		return false
	}
	return true
}
