package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/airsight/airsight/internal/openweather"
	"github.com/airsight/airsight/pkg/aqi"
	"github.com/airsight/airsight/pkg/policy"
	"github.com/airsight/airsight/pkg/sources"
)

// coordinates reads lat/lon query parameters, falling back to the
// configured location.
func (s *Server) coordinates(c *gin.Context) (openweather.Coordinates, bool) {
	at := openweather.Coordinates{Lat: s.cfg.DefaultLat, Lon: s.cfg.DefaultLon}
	if v := c.Query("lat"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			abortError(c, http.StatusBadRequest, "invalid lat")
			return at, false
		}
		at.Lat = lat
	}
	if v := c.Query("lon"); v != "" {
		lon, err := strconv.ParseFloat(v, 64)
		if err != nil {
			abortError(c, http.StatusBadRequest, "invalid lon")
			return at, false
		}
		at.Lon = lon
	}
	if err := at.Validate(); err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return at, false
	}
	return at, true
}

// upstream resolves coordinates and checks an air-quality source is
// configured.
func (s *Server) upstream(c *gin.Context) (openweather.Coordinates, bool) {
	if s.deps.Air == nil {
		abortError(c, http.StatusInternalServerError, "API key not configured")
		return openweather.Coordinates{}, false
	}
	return s.coordinates(c)
}

func (s *Server) upstreamFailed(c *gin.Context, op string, err error) {
	s.log.Warn("upstream request failed", zap.String("op", op), zap.Error(err))
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
		"status":  "error",
		"message": "OpenWeather API error",
	})
}

type currentView struct {
	AQI        int                       `json:"aqi"`
	Category   aqi.Category              `json:"category"`
	Band       aqi.HealthRiskLevel       `json:"band"`
	Pollutants map[aqi.Pollutant]float64 `json:"pollutants"`
	Timestamp  int64                     `json:"timestamp"`
}

func newCurrentView(obs openweather.Observation) currentView {
	value := obs.AQI()
	return currentView{
		AQI:        value,
		Category:   aqi.CategoryOf(value),
		Band:       aqi.Classify(float64(value)),
		Pollutants: obs.Pollutants(),
		Timestamp:  obs.Timestamp.Unix(),
	}
}

type forecastPoint struct {
	Timestamp int64        `json:"timestamp"`
	PM25      float64      `json:"pm25"`
	PM10      float64      `json:"pm10"`
	NO2       float64      `json:"no2"`
	AQIValue  int          `json:"aqi_value"`
	Category  aqi.Category `json:"category"`
}

func newForecast(series []openweather.Observation) []forecastPoint {
	out := make([]forecastPoint, 0, len(series))
	for _, obs := range series {
		value := obs.AQI()
		out = append(out, forecastPoint{
			Timestamp: obs.Timestamp.Unix(),
			PM25:      obs.Components.PM25,
			PM10:      obs.Components.PM10,
			NO2:       obs.Components.NO2,
			AQIValue:  value,
			Category:  aqi.CategoryOf(value),
		})
	}
	return out
}

// handleLiveAQI returns the current AQI for a location
// GET /api/live-aqi?lat=28.61&lon=77.20
func (s *Server) handleLiveAQI(c *gin.Context) {
	at, ok := s.upstream(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
	defer cancel()

	obs, err := s.deps.Air.Current(ctx, at)
	if err != nil {
		s.upstreamFailed(c, "current", err)
		return
	}

	view := newCurrentView(obs)
	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"location":   at,
		"aqi":        gin.H{"value": view.AQI, "category": view.Category},
		"band":       view.Band,
		"pollutants": view.Pollutants,
		"timestamp":  view.Timestamp,
	})
}

// handleForecast returns the upcoming PM2.5-based AQI series
// GET /api/forecast?lat=28.61&lon=77.20
func (s *Server) handleForecast(c *gin.Context) {
	at, ok := s.upstream(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
	defer cancel()

	series, err := s.deps.Air.Forecast(ctx, at)
	if err != nil {
		s.upstreamFailed(c, "forecast", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"forecast": newForecast(series),
	})
}

// handleSourceContribution attributes the current pollution load to sources
// and lists the actions it calls for
// GET /api/source-contribution?lat=28.61&lon=77.20
func (s *Server) handleSourceContribution(c *gin.Context) {
	at, ok := s.upstream(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
	defer cancel()

	obs, err := s.deps.Air.Current(ctx, at)
	if err != nil {
		s.upstreamFailed(c, "current", err)
		return
	}

	pollutants := obs.Pollutants()
	contribution := sources.Attribute(pollutants)
	resp := gin.H{
		"status":           "success",
		"contribution":     contribution,
		"recommendations":  policy.Advise(float64(obs.AQI()), contribution),
		"input_pollutants": pollutants,
	}
	if top, share, ok := contribution.Top(); ok {
		resp["predicted_source"] = top
		resp["predicted_share"] = share
	}
	c.JSON(http.StatusOK, resp)
}

// handleV1Dashboard combines the live reading and the forecast, fetched
// concurrently
// GET /api/v1/dashboard?lat=28.61&lon=77.20
func (s *Server) handleV1Dashboard(c *gin.Context) {
	at, ok := s.upstream(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
	defer cancel()

	var (
		current openweather.Observation
		series  []openweather.Observation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.deps.Air.Current(gctx, at)
		return err
	})
	g.Go(func() error {
		var err error
		series, err = s.deps.Air.Forecast(gctx, at)
		return err
	})
	if err := g.Wait(); err != nil {
		s.upstreamFailed(c, "dashboard", err)
		return
	}

	forecast := newForecast(series)
	data := gin.H{
		"current":  newCurrentView(current),
		"forecast": forecast,
	}
	if len(forecast) > 0 {
		peak := forecast[0]
		for _, p := range forecast[1:] {
			if p.AQIValue > peak.AQIValue {
				peak = p
			}
		}
		data["peak"] = peak
	}

	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"meta": gin.H{
			"location":     at,
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}
