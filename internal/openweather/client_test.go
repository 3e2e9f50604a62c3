package openweather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/airsight/airsight/internal/cache"
	"github.com/airsight/airsight/pkg/aqi"
)

const currentPayload = `{
  "coord": {"lon": 77.209, "lat": 28.6139},
  "list": [{
    "main": {"aqi": 5},
    "components": {"co": 3204.5, "no": 1.2, "no2": 82, "o3": 28, "so2": 45, "pm2_5": 156, "pm10": 298, "nh3": 9},
    "dt": 1730448000
  }]
}`

func forecastPayload(n int) string {
	entries := make([]string, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, fmt.Sprintf(
			`{"main":{"aqi":4},"components":{"co":1000,"no2":40,"o3":20,"so2":10,"pm2_5":%d,"pm10":120},"dt":%d}`,
			40+i*10, 1730448000+i*3600))
	}
	return `{"coord":{"lon":77.2,"lat":28.6},"list":[` + strings.Join(entries, ",") + `]}`
}

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), srv.URL, "test-key")
}

var delhi = Coordinates{Lat: 28.6139, Lon: 77.209}

func TestCurrent(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/air_pollution", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "28.6139", r.URL.Query().Get("lat"))
		w.Write([]byte(currentPayload))
	})

	obs, err := client.Current(context.Background(), delhi)
	require.NoError(t, err)

	assert.Equal(t, time.Unix(1730448000, 0).UTC(), obs.Timestamp)
	assert.Equal(t, 300, obs.AQI())

	p := obs.Pollutants()
	assert.Equal(t, 156.0, p[aqi.PM25])
	assert.Equal(t, 3.2, p[aqi.CO])
	assert.Len(t, p, 6)
}

func TestForecastTruncates(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/air_pollution/forecast", r.URL.Path)
		w.Write([]byte(forecastPayload(12)))
	})

	series, err := client.Forecast(context.Background(), delhi)
	require.NoError(t, err)
	require.Len(t, series, ForecastSamples)
	assert.Equal(t, 40.0, series[0].Components.PM25)
	assert.True(t, series[1].Timestamp.After(series[0].Timestamp))
}

func TestUpstreamStatus(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	})

	_, err := client.Current(context.Background(), delhi)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
}

func TestInvalidPayloads(t *testing.T) {
	cases := map[string]string{
		"empty list": `{"list": []}`,
		"negative":   `{"list": [{"components": {"pm2_5": -1}, "dt": 10}]}`,
		"missing dt": `{"list": [{"components": {"pm2_5": 5}}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			_, err := client.Current(context.Background(), delhi)
			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestInvalidCoordinates(t *testing.T) {
	client := NewClient(http.DefaultClient, "", "k")
	_, err := client.Current(context.Background(), Coordinates{Lat: 91})
	assert.Error(t, err)
}

type countingSource struct {
	current  atomic.Int32
	forecast atomic.Int32
	err      error
}

func (s *countingSource) Current(context.Context, Coordinates) (Observation, error) {
	s.current.Add(1)
	if s.err != nil {
		return Observation{}, s.err
	}
	return Observation{Timestamp: time.Unix(100, 0).UTC(), Components: Components{PM25: 70}}, nil
}

func (s *countingSource) Forecast(context.Context, Coordinates) ([]Observation, error) {
	s.forecast.Add(1)
	return []Observation{{Timestamp: time.Unix(200, 0).UTC()}}, nil
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func TestCachedServesRepeatRequests(t *testing.T) {
	src := &countingSource{}
	c := NewCached(src, cache.NewMemory(), time.Minute, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		obs, err := c.Current(ctx, delhi)
		require.NoError(t, err)
		assert.Equal(t, 70.0, obs.Components.PM25)
		_, err = c.Forecast(ctx, delhi)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), src.current.Load())
	assert.Equal(t, int32(1), src.forecast.Load())
}

func TestCachedIgnoresCacheFailures(t *testing.T) {
	src := &countingSource{}
	c := NewCached(src, brokenCache{}, time.Minute, zap.NewNop())

	_, err := c.Current(context.Background(), delhi)
	require.NoError(t, err)
	_, err = c.Current(context.Background(), delhi)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.current.Load())
}

func TestCachedPropagatesUpstreamErrors(t *testing.T) {
	src := &countingSource{err: &StatusError{Status: "502 Bad Gateway", Code: 502}}
	c := NewCached(src, cache.NewMemory(), time.Minute, zap.NewNop())

	_, err := c.Current(context.Background(), delhi)
	var statusErr *StatusError
	assert.ErrorAs(t, err, &statusErr)
}
