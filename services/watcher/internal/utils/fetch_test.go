package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/airsight/airsight/internal/openweather"
	"github.com/airsight/airsight/services/watcher/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubSource struct {
	inflight atomic.Int32
	peak     atomic.Int32
	byLat    map[float64]float64
}

func (s *stubSource) Current(_ context.Context, at openweather.Coordinates) (openweather.Observation, error) {
	n := s.inflight.Add(1)
	defer s.inflight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	pm, ok := s.byLat[at.Lat]
	if !ok {
		return openweather.Observation{}, errors.New("upstream down")
	}
	return openweather.Observation{Timestamp: t0, Components: openweather.Components{PM25: pm}}, nil
}

func (s *stubSource) Forecast(context.Context, openweather.Coordinates) ([]openweather.Observation, error) {
	return nil, nil
}

func TestFetchCandidates(t *testing.T) {
	src := &stubSource{byLat: map[float64]float64{1: 20, 2: 95, 4: 300}}
	stations := []models.Station{
		{ID: "a", Lat: 1},
		{ID: "b", Lat: 2},
		{ID: "c", Lat: 3},
		{ID: "d", Lat: 4},
	}

	res := FetchCandidates(context.Background(), src, stations, 2, t0)
	require.Len(t, res.Candidates, 3)
	assert.Equal(t, "a", res.Candidates[0].StationID)
	assert.Equal(t, 50, res.Candidates[0].AQI)
	assert.Equal(t, "b", res.Candidates[1].StationID)
	assert.Equal(t, 200, res.Candidates[1].AQI)
	assert.Equal(t, "d", res.Candidates[2].StationID)
	assert.Equal(t, 400, res.Candidates[2].AQI)

	require.Contains(t, res.Failures, "c")
	assert.EqualError(t, res.Failures["c"], "upstream down")
	assert.LessOrEqual(t, src.peak.Load(), int32(2))
}

func TestFetchCandidatesEmpty(t *testing.T) {
	res := FetchCandidates(context.Background(), &stubSource{}, nil, 0, t0)
	assert.Empty(t, res.Candidates)
	assert.Empty(t, res.Failures)
}
