package utils

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/airsight/airsight/internal/openweather"
	"github.com/airsight/airsight/services/watcher/internal/models"
)

// FetchResult collects per-station outcomes of a polling round.
type FetchResult struct {
	Candidates []models.ReadingCandidate
	Failures   map[string]error
}

// FetchCandidates polls the current observation for every station with at
// most limit requests in flight. A failing station is recorded in Failures
// and does not abort the others. Candidates keep the station order.
func FetchCandidates(
	ctx context.Context,
	src openweather.Source,
	stations []models.Station,
	limit int,
	retrievalTS time.Time,
) FetchResult {
	if limit < 1 {
		limit = 1
	}

	slots := make([]*models.ReadingCandidate, len(stations))
	failures := make(map[string]error)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, st := range stations {
		i, st := i, st
		g.Go(func() error {
			obs, err := src.Current(gctx, openweather.Coordinates{Lat: st.Lat, Lon: st.Lon})
			if err != nil {
				mu.Lock()
				failures[st.ID] = err
				mu.Unlock()
				return nil
			}
			cand := BuildReadingCandidate(st.ID, obs, retrievalTS)
			slots[i] = &cand
			return nil
		})
	}
	_ = g.Wait()

	out := FetchResult{
		Candidates: make([]models.ReadingCandidate, 0, len(stations)),
		Failures:   failures,
	}
	for _, c := range slots {
		if c != nil {
			out.Candidates = append(out.Candidates, *c)
		}
	}
	return out
}
