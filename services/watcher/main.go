package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/airsight/airsight/internal/logger"
	"github.com/airsight/airsight/internal/openweather"
	"github.com/airsight/airsight/services/watcher/internal/config"
	"github.com/airsight/airsight/services/watcher/internal/db"
	"github.com/airsight/airsight/services/watcher/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	lg, err := logger.New("watcher", cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer lg.Sync()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("watcher failed", zap.Error(err))
	}
}

func run(cfg config.Config, lg *zap.Logger) error {
	stations, err := config.LoadStations(cfg.StationsFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+10*time.Second)
	defer cancel()

	client := openweather.NewClient(&http.Client{Timeout: cfg.RequestTimeout}, cfg.OpenWeatherURL, cfg.OpenWeatherKey)
	retrievalTS := time.Now().UTC().Truncate(time.Second)

	res := utils.FetchCandidates(ctx, client, stations, cfg.Concurrency, retrievalTS)
	for id, ferr := range res.Failures {
		lg.Warn("station fetch failed", zap.String("station", id), zap.Error(ferr))
	}
	lg.Info("fetched observations",
		zap.Int("stations", len(stations)),
		zap.Int("ok", len(res.Candidates)),
		zap.Int("failed", len(res.Failures)),
	)

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	stationRows := utils.BuildStationRows(stations)
	if cfg.DryRun {
		lg.Info("dry-run: skipping station upsert", zap.Int("candidates", len(stationRows)))
	} else {
		if err := db.UpsertStations(ctx, pool, stationRows); err != nil {
			return err
		}
	}

	lastMap, err := db.FetchLastReadings(ctx, pool, utils.StationIDs(stationRows))
	if err != nil {
		return err
	}

	pending := utils.FilterNewReadings(res.Candidates, lastMap, cfg.MinInterval, cfg.ValueEpsilon)
	if len(pending) == 0 {
		lg.Info("no new readings to insert", zap.Time("retrieval", retrievalTS))
		return nil
	}

	lg.Info("prepared new readings", zap.Int("count", len(pending)), zap.Bool("dry_run", cfg.DryRun))

	if cfg.DryRun {
		for _, cand := range pending {
			lg.Info("dry-run: would insert", zap.String("reading", utils.Describe(cand)))
		}
		return nil
	}

	if err := db.InsertReadings(ctx, pool, pending); err != nil {
		return err
	}

	lg.Info("inserted readings", zap.Int("count", len(pending)))
	return nil
}
