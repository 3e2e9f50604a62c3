package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/airsight/airsight/internal/cache"
	"github.com/airsight/airsight/internal/logger"
	"github.com/airsight/airsight/internal/openweather"
	"github.com/airsight/airsight/services/api/auth"
	"github.com/airsight/airsight/services/api/config"
	"github.com/airsight/airsight/services/api/db"
	httpserver "github.com/airsight/airsight/services/api/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	lg, err := logger.New("api", cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer lg.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	users, err := auth.NewDirectory(auth.DemoAccounts(cfg.DemoPassword), 0)
	if err != nil {
		lg.Fatal("user directory", zap.Error(err))
	}

	deps := httpserver.Deps{
		Users:  users,
		Tokens: auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Log:    lg,
	}

	if cfg.DatabaseURL != "" {
		store, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			lg.Fatal("db connection error", zap.Error(err))
		}
		defer store.Close()
		deps.Store = store
	} else {
		lg.Warn("DATABASE_URL not set; station endpoints disabled")
	}

	if cfg.OpenWeatherKey != "" {
		client := openweather.NewClient(&http.Client{Timeout: cfg.RequestTimeout}, cfg.OpenWeatherURL, cfg.OpenWeatherKey)
		deps.Air = openweather.NewCached(client, newCache(ctx, cfg, lg), cfg.UpstreamCacheTTL, lg)
	} else {
		lg.Warn("OPENWEATHER_API_KEY not set; live endpoints disabled")
	}

	srv := httpserver.New(cfg, deps)
	lg.Info("REST API listening", zap.String("addr", cfg.ListenAddr()))

	if err := srv.Run(ctx); err != nil {
		lg.Fatal("server error", zap.Error(err))
	}
}

func newCache(ctx context.Context, cfg config.Config, lg *zap.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewMemory()
	}
	rc, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "airsight:")
	if err != nil {
		lg.Warn("redis unavailable, using in-process cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		return cache.NewMemory()
	}
	return rc
}
