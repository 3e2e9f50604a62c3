package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the REST API.
type Config struct {
	DatabaseURL      string
	OpenWeatherKey   string
	OpenWeatherURL   string
	JWTSecret        string
	TokenTTL         time.Duration
	DemoPassword     string
	Port             int
	LogLevel         string
	DefaultLat       float64
	DefaultLon       float64
	BaselineAQI      float64
	RequestTimeout   time.Duration
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	UpstreamCacheTTL time.Duration
	DefaultLimit     int
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		TokenTTL:         15 * time.Minute,
		DemoPassword:     "123456",
		Port:             8080,
		LogLevel:         "info",
		DefaultLat:       28.6139,
		DefaultLon:       77.2090,
		BaselineAQI:      276,
		RequestTimeout:   10 * time.Second,
		UpstreamCacheTTL: time.Minute,
		DefaultLimit:     200,
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET_KEY")
	if cfg.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET_KEY is required")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.OpenWeatherKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherURL = os.Getenv("OPENWEATHER_BASE_URL")
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if v := os.Getenv("DEMO_PASSWORD"); v != "" {
		cfg.DemoPassword = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil || db < 0 {
			return cfg, fmt.Errorf("invalid REDIS_DB: %s", v)
		}
		cfg.RedisDB = db
	}

	if v := os.Getenv("DEFAULT_LAT"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil || lat < -90 || lat > 90 {
			return cfg, fmt.Errorf("invalid DEFAULT_LAT: %s", v)
		}
		cfg.DefaultLat = lat
	}
	if v := os.Getenv("DEFAULT_LON"); v != "" {
		lon, err := strconv.ParseFloat(v, 64)
		if err != nil || lon < -180 || lon > 180 {
			return cfg, fmt.Errorf("invalid DEFAULT_LON: %s", v)
		}
		cfg.DefaultLon = lon
	}

	if v := os.Getenv("BASELINE_AQI"); v != "" {
		b, err := strconv.ParseFloat(v, 64)
		if err != nil || b < 0 {
			return cfg, fmt.Errorf("invalid BASELINE_AQI: %s", v)
		}
		cfg.BaselineAQI = b
	}

	durations := []struct {
		env string
		dst *time.Duration
	}{
		{"JWT_TOKEN_TTL", &cfg.TokenTTL},
		{"UPSTREAM_TIMEOUT", &cfg.RequestTimeout},
		{"UPSTREAM_CACHE_TTL", &cfg.UpstreamCacheTTL},
	}
	for _, d := range durations {
		v := os.Getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			return cfg, fmt.Errorf("invalid %s: %s", d.env, v)
		}
		*d.dst = parsed
	}

	if limitStr := os.Getenv("API_DEFAULT_LIMIT"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			cfg.DefaultLimit = limit
		} else {
			return cfg, fmt.Errorf("invalid API_DEFAULT_LIMIT: %s", limitStr)
		}
	}

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
