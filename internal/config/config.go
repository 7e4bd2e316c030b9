package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// Upstream endpoints.
	GeocodingURL string `validate:"required,url"`
	ForecastURL  string `validate:"required,url"`

	// Language passed to the geocoder for place names.
	Language string `validate:"required,alpha"`

	// ForecastDays is the default length of the forecast strip.
	ForecastDays int `validate:"min=1,max=7"`

	HTTPTimeout   time.Duration `validate:"gt=0"` // per upstream request
	SearchTimeout time.Duration `validate:"gt=0"` // whole resolve+fetch pipeline

	// Widget sessions.
	MaxSessions          int           `validate:"min=0"` // 0 = unlimited
	SessionMaxIdle       time.Duration `validate:"gt=0"`
	SessionSweepInterval time.Duration `validate:"gt=0"`

	LogLevel string `validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() (*AppConfig, error) {
	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfg := &AppConfig{
		Port:         getenvDefault("PORT", "8080"),
		GeocodingURL: getenvDefault("GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1/search"),
		ForecastURL:  getenvDefault("FORECAST_URL", "https://api.open-meteo.com/v1/forecast"),
		Language:     getenvDefault("LANGUAGE", "en"),
		LogLevel:     getenvDefault("LOG_LEVEL", "info"),
	}

	ints := []struct {
		key string
		def string
		dst *int
	}{
		{"FORECAST_DAYS", "5", &cfg.ForecastDays},
		{"MAX_SESSIONS", "10000", &cfg.MaxSessions},
	}
	for _, i := range ints {
		v, err := strconv.Atoi(getenvDefault(i.key, i.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", i.key, err)
		}
		*i.dst = v
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"HTTP_TIMEOUT", "10s", &cfg.HTTPTimeout},
		{"SEARCH_TIMEOUT", "20s", &cfg.SearchTimeout},
		{"SESSION_MAX_IDLE", "30m", &cfg.SessionMaxIdle},
		{"SESSION_SWEEP_INTERVAL", "5m", &cfg.SessionSweepInterval},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getenvDefault(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
