package config

import (
	"strings"
	"testing"
	"time"
)

var configKeys = []string{
	"PORT", "GEOCODING_URL", "FORECAST_URL", "LANGUAGE", "FORECAST_DAYS",
	"HTTP_TIMEOUT", "SEARCH_TIMEOUT", "SESSION_MAX_IDLE", "SESSION_SWEEP_INTERVAL",
	"MAX_SESSIONS", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.GeocodingURL != "https://geocoding-api.open-meteo.com/v1/search" {
		t.Errorf("geocoding url = %q", cfg.GeocodingURL)
	}
	if cfg.ForecastURL != "https://api.open-meteo.com/v1/forecast" {
		t.Errorf("forecast url = %q", cfg.ForecastURL)
	}
	if cfg.Language != "en" || cfg.ForecastDays != 5 || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.HTTPTimeout != 10*time.Second || cfg.SearchTimeout != 20*time.Second {
		t.Errorf("timeouts = %v/%v", cfg.HTTPTimeout, cfg.SearchTimeout)
	}
	if cfg.SessionMaxIdle != 30*time.Minute || cfg.SessionSweepInterval != 5*time.Minute {
		t.Errorf("session timings = %v/%v", cfg.SessionMaxIdle, cfg.SessionSweepInterval)
	}
	if cfg.MaxSessions != 10000 {
		t.Errorf("max sessions = %d", cfg.MaxSessions)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LANGUAGE", "ru")
	t.Setenv("FORECAST_DAYS", "7")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("MAX_SESSIONS", "0")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.Language != "ru" || cfg.ForecastDays != 7 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("http timeout = %v", cfg.HTTPTimeout)
	}
	if cfg.MaxSessions != 0 || cfg.LogLevel != "debug" {
		t.Errorf("max sessions/log level = %d/%q", cfg.MaxSessions, cfg.LogLevel)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"FORECAST_DAYS", "five", "invalid FORECAST_DAYS"},
		{"FORECAST_DAYS", "8", "invalid configuration"},
		{"FORECAST_DAYS", "0", "invalid configuration"},
		{"HTTP_TIMEOUT", "soon", "invalid HTTP_TIMEOUT"},
		{"MAX_SESSIONS", "lots", "invalid MAX_SESSIONS"},
		{"MAX_SESSIONS", "-1", "invalid configuration"},
		{"SEARCH_TIMEOUT", "-1s", "invalid configuration"},
		{"PORT", "http", "invalid configuration"},
		{"FORECAST_URL", "not a url", "invalid configuration"},
		{"LOG_LEVEL", "verbose", "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
