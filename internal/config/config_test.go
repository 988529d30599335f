package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}

	if cfg.Backend.BaseURL != "http://localhost:3000" {
		t.Errorf("Backend.BaseURL = %q", cfg.Backend.BaseURL)
	}

	if cfg.Backend.Timeout != 15*time.Second {
		t.Errorf("Backend.Timeout = %v, want 15s", cfg.Backend.Timeout)
	}

	if cfg.Rates.PollInterval != time.Hour {
		t.Errorf("Rates.PollInterval = %v, want 1h", cfg.Rates.PollInterval)
	}

	if cfg.Rates.FallbackRate != 17.05 {
		t.Errorf("Rates.FallbackRate = %v, want 17.05", cfg.Rates.FallbackRate)
	}

	if cfg.PendingPollInterval != 60*time.Second {
		t.Errorf("PendingPollInterval = %v, want 60s", cfg.PendingPollInterval)
	}
}

func TestLoad_OverridesFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com")
	t.Setenv("RATE_POLL_INTERVAL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}

	if cfg.Backend.BaseURL != "https://api.example.com" {
		t.Errorf("Backend.BaseURL = %q", cfg.Backend.BaseURL)
	}

	if cfg.Rates.PollInterval != 30*time.Minute {
		t.Errorf("Rates.PollInterval = %v, want 30m", cfg.Rates.PollInterval)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "PORT", "not-a-port"},
		{"bad timeout", "BACKEND_TIMEOUT", "soon"},
		{"bad poll interval", "RATE_POLL_INTERVAL", "hourly"},
		{"bad fallback rate", "RATE_FALLBACK_EUR_GHS", "seventeen"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("Load accepted %s=%q", tc.key, tc.value)
			}
		})
	}
}
