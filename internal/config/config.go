package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     int
	LogLevel string
	Env      string
	Backend  BackendConfig
	Rates    RatesConfig
	Prefs    PrefsConfig

	PendingPollInterval time.Duration
}

// BackendConfig holds the SPEG backend API configuration
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RatesConfig holds the exchange rate API configuration
type RatesConfig struct {
	URL          string
	PollInterval time.Duration
	FallbackRate float64
}

// PrefsConfig holds the preference store configuration
type PrefsConfig struct {
	DBPath string
}

// getEnv retrieves the value of an environment variable or returns a default value if not set.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

// Load reads the configuration from environment variables and returns a Config struct.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))

	if err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	backendTimeout, err := time.ParseDuration(getEnv("BACKEND_TIMEOUT", "15s"))

	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
	}

	ratePoll, err := time.ParseDuration(getEnv("RATE_POLL_INTERVAL", "1h"))

	if err != nil {
		return nil, fmt.Errorf("invalid RATE_POLL_INTERVAL: %w", err)
	}

	pendingPoll, err := time.ParseDuration(getEnv("PENDING_POLL_INTERVAL", "60s"))

	if err != nil {
		return nil, fmt.Errorf("invalid PENDING_POLL_INTERVAL: %w", err)
	}

	fallbackRate, err := strconv.ParseFloat(getEnv("RATE_FALLBACK_EUR_GHS", "17.05"), 64)

	if err != nil {
		return nil, fmt.Errorf("invalid RATE_FALLBACK_EUR_GHS: %w", err)
	}

	return &Config{
		Port:     port,
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Env:      getEnv("APP_ENV", "development"),
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:3000"),
			Timeout: backendTimeout,
		},
		Rates: RatesConfig{
			URL:          getEnv("RATE_API_URL", "https://api.exchangerate-api.com/v4/latest/EUR"),
			PollInterval: ratePoll,
			FallbackRate: fallbackRate,
		},
		Prefs: PrefsConfig{
			DBPath: getEnv("PREFS_DB_PATH", "speg-admin.db"),
		},
		PendingPollInterval: pendingPoll,
	}, nil
}
