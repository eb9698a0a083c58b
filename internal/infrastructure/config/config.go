// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Scheduler HTTP (metrics + health)
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Files
	HistoryFile string
	ChartFile   string
	DebugFile   string
	OutputDir   string

	// Fetcher
	PageLoadTimeout time.Duration
	SettleWait      time.Duration
	PrimaryWait     time.Duration
	FallbackWait    time.Duration

	// Extraction
	ListingSelectors  []string
	DefaultFlightDate string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		HistoryFile: getEnv("HISTORY_FILE", "flights_history.xlsx"),
		ChartFile:   getEnv("CHART_FILE", "flights_chart.html"),
		DebugFile:   getEnv("DEBUG_FILE", "debug_page.html"),
		OutputDir:   getEnv("OUTPUT_DIR", "."),

		PageLoadTimeout: time.Duration(getEnvAsInt("PAGE_LOAD_TIMEOUT", 30)) * time.Second,
		SettleWait:      time.Duration(getEnvAsInt("SETTLE_WAIT", 5)) * time.Second,
		PrimaryWait:     time.Duration(getEnvAsInt("PRIMARY_WAIT", 15)) * time.Second,
		FallbackWait:    time.Duration(getEnvAsInt("FALLBACK_WAIT", 10)) * time.Second,

		ListingSelectors: getEnvAsSlice("LISTING_SELECTORS",
			[]string{"div.item-inner", "div.product", "div.flight-item", "div.search-item", "div.item"}),
		DefaultFlightDate: getEnv("DEFAULT_FLIGHT_DATE", "2026-01-01"),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
