package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	OpenWeatherAPIKey string

	// Window is the trailing rolling-statistics window in records.
	Window int

	// Chunks is the parallel worker count for per-city analysis.
	Chunks int

	// FetchMode selects the live-reading fetch strategy: "sync" or "async".
	FetchMode string

	// HTTPTimeout bounds outbound weather API calls.
	HTTPTimeout time.Duration

	// DatasetPath optionally preloads a CSV history at startup.
	DatasetPath string

	// MonitorCities get a periodic live-reading check; empty disables the monitor.
	MonitorCities   []string
	MonitorInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")

	cfg.Window = getenvInt("ANALYSIS_WINDOW", 30)
	if cfg.Window < 1 {
		return nil, fmt.Errorf("ANALYSIS_WINDOW must be at least 1, got %d", cfg.Window)
	}

	cfg.Chunks = getenvInt("ANALYSIS_CHUNKS", 4)
	if cfg.Chunks < 1 {
		return nil, fmt.Errorf("ANALYSIS_CHUNKS must be at least 1, got %d", cfg.Chunks)
	}

	cfg.FetchMode = getenvDefault("FETCH_MODE", "sync")
	if cfg.FetchMode != "sync" && cfg.FetchMode != "async" {
		return nil, fmt.Errorf("FETCH_MODE must be sync or async, got %q", cfg.FetchMode)
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.DatasetPath = os.Getenv("DATASET_PATH")

	if cities := os.Getenv("MONITOR_CITIES"); cities != "" {
		for _, c := range strings.Split(cities, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cfg.MonitorCities = append(cfg.MonitorCities, c)
			}
		}
	}

	intervalStr := getenvDefault("MONITOR_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid MONITOR_INTERVAL: %w", err)
	}
	cfg.MonitorInterval = interval

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
