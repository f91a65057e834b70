package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// defaultFeedURL is the USGS "all earthquakes, past hour" GeoJSON summary.
const defaultFeedURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_hour.geojson"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream feed configuration. FeedTimeout bounds the single GET per
	// request; there is no retry and no caching of the feed.
	FeedURL     string
	FeedTimeout time.Duration

	// Candidate eligibility thresholds.
	MinMagnitude  float64
	MaxDistanceKm float64

	// DrillEvent scores a synthetic nearby event when no real earthquake
	// qualifies. Demo deployments only.
	DrillEvent bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	feedTimeout, err := parseDurationEnv("FEED_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	minMagnitude, err := parseFloatEnv("MIN_MAGNITUDE", "3.0")
	if err != nil {
		return nil, err
	}

	maxDistanceKm, err := parseFloatEnv("MAX_DISTANCE_KM", "1000")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		FeedURL:     envOrDefault("FEED_URL", defaultFeedURL),
		FeedTimeout: feedTimeout,

		MinMagnitude:  minMagnitude,
		MaxDistanceKm: maxDistanceKm,

		DrillEvent: os.Getenv("DRILL_EVENT") == "true",
	}

	if cfg.FeedURL == "" {
		return nil, errors.New("FEED_URL must not be empty")
	}
	if cfg.MinMagnitude < 0 {
		return nil, errors.New("MIN_MAGNITUDE must not be negative")
	}
	if cfg.MaxDistanceKm <= 0 {
		return nil, errors.New("MAX_DISTANCE_KM must be positive")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := envOrDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func parseFloatEnv(key, def string) (float64, error) {
	raw := envOrDefault(key, def)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}
