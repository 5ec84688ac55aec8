// Package config loads client configuration from environment variables.
//
// Environment variables (all prefixed MEETSYNC_):
//   - MEETSYNC_API_URL: base URL of the scheduling API (default http://localhost:8091)
//   - MEETSYNC_TIMEZONE: IANA timezone for display and date resolution (default local zone)
//   - MEETSYNC_HOUR_DISPLAY: "12h" or "24h" (default 12h)
//   - MEETSYNC_CACHE_DIR: directory for cached API responses (default ~/.cache/meetsync)
//   - MEETSYNC_BLACKOUT_START / MEETSYNC_BLACKOUT_END: blackout window as "HH:mm"
//     (default 12:00 / 16:00; set both equal to disable)
//   - MEETSYNC_HTTP_TIMEOUT: request timeout (default 30s)
//   - MEETSYNC_LOG_FILE: when set, logs rotate into this file instead of stderr
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"meetsync/utils/slot"
)

// Config holds all settings for the booking client.
type Config struct {
	APIBaseURL  string
	Timezone    string
	HourDisplay string
	CacheDir    string
	LogFile     string

	// Blackout window in minutes of day, [start, end).
	BlackoutStart int
	BlackoutEnd   int

	HTTPTimeout time.Duration
}

// Load reads configuration from the environment, filling in defaults.
// Call Validate before using the result.
func Load() *Config {
	cfg := &Config{
		APIBaseURL:    envOr("MEETSYNC_API_URL", "http://localhost:8091"),
		Timezone:      envOr("MEETSYNC_TIMEZONE", localZone()),
		HourDisplay:   envOr("MEETSYNC_HOUR_DISPLAY", slot.Display12),
		CacheDir:      envOr("MEETSYNC_CACHE_DIR", defaultCacheDir()),
		LogFile:       os.Getenv("MEETSYNC_LOG_FILE"),
		BlackoutStart: 12 * 60,
		BlackoutEnd:   16 * 60,
		HTTPTimeout:   30 * time.Second,
	}
	if v := os.Getenv("MEETSYNC_BLACKOUT_START"); v != "" {
		if m, err := slot.MinuteOfDay(v); err == nil {
			cfg.BlackoutStart = m
		}
	}
	if v := os.Getenv("MEETSYNC_BLACKOUT_END"); v != "" {
		if m, err := slot.MinuteOfDay(v); err == nil {
			cfg.BlackoutEnd = m
		}
	}
	if v := os.Getenv("MEETSYNC_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.HTTPTimeout = d
		}
	}
	return cfg
}

// Validate checks that the configuration can actually drive the client.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("MEETSYNC_API_URL is required")
	}
	if c.HourDisplay != slot.Display12 && c.HourDisplay != slot.Display24 {
		return fmt.Errorf("MEETSYNC_HOUR_DISPLAY must be %q or %q, got %q", slot.Display12, slot.Display24, c.HourDisplay)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("MEETSYNC_TIMEZONE %q: %w", c.Timezone, err)
	}
	if c.BlackoutStart < 0 || c.BlackoutEnd > 24*60 || c.BlackoutStart > c.BlackoutEnd {
		return fmt.Errorf("blackout window [%d, %d) is not a valid minute-of-day range", c.BlackoutStart, c.BlackoutEnd)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func localZone() string {
	if name := time.Now().Location().String(); name != "" && name != "Local" {
		return name
	}
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}
	return "UTC"
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".meetsync-cache"
	}
	return filepath.Join(base, "meetsync")
}
