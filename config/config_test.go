package config

import (
	"testing"
	"time"

	"meetsync/utils/slot"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MEETSYNC_API_URL", "")
	t.Setenv("MEETSYNC_HOUR_DISPLAY", "")
	t.Setenv("MEETSYNC_BLACKOUT_START", "")
	t.Setenv("MEETSYNC_BLACKOUT_END", "")
	t.Setenv("MEETSYNC_HTTP_TIMEOUT", "")

	cfg := Load()
	if cfg.APIBaseURL != "http://localhost:8091" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.HourDisplay != slot.Display12 {
		t.Errorf("HourDisplay = %q, want 12h", cfg.HourDisplay)
	}
	if cfg.BlackoutStart != 720 || cfg.BlackoutEnd != 960 {
		t.Errorf("blackout = [%d, %d), want [720, 960)", cfg.BlackoutStart, cfg.BlackoutEnd)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MEETSYNC_API_URL", "https://api.example.com")
	t.Setenv("MEETSYNC_HOUR_DISPLAY", "24h")
	t.Setenv("MEETSYNC_TIMEZONE", "Europe/Berlin")
	t.Setenv("MEETSYNC_BLACKOUT_START", "13:00")
	t.Setenv("MEETSYNC_BLACKOUT_END", "14:30")
	t.Setenv("MEETSYNC_HTTP_TIMEOUT", "5s")

	cfg := Load()
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.BlackoutStart != 780 || cfg.BlackoutEnd != 870 {
		t.Errorf("blackout = [%d, %d)", cfg.BlackoutStart, cfg.BlackoutEnd)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config must validate: %v", err)
	}
}

func TestLoadIgnoresMalformedBlackout(t *testing.T) {
	t.Setenv("MEETSYNC_BLACKOUT_START", "noonish")
	cfg := Load()
	if cfg.BlackoutStart != 720 {
		t.Errorf("malformed blackout override should keep the default, got %d", cfg.BlackoutStart)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		return &Config{
			APIBaseURL:  "http://localhost:8091",
			Timezone:    "UTC",
			HourDisplay: slot.Display12,
			BlackoutEnd: 960,
		}
	}

	cfg := base()
	cfg.APIBaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty API URL must fail validation")
	}

	cfg = base()
	cfg.HourDisplay = "25h"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown hour display must fail validation")
	}

	cfg = base()
	cfg.Timezone = "Mars/Olympus"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown timezone must fail validation")
	}

	cfg = base()
	cfg.BlackoutStart = 1000
	cfg.BlackoutEnd = 900
	if err := cfg.Validate(); err == nil {
		t.Error("inverted blackout window must fail validation")
	}
}
