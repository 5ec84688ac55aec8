package slot

import (
	"testing"
	"time"
)

func TestMinuteOfDay(t *testing.T) {
	tests := map[string]int{
		"00:00": 0,
		"09:00": 540,
		"12:00": 720,
		"15:59": 959,
		"23:59": 1439,
	}
	for label, want := range tests {
		got, err := MinuteOfDay(label)
		if err != nil {
			t.Fatalf("MinuteOfDay(%q) unexpected error: %v", label, err)
		}
		if got != want {
			t.Errorf("MinuteOfDay(%q) = %d, want %d", label, got, want)
		}
	}
}

func TestMinuteOfDayRejectsMalformed(t *testing.T) {
	for _, label := range []string{"", "9:00", "09:0", "24:00", "12:60", "noon", "09-00", "09:00:00"} {
		if _, err := MinuteOfDay(label); err == nil {
			t.Errorf("MinuteOfDay(%q) expected error, got none", label)
		}
	}
}

func TestWeekdayName(t *testing.T) {
	// 2026-03-02 is a Monday everywhere at noon UTC, but in Pacific time the
	// instant 2026-03-02T00:00Z is still Sunday evening.
	utcMidnight := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if got := WeekdayName(utcMidnight, time.UTC); got != "MONDAY" {
		t.Errorf("WeekdayName UTC = %q, want MONDAY", got)
	}
	la := Location("America/Los_Angeles")
	if got := WeekdayName(utcMidnight, la); got != "SUNDAY" {
		t.Errorf("WeekdayName LA = %q, want SUNDAY", got)
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	if Location("") != time.UTC {
		t.Error("empty timezone should fall back to UTC")
	}
	if Location("Not/AZone") != time.UTC {
		t.Error("unknown timezone should fall back to UTC")
	}
	if Location("Europe/Berlin") == time.UTC {
		t.Error("known timezone should not fall back to UTC")
	}
}

func TestAt(t *testing.T) {
	loc := Location("America/New_York")
	at, err := At("2026-03-02", "09:30", loc)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if got := at.Format(time.RFC3339); got != "2026-03-02T09:30:00-05:00" {
		t.Errorf("At = %s, want 2026-03-02T09:30:00-05:00", got)
	}
	if _, err := At("03/02/2026", "09:30", loc); err == nil {
		t.Error("expected error for malformed date")
	}
	if _, err := At("2026-03-02", "9am", loc); err == nil {
		t.Error("expected error for malformed slot")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		label, display, want string
	}{
		{"09:00", Display24, "09:00"},
		{"09:00", Display12, "9:00 AM"},
		{"13:05", Display24, "13:05"},
		{"13:05", Display12, "1:05 PM"},
		{"00:15", Display12, "12:15 AM"},
	}
	for _, tt := range tests {
		got, err := Format(tt.label, "2026-03-02", "UTC", tt.display)
		if err != nil {
			t.Fatalf("Format(%q, %q): %v", tt.label, tt.display, err)
		}
		if got != tt.want {
			t.Errorf("Format(%q, %q) = %q, want %q", tt.label, tt.display, got, tt.want)
		}
	}
}

func TestFormatIsDeterministic(t *testing.T) {
	a, _ := Format("17:00", "2026-03-02", "Asia/Tokyo", Display12)
	b, _ := Format("17:00", "2026-03-02", "Asia/Tokyo", Display12)
	if a != b {
		t.Errorf("Format not deterministic: %q vs %q", a, b)
	}
}

func TestDecode(t *testing.T) {
	if got := Decode("", "2026-03-02", "UTC", Display12); got != "" {
		t.Errorf("Decode of empty label = %q, want empty", got)
	}
	if got := Decode("garbage", "2026-03-02", "UTC", Display12); got != "" {
		t.Errorf("Decode of malformed label = %q, want empty", got)
	}
	if got := Decode("14:00", "2026-03-02", "UTC", Display24); got != "14:00" {
		t.Errorf("Decode = %q, want 14:00", got)
	}
}
