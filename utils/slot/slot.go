// Package slot parses and formats the "HH:mm" slot labels used by the
// scheduling API. A label denotes local wall-clock time and only becomes an
// absolute instant once combined with a calendar date and a timezone.
package slot

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Hour display preferences.
const (
	Display12 = "12h"
	Display24 = "24h"
)

const (
	dateLayout   = "2006-01-02"
	label24      = "15:04"
	label12      = "3:04 PM"
	minutesInDay = 24 * 60
)

// MinuteOfDay returns the minute-of-day encoded by a "HH:mm" label.
// The shape is strict: two-digit zero-padded hour and minute.
func MinuteOfDay(label string) (int, error) {
	parts := strings.SplitN(label, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("malformed slot label %q", label)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("malformed slot label %q", label)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("malformed slot label %q", label)
	}
	return hour*60 + minute, nil
}

// Valid reports whether label is a well-formed "HH:mm" slot label.
func Valid(label string) bool {
	_, err := MinuteOfDay(label)
	return err == nil
}

// Location resolves an IANA timezone name, falling back to UTC when the name
// is empty or unknown.
func Location(tz string) *time.Location {
	if strings.TrimSpace(tz) == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseDate parses a "2006-01-02" date string in the given location.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed date %q", date)
	}
	return t, nil
}

// FormatDate renders t as the "2006-01-02" string the API expects,
// in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// WeekdayName returns the upper-case weekday name ("MONDAY") for date in loc,
// matching the day keys of the availability payload.
func WeekdayName(date time.Time, loc *time.Location) string {
	return strings.ToUpper(date.In(loc).Weekday().String())
}

// At resolves a date + slot label + location to the absolute instant the
// slot starts.
func At(date, label string, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	minute, err := MinuteOfDay(label)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), minute/60, minute%60, 0, 0, loc), nil
}

// Format renders a slot label for display on the given date, respecting the
// 12h/24h preference. Pure: the same inputs always produce the same string,
// which is what lets the UI compare "is this button selected" by equality.
func Format(label, date, tz, hourDisplay string) (string, error) {
	at, err := At(date, label, Location(tz))
	if err != nil {
		return "", err
	}
	if hourDisplay == Display12 {
		return at.Format(label12), nil
	}
	return at.Format(label24), nil
}

// Decode is Format for an optional selection: an empty label decodes to the
// empty string, and a label that fails to resolve decodes to the empty string
// rather than an error.
func Decode(label, date, tz, hourDisplay string) string {
	if label == "" {
		return ""
	}
	out, err := Format(label, date, tz, hourDisplay)
	if err != nil {
		return ""
	}
	return out
}
