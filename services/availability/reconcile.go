// Package availability derives the bookable slot set for a date from the
// host's weekly availability, the slots already booked, and any external
// calendar conflicts.
package availability

import (
	"time"

	"meetsync/models"
	"meetsync/utils/slot"
)

// Ruleset carries booking rules applied uniformly on top of the host's
// configured availability. The blackout window is [Start, End) in minutes of
// day; a zero window disables the rule.
type Ruleset struct {
	BlackoutStart int
	BlackoutEnd   int
}

// DefaultRules matches the product default: no bookings from 12:00 to 16:00.
func DefaultRules() Ruleset {
	return Ruleset{BlackoutStart: 12 * 60, BlackoutEnd: 16 * 60}
}

func (r Ruleset) inBlackout(minute int) bool {
	return minute >= r.BlackoutStart && minute < r.BlackoutEnd
}

// DayFor returns the availability entry matching the weekday of date in loc,
// or nil when the host has no entry for that weekday.
func DayFor(days []models.AvailabilityDay, date time.Time, loc *time.Location) *models.AvailabilityDay {
	name := slot.WeekdayName(date, loc)
	for i := range days {
		if days[i].Day == name {
			return &days[i]
		}
	}
	return nil
}

// IsDateUnavailable reports whether the date cannot be booked at all, for
// marking it unselectable in the date grid.
func IsDateUnavailable(days []models.AvailabilityDay, date time.Time, loc *time.Location) bool {
	day := DayFor(days, date, loc)
	return day == nil || !day.IsAvailable
}

// BookableSlots derives the final ordered bookable slot list for a date.
//
// The pipeline: weekday lookup, blackout filter, subtract booked slots,
// subtract conflicts. Filtering never reorders the surviving slots, and a
// label listed as both booked and conflicting is removed exactly once.
// Malformed labels are dropped rather than guessed at.
func BookableSlots(days []models.AvailabilityDay, date time.Time, loc *time.Location, booked, conflicts []string, rules Ruleset) []string {
	day := DayFor(days, date, loc)
	if day == nil || !day.IsAvailable {
		return nil
	}

	blocked := make(map[string]struct{}, len(booked)+len(conflicts))
	for _, s := range booked {
		blocked[s] = struct{}{}
	}
	for _, s := range conflicts {
		blocked[s] = struct{}{}
	}

	out := make([]string, 0, len(day.Slots))
	for _, s := range day.Slots {
		minute, err := slot.MinuteOfDay(s)
		if err != nil {
			continue
		}
		if rules.inBlackout(minute) {
			continue
		}
		if _, ok := blocked[s]; ok {
			continue
		}
		out = append(out, s)
	}
	return out
}
