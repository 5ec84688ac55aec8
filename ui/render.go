// Package ui renders the booking calendar for the terminal and drives the
// interactive booking session.
package ui

import (
	"fmt"
	"strings"
	"time"

	"meetsync/models"
	"meetsync/services/availability"
	"meetsync/services/schedule"
	"meetsync/utils/slot"
)

// MonthGrid renders one month as a calendar grid. Dates the host never offers
// are shown as a dot, the selected date is bracketed.
func MonthGrid(year int, month time.Month, days []models.AvailabilityDay, loc *time.Location, selectedDate string) string {
	var b strings.Builder
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	fmt.Fprintf(&b, "     %s %d\n", month, year)
	b.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")

	// Leading blanks up to the weekday of the 1st.
	for i := 0; i < int(first.Weekday()); i++ {
		b.WriteString("    ")
	}
	last := first.AddDate(0, 1, -1).Day()
	for d := 1; d <= last; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, loc)
		switch {
		case slot.FormatDate(date) == selectedDate:
			fmt.Fprintf(&b, "[%2d]", d)
		case availability.IsDateUnavailable(days, date, loc):
			b.WriteString("  . ")
		default:
			fmt.Fprintf(&b, " %2d ", d)
		}
		if date.Weekday() == time.Saturday {
			b.WriteString("\n")
		}
	}
	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// SlotList renders the bookable slots for the selected date as a numbered
// list, marking the current selection.
func SlotList(bookable []string, date, tz, hourDisplay, selected string) string {
	if len(bookable) == 0 {
		return "  (no open slots on this date)\n"
	}
	var b strings.Builder
	for i, label := range bookable {
		marker := "  "
		if label == selected {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%2d) %s\n", marker, i+1, slot.Decode(label, date, tz, hourDisplay))
	}
	return b.String()
}

// SyncStatus renders the one-line data-freshness banner for a snapshot.
func SyncStatus(snap *schedule.Snapshot) string {
	if snap.Degraded() {
		return "Some availability sources are unreachable; open slots shown may be out of date."
	}
	if snap.Integration.IsConnected {
		return "Google Calendar sync enabled: showing real-time availability."
	}
	return "Showing the host's standing availability."
}

// Summary renders the current booking shown at the top of a reschedule
// session.
func Summary(b *models.Booking, tz, hourDisplay string) string {
	loc := slot.Location(tz)
	line := fmt.Sprintf("Rescheduling: %s (%d min)", b.Event.Title, b.Event.Duration)
	start, err := time.Parse(time.RFC3339, b.StartTime)
	if err != nil {
		return line + "\n"
	}
	layout := "Monday, January 2 2006 at 15:04"
	if hourDisplay == slot.Display12 {
		layout = "Monday, January 2 2006 at 3:04 PM"
	}
	return line + "\nCurrently: " + start.In(loc).Format(layout) + "\n"
}

// Confirmation renders the confirm-step recap of the pending selection.
func Confirmation(date, label, tz, hourDisplay string) string {
	loc := slot.Location(tz)
	day, err := slot.ParseDate(date, loc)
	if err != nil {
		return ""
	}
	when := slot.Decode(label, date, tz, hourDisplay)
	return fmt.Sprintf("Confirm %s, %s at %s (%s)? [y/back]\n",
		day.Format("Monday"), day.Format("January 2 2006"), when, tz)
}
