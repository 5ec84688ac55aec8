package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"meetsync/models"
	"meetsync/services/availability"
	"meetsync/services/booking"
	"meetsync/services/schedule"
	"meetsync/utils/slot"
)

// App wires the schedule and booking services into an interactive terminal
// session. One App drives one wizard to completion (or quit).
type App struct {
	Schedule *schedule.Service
	Booking  *booking.Service
	Wizard   *booking.Wizard
	Rules    availability.Ruleset

	EventID   string
	BookingID string // set in reschedule mode
	Guest     booking.BookRequest

	In  io.Reader
	Out io.Writer
}

// Run drives the session until a booking succeeds, input ends, or the user
// quits. A mutation failure keeps the wizard at the confirm step so the user
// can retry or go back.
func (a *App) Run(ctx context.Context) error {
	var current *models.Booking
	if a.Wizard.Mode == booking.ModeReschedule {
		b, err := a.Booking.Details(ctx, a.BookingID)
		if err != nil {
			return fmt.Errorf("load booking %s: %w", a.BookingID, err)
		}
		current = b
	}

	scanner := bufio.NewScanner(a.In)
	for {
		snap, err := a.Schedule.Snapshot(ctx, a.EventID, a.Wizard.SelectedDate)
		if err != nil {
			return fmt.Errorf("load availability: %w", err)
		}
		bookable := a.bookable(snap)
		if a.Wizard.Revalidate(bookable) {
			fmt.Fprintln(a.Out, "Your selected slot is no longer open; please pick another.")
		}

		a.render(snap, bookable, current)
		if !scanner.Scan() {
			return scanner.Err()
		}
		done, err := a.handle(ctx, strings.TrimSpace(scanner.Text()), bookable, current)
		if err != nil {
			fmt.Fprintf(a.Out, "error: %v\n", err)
		}
		if done {
			return nil
		}
	}
}

// bookable reconciles a snapshot into the final slot list for the selected date.
func (a *App) bookable(snap *schedule.Snapshot) []string {
	if snap.Date == "" {
		return nil
	}
	loc := slot.Location(a.Wizard.Timezone)
	date, err := slot.ParseDate(snap.Date, loc)
	if err != nil {
		return nil
	}
	return availability.BookableSlots(snap.Availability, date, loc, snap.Booked.BookedSlots, snap.Conflicts.Conflicts, a.Rules)
}

func (a *App) render(snap *schedule.Snapshot, bookable []string, current *models.Booking) {
	fmt.Fprintln(a.Out)
	if current != nil {
		fmt.Fprint(a.Out, Summary(current, a.Wizard.Timezone, a.Wizard.HourDisplay))
	}
	fmt.Fprintln(a.Out, SyncStatus(snap))

	loc := slot.Location(a.Wizard.Timezone)
	anchor := time.Now().In(loc)
	if d, err := slot.ParseDate(a.Wizard.SelectedDate, loc); err == nil {
		anchor = d
	}
	fmt.Fprint(a.Out, MonthGrid(anchor.Year(), anchor.Month(), snap.Availability, loc, a.Wizard.SelectedDate))

	if a.Wizard.Step() == booking.StepConfirm {
		fmt.Fprint(a.Out, Confirmation(a.Wizard.SelectedDate, a.Wizard.SelectedSlot, a.Wizard.Timezone, a.Wizard.HourDisplay))
		return
	}
	if a.Wizard.SelectedDate != "" {
		fmt.Fprint(a.Out, SlotList(bookable, a.Wizard.SelectedDate, a.Wizard.Timezone, a.Wizard.HourDisplay, a.Wizard.SelectedSlot))
	}
	fmt.Fprintln(a.Out, "commands: <date> | <slot #> | 12h | 24h | next | back | quit")
}

// handle applies one command. It returns done=true when the session is over.
func (a *App) handle(ctx context.Context, input string, bookable []string, current *models.Booking) (bool, error) {
	switch input {
	case "":
		return false, nil
	case "q", "quit":
		return true, nil
	case "12h", "24h":
		a.Wizard.SetHourDisplay(input)
		return false, nil
	case "b", "back":
		a.Wizard.Back()
		return false, nil
	case "n", "next":
		return false, a.Wizard.Advance()
	case "y", "confirm":
		if a.Wizard.Step() != booking.StepConfirm {
			return false, a.Wizard.Advance()
		}
		return a.submit(ctx, current)
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(bookable) {
			return false, fmt.Errorf("no slot numbered %d", n)
		}
		a.Wizard.SelectSlot(bookable[n-1])
		return false, nil
	}
	if _, err := slot.ParseDate(input, slot.Location(a.Wizard.Timezone)); err == nil {
		a.Wizard.SelectDate(input)
		return false, nil
	}
	return false, fmt.Errorf("unrecognized command %q", input)
}

func (a *App) submit(ctx context.Context, current *models.Booking) (bool, error) {
	var err error
	if a.Wizard.Mode == booking.ModeReschedule {
		err = a.Booking.Reschedule(ctx, a.BookingID, a.Wizard.SelectedDate, a.Wizard.SelectedSlot, a.Wizard.Timezone)
	} else {
		req := a.Guest
		req.EventID = a.EventID
		req.Date = a.Wizard.SelectedDate
		req.Slot = a.Wizard.SelectedSlot
		req.Timezone = a.Wizard.Timezone
		err = a.Booking.Book(ctx, req)
	}
	if err != nil {
		// Stay at confirm so the user can retry or pick another slot.
		return false, err
	}

	when := slot.Decode(a.Wizard.SelectedSlot, a.Wizard.SelectedDate, a.Wizard.Timezone, a.Wizard.HourDisplay)
	if a.Wizard.Mode == booking.ModeReschedule && current != nil {
		fmt.Fprintf(a.Out, "Rescheduled %s to %s at %s.\n", current.Event.Title, a.Wizard.SelectedDate, when)
	} else {
		fmt.Fprintf(a.Out, "Booked %s at %s.\n", a.Wizard.SelectedDate, when)
	}
	a.Wizard.Reset()
	return true, nil
}
