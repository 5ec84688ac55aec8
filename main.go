// Command meetsync is a terminal client for booking and rescheduling
// meetings against a scheduling API.
//
//	meetsync -event ev-30min -name "Ada Lovelace" -email ada@example.com
//	meetsync -event ev-30min -reschedule <bookingID>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"meetsync/config"
	"meetsync/services/availability"
	"meetsync/services/booking"
	"meetsync/services/schedule"
	"meetsync/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "meetsync: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env next to the binary is a convenience for local runs; its absence
	// is not an error.
	_ = godotenv.Load()

	eventID := flag.String("event", "", "event id to book against (required)")
	rescheduleID := flag.String("reschedule", "", "booking id to reschedule instead of creating a new one")
	guestName := flag.String("name", "", "attendee name")
	guestEmail := flag.String("email", "", "attendee email")
	notes := flag.String("notes", "", "additional info for the host")
	clearCache := flag.Bool("clear-cache", false, "drop cached API responses before starting")
	flag.Parse()

	if *eventID == "" {
		return fmt.Errorf("-event is required")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := schedule.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	scheduleSvc := schedule.NewService(client, afero.NewOsFs(), cfg.CacheDir)
	if *clearCache {
		if err := scheduleSvc.ClearCache(); err != nil {
			log.Printf("[main] cache clear failed: %v", err)
		}
	}

	mode := booking.ModeInitial
	if *rescheduleID != "" {
		mode = booking.ModeReschedule
	} else if *guestName == "" || *guestEmail == "" {
		return fmt.Errorf("-name and -email are required to book")
	}

	app := &ui.App{
		Schedule:  scheduleSvc,
		Booking:   booking.NewService(client),
		Wizard:    booking.NewWizard(mode, cfg.Timezone, cfg.HourDisplay),
		Rules:     availability.Ruleset{BlackoutStart: cfg.BlackoutStart, BlackoutEnd: cfg.BlackoutEnd},
		EventID:   *eventID,
		BookingID: *rescheduleID,
		Guest: booking.BookRequest{
			GuestName:  *guestName,
			GuestEmail: *guestEmail,
			Notes:      *notes,
		},
		In:  os.Stdin,
		Out: os.Stdout,
	}
	return app.Run(ctx)
}
