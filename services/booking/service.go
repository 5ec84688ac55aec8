// Package booking drives the two-step booking wizard and the create /
// reschedule mutations behind it.
package booking

import (
	"context"
	"log"
	"strings"
	"time"

	"meetsync/models"
	"meetsync/utils/slot"
)

// api is the slice of the schedule client the mutations need.
type api interface {
	BookingDetails(ctx context.Context, bookingID string) (*models.Booking, error)
	CreateMeeting(ctx context.Context, req models.CreateMeetingRequest) error
	Reschedule(ctx context.Context, bookingID, newStartTime string) error
}

// Service submits bookings and reschedules against the scheduling API.
type Service struct {
	api api
}

// NewService creates a booking service on top of the API client.
func NewService(client api) *Service {
	return &Service{api: client}
}

// BookRequest is everything needed to book a slot for an attendee.
type BookRequest struct {
	EventID    string
	Date       string // 2006-01-02 in the attendee's timezone
	Slot       string // "HH:mm"
	Timezone   string
	Duration   int // minutes
	GuestName  string
	GuestEmail string
	Notes      string
}

// Book validates the request and creates the meeting. Validation failures
// return a *models.ValidationError before anything goes on the wire.
func (s *Service) Book(ctx context.Context, req BookRequest) error {
	start, err := resolveStart(req.Date, req.Slot, req.Timezone)
	if err != nil {
		return err
	}
	if strings.TrimSpace(req.GuestName) == "" {
		return &models.ValidationError{Field: "guestName", Reason: "required"}
	}
	if !strings.Contains(req.GuestEmail, "@") {
		return &models.ValidationError{Field: "guestEmail", Reason: "not an email address"}
	}
	duration := req.Duration
	if duration <= 0 {
		duration = 30
	}

	payload := models.CreateMeetingRequest{
		EventID:        req.EventID,
		StartTime:      start.Format(time.RFC3339),
		EndTime:        start.Add(time.Duration(duration) * time.Minute).Format(time.RFC3339),
		GuestName:      strings.TrimSpace(req.GuestName),
		GuestEmail:     strings.TrimSpace(req.GuestEmail),
		AdditionalInfo: req.Notes,
		Timezone:       req.Timezone,
	}
	if err := s.api.CreateMeeting(ctx, payload); err != nil {
		return err
	}
	log.Printf("[booking] booked %s %s for %s", req.Date, req.Slot, payload.GuestEmail)
	return nil
}

// Reschedule validates the new selection and moves an existing booking.
func (s *Service) Reschedule(ctx context.Context, bookingID, date, label, tz string) error {
	start, err := resolveStart(date, label, tz)
	if err != nil {
		return err
	}
	if err := s.api.Reschedule(ctx, bookingID, start.Format(time.RFC3339)); err != nil {
		return err
	}
	log.Printf("[booking] rescheduled %s to %s %s", bookingID, date, label)
	return nil
}

// Details fetches the existing booking shown at the top of the reschedule flow.
func (s *Service) Details(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.api.BookingDetails(ctx, bookingID)
}

// resolveStart turns (date, slot, timezone) into the absolute start instant,
// reporting malformed inputs as validation errors.
func resolveStart(date, label, tz string) (time.Time, error) {
	loc := slot.Location(tz)
	if _, err := slot.ParseDate(date, loc); err != nil {
		return time.Time{}, &models.ValidationError{Field: "date", Reason: err.Error()}
	}
	if !slot.Valid(label) {
		return time.Time{}, &models.ValidationError{Field: "slot", Reason: "not an HH:mm label"}
	}
	return slot.At(date, label, loc)
}
