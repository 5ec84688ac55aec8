package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"meetsync/internal/fakeapi"
	"meetsync/models"
	"meetsync/services/availability"
	"meetsync/services/booking"
	"meetsync/services/schedule"
	"meetsync/utils/slot"
)

func newTestApp(t *testing.T, url, mode, script string) (*App, *bytes.Buffer) {
	t.Helper()
	client := schedule.NewClient(url, 5*time.Second)
	var out bytes.Buffer
	return &App{
		Schedule: schedule.NewService(client, afero.NewMemMapFs(), "/cache"),
		Booking:  booking.NewService(client),
		Wizard:   booking.NewWizard(mode, "UTC", slot.Display12),
		Rules:    availability.DefaultRules(),
		EventID:  "ev1",
		Guest:    booking.BookRequest{GuestName: "Ada", GuestEmail: "ada@example.com", Duration: 30},
		In:       strings.NewReader(script),
		Out:      &out,
	}, &out
}

// createBooking books a slot directly against the fake and returns the id.
func createBooking(t *testing.T, url, start, end string) string {
	t.Helper()
	body := strings.NewReader(`{
		"eventId": "ev1",
		"startTime": "` + start + `",
		"endTime": "` + end + `",
		"guestName": "Ada",
		"guestEmail": "ada@example.com",
		"timezone": "UTC"
	}`)
	resp, err := http.Post(url+"/meeting/public/create", "application/json", body)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return created["meetingId"]
}

func TestAppBooksASlot(t *testing.T) {
	srv := httptest.NewServer(fakeapi.New("ev1").Router())
	defer srv.Close()
	app, out := newTestApp(t, srv.URL, booking.ModeInitial, "2026-03-02\n1\nnext\ny\n")

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Booked 2026-03-02 at 9:00 AM.") {
		t.Errorf("missing booking confirmation in output:\n%s", out.String())
	}
	// Early-afternoon slots fall in the default blackout and never render.
	if strings.Contains(out.String(), "1:00 PM") {
		t.Errorf("slot list should hide blackout slots:\n%s", out.String())
	}
}

func TestAppHidesBookedSlots(t *testing.T) {
	srv := httptest.NewServer(fakeapi.New("ev1").Router())
	defer srv.Close()
	createBooking(t, srv.URL, "2026-03-02T09:00:00Z", "2026-03-02T09:30:00Z")

	app, out := newTestApp(t, srv.URL, booking.ModeInitial, "2026-03-02\n1\nnext\ny\n")
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// 09:00 is taken, so slot 1 is now 10:00.
	if !strings.Contains(out.String(), "Booked 2026-03-02 at 10:00 AM.") {
		t.Errorf("expected the next free slot to be booked:\n%s", out.String())
	}
}

func TestAppReschedules(t *testing.T) {
	srv := httptest.NewServer(fakeapi.New("ev1").Router())
	defer srv.Close()
	id := createBooking(t, srv.URL, "2026-03-02T09:00:00Z", "2026-03-02T09:30:00Z")

	app, out := newTestApp(t, srv.URL, booking.ModeReschedule, "2026-03-03\n2\nnext\ny\n")
	app.BookingID = id

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Rescheduling: 30 Minute Meeting") {
		t.Errorf("missing current-booking summary:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Rescheduled 30 Minute Meeting to 2026-03-03 at 10:00 AM.") {
		t.Errorf("missing reschedule confirmation:\n%s", out.String())
	}
}

func TestAppRevalidatesAfterSlotTaken(t *testing.T) {
	srv := httptest.NewServer(fakeapi.New("ev1").Router())
	defer srv.Close()

	// The user picks 09:00 and advances; before confirming, another attendee
	// takes it. The confirm attempt collides, the user backs out and picks the
	// next slot.
	app, out := newTestApp(t, srv.URL, booking.ModeInitial, "2026-03-02\n1\nnext\ny\nback\n1\nnext\ny\n")
	app.Booking = booking.NewService(&collidingAPI{client: schedule.NewClient(srv.URL, 5*time.Second)})

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "error:") {
		t.Errorf("first confirm should have surfaced the collision:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Booked 2026-03-02") {
		t.Errorf("second attempt should have booked:\n%s", out.String())
	}
}

// collidingAPI fails the first create as if another attendee won the slot,
// then delegates to the real client.
type collidingAPI struct {
	client   *schedule.Client
	collided bool
}

func (c *collidingAPI) BookingDetails(ctx context.Context, bookingID string) (*models.Booking, error) {
	return c.client.BookingDetails(ctx, bookingID)
}

func (c *collidingAPI) CreateMeeting(ctx context.Context, req models.CreateMeetingRequest) error {
	if !c.collided {
		c.collided = true
		return &models.NetworkError{Op: "POST /meeting/public/create", Err: errors.New("slot already booked")}
	}
	return c.client.CreateMeeting(ctx, req)
}

func (c *collidingAPI) Reschedule(ctx context.Context, bookingID, newStartTime string) error {
	return c.client.Reschedule(ctx, bookingID, newStartTime)
}

func TestAppQuitsCleanly(t *testing.T) {
	srv := httptest.NewServer(fakeapi.New("ev1").Router())
	defer srv.Close()
	app, _ := newTestApp(t, srv.URL, booking.ModeInitial, "quit\n")
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
