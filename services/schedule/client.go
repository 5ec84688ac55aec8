package schedule

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"meetsync/models"
)

// Client talks to the scheduling REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Availability fetches the host's weekly availability for an event.
func (c *Client) Availability(ctx context.Context, eventID string) ([]models.AvailabilityDay, error) {
	var resp models.AvailabilityResponse
	if err := c.get(ctx, "/availability/public/"+url.PathEscape(eventID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// BookedSlots fetches the slots already reserved on date (2006-01-02).
// The result always carries the requested date so callers can never apply a
// response to a different selection.
func (c *Client) BookedSlots(ctx context.Context, eventID, date string) (*models.BookedSlotsResult, error) {
	var resp models.BookedSlotsResult
	q := url.Values{"date": {date}}
	if err := c.get(ctx, "/meeting/public/booked-slots/"+url.PathEscape(eventID), q, &resp); err != nil {
		return nil, err
	}
	resp.Date = date
	return &resp, nil
}

// IntegrationStatus reports whether the host has an external calendar connected.
func (c *Client) IntegrationStatus(ctx context.Context, eventID string) (*models.IntegrationStatus, error) {
	var resp models.IntegrationStatus
	if err := c.get(ctx, "/integration/google-calendar/check/"+url.PathEscape(eventID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Conflicts fetches the external-calendar conflicts for date (2006-01-02).
func (c *Client) Conflicts(ctx context.Context, eventID, date string) (*models.ConflictResult, error) {
	var resp models.ConflictResult
	q := url.Values{"date": {date}}
	if err := c.get(ctx, "/calendar/google/conflicts/"+url.PathEscape(eventID), q, &resp); err != nil {
		return nil, err
	}
	resp.Date = date
	return &resp, nil
}

// BookingDetails fetches an existing booking for the reschedule flow.
func (c *Client) BookingDetails(ctx context.Context, bookingID string) (*models.Booking, error) {
	var resp models.Booking
	if err := c.get(ctx, "/api/booking/"+url.PathEscape(bookingID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateMeeting books a slot for an attendee.
func (c *Client) CreateMeeting(ctx context.Context, req models.CreateMeetingRequest) error {
	return c.send(ctx, http.MethodPost, "/meeting/public/create", req)
}

// Reschedule moves an existing booking to a new start instant (RFC3339).
func (c *Client) Reschedule(ctx context.Context, bookingID, newStartTime string) error {
	path := "/api/meeting/reschedule/" + url.PathEscape(bookingID)
	return c.send(ctx, http.MethodPatch, path, models.RescheduleRequest{NewStartTime: newStartTime})
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &models.NetworkError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, path); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// send performs a mutation. Every mutation carries a fresh X-Request-ID so
// a retried submission can be correlated (and deduplicated) server-side.
func (c *Client) send(ctx context.Context, method, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &models.NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	return checkStatus(resp, path)
}

func checkStatus(resp *http.Response, path string) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, models.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s failed: %s - %s", path, resp.Status, strings.TrimSpace(string(msg)))
	}
	return nil
}
