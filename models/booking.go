package models

// Weekday names as the availability API reports them.
const (
	Sunday    = "SUNDAY"
	Monday    = "MONDAY"
	Tuesday   = "TUESDAY"
	Wednesday = "WEDNESDAY"
	Thursday  = "THURSDAY"
	Friday    = "FRIDAY"
	Saturday  = "SATURDAY"
)

// AvailabilityDay describes a host's recurring weekly availability for one weekday.
// One entry per weekday; produced by the host's configuration and immutable from
// the client's point of view.
type AvailabilityDay struct {
	Day         string   `json:"day"`         // "SUNDAY".."SATURDAY"
	IsAvailable bool     `json:"isAvailable"`
	Slots       []string `json:"slots"`       // "HH:mm" labels, ascending within the day
}

// AvailabilityResponse is the body of GET /availability/public/{eventId}.
type AvailabilityResponse struct {
	Message string            `json:"message"`
	Data    []AvailabilityDay `json:"data"`
}

// BookedSlotsResult holds the slots already reserved for a single date.
// Recomputed on every date change; booking state moves in near-real-time
// across users so callers keep it on a short cache.
type BookedSlotsResult struct {
	Date        string   `json:"date"` // 2006-01-02, the date the lookup was keyed on
	Message     string   `json:"message,omitempty"`
	BookedSlots []string `json:"bookedSlots"`
}

// EventOwner identifies the host whose calendar integration is checked.
type EventOwner struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Integration carries external-calendar connection metadata.
type Integration struct {
	Provider    string `json:"provider"`
	AppType     string `json:"app_type"`
	Category    string `json:"category"`
	ConnectedAt string `json:"connectedAt"`
}

// IntegrationStatus is the body of GET /integration/google-calendar/check/{eventId}.
type IntegrationStatus struct {
	Message     string       `json:"message,omitempty"`
	IsConnected bool         `json:"isConnected"`
	EventID     string       `json:"eventId,omitempty"`
	EventTitle  string       `json:"eventTitle,omitempty"`
	EventOwner  *EventOwner  `json:"eventOwner,omitempty"`
	Integration *Integration `json:"integration,omitempty"`
}

// ConflictResult holds the slots blocked by the host's external calendar for
// a single date. Only meaningful when the integration is connected.
type ConflictResult struct {
	Date      string   `json:"date"` // 2006-01-02, the date the lookup was keyed on
	Message   string   `json:"message,omitempty"`
	Conflicts []string `json:"conflicts"`
}

// CreateMeetingRequest is the body of POST /meeting/public/create.
type CreateMeetingRequest struct {
	EventID        string `json:"eventId"`
	StartTime      string `json:"startTime"` // RFC3339
	EndTime        string `json:"endTime"`   // RFC3339
	GuestName      string `json:"guestName"`
	GuestEmail     string `json:"guestEmail"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
	Timezone       string `json:"timezone"`
}

// BookingEvent is the event summary embedded in a booking.
type BookingEvent struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"` // minutes
}

// Booking is an existing meeting, as returned by GET /api/booking/{bookingId}.
// Used by the reschedule flow to show the current time before picking a new one.
type Booking struct {
	ID         string       `json:"id"`
	StartTime  string       `json:"startTime"` // RFC3339
	EndTime    string       `json:"endTime"`   // RFC3339
	GuestName  string       `json:"guestName,omitempty"`
	GuestEmail string       `json:"guestEmail,omitempty"`
	Event      BookingEvent `json:"event"`
}

// RescheduleRequest is the body of PATCH /api/meeting/reschedule/{bookingId}.
type RescheduleRequest struct {
	NewStartTime string `json:"newStartTime"` // RFC3339
}
