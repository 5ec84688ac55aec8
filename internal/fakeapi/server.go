// Package fakeapi is an in-memory stand-in for the scheduling API. It serves
// the same endpoints and response shapes the real collaborator exposes, for
// local development and integration tests.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"meetsync/models"
)

// Server holds the mutable booking state behind the fake endpoints.
type Server struct {
	mu        sync.RWMutex
	eventID   string
	title     string
	duration  int
	days      []models.AvailabilityDay
	booked    map[string][]string // date -> booked slot labels
	conflicts map[string][]string // date -> conflicting slot labels
	connected bool
	bookings  map[string]*models.Booking
}

// New creates a server with a default weekday-hours availability fixture for
// one event.
func New(eventID string) *Server {
	hours := []string{"09:00", "10:00", "11:00", "13:00", "14:00", "16:00", "17:00"}
	var days []models.AvailabilityDay
	for _, d := range []string{models.Sunday, models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday, models.Saturday} {
		weekend := d == models.Sunday || d == models.Saturday
		day := models.AvailabilityDay{Day: d, IsAvailable: !weekend}
		if !weekend {
			day.Slots = append([]string(nil), hours...)
		}
		days = append(days, day)
	}
	return &Server{
		eventID:   eventID,
		title:     "30 Minute Meeting",
		duration:  30,
		days:      days,
		booked:    make(map[string][]string),
		conflicts: make(map[string][]string),
		bookings:  make(map[string]*models.Booking),
	}
}

// SetAvailability replaces the weekly availability fixture.
func (s *Server) SetAvailability(days []models.AvailabilityDay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days = days
}

// SetConnected toggles the simulated external-calendar integration.
func (s *Server) SetConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = connected
}

// SetConflicts sets the external-calendar conflicts for a date.
func (s *Server) SetConflicts(date string, slots []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conflicts[date] = slots
}

// Router constructs the mux router serving the fake API.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/availability/public/{eventId}", s.getAvailability).Methods(http.MethodGet)
	r.HandleFunc("/meeting/public/booked-slots/{eventId}", s.getBookedSlots).Methods(http.MethodGet)
	r.HandleFunc("/integration/google-calendar/check/{eventId}", s.checkIntegration).Methods(http.MethodGet)
	r.HandleFunc("/calendar/google/conflicts/{eventId}", s.getConflicts).Methods(http.MethodGet)
	r.HandleFunc("/meeting/public/create", s.createMeeting).Methods(http.MethodPost)
	r.HandleFunc("/api/booking/{bookingId}", s.getBooking).Methods(http.MethodGet)
	r.HandleFunc("/api/meeting/reschedule/{bookingId}", s.reschedule).Methods(http.MethodPatch)
	return r
}

// Handler wraps the router with the CORS policy for browser clients.
func (s *Server) Handler() http.Handler {
	return withCORS(s.Router())
}

func (s *Server) requireEvent(w http.ResponseWriter, r *http.Request) bool {
	if mux.Vars(r)["eventId"] != s.eventID {
		http.Error(w, "event not found", http.StatusNotFound)
		return false
	}
	return true
}

func (s *Server) getAvailability(w http.ResponseWriter, r *http.Request) {
	if !s.requireEvent(w, r) {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, models.AvailabilityResponse{
		Message: "availability fetched",
		Data:    s.days,
	})
}

func (s *Server) getBookedSlots(w http.ResponseWriter, r *http.Request) {
	if !s.requireEvent(w, r) {
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	slots := s.booked[date]
	if slots == nil {
		slots = []string{}
	}
	writeJSON(w, http.StatusOK, models.BookedSlotsResult{
		Message:     "booked slots fetched",
		BookedSlots: slots,
	})
}

func (s *Server) checkIntegration(w http.ResponseWriter, r *http.Request) {
	if !s.requireEvent(w, r) {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	status := models.IntegrationStatus{
		Message:     "integration checked",
		IsConnected: s.connected,
		EventID:     s.eventID,
		EventTitle:  s.title,
	}
	if s.connected {
		status.EventOwner = &models.EventOwner{ID: "owner-1", Email: "host@example.com"}
		status.Integration = &models.Integration{
			Provider:    "GOOGLE",
			AppType:     "GOOGLE_MEET_AND_CALENDAR",
			Category:    "CALENDAR",
			ConnectedAt: time.Now().UTC().Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) getConflicts(w http.ResponseWriter, r *http.Request) {
	if !s.requireEvent(w, r) {
		return
	}
	date := r.URL.Query().Get("date")
	s.mu.RLock()
	defer s.mu.RUnlock()
	conflicts := s.conflicts[date]
	if conflicts == nil {
		conflicts = []string{}
	}
	writeJSON(w, http.StatusOK, models.ConflictResult{
		Message:   "conflicts fetched",
		Conflicts: conflicts,
	})
}

func (s *Server) createMeeting(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed body", http.StatusBadRequest)
		return
	}
	if req.EventID != s.eventID {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	date, label, err := splitStart(req.StartTime)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.GuestEmail == "" || req.GuestName == "" {
		http.Error(w, "guest name and email are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, taken := range s.booked[date] {
		if taken == label {
			http.Error(w, "slot already booked", http.StatusConflict)
			return
		}
	}
	s.booked[date] = append(s.booked[date], label)

	id := uuid.NewString()
	s.bookings[id] = &models.Booking{
		ID:         id,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		Event:      models.BookingEvent{ID: s.eventID, Title: s.title, Duration: s.duration},
	}
	log.Printf("[fakeapi] booked %s %s for %s", date, label, req.GuestEmail)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "meeting created", "meetingId": id})
}

func (s *Server) getBooking(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	booking, ok := s.bookings[mux.Vars(r)["bookingId"]]
	if !ok {
		http.Error(w, "booking not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) reschedule(w http.ResponseWriter, r *http.Request) {
	var req models.RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed body", http.StatusBadRequest)
		return
	}
	newDate, newLabel, err := splitStart(req.NewStartTime)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[mux.Vars(r)["bookingId"]]
	if !ok {
		http.Error(w, "booking not found", http.StatusNotFound)
		return
	}
	for _, taken := range s.booked[newDate] {
		if taken == newLabel {
			http.Error(w, "slot already booked", http.StatusConflict)
			return
		}
	}

	// Release the old slot before claiming the new one.
	if oldDate, oldLabel, err := splitStart(booking.StartTime); err == nil {
		kept := s.booked[oldDate][:0]
		for _, taken := range s.booked[oldDate] {
			if taken != oldLabel {
				kept = append(kept, taken)
			}
		}
		s.booked[oldDate] = kept
	}
	s.booked[newDate] = append(s.booked[newDate], newLabel)

	start, _ := time.Parse(time.RFC3339, req.NewStartTime)
	booking.StartTime = req.NewStartTime
	booking.EndTime = start.Add(time.Duration(booking.Event.Duration) * time.Minute).Format(time.RFC3339)
	log.Printf("[fakeapi] rescheduled %s to %s %s", booking.ID, newDate, newLabel)
	writeJSON(w, http.StatusOK, map[string]string{"message": "meeting rescheduled"})
}

// splitStart breaks an RFC3339 instant into the (date, slot label) pair the
// booked-slots bookkeeping is keyed on, in the instant's own offset.
func splitStart(startTime string) (date, label string, err error) {
	t, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return "", "", fmt.Errorf("startTime must be RFC3339: %w", err)
	}
	return t.Format("2006-01-02"), t.Format("15:04"), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
