// Package schedule fetches the four inputs of the booking calendar —
// weekly availability, booked slots, integration status, and external
// calendar conflicts — behind an explicit TTL cache.
package schedule

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sourcegraph/conc"
	"github.com/spf13/afero"

	"meetsync/models"
)

// Per-source cache TTLs. Booked slots move in near-real-time across users so
// they get the shortest one; integration status rarely changes in a session.
const (
	availabilityTTL = 5 * time.Minute
	bookedSlotsTTL  = 30 * time.Second
	integrationTTL  = 5 * time.Minute
	conflictsTTL    = time.Minute
)

// availabilityRetries applies to the availability fetch only; the secondary
// sources are never retried because their endpoints may not exist in every
// deployment.
const availabilityRetries = 3

// api is the slice of Client the service depends on.
type api interface {
	Availability(ctx context.Context, eventID string) ([]models.AvailabilityDay, error)
	BookedSlots(ctx context.Context, eventID, date string) (*models.BookedSlotsResult, error)
	IntegrationStatus(ctx context.Context, eventID string) (*models.IntegrationStatus, error)
	Conflicts(ctx context.Context, eventID, date string) (*models.ConflictResult, error)
}

// Service wraps the API client with per-source caching and the degradation
// policy for the secondary sources.
type Service struct {
	api   api
	cache *fileCache
}

// NewService creates a schedule service caching under cacheDir on fs.
func NewService(client api, fs afero.Fs, cacheDir string) *Service {
	return &Service{
		api:   client,
		cache: newFileCache(fs, cacheDir),
	}
}

// Snapshot is the one authoritative view the calendar renders from, keyed by
// the (eventID, date) it was requested for. A snapshot built for one date can
// never be applied to another: the cache keys and the Date field both carry
// the requested date.
type Snapshot struct {
	EventID      string
	Date         string // 2006-01-02, empty when no date is selected yet
	Availability []models.AvailabilityDay
	Booked       *models.BookedSlotsResult
	Conflicts    *models.ConflictResult
	Integration  *models.IntegrationStatus

	// Degraded-source markers. A true flag means the fetch failed and the
	// zero value is standing in, so the UI can say "availability may be
	// stale" instead of silently showing a conflicted slot as bookable.
	BookedStale      bool
	IntegrationStale bool
	ConflictsStale   bool
}

// Degraded reports whether any secondary source failed and is standing in
// with its zero value.
func (s *Snapshot) Degraded() bool {
	return s.BookedStale || s.IntegrationStale || s.ConflictsStale
}

// Availability returns the host's weekly availability, retrying transport
// failures. Errors propagate: the calendar cannot function without it.
func (s *Service) Availability(ctx context.Context, eventID string) ([]models.AvailabilityDay, error) {
	key := cacheKey("availability", eventID)
	var cached []models.AvailabilityDay
	if ok, _ := s.cache.get(key, availabilityTTL, &cached); ok {
		return cached, nil
	}

	var days []models.AvailabilityDay
	err := retry.Do(
		func() error {
			var err error
			days, err = s.api.Availability(ctx, eventID)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(availabilityRetries),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			// A missing event will not appear on the next attempt.
			return !errors.Is(err, models.ErrNotFound)
		}),
	)
	if err != nil {
		return nil, err
	}
	if err := s.cache.set(key, days); err != nil {
		log.Printf("[schedule] failed to cache availability: %v", err)
	}
	return days, nil
}

// BookedSlots returns the reserved slots for date. No retries; the caller
// decides how a failure degrades.
func (s *Service) BookedSlots(ctx context.Context, eventID, date string) (*models.BookedSlotsResult, error) {
	key := cacheKey("booked-slots", eventID, date)
	var cached models.BookedSlotsResult
	if ok, _ := s.cache.get(key, bookedSlotsTTL, &cached); ok {
		return &cached, nil
	}
	res, err := s.api.BookedSlots(ctx, eventID, date)
	if err != nil {
		return nil, err
	}
	if err := s.cache.set(key, res); err != nil {
		log.Printf("[schedule] failed to cache booked slots: %v", err)
	}
	return res, nil
}

// IntegrationStatus returns the external-calendar connection state. No retries.
func (s *Service) IntegrationStatus(ctx context.Context, eventID string) (*models.IntegrationStatus, error) {
	key := cacheKey("integration", eventID)
	var cached models.IntegrationStatus
	if ok, _ := s.cache.get(key, integrationTTL, &cached); ok {
		return &cached, nil
	}
	res, err := s.api.IntegrationStatus(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.set(key, res); err != nil {
		log.Printf("[schedule] failed to cache integration status: %v", err)
	}
	return res, nil
}

// Conflicts returns the external-calendar conflicts for date. No retries.
// Callers must gate this on IntegrationStatus.IsConnected.
func (s *Service) Conflicts(ctx context.Context, eventID, date string) (*models.ConflictResult, error) {
	key := cacheKey("conflicts", eventID, date)
	var cached models.ConflictResult
	if ok, _ := s.cache.get(key, conflictsTTL, &cached); ok {
		return &cached, nil
	}
	res, err := s.api.Conflicts(ctx, eventID, date)
	if err != nil {
		return nil, err
	}
	if err := s.cache.set(key, res); err != nil {
		log.Printf("[schedule] failed to cache conflicts: %v", err)
	}
	return res, nil
}

// Snapshot fetches all sources for (eventID, date) concurrently and applies
// the degradation policy: an availability failure fails the snapshot, while
// the secondary sources degrade to their zero values with a stale marker.
// The conflicts fetch runs only after the integration status resolves as
// connected and only when a date is selected.
func (s *Service) Snapshot(ctx context.Context, eventID, date string) (*Snapshot, error) {
	snap := &Snapshot{
		EventID:     eventID,
		Date:        date,
		Booked:      &models.BookedSlotsResult{Date: date},
		Conflicts:   &models.ConflictResult{Date: date},
		Integration: &models.IntegrationStatus{},
	}

	var availErr error
	var wg conc.WaitGroup
	wg.Go(func() {
		snap.Availability, availErr = s.Availability(ctx, eventID)
	})
	if date != "" {
		wg.Go(func() {
			res, err := s.BookedSlots(ctx, eventID, date)
			if err != nil {
				log.Printf("[schedule] booked slots unavailable for %s, treating as free: %v", date, err)
				snap.BookedStale = true
				return
			}
			snap.Booked = res
		})
	}
	wg.Go(func() {
		res, err := s.IntegrationStatus(ctx, eventID)
		if err != nil {
			log.Printf("[schedule] integration check failed, using local availability only: %v", err)
			snap.IntegrationStale = true
			return
		}
		snap.Integration = res
	})
	wg.Wait()

	if availErr != nil {
		return nil, availErr
	}

	if snap.Integration.IsConnected && date != "" {
		res, err := s.Conflicts(ctx, eventID, date)
		if err != nil {
			log.Printf("[schedule] conflicts fetch failed for %s, showing local availability only: %v", date, err)
			snap.ConflictsStale = true
		} else {
			snap.Conflicts = res
		}
	}
	return snap, nil
}

// ClearCache drops every cached response, forcing fresh fetches.
func (s *Service) ClearCache() error {
	return s.cache.clear()
}
