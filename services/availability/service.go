package availability

import (
	"context"
	"fmt"

	bookingRepoPkg "glowtheory/database/repository/booking"
	catalogRepoPkg "glowtheory/database/repository/catalog"
	"glowtheory/models"
	"glowtheory/utils"
)

// AvailabilityService computes bookable time slots.
type AvailabilityService interface {
	// StylistSlots enumerates slots for one stylist, date and duration.
	StylistSlots(ctx context.Context, stylistID, date string, durationMinutes int) ([]models.TimeSlot, error)
	// ServiceSlots enumerates consolidated slots for a service: a time is
	// available when at least one qualified stylist can take the full
	// duration starting then.
	ServiceSlots(ctx context.Context, serviceID, date string) ([]models.TimeSlot, error)
}

// DefaultAvailabilityService is the production implementation. Business
// hours and slot granularity come from configuration, not from this engine.
type DefaultAvailabilityService struct {
	Catalog  catalogRepoPkg.CatalogRepository
	Bookings bookingRepoPkg.BookingRepository

	OpenMinute  int // business day start, minutes from midnight
	CloseMinute int // business day end
	Interval    int // slot granularity in minutes
}

// interval is a half-open busy window [Start, End).
type interval struct {
	Start int
	End   int
}

// StylistSlots enumerates discretized slot starts across the business day.
// A slot is available iff it fits the stylist's working window and
// [start, start+duration) intersects no booking, break or unavailability
// window for that stylist on that date. Slots come back in time order.
func (s *DefaultAvailabilityService) StylistSlots(ctx context.Context, stylistID, date string, durationMinutes int) ([]models.TimeSlot, error) {
	stylist, err := s.Catalog.GetStylistByID(stylistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stylist: %w", err)
	}
	if stylist == nil {
		return nil, fmt.Errorf("stylist %s not found", stylistID)
	}

	busy, err := s.busyIntervals(stylistID, date)
	if err != nil {
		return nil, err
	}

	var slots []models.TimeSlot
	for start := s.OpenMinute; start+durationMinutes <= s.CloseMinute; start += s.Interval {
		slots = append(slots, models.TimeSlot{
			Time:      utils.MinutesToClock(start),
			Available: stylistFree(stylist, busy, start, durationMinutes),
		})
	}
	return slots, nil
}

// ServiceSlots enumerates consolidated slots for a service across every
// qualified stylist.
func (s *DefaultAvailabilityService) ServiceSlots(ctx context.Context, serviceID, date string) ([]models.TimeSlot, error) {
	svc, err := s.Catalog.GetServiceByID(serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if svc == nil {
		return nil, fmt.Errorf("service %s not found", serviceID)
	}

	stylists, err := s.Catalog.GetStylistsForService(serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stylists for service %s: %w", serviceID, err)
	}

	busyByStylist := make(map[string][]interval, len(stylists))
	for _, st := range stylists {
		busy, err := s.busyIntervals(st.ID, date)
		if err != nil {
			return nil, err
		}
		busyByStylist[st.ID] = busy
	}

	duration := svc.DurationMinutes
	var slots []models.TimeSlot
	for start := s.OpenMinute; start+duration <= s.CloseMinute; start += s.Interval {
		available := false
		for i := range stylists {
			if stylistFree(&stylists[i], busyByStylist[stylists[i].ID], start, duration) {
				available = true
				break
			}
		}
		slots = append(slots, models.TimeSlot{
			Time:      utils.MinutesToClock(start),
			Available: available,
		})
	}
	return slots, nil
}

// busyIntervals collects a stylist's bookings, breaks and unavailability
// windows for a date.
func (s *DefaultAvailabilityService) busyIntervals(stylistID, date string) ([]interval, error) {
	bookings, err := s.Bookings.GetByStylistAndDate(stylistID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for stylist %s: %w", stylistID, err)
	}
	breaks, err := s.Catalog.GetBreaks(stylistID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load breaks for stylist %s: %w", stylistID, err)
	}
	windows, err := s.Catalog.GetUnavailability(stylistID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load unavailability for stylist %s: %w", stylistID, err)
	}

	busy := make([]interval, 0, len(bookings)+len(breaks)+len(windows))
	for _, b := range bookings {
		busy = append(busy, interval{Start: b.Start, End: b.Start + b.Duration})
	}
	for _, br := range breaks {
		busy = append(busy, interval{Start: br.Start, End: br.End})
	}
	for _, u := range windows {
		busy = append(busy, interval{Start: u.Start, End: u.End})
	}
	return busy, nil
}

// stylistFree applies the single-stylist rule: the candidate interval must
// sit inside the working window and overlap nothing.
func stylistFree(st *models.Stylist, busy []interval, start, duration int) bool {
	if start < st.WorkStart || start+duration > st.WorkEnd {
		return false
	}
	for _, iv := range busy {
		if utils.Overlaps(start, duration, iv.Start, iv.End-iv.Start) {
			return false
		}
	}
	return true
}
