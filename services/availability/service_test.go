package availability

import (
	"context"
	"testing"

	"glowtheory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog is an in-memory CatalogRepository.
type fakeCatalog struct {
	services       map[string]*models.Service
	stylists       map[string]*models.Stylist
	breaks         []models.Break
	unavailability []models.Unavailability
}

func (f *fakeCatalog) GetServiceByID(id string) (*models.Service, error) {
	return f.services[id], nil
}

func (f *fakeCatalog) GetActiveServices() ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		if svc.Active {
			out = append(out, *svc)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetStylistByID(id string) (*models.Stylist, error) {
	return f.stylists[id], nil
}

func (f *fakeCatalog) GetStylistsForService(serviceID string) ([]models.Stylist, error) {
	var out []models.Stylist
	for _, st := range f.stylists {
		if st.Offers(serviceID) {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetBreaks(stylistID, date string) ([]models.Break, error) {
	var out []models.Break
	for _, b := range f.breaks {
		if b.StylistID == stylistID && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetUnavailability(stylistID, date string) ([]models.Unavailability, error) {
	var out []models.Unavailability
	for _, u := range f.unavailability {
		if u.StylistID == stylistID && u.Date == date {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeBookings is an in-memory BookingRepository.
type fakeBookings struct {
	bookings []models.Booking
}

func (f *fakeBookings) Create(b *models.Booking) error {
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeBookings) GetByStylistAndDate(stylistID, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.StylistID == stylistID && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) GetByID(id string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			return &f.bookings[i], nil
		}
	}
	return nil, nil
}

func newTestService(catalog *fakeCatalog, bookings *fakeBookings) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		Catalog:     catalog,
		Bookings:    bookings,
		OpenMinute:  9 * 60,
		CloseMinute: 18 * 60,
		Interval:    30,
	}
}

func slotByTime(t *testing.T, slots []models.TimeSlot, clock string) models.TimeSlot {
	t.Helper()
	for _, s := range slots {
		if s.Time == clock {
			return s
		}
	}
	t.Fatalf("slot %s not found", clock)
	return models.TimeSlot{}
}

func TestStylistSlotsExcludeBookingsAndBreaks(t *testing.T) {
	catalog := &fakeCatalog{
		stylists: map[string]*models.Stylist{
			"s1": {ID: "s1", Name: "Amara", WorkStart: 9 * 60, WorkEnd: 18 * 60},
		},
		breaks: []models.Break{
			{StylistID: "s1", Date: "2026-01-05", Start: 12 * 60, End: 13 * 60},
		},
	}
	bookings := &fakeBookings{bookings: []models.Booking{
		{ID: "b1", StylistID: "s1", Date: "2026-01-05", Start: 10 * 60, Duration: 30},
	}}
	svc := newTestService(catalog, bookings)

	slots, err := svc.StylistSlots(context.Background(), "s1", "2026-01-05", 30)
	require.NoError(t, err)

	assert.False(t, slotByTime(t, slots, "10:00").Available, "booked slot must be blocked")
	assert.True(t, slotByTime(t, slots, "10:30").Available, "back-to-back slot must stay free")
	assert.False(t, slotByTime(t, slots, "12:00").Available, "break must block slots")
	assert.False(t, slotByTime(t, slots, "12:30").Available, "break must block slots")
	assert.True(t, slotByTime(t, slots, "13:00").Available)
}

func TestStylistSlotsRespectWorkingWindow(t *testing.T) {
	catalog := &fakeCatalog{
		stylists: map[string]*models.Stylist{
			"s1": {ID: "s1", Name: "Amara", WorkStart: 10 * 60, WorkEnd: 16 * 60},
		},
	}
	svc := newTestService(catalog, &fakeBookings{})

	slots, err := svc.StylistSlots(context.Background(), "s1", "2026-01-05", 60)
	require.NoError(t, err)

	assert.False(t, slotByTime(t, slots, "09:00").Available, "before working window")
	assert.True(t, slotByTime(t, slots, "10:00").Available)
	assert.True(t, slotByTime(t, slots, "15:00").Available, "last start that fits the window")
	assert.False(t, slotByTime(t, slots, "15:30").Available, "duration would spill past the window")
}

func TestStylistSlotsBlockedByUnavailability(t *testing.T) {
	catalog := &fakeCatalog{
		stylists: map[string]*models.Stylist{
			"s1": {ID: "s1", Name: "Amara", WorkStart: 9 * 60, WorkEnd: 18 * 60},
		},
		unavailability: []models.Unavailability{
			{StylistID: "s1", Date: "2026-01-05", Start: 9 * 60, End: 18 * 60, Reason: "leave"},
		},
	}
	svc := newTestService(catalog, &fakeBookings{})

	slots, err := svc.StylistSlots(context.Background(), "s1", "2026-01-05", 30)
	require.NoError(t, err)
	for _, s := range slots {
		assert.False(t, s.Available, "whole-day unavailability must block %s", s.Time)
	}
}

func TestServiceSlotsUnionAcrossStylists(t *testing.T) {
	catalog := &fakeCatalog{
		services: map[string]*models.Service{
			"cut": {ID: "cut", Name: "Haircut", DurationMinutes: 30, Active: true},
		},
		stylists: map[string]*models.Stylist{
			"s1": {ID: "s1", Name: "Amara", ServiceIDs: []string{"cut"}, WorkStart: 9 * 60, WorkEnd: 18 * 60},
			"s2": {ID: "s2", Name: "Nadia", ServiceIDs: []string{"cut"}, WorkStart: 9 * 60, WorkEnd: 18 * 60},
		},
	}
	bookings := &fakeBookings{bookings: []models.Booking{
		{ID: "b1", StylistID: "s1", Date: "2026-01-05", Start: 9 * 60, Duration: 30},
	}}
	svc := newTestService(catalog, bookings)

	slots, err := svc.ServiceSlots(context.Background(), "cut", "2026-01-05")
	require.NoError(t, err)

	// One stylist is busy 09:00-09:30, the other is free all day.
	assert.True(t, slotByTime(t, slots, "09:00").Available, "a time is available when at least one qualified stylist is free")
}

func TestServiceSlotsAllStylistsBusy(t *testing.T) {
	catalog := &fakeCatalog{
		services: map[string]*models.Service{
			"cut": {ID: "cut", Name: "Haircut", DurationMinutes: 30, Active: true},
		},
		stylists: map[string]*models.Stylist{
			"s1": {ID: "s1", ServiceIDs: []string{"cut"}, WorkStart: 9 * 60, WorkEnd: 18 * 60},
			"s2": {ID: "s2", ServiceIDs: []string{"cut"}, WorkStart: 9 * 60, WorkEnd: 18 * 60},
		},
	}
	bookings := &fakeBookings{bookings: []models.Booking{
		{ID: "b1", StylistID: "s1", Date: "2026-01-05", Start: 9 * 60, Duration: 30},
		{ID: "b2", StylistID: "s2", Date: "2026-01-05", Start: 9 * 60, Duration: 30},
	}}
	svc := newTestService(catalog, bookings)

	slots, err := svc.ServiceSlots(context.Background(), "cut", "2026-01-05")
	require.NoError(t, err)
	assert.False(t, slotByTime(t, slots, "09:00").Available)
	assert.True(t, slotByTime(t, slots, "09:30").Available)
}

func TestSlotsComeBackInTimeOrder(t *testing.T) {
	catalog := &fakeCatalog{
		stylists: map[string]*models.Stylist{
			"s1": {ID: "s1", WorkStart: 9 * 60, WorkEnd: 18 * 60},
		},
	}
	svc := newTestService(catalog, &fakeBookings{})

	slots, err := svc.StylistSlots(context.Background(), "s1", "2026-01-05", 30)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, "09:00", slots[0].Time)
	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1].Time, slots[i].Time, "slots must stay in natural time order")
	}
}
