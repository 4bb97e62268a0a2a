package bookingRepo

import (
	"errors"

	"glowtheory/models"
)

// ErrSlotTaken signals that another booking already holds the exact
// (stylist, date, start) slot. Raised from the unique index so a race
// between two customers resolves into a clean rejection instead of a
// double-booking.
var ErrSlotTaken = errors.New("slot already booked")

// BookingRepository defines methods for booking record access.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(b *models.Booking) error
	// GetByStylistAndDate retrieves a stylist's bookings on a date.
	GetByStylistAndDate(stylistID, date string) ([]models.Booking, error)
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
}
