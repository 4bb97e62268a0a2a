package checkout

import (
	"errors"
	"fmt"

	"glowtheory/models"
)

var (
	// ErrCartNotFound signals a missing or expired cart session.
	ErrCartNotFound = errors.New("cart session not found or expired")
	// ErrCartConflict signals that the new item overlaps one already in the
	// cart on the same date.
	ErrCartConflict = errors.New("time conflicts with another appointment in your cart")
	// ErrSlotUnavailable signals that the requested time failed the
	// server-side availability check.
	ErrSlotUnavailable = errors.New("the selected time is no longer available")
	// ErrEmptyCart signals a submission with nothing to book.
	ErrEmptyCart = errors.New("cart is empty")
)

// PartialBookingError reports a submission that stopped partway: items
// before the failing one are committed and are never rolled back; items
// after it were never attempted. Callers must surface Created so the user
// does not re-submit appointments that already exist.
type PartialBookingError struct {
	Created      []models.Booking
	FailedItemID string
	Err          error
}

func (e *PartialBookingError) Error() string {
	return fmt.Sprintf("booked %d of the requested appointments before item %s failed: %v",
		len(e.Created), e.FailedItemID, e.Err)
}

func (e *PartialBookingError) Unwrap() error { return e.Err }
