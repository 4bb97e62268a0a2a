package models

import "time"

// CartItem is one pending appointment inside a checkout session.
type CartItem struct {
	ID        string  `json:"id"`
	ServiceID string  `json:"serviceId"`
	StylistID string  `json:"stylistId"` // concrete id or NoPreference
	Date      string  `json:"date"`      // "YYYY-MM-DD"
	Start     int     `json:"start"`     // minutes from midnight
	Duration  int     `json:"duration"`
	Price     float64 `json:"price"`
}

// End returns the exclusive end minute of the item's interval.
func (i CartItem) End() int {
	return i.Start + i.Duration
}

// Cart is the in-progress set of appointments a customer is assembling.
// It lives in the session cache and is discarded on successful submission.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
}

// TotalPrice sums item prices. No discounting or tax logic exists.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price
	}
	return total
}

// TotalDuration sums item durations in minutes.
func (c *Cart) TotalDuration() int {
	var total int
	for _, item := range c.Items {
		total += item.Duration
	}
	return total
}

// CheckoutResult reports the outcome of a cart submission. On partial
// failure Created holds the bookings that were committed before the failing
// item; they are never rolled back.
type CheckoutResult struct {
	Bookings   []Booking `json:"bookings"`
	TotalPrice float64   `json:"totalPrice"`
}
