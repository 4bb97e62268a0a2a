package models

import "time"

// NoPreference is the stylist sentinel stored when the customer chose
// "any available" rather than a named stylist.
const NoPreference = "any"

// Customer holds the details captured at checkout.
type Customer struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"` // normalized
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Notes string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Booking represents a confirmed appointment record.
type Booking struct {
	ID        string    `bson:"id" json:"id"`
	Customer  Customer  `bson:"customer" json:"customer"`
	ServiceID string    `bson:"service_id" json:"serviceId"`
	StylistID string    `bson:"stylist_id" json:"stylistId"` // concrete id or NoPreference
	Date      string    `bson:"date" json:"date"`            // "YYYY-MM-DD"
	Start     int       `bson:"start" json:"start"`          // minutes from midnight
	Duration  int       `bson:"duration" json:"duration"`
	Price     float64   `bson:"price" json:"price"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
