package models

// TimeSlot is a single bookable start time for one stylist and date. Derived
// per request, never persisted. The same shape serves consolidated
// availability, where Available means at least one qualified stylist is free.
type TimeSlot struct {
	Time      string `json:"time"` // "HH:MM"
	Available bool   `json:"available"`
}
