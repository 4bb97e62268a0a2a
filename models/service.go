package models

// Service represents a salon treatment from the catalog. The booking flow
// reads these records but never writes them.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	Category        string  `bson:"category" json:"category"` // e.g., "hair", "nails", "spa"
	Price           float64 `bson:"price" json:"price"`
	DurationMinutes int     `bson:"duration_minutes" json:"durationMinutes"`
	Active          bool    `bson:"active" json:"active"`
}
