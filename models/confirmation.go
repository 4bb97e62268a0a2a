package models

// AppointmentSummary is one line of a confirmation message.
type AppointmentSummary struct {
	ServiceName string  `json:"serviceName"`
	Date        string  `json:"date"` // "YYYY-MM-DD"
	Start       int     `json:"start"`
	Price       float64 `json:"price"`
}
