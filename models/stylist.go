package models

// Stylist represents a member of staff with the services they offer and their
// working window, in minutes from midnight (e.g., 540 for 9:00 AM).
type Stylist struct {
	ID         string   `bson:"id" json:"id"`
	Name       string   `bson:"name" json:"name"`
	ServiceIDs []string `bson:"service_ids" json:"serviceIds"`
	WorkStart  int      `bson:"work_start" json:"workStart"`
	WorkEnd    int      `bson:"work_end" json:"workEnd"`
}

// Offers reports whether the stylist is qualified for the given service.
func (s *Stylist) Offers(serviceID string) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// Break is a scheduled pause in a stylist's day (lunch, training).
type Break struct {
	ID        string `bson:"id" json:"id"`
	StylistID string `bson:"stylist_id" json:"stylistId"`
	Date      string `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start     int    `bson:"start" json:"start"`
	End       int    `bson:"end" json:"end"`
}

// Unavailability is a blanket block on a stylist's calendar, such as leave.
// A window spanning the whole business day takes the stylist out entirely.
type Unavailability struct {
	ID        string `bson:"id" json:"id"`
	StylistID string `bson:"stylist_id" json:"stylistId"`
	Date      string `bson:"date" json:"date"`
	Start     int    `bson:"start" json:"start"`
	End       int    `bson:"end" json:"end"`
	Reason    string `bson:"reason,omitempty" json:"reason,omitempty"`
}
