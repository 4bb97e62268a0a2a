package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesToClock formats minutes from midnight as "HH:MM".
func MinutesToClock(m int) string {
	hours := m / 60
	minutes := m % 60
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// ClockToMinutes parses "HH:MM" into minutes from midnight.
func ClockToMinutes(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", clock)
	}
	return hours*60 + minutes, nil
}

// MinutesTo12Hour formats minutes from midnight on a 12-hour clock,
// e.g. 810 -> "1:30 PM". Used for customer-facing messages.
func MinutesTo12Hour(m int) string {
	hours := m / 60
	minutes := m % 60
	suffix := "AM"
	if hours >= 12 {
		suffix = "PM"
	}
	hours = hours % 12
	if hours == 0 {
		hours = 12
	}
	return fmt.Sprintf("%d:%02d %s", hours, minutes, suffix)
}

// FormatDate renders a "YYYY-MM-DD" date for customer-facing messages,
// e.g. "Mon, 02 Jan 2026". Unparseable input is returned as-is.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Mon, 02 Jan 2006")
}

// Overlaps reports whether [aStart, aStart+aDur) and [bStart, bStart+bDur)
// intersect. This strict-overlap rule is the single source of truth for
// slot collision checks, both against stored bookings and across cart items;
// back-to-back intervals do not overlap.
func Overlaps(aStart, aDur, bStart, bDur int) bool {
	return aStart < bStart+bDur && bStart < aStart+aDur
}
