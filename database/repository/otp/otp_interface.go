package otpRepo

import (
	"time"

	"glowtheory/models"
)

// OtpRepository defines methods for OTP record access.
type OtpRepository interface {
	// Create inserts a new OTP record.
	Create(rec *models.OtpRecord) error
	// LatestActive retrieves the most recently created unverified, unexpired
	// record for a normalized phone, or nil when none exists.
	LatestActive(phone string, now time.Time) (*models.OtpRecord, error)
	// LatestVerified retrieves the most recently created verified, unexpired
	// record for a normalized phone, or nil when none exists.
	LatestVerified(phone string, now time.Time) (*models.OtpRecord, error)
	// IncrementAttempts adds one failed-or-successful check to a record.
	IncrementAttempts(id string) error
	// MarkVerified flags a record as consumed.
	MarkVerified(id string) error
}
