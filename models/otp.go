package models

import "time"

// OtpRecord is one issued verification code. Records are never deleted; the
// most recently created unverified, unexpired record for a phone is the
// authoritative one during verification.
type OtpRecord struct {
	ID        string    `bson:"id" json:"id"`
	Phone     string    `bson:"phone" json:"phone"` // normalized, e.g. "94771234567"
	Otp       string    `bson:"otp" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	Verified  bool      `bson:"verified" json:"verified"`
	Attempts  int       `bson:"attempts" json:"attempts"`
}
