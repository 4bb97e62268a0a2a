package models

import "time"

// User is the identity record behind a verified phone number. Accounts are
// provisioned on first successful verification, keyed by a deterministic
// pseudo-email derived from the phone.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name,omitempty" json:"name,omitempty"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	PhoneNumber  string    `bson:"phone_number" json:"phone_number"`
	AuthProvider string    `bson:"auth_provider" json:"auth_provider"` // "phone"
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
