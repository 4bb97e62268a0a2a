package otp

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited signals an issuance request inside the cooldown window.
	ErrRateLimited = errors.New("a code was sent recently; wait before requesting another")
	// ErrExpiredOrMissing signals that no active code exists for the phone.
	ErrExpiredOrMissing = errors.New("code expired or was never requested")
	// ErrTooManyAttempts signals the attempt cap was reached; the record is
	// dead and the user must request a new code.
	ErrTooManyAttempts = errors.New("too many incorrect attempts; request a new code")
	// ErrInvalidCode signals a mismatch. The attempt was still consumed.
	ErrInvalidCode = errors.New("incorrect verification code")
)

// DeliveryError reports that the code was stored but the SMS gateway failed.
// The code is valid even though it was not delivered.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("code stored but delivery failed: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// SessionError reports an identity or token failure after a correct code.
// The OTP stays consumed; verification can be retried without a new code.
type SessionError struct {
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session bootstrap failed: %v", e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }
