package otp

import (
	"context"

	otpRepoPkg "glowtheory/database/repository/otp"
	userRepoPkg "glowtheory/database/repository/user"
	"glowtheory/models"
	"glowtheory/services/sms"

	"github.com/go-redis/redis/v8"
)

// IssueResult reports a successful issuance. DebugCode carries the raw code
// only when debug echoing is enabled outside production.
type IssueResult struct {
	Message   string
	DebugCode string
}

// OtpService defines phone verification: code issuance and verification
// with session bootstrap.
type OtpService interface {
	// Issue generates, stores and dispatches a code for a phone.
	Issue(ctx context.Context, phone string) (*IssueResult, error)
	// Verify checks a submitted code and, on success, returns a session.
	Verify(ctx context.Context, phone, code string) (*models.AuthSession, error)
}

// DefaultOtpService is the production implementation.
type DefaultOtpService struct {
	Repo     otpRepoPkg.OtpRepository
	Users    userRepoPkg.UserRepository
	Cooldown *redis.Client // OTP cooldown keys
	Auth     *redis.Client // refresh token hashes
	Sender   sms.Sender
}
