package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"glowtheory/models"
	"glowtheory/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// codeTTL is how long an issued code stays valid.
	codeTTL = 5 * time.Minute
	// issueCooldown is the minimum gap between codes for one phone.
	issueCooldown = 60 * time.Second
)

// generateCode returns a uniformly random 6-digit numeric code in
// [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue generates a 6-digit code for the phone, persists it with a 5-minute
// TTL and dispatches it via the SMS gateway. A second request inside the
// 60-second cooldown is rejected without creating a record; a failure to
// store a code clears the cooldown so the retry is immediate. Dispatch
// failure is surfaced as a DeliveryError; the stored code stays valid.
func (s *DefaultOtpService) Issue(ctx context.Context, rawPhone string) (*IssueResult, error) {
	if rawPhone == "" {
		return nil, fmt.Errorf("phone number is required")
	}
	phone := utils.NormalizePhone(rawPhone)
	logger := utils.GetLogger()

	// Atomic cooldown gate. SETNX serializes racing issuance requests so
	// only one of them creates a record inside the window.
	acquired, err := s.Cooldown.SetNX(ctx, utils.OTPCooldownPrefix+phone, 1, issueCooldown).Result()
	if err != nil {
		logger.Error("Failed to check OTP cooldown", zap.Error(err))
		return nil, fmt.Errorf("failed to issue code: %w", err)
	}
	if !acquired {
		return nil, ErrRateLimited
	}

	// When the cooldown cache was flushed, the latest active record's age
	// enforces the same window.
	now := time.Now()
	if existing, err := s.Repo.LatestActive(phone, now); err == nil && existing != nil {
		if now.Sub(existing.CreatedAt) < issueCooldown {
			return nil, ErrRateLimited
		}
	}

	code, err := generateCode()
	if err != nil {
		s.releaseCooldown(ctx, phone)
		return nil, err
	}

	rec := &models.OtpRecord{
		ID:        uuid.NewString(),
		Phone:     phone,
		Otp:       code,
		CreatedAt: now,
		ExpiresAt: now.Add(codeTTL),
		Verified:  false,
		Attempts:  0,
	}
	if err := s.Repo.Create(rec); err != nil {
		logger.Error("Failed to store OTP record", zap.Error(err))
		s.releaseCooldown(ctx, phone)
		return nil, fmt.Errorf("failed to store verification code: %w", err)
	}

	message := fmt.Sprintf("Your Glow Theory verification code is %s. It expires in %d minutes.",
		code, int(codeTTL.Minutes()))
	if err := s.Sender.Send(ctx, phone, message); err != nil {
		logger.Error("Failed to send OTP via SMS", zap.String("phone", phone), zap.Error(err))
		return nil, &DeliveryError{Err: err}
	}

	result := &IssueResult{Message: "verification code sent"}
	if utils.DebugCodesEnabled() {
		result.DebugCode = code
	}

	logger.Sugar().Infof("Issued OTP for phone %s (expires in %v)", phone, codeTTL)
	return result, nil
}

// releaseCooldown drops the cooldown key after a failure that stored no
// valid code, so the user can retry immediately instead of waiting out the
// window.
func (s *DefaultOtpService) releaseCooldown(ctx context.Context, phone string) {
	if err := s.Cooldown.Del(ctx, utils.OTPCooldownPrefix+phone).Err(); err != nil {
		utils.GetLogger().Warn("Failed to release OTP cooldown",
			zap.String("phone", phone), zap.Error(err))
	}
}
