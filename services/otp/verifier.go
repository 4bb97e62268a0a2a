package otp

import (
	"context"
	"fmt"
	"time"

	"glowtheory/models"
	"glowtheory/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// maxAttempts caps verification checks per record. Every check, right or
// wrong, consumes one attempt.
const maxAttempts = 3

// pseudoEmailDomain keys identities off phones without a real mailbox.
const pseudoEmailDomain = "phone.glowtheory.lk"

// Verify checks the submitted code against the latest active record. On a
// match it marks the record verified, resolves (or provisions) the identity
// behind the phone and returns a token bundle. Failures after the match are
// SessionErrors: the code stays consumed and retrying needs no new code.
func (s *DefaultOtpService) Verify(ctx context.Context, rawPhone, code string) (*models.AuthSession, error) {
	if rawPhone == "" || code == "" {
		return nil, fmt.Errorf("phone number and code are required")
	}
	phone := utils.NormalizePhone(rawPhone)
	logger := utils.GetLogger()

	rec, err := s.Repo.LatestActive(phone, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to look up verification code: %w", err)
	}
	if rec == nil {
		// A consumed code whose session bootstrap failed stays good for a
		// bootstrap retry until it expires; no new code is needed.
		return s.retryBootstrap(ctx, phone, code)
	}
	if rec.Attempts >= maxAttempts {
		return nil, ErrTooManyAttempts
	}

	// Consume an attempt before comparing so a wrong guess and a right one
	// cost the same.
	if err := s.Repo.IncrementAttempts(rec.ID); err != nil {
		return nil, fmt.Errorf("failed to record verification attempt: %w", err)
	}
	if rec.Otp != code {
		return nil, ErrInvalidCode
	}

	if err := s.Repo.MarkVerified(rec.ID); err != nil {
		return nil, fmt.Errorf("failed to mark code verified: %w", err)
	}

	session, err := s.bootstrapSession(ctx, phone)
	if err != nil {
		logger.Error("Session bootstrap failed after OTP match",
			zap.String("phone", phone), zap.Error(err))
		return nil, &SessionError{Err: err}
	}
	return session, nil
}

// retryBootstrap re-runs session bootstrap against the latest verified,
// unexpired record. The code was already consumed; only the post-match steps
// are repeated. Attempt accounting still applies so a consumed code cannot
// be guessed at freely.
func (s *DefaultOtpService) retryBootstrap(ctx context.Context, phone, code string) (*models.AuthSession, error) {
	rec, err := s.Repo.LatestVerified(phone, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to look up verification code: %w", err)
	}
	if rec == nil {
		return nil, ErrExpiredOrMissing
	}
	if rec.Attempts >= maxAttempts {
		return nil, ErrTooManyAttempts
	}
	if err := s.Repo.IncrementAttempts(rec.ID); err != nil {
		return nil, fmt.Errorf("failed to record verification attempt: %w", err)
	}
	// A mismatch against a consumed record looks the same as no record at
	// all, so its existence is not disclosed.
	if rec.Otp != code {
		return nil, ErrExpiredOrMissing
	}

	session, err := s.bootstrapSession(ctx, phone)
	if err != nil {
		utils.GetLogger().Error("Session bootstrap retry failed",
			zap.String("phone", phone), zap.Error(err))
		return nil, &SessionError{Err: err}
	}
	return session, nil
}

// bootstrapSession resolves the identity behind a verified phone and mints
// the token bundle. Identity lookup is idempotent: the account is created
// once and found thereafter, including when a concurrent create wins.
func (s *DefaultOtpService) bootstrapSession(ctx context.Context, phone string) (*models.AuthSession, error) {
	email := fmt.Sprintf("%s@%s", phone, pseudoEmailDomain)
	credential := utils.BootstrapCredential(phone)

	userRec, err := s.Users.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}
	if userRec == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash bootstrap credential: %w", err)
		}
		userRec = &models.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: string(hash),
			PhoneNumber:  phone,
			AuthProvider: "phone",
		}
		if err := s.Users.Create(userRec); err != nil {
			// A concurrent verification may have provisioned the account
			// already; fall back to the stored record.
			existing, lookupErr := s.Users.GetByEmail(email)
			if lookupErr != nil || existing == nil {
				return nil, fmt.Errorf("failed to provision identity: %w", err)
			}
			userRec = existing
		}
	}

	// Credential-based sign-in against the resolved identity.
	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(credential)); err != nil {
		return nil, fmt.Errorf("bootstrap credential mismatch for %s", email)
	}

	accessToken, err := utils.GenerateToken(userRec.ID, phone, utils.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := utils.GenerateToken(userRec.ID, phone, utils.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// Cache the refresh token hash so it can be revoked server-side.
	cacheKey := utils.AuthCachePrefix + userRec.ID
	if err := s.Auth.Set(ctx, cacheKey, utils.HashToken(refreshToken), utils.RefreshTokenTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to cache session: %w", err)
	}

	return &models.AuthSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(utils.AccessTokenTTL).Unix(),
		User: models.SessionUser{
			ID:    userRec.ID,
			Phone: phone,
		},
	}, nil
}
