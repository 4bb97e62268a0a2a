package otp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"glowtheory/config"
	"glowtheory/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOtpRepo is an in-memory OtpRepository. createFailures makes the next
// N Create calls fail.
type fakeOtpRepo struct {
	records        []*models.OtpRecord
	createFailures int
}

func (f *fakeOtpRepo) Create(rec *models.OtpRecord) error {
	if f.createFailures > 0 {
		f.createFailures--
		return errors.New("datastore write failed")
	}
	cp := *rec
	f.records = append(f.records, &cp)
	return nil
}

func (f *fakeOtpRepo) LatestActive(phone string, now time.Time) (*models.OtpRecord, error) {
	var latest *models.OtpRecord
	for _, rec := range f.records {
		if rec.Phone != phone || rec.Verified || !rec.ExpiresAt.After(now) {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeOtpRepo) LatestVerified(phone string, now time.Time) (*models.OtpRecord, error) {
	var latest *models.OtpRecord
	for _, rec := range f.records {
		if rec.Phone != phone || !rec.Verified || !rec.ExpiresAt.After(now) {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeOtpRepo) IncrementAttempts(id string) error {
	for _, rec := range f.records {
		if rec.ID == id {
			rec.Attempts++
			return nil
		}
	}
	return fmt.Errorf("otp record %s not found", id)
}

func (f *fakeOtpRepo) MarkVerified(id string) error {
	for _, rec := range f.records {
		if rec.ID == id {
			rec.Verified = true
			return nil
		}
	}
	return fmt.Errorf("otp record %s not found", id)
}

// fakeUserRepo is an in-memory UserRepository. getByEmailFailures makes the
// next N GetByEmail calls fail.
type fakeUserRepo struct {
	users              []*models.User
	getByEmailFailures int
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s not found", id)
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if f.getByEmailFailures > 0 {
		f.getByEmailFailures--
		return nil, errors.New("identity store unreachable")
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.users = append(f.users, user)
	return nil
}

// fakeSender records outbound messages and can simulate a gateway outage.
type fakeSender struct {
	sent []string
	fail bool
}

func (f *fakeSender) Send(ctx context.Context, phone, message string) error {
	if f.fail {
		return errors.New("gateway unreachable")
	}
	f.sent = append(f.sent, message)
	return nil
}

func newTestOtpService(t *testing.T) (*DefaultOtpService, *fakeOtpRepo, *fakeUserRepo, *fakeSender) {
	t.Helper()
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.Env = "development"
	config.AppConfig.OTPDebug = true

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := &fakeOtpRepo{}
	users := &fakeUserRepo{}
	sender := &fakeSender{}
	svc := &DefaultOtpService{
		Repo:     repo,
		Users:    users,
		Cooldown: client,
		Auth:     client,
		Sender:   sender,
	}
	return svc, repo, users, sender
}

func TestIssueStoresRecordAndDispatches(t *testing.T) {
	svc, repo, _, sender := newTestOtpService(t)

	result, err := svc.Issue(context.Background(), "0771234567")
	require.NoError(t, err)
	require.Len(t, repo.records, 1)

	rec := repo.records[0]
	assert.Equal(t, "94771234567", rec.Phone)
	assert.Regexp(t, `^\d{6}$`, rec.Otp)
	assert.False(t, rec.Verified)
	assert.Zero(t, rec.Attempts)
	assert.WithinDuration(t, rec.CreatedAt.Add(5*time.Minute), rec.ExpiresAt, time.Second)

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], rec.Otp)
	assert.Equal(t, rec.Otp, result.DebugCode)
}

func TestIssueCooldownRejectsSecondRequest(t *testing.T) {
	svc, repo, _, _ := newTestOtpService(t)

	_, err := svc.Issue(context.Background(), "0771234567")
	require.NoError(t, err)

	_, err = svc.Issue(context.Background(), "0771234567")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Len(t, repo.records, 1, "rate-limited request must not create a record")
}

func TestIssueDeliveryFailureKeepsStoredCode(t *testing.T) {
	svc, repo, _, sender := newTestOtpService(t)
	sender.fail = true

	_, err := svc.Issue(context.Background(), "0771234567")

	var deliveryErr *DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Len(t, repo.records, 1, "the code is valid even though it was not delivered")
}

func TestIssueStoreFailureDoesNotStartCooldown(t *testing.T) {
	svc, repo, _, _ := newTestOtpService(t)
	repo.createFailures = 1

	_, err := svc.Issue(context.Background(), "0771234567")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
	assert.Empty(t, repo.records)

	// No code was stored, so the retry goes through immediately.
	result, err := svc.Issue(context.Background(), "0771234567")
	require.NoError(t, err)
	require.Len(t, repo.records, 1)
	assert.Equal(t, repo.records[0].Otp, result.DebugCode)
}

func TestIssueRejectsMissingPhone(t *testing.T) {
	svc, _, _, _ := newTestOtpService(t)
	_, err := svc.Issue(context.Background(), "")
	assert.Error(t, err)
}

func TestVerifyMissingRecord(t *testing.T) {
	svc, _, _, _ := newTestOtpService(t)
	_, err := svc.Verify(context.Background(), "0771234567", "123456")
	assert.ErrorIs(t, err, ErrExpiredOrMissing)
}

func TestVerifyExpiredRecord(t *testing.T) {
	svc, repo, _, _ := newTestOtpService(t)
	repo.records = append(repo.records, &models.OtpRecord{
		ID:        "rec1",
		Phone:     "94771234567",
		Otp:       "123456",
		CreatedAt: time.Now().Add(-10 * time.Minute),
		ExpiresAt: time.Now().Add(-5 * time.Minute),
	})

	_, err := svc.Verify(context.Background(), "0771234567", "123456")
	assert.ErrorIs(t, err, ErrExpiredOrMissing)
}

func TestVerifyWrongCodeConsumesAttempt(t *testing.T) {
	svc, repo, _, _ := newTestOtpService(t)
	repo.records = append(repo.records, &models.OtpRecord{
		ID:        "rec1",
		Phone:     "94771234567",
		Otp:       "123456",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(5 * time.Minute),
	})

	_, err := svc.Verify(context.Background(), "0771234567", "654321")
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.Equal(t, 1, repo.records[0].Attempts)
	assert.False(t, repo.records[0].Verified)
}

func TestVerifyAttemptCapIsTerminal(t *testing.T) {
	svc, repo, _, _ := newTestOtpService(t)
	repo.records = append(repo.records, &models.OtpRecord{
		ID:        "rec1",
		Phone:     "94771234567",
		Otp:       "123456",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(5 * time.Minute),
		Attempts:  3,
	})

	// Even the correct code is rejected once the cap is reached.
	_, err := svc.Verify(context.Background(), "0771234567", "123456")
	assert.ErrorIs(t, err, ErrTooManyAttempts)
	assert.Equal(t, 3, repo.records[0].Attempts)
}

func TestVerifySuccessMintsSession(t *testing.T) {
	svc, repo, users, _ := newTestOtpService(t)
	repo.records = append(repo.records, &models.OtpRecord{
		ID:        "rec1",
		Phone:     "94771234567",
		Otp:       "123456",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(5 * time.Minute),
	})

	session, err := svc.Verify(context.Background(), "0771234567", "123456")
	require.NoError(t, err)

	assert.True(t, repo.records[0].Verified)
	assert.Equal(t, 1, repo.records[0].Attempts, "a correct check still consumes one attempt")

	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Greater(t, session.ExpiresAt, time.Now().Unix())
	assert.Equal(t, "94771234567", session.User.Phone)

	require.Len(t, users.users, 1)
	assert.Equal(t, "94771234567@phone.glowtheory.lk", users.users[0].Email)
	assert.Equal(t, "phone", users.users[0].AuthProvider)
}

func TestVerifyRetriesBootstrapWithSameCode(t *testing.T) {
	svc, repo, users, _ := newTestOtpService(t)
	repo.records = append(repo.records, &models.OtpRecord{
		ID:        "rec1",
		Phone:     "94771234567",
		Otp:       "123456",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(5 * time.Minute),
	})
	users.getByEmailFailures = 1

	_, err := svc.Verify(context.Background(), "0771234567", "123456")
	var sessionErr *SessionError
	require.ErrorAs(t, err, &sessionErr)
	assert.True(t, repo.records[0].Verified, "the code is consumed before bootstrap runs")

	// The consumed code still backs a bootstrap retry; no new code needed.
	session, err := svc.Verify(context.Background(), "0771234567", "123456")
	require.NoError(t, err)
	assert.Equal(t, "94771234567", session.User.Phone)
	assert.NotEmpty(t, session.AccessToken)
}

func TestVerifyRetryRejectsWrongCode(t *testing.T) {
	svc, repo, users, _ := newTestOtpService(t)
	repo.records = append(repo.records, &models.OtpRecord{
		ID:        "rec1",
		Phone:     "94771234567",
		Otp:       "123456",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(5 * time.Minute),
	})
	users.getByEmailFailures = 1

	_, err := svc.Verify(context.Background(), "0771234567", "123456")
	var sessionErr *SessionError
	require.ErrorAs(t, err, &sessionErr)

	// A wrong guess against the consumed record looks like no record at all
	// and still consumes an attempt.
	_, err = svc.Verify(context.Background(), "0771234567", "654321")
	assert.ErrorIs(t, err, ErrExpiredOrMissing)
	assert.Equal(t, 2, repo.records[0].Attempts)
}

func TestVerifyReusesExistingIdentity(t *testing.T) {
	svc, repo, users, _ := newTestOtpService(t)

	repo.records = append(repo.records, &models.OtpRecord{
		ID:        "rec1",
		Phone:     "94771234567",
		Otp:       "123456",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(5 * time.Minute),
	})
	first, err := svc.Verify(context.Background(), "0771234567", "123456")
	require.NoError(t, err)

	repo.records = append(repo.records, &models.OtpRecord{
		ID:        "rec2",
		Phone:     "94771234567",
		Otp:       "999999",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(5 * time.Minute),
	})
	second, err := svc.Verify(context.Background(), "0771234567", "999999")
	require.NoError(t, err)

	assert.Len(t, users.users, 1, "the same phone must resolve to one identity")
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestIssueThenVerifyScenario(t *testing.T) {
	svc, _, _, _ := newTestOtpService(t)

	result, err := svc.Issue(context.Background(), "0771234567")
	require.NoError(t, err)
	require.Regexp(t, `^\d{6}$`, result.DebugCode)

	session, err := svc.Verify(context.Background(), "0771234567", result.DebugCode)
	require.NoError(t, err)
	assert.Equal(t, "94771234567", session.User.Phone)
	assert.NotEmpty(t, session.AccessToken)
}
