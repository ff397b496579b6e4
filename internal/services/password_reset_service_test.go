package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiowedding/internal/models"
)

// fakeCredentialRepo keeps users in memory, keyed by (email, role).
type fakeCredentialRepo struct {
	users map[string]*models.User
}

func newFakeCredentialRepo(users ...*models.User) *fakeCredentialRepo {
	r := &fakeCredentialRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.Email+"|"+string(u.Role)] = u
	}
	return r
}

func (r *fakeCredentialRepo) Create(user *models.User, verificationToken string) error {
	r.users[user.Email+"|"+string(user.Role)] = user
	return nil
}

func (r *fakeCredentialRepo) FindByEmailAndRole(email string, role models.Role) (*models.User, error) {
	return r.users[email+"|"+string(role)], nil
}

func (r *fakeCredentialRepo) FindByID(id int, role models.Role) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id && u.Role == role {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeCredentialRepo) EmailExists(email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email && u.Role != models.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCredentialRepo) UpdatePasswordHash(email string, role models.Role, hash string) (bool, error) {
	u := r.users[email+"|"+string(role)]
	if u == nil {
		return false, nil
	}
	u.PasswordHash = hash
	return true, nil
}

func (r *fakeCredentialRepo) UpdateRefresh(id int, role models.Role, token string, expiresAt time.Time) error {
	u, _ := r.FindByID(id, role)
	if u != nil {
		u.RefreshToken = &token
		u.RefreshExpiresAt = &expiresAt
	}
	return nil
}

func (r *fakeCredentialRepo) GetByRefreshToken(role models.Role, token string) (*models.User, error) {
	for _, u := range r.users {
		if u.Role == role && u.RefreshToken != nil && *u.RefreshToken == token {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeCredentialRepo) ClearRefresh(id int, role models.Role) error {
	u, _ := r.FindByID(id, role)
	if u != nil {
		u.RefreshToken = nil
		u.RefreshExpiresAt = nil
	}
	return nil
}

func (r *fakeCredentialRepo) VerifyEmail(role models.Role, token string) (bool, error) {
	return false, nil
}

func (r *fakeCredentialRepo) CountByRole(role models.Role) (int, error) {
	n := 0
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *fakeCredentialRepo) CountByRoleSince(role models.Role, since time.Time) (int, error) {
	return 0, nil
}

// fakeResetRepo mirrors the single-winner compare-and-set semantics of
// the real store against an in-memory slice.
type fakeResetRepo struct {
	records []*models.PasswordResetRecord
	nextID  int64
}

func (r *fakeResetRepo) Replace(rec *models.PasswordResetRecord) error {
	kept := r.records[:0]
	for _, old := range r.records {
		if old.Email == rec.Email && old.Role == rec.Role && !old.Used {
			continue
		}
		kept = append(kept, old)
	}
	r.records = kept
	r.nextID++
	rec.ID = r.nextID
	rec.CreatedAt = time.Now()
	r.records = append(r.records, rec)
	return nil
}

func (r *fakeResetRepo) MarkVerified(email string, role models.Role, code, token string, tokenExpiresAt time.Time) (bool, error) {
	now := time.Now()
	for _, rec := range r.records {
		if rec.Email == email && rec.Role == role && rec.VerificationCode == code &&
			!rec.Used && !rec.Verified && now.Before(rec.CodeExpiresAt) {
			rec.Verified = true
			rec.ResetToken = &token
			rec.TokenExpiresAt = &tokenExpiresAt
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeResetRepo) ConsumeToken(email string, role models.Role, token string) (bool, error) {
	now := time.Now()
	for _, rec := range r.records {
		if rec.Email == email && rec.Role == role &&
			rec.ResetToken != nil && *rec.ResetToken == token &&
			rec.Verified && !rec.Used &&
			rec.TokenExpiresAt != nil && now.Before(*rec.TokenExpiresAt) {
			rec.Used = true
			return true, nil
		}
	}
	return false, nil
}

// current returns the only live record for (email, role), if any.
func (r *fakeResetRepo) current(email string, role models.Role) *models.PasswordResetRecord {
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].Email == email && r.records[i].Role == role {
			return r.records[i]
		}
	}
	return nil
}

type fakeEmailService struct {
	failSend  bool
	sentCodes []string
	confirmed []string
}

func (s *fakeEmailService) SendWelcomeEmail(email, name, verificationToken string) error {
	return nil
}

func (s *fakeEmailService) SendVerificationCode(email, name, code string) error {
	if s.failSend {
		return errors.New("smtp: connection refused")
	}
	s.sentCodes = append(s.sentCodes, code)
	return nil
}

func (s *fakeEmailService) SendResetConfirmation(email, name string) error {
	s.confirmed = append(s.confirmed, email)
	return nil
}

// fakeAuthService marks hashes deterministically so tests can follow a
// password through the flow without paying for bcrypt.
type fakeAuthService struct{}

func (fakeAuthService) HashPassword(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeAuthService) CheckPassword(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

var (
	codePattern  = regexp.MustCompile(`^[0-9]{6}$`)
	tokenPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)
)

func newResetFixture(t *testing.T) (PasswordResetService, *fakeCredentialRepo, *fakeResetRepo, *fakeEmailService) {
	t.Helper()
	creds := newFakeCredentialRepo(
		&models.User{ID: 1, Role: models.RoleCouple, Email: "bride@example.com", FirstName: "Anna", LastName: "Kim", PasswordHash: "hashed:OldPass1"},
		&models.User{ID: 2, Role: models.RoleVendor, Email: "florist@example.com", FirstName: "Mira", LastName: "Lee", PasswordHash: "hashed:OldPass1"},
	)
	resets := &fakeResetRepo{}
	emails := &fakeEmailService{}
	svc := NewPasswordResetService(creds, resets, emails, fakeAuthService{}, 10*time.Minute, 30*time.Minute)
	return svc, creds, resets, emails
}

func TestRequestCodeIssuesSixDigitCode(t *testing.T) {
	svc, _, resets, emails := newResetFixture(t)

	err := svc.RequestCode("bride@example.com", models.RoleCouple)
	require.NoError(t, err)

	require.Len(t, emails.sentCodes, 1)
	assert.Regexp(t, codePattern, emails.sentCodes[0])

	rec := resets.current("bride@example.com", models.RoleCouple)
	require.NotNil(t, rec)
	assert.Equal(t, emails.sentCodes[0], rec.VerificationCode)
	assert.False(t, rec.Verified)
	assert.False(t, rec.Used)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), rec.CodeExpiresAt, 5*time.Second)
}

func TestRequestCodeNormalizesEmail(t *testing.T) {
	svc, _, resets, _ := newResetFixture(t)

	require.NoError(t, svc.RequestCode("  Bride@Example.COM ", models.RoleCouple))
	assert.NotNil(t, resets.current("bride@example.com", models.RoleCouple))
}

func TestRequestCodeUnknownAccount(t *testing.T) {
	svc, _, resets, emails := newResetFixture(t)

	err := svc.RequestCode("nobody@example.com", models.RoleCouple)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// role mismatch: the vendor email exists, just not in this partition
	err = svc.RequestCode("florist@example.com", models.RoleCouple)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.Empty(t, emails.sentCodes)
	assert.Empty(t, resets.records)
}

func TestRequestCodeMalformedEmail(t *testing.T) {
	svc, _, _, _ := newResetFixture(t)

	assert.ErrorIs(t, svc.RequestCode("not-an-email", models.RoleCouple), ErrUserNotFound)
	assert.ErrorIs(t, svc.RequestCode("", models.RoleCouple), ErrUserNotFound)
}

func TestRequestCodeReplacesEarlierCode(t *testing.T) {
	svc, _, resets, emails := newResetFixture(t)

	require.NoError(t, svc.RequestCode("bride@example.com", models.RoleCouple))
	first := emails.sentCodes[0]
	require.NoError(t, svc.RequestCode("bride@example.com", models.RoleCouple))
	second := emails.sentCodes[1]

	// the first code is gone from the store
	n := 0
	for _, rec := range resets.records {
		if rec.Email == "bride@example.com" {
			n++
			assert.Equal(t, second, rec.VerificationCode)
		}
	}
	assert.Equal(t, 1, n)

	_, err := svc.VerifyCode("bride@example.com", models.RoleCouple, first)
	if first != second {
		assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
	}
}

func TestRequestCodeEmailDeliveryFails(t *testing.T) {
	svc, _, resets, emails := newResetFixture(t)
	emails.failSend = true

	err := svc.RequestCode("bride@example.com", models.RoleCouple)
	assert.ErrorIs(t, err, ErrNotificationFailed)

	// the record stays; a follow-up request simply replaces it
	assert.NotNil(t, resets.current("bride@example.com", models.RoleCouple))
}

func TestVerifyCodeReturnsHexToken(t *testing.T) {
	svc, _, resets, emails := newResetFixture(t)

	require.NoError(t, svc.RequestCode("bride@example.com", models.RoleCouple))
	token, err := svc.VerifyCode("bride@example.com", models.RoleCouple, emails.sentCodes[0])
	require.NoError(t, err)
	assert.Regexp(t, tokenPattern, token)

	rec := resets.current("bride@example.com", models.RoleCouple)
	require.NotNil(t, rec)
	assert.True(t, rec.Verified)
	require.NotNil(t, rec.ResetToken)
	assert.Equal(t, token, *rec.ResetToken)
	require.NotNil(t, rec.TokenExpiresAt)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), *rec.TokenExpiresAt, 5*time.Second)
}

func TestVerifyCodeWrongCode(t *testing.T) {
	svc, _, _, emails := newResetFixture(t)

	require.NoError(t, svc.RequestCode("bride@example.com", models.RoleCouple))
	wrong := "000000"
	if emails.sentCodes[0] == wrong {
		wrong = "000001"
	}
	_, err := svc.VerifyCode("bride@example.com", models.RoleCouple, wrong)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)

	_, err = svc.VerifyCode("bride@example.com", models.RoleCouple, "")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestVerifyCodeSingleUse(t *testing.T) {
	svc, _, _, emails := newResetFixture(t)

	require.NoError(t, svc.RequestCode("bride@example.com", models.RoleCouple))
	code := emails.sentCodes[0]

	_, err := svc.VerifyCode("bride@example.com", models.RoleCouple, code)
	require.NoError(t, err)

	_, err = svc.VerifyCode("bride@example.com", models.RoleCouple, code)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestVerifyCodeExpired(t *testing.T) {
	svc, _, resets, emails := newResetFixture(t)

	require.NoError(t, svc.RequestCode("bride@example.com", models.RoleCouple))
	resets.current("bride@example.com", models.RoleCouple).CodeExpiresAt = time.Now().Add(-time.Minute)

	_, err := svc.VerifyCode("bride@example.com", models.RoleCouple, emails.sentCodes[0])
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestVerifyCodeWrongRolePartition(t *testing.T) {
	svc, _, _, emails := newResetFixture(t)

	require.NoError(t, svc.RequestCode("bride@example.com", models.RoleCouple))
	_, err := svc.VerifyCode("bride@example.com", models.RoleVendor, emails.sentCodes[0])
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}

func TestResetPasswordFullFlow(t *testing.T) {
	svc, creds, _, emails := newResetFixture(t)

	require.NoError(t, svc.RequestCode("bride@example.com", models.RoleCouple))
	token, err := svc.VerifyCode("bride@example.com", models.RoleCouple, emails.sentCodes[0])
	require.NoError(t, err)

	err = svc.ResetPassword("bride@example.com", models.RoleCouple, token, "StrongPass1")
	require.NoError(t, err)

	user, _ := creds.FindByEmailAndRole("bride@example.com", models.RoleCouple)
	assert.Equal(t, "hashed:StrongPass1", user.PasswordHash)
	assert.Equal(t, []string{"bride@example.com"}, emails.confirmed)
}

func TestResetPasswordTokenSingleUse(t *testing.T) {
	svc, creds, _, emails := newResetFixture(t)

	require.NoError(t, svc.RequestCode("bride@example.com", models.RoleCouple))
	token, err := svc.VerifyCode("bride@example.com", models.RoleCouple, emails.sentCodes[0])
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword("bride@example.com", models.RoleCouple, token, "StrongPass1"))

	err = svc.ResetPassword("bride@example.com", models.RoleCouple, token, "OtherPass2")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)

	// the second attempt changed nothing
	user, _ := creds.FindByEmailAndRole("bride@example.com", models.RoleCouple)
	assert.Equal(t, "hashed:StrongPass1", user.PasswordHash)
}

func TestResetPasswordTokenExpired(t *testing.T) {
	svc, _, resets, emails := newResetFixture(t)

	require.NoError(t, svc.RequestCode("bride@example.com", models.RoleCouple))
	token, err := svc.VerifyCode("bride@example.com", models.RoleCouple, emails.sentCodes[0])
	require.NoError(t, err)

	expired := time.Now().Add(-time.Minute)
	resets.current("bride@example.com", models.RoleCouple).TokenExpiresAt = &expired

	err = svc.ResetPassword("bride@example.com", models.RoleCouple, token, "StrongPass1")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestResetPasswordBogusToken(t *testing.T) {
	svc, _, _, emails := newResetFixture(t)

	require.NoError(t, svc.RequestCode("bride@example.com", models.RoleCouple))
	_, err := svc.VerifyCode("bride@example.com", models.RoleCouple, emails.sentCodes[0])
	require.NoError(t, err)

	err = svc.ResetPassword("bride@example.com", models.RoleCouple, "deadbeef", "StrongPass1")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)

	err = svc.ResetPassword("bride@example.com", models.RoleCouple, "", "StrongPass1")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestResetPasswordWithoutVerification(t *testing.T) {
	svc, _, _, _ := newResetFixture(t)

	require.NoError(t, svc.RequestCode("bride@example.com", models.RoleCouple))
	err := svc.ResetPassword("bride@example.com", models.RoleCouple, "0123456789abcdef", "StrongPass1")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestResetPasswordWeakPassword(t *testing.T) {
	svc, creds, _, emails := newResetFixture(t)

	require.NoError(t, svc.RequestCode("bride@example.com", models.RoleCouple))
	token, err := svc.VerifyCode("bride@example.com", models.RoleCouple, emails.sentCodes[0])
	require.NoError(t, err)

	for _, weak := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		err = svc.ResetPassword("bride@example.com", models.RoleCouple, token, weak)
		assert.ErrorIs(t, err, ErrWeakPassword, "password %q", weak)
	}

	// the token survives weak-password rejections
	require.NoError(t, svc.ResetPassword("bride@example.com", models.RoleCouple, token, "StrongPass1"))
	user, _ := creds.FindByEmailAndRole("bride@example.com", models.RoleCouple)
	assert.Equal(t, "hashed:StrongPass1", user.PasswordHash)
}

func TestResetFlowsArePartitionedByRole(t *testing.T) {
	svc, creds, _, emails := newResetFixture(t)

	require.NoError(t, svc.RequestCode("florist@example.com", models.RoleVendor))
	token, err := svc.VerifyCode("florist@example.com", models.RoleVendor, emails.sentCodes[0])
	require.NoError(t, err)

	// the couple partition never sees the vendor's token
	err = svc.ResetPassword("bride@example.com", models.RoleCouple, token, "StrongPass1")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)

	require.NoError(t, svc.ResetPassword("florist@example.com", models.RoleVendor, token, "StrongPass1"))
	vendor, _ := creds.FindByEmailAndRole("florist@example.com", models.RoleVendor)
	assert.Equal(t, "hashed:StrongPass1", vendor.PasswordHash)
}
