package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"aiowedding/internal/models"
	"aiowedding/internal/repositories"
	"aiowedding/internal/utils"
)

var (
	ErrUserNotFound          = errors.New("no account found")
	ErrInvalidUserType       = errors.New("invalid user type")
	ErrInvalidOrExpiredCode  = errors.New("invalid or expired verification code")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	ErrWeakPassword          = errors.New("password does not meet the strength policy")
	ErrNotificationFailed    = errors.New("email delivery failed")
)

const (
	defaultCodeTTL  = 10 * time.Minute
	defaultTokenTTL = 30 * time.Minute
)

// PasswordResetService drives the three-step reset workflow:
// request a code, verify it, set a new password. A record moves
// Requested -> Verified -> Used and never back.
type PasswordResetService interface {
	RequestCode(email string, role models.Role) error
	VerifyCode(email string, role models.Role, code string) (string, error)
	ResetPassword(email string, role models.Role, resetToken, newPassword string) error
}

type passwordResetService struct {
	credentials repositories.CredentialRepository
	resets      repositories.PasswordResetRepository
	emails      EmailService
	auth        AuthService
	codeTTL     time.Duration
	tokenTTL    time.Duration
}

func NewPasswordResetService(
	credentials repositories.CredentialRepository,
	resets repositories.PasswordResetRepository,
	emails EmailService,
	auth AuthService,
	codeTTL, tokenTTL time.Duration,
) PasswordResetService {
	if codeTTL <= 0 {
		codeTTL = defaultCodeTTL
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &passwordResetService{
		credentials: credentials,
		resets:      resets,
		emails:      emails,
		auth:        auth,
		codeTTL:     codeTTL,
		tokenTTL:    tokenTTL,
	}
}

// RequestCode issues a fresh verification code for (email, role). Any
// earlier unused record for the pair is invalidated in the same
// transaction that persists the new one, so at most one code is live.
func (s *passwordResetService) RequestCode(email string, role models.Role) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !utils.IsValidEmail(email) {
		return ErrUserNotFound
	}

	user, err := s.credentials.FindByEmailAndRole(email, role)
	if err != nil {
		log.Printf("[reset][request] lookup failed email=%q role=%s: %v", email, role, err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	code, err := utils.NewVerificationCode()
	if err != nil {
		return err
	}
	rec := &models.PasswordResetRecord{
		Email:            email,
		Role:             role,
		VerificationCode: code,
		CodeExpiresAt:    time.Now().Add(s.codeTTL),
	}
	if err := s.resets.Replace(rec); err != nil {
		log.Printf("[reset][request] persist failed email=%q role=%s: %v", email, role, err)
		return err
	}

	// The record is already persisted; a send failure is surfaced
	// distinctly and the caller retries via a new RequestCode.
	if err := s.emails.SendVerificationCode(user.Email, user.FullName(), code); err != nil {
		log.Printf("[reset][request] send failed email=%q role=%s: %v", email, role, err)
		return ErrNotificationFailed
	}
	log.Printf("[reset][request] code issued email=%q role=%s expires_in=%s", email, role, s.codeTTL)
	return nil
}

// VerifyCode exchanges a valid verification code for a reset token. The
// flip to verified is a compare-and-set in the store, so of two racing
// calls only one receives a token.
func (s *passwordResetService) VerifyCode(email string, role models.Role, code string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrInvalidOrExpiredCode
	}

	token, err := utils.NewResetToken(32)
	if err != nil {
		return "", err
	}
	ok, err := s.resets.MarkVerified(email, role, code, token, time.Now().Add(s.tokenTTL))
	if err != nil {
		log.Printf("[reset][verify] store failed email=%q role=%s: %v", email, role, err)
		return "", err
	}
	if !ok {
		// wrong, expired and already-used codes are indistinguishable on
		// purpose
		return "", ErrInvalidOrExpiredCode
	}
	log.Printf("[reset][verify] code accepted email=%q role=%s", email, role)
	return token, nil
}

// ResetPassword consumes the reset token and updates the credential.
// Consuming first guarantees a token authorizes at most one password
// change even under concurrent calls.
func (s *passwordResetService) ResetPassword(email string, role models.Role, resetToken, newPassword string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	resetToken = strings.TrimSpace(resetToken)
	if resetToken == "" {
		return ErrInvalidOrExpiredToken
	}
	if !utils.IsStrongPassword(newPassword) {
		return ErrWeakPassword
	}

	user, err := s.credentials.FindByEmailAndRole(email, role)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidOrExpiredToken
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	ok, err := s.resets.ConsumeToken(email, role, resetToken)
	if err != nil {
		log.Printf("[reset][password] consume failed email=%q role=%s: %v", email, role, err)
		return err
	}
	if !ok {
		return ErrInvalidOrExpiredToken
	}

	updated, err := s.credentials.UpdatePasswordHash(email, role, hash)
	if err != nil {
		log.Printf("[reset][password] update failed email=%q role=%s: %v", email, role, err)
		return err
	}
	if !updated {
		return ErrUserNotFound
	}

	// best effort; the password is already changed
	if err := s.emails.SendResetConfirmation(user.Email, user.FullName()); err != nil {
		log.Printf("[reset][password] confirmation send failed email=%q role=%s: %v", email, role, err)
	}
	log.Printf("[reset][password] password updated email=%q role=%s", email, role)
	return nil
}
