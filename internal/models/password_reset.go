package models

import "time"

// PasswordResetRecord is one attempt of the three-step reset workflow.
// At most one unused record exists per (email, role); issuing a new code
// replaces the previous one.
type PasswordResetRecord struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Role             Role       `json:"role"`
	VerificationCode string     `json:"-"`
	CodeExpiresAt    time.Time  `json:"code_expires_at"`
	ResetToken       *string    `json:"-"`
	TokenExpiresAt   *time.Time `json:"-"`
	Verified         bool       `json:"verified"`
	Used             bool       `json:"used"`
	CreatedAt        time.Time  `json:"created_at"`
}

// CodeValid reports whether the verification code may still be presented.
func (r *PasswordResetRecord) CodeValid(now time.Time) bool {
	return !r.Used && now.Before(r.CodeExpiresAt)
}

// TokenValid reports whether the reset token may still be presented.
func (r *PasswordResetRecord) TokenValid(now time.Time) bool {
	return r.Verified && !r.Used &&
		r.ResetToken != nil && r.TokenExpiresAt != nil && now.Before(*r.TokenExpiresAt)
}
