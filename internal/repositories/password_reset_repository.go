package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"aiowedding/internal/models"
)

// PasswordResetRepository owns the password_reset_records table. State
// transitions are single-statement compare-and-set updates so that
// concurrent calls racing on the same record produce exactly one winner.
type PasswordResetRepository interface {
	// Replace atomically invalidates any unused record for (email, role)
	// and inserts rec in its place.
	Replace(rec *models.PasswordResetRecord) error

	// MarkVerified flips the matching unexpired, unused record to
	// verified and stores the reset token. Returns false when no record
	// matched (wrong code, expired, already used or verified elsewhere).
	MarkVerified(email string, role models.Role, code, token string, tokenExpiresAt time.Time) (bool, error)

	// ConsumeToken flips the matching verified, unexpired record to used.
	// Returns false when no record matched; at most one caller ever
	// gets true for a given token.
	ConsumeToken(email string, role models.Role, token string) (bool, error)
}

type passwordResetRepository struct {
	DB *sql.DB
}

func NewPasswordResetRepository(db *sql.DB) PasswordResetRepository {
	return &passwordResetRepository{DB: db}
}

func (r *passwordResetRepository) Replace(rec *models.PasswordResetRecord) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("password reset replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM password_reset_records WHERE email = $1 AND role = $2 AND used = FALSE`,
		rec.Email, rec.Role,
	); err != nil {
		return fmt.Errorf("password reset invalidate: %w", err)
	}

	const q = `
		INSERT INTO password_reset_records (email, role, verification_code, code_expires_at, verified, used)
		VALUES ($1, $2, $3, $4, FALSE, FALSE)
		RETURNING id, created_at
	`
	if err := tx.QueryRow(q, rec.Email, rec.Role, rec.VerificationCode, rec.CodeExpiresAt).
		Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return fmt.Errorf("password reset insert: %w", err)
	}
	return tx.Commit()
}

func (r *passwordResetRepository) MarkVerified(email string, role models.Role, code, token string, tokenExpiresAt time.Time) (bool, error) {
	const q = `
		UPDATE password_reset_records
		SET verified = TRUE, reset_token = $1, reset_token_expires_at = $2
		WHERE email = $3 AND role = $4 AND verification_code = $5
		  AND used = FALSE AND verified = FALSE AND code_expires_at > NOW()
	`
	res, err := r.DB.Exec(q, token, tokenExpiresAt, email, role, code)
	if err != nil {
		return false, fmt.Errorf("password reset verify: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *passwordResetRepository) ConsumeToken(email string, role models.Role, token string) (bool, error) {
	const q = `
		UPDATE password_reset_records
		SET used = TRUE
		WHERE email = $1 AND role = $2 AND reset_token = $3
		  AND verified = TRUE AND used = FALSE AND reset_token_expires_at > NOW()
	`
	res, err := r.DB.Exec(q, email, role, token)
	if err != nil {
		return false, fmt.Errorf("password reset consume: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
