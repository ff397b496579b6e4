package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"aiowedding/internal/models"
)

// CredentialRepository is the role-partitioned credential store. Every
// query targets exactly one role table; the table name comes from the
// closed models.Role enum, never from client input.
type CredentialRepository interface {
	Create(user *models.User, verificationToken string) error
	FindByEmailAndRole(email string, role models.Role) (*models.User, error)
	FindByID(id int, role models.Role) (*models.User, error)
	EmailExists(email string) (bool, error)
	UpdatePasswordHash(email string, role models.Role, hash string) (bool, error)

	UpdateRefresh(id int, role models.Role, token string, expiresAt time.Time) error
	GetByRefreshToken(role models.Role, token string) (*models.User, error)
	ClearRefresh(id int, role models.Role) error

	VerifyEmail(role models.Role, token string) (bool, error)

	CountByRole(role models.Role) (int, error)
	CountByRoleSince(role models.Role, since time.Time) (int, error)
}

type credentialRepository struct {
	DB *sql.DB
}

func NewCredentialRepository(db *sql.DB) CredentialRepository {
	return &credentialRepository{DB: db}
}

func (r *credentialRepository) Create(user *models.User, verificationToken string) error {
	switch user.Role {
	case models.RoleCouple:
		const q = `
			INSERT INTO customers (
				email, first_name, last_name, phone, password_hash, newsletter,
				wedding_date, guest_count, email_verification_token
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			RETURNING id, created_at
		`
		return r.DB.QueryRow(q,
			user.Email, user.FirstName, user.LastName, user.Phone, user.PasswordHash,
			user.Newsletter, user.WeddingDate, user.GuestCount, verificationToken,
		).Scan(&user.ID, &user.CreatedAt)
	case models.RoleVendor:
		const q = `
			INSERT INTO vendors (
				email, first_name, last_name, phone, password_hash, newsletter,
				business_name, business_type, service_area, email_verification_token
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			RETURNING id, created_at
		`
		return r.DB.QueryRow(q,
			user.Email, user.FirstName, user.LastName, user.Phone, user.PasswordHash,
			user.Newsletter, user.BusinessName, user.BusinessType, user.ServiceArea,
			verificationToken,
		).Scan(&user.ID, &user.CreatedAt)
	}
	return fmt.Errorf("create user: role %q is not self-registerable", user.Role)
}

func (r *credentialRepository) FindByEmailAndRole(email string, role models.Role) (*models.User, error) {
	q := fmt.Sprintf(`
		SELECT id, email, first_name, last_name, phone, password_hash,
		       email_verified, verified_at, refresh_token, refresh_expires_at, created_at
		FROM %s
		WHERE email = $1
	`, role.Table())
	return r.scanUser(r.DB.QueryRow(q, email), role)
}

func (r *credentialRepository) FindByID(id int, role models.Role) (*models.User, error) {
	q := fmt.Sprintf(`
		SELECT id, email, first_name, last_name, phone, password_hash,
		       email_verified, verified_at, refresh_token, refresh_expires_at, created_at
		FROM %s
		WHERE id = $1
	`, role.Table())
	return r.scanUser(r.DB.QueryRow(q, id), role)
}

// EmailExists checks the self-registerable partitions, matching the
// registration rule that one email may hold only one account.
func (r *credentialRepository) EmailExists(email string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM customers WHERE email = $1
			UNION
			SELECT 1 FROM vendors WHERE email = $1
		)
	`
	var exists bool
	if err := r.DB.QueryRow(q, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("email exists: %w", err)
	}
	return exists, nil
}

func (r *credentialRepository) UpdatePasswordHash(email string, role models.Role, hash string) (bool, error) {
	q := fmt.Sprintf(`UPDATE %s SET password_hash = $1 WHERE email = $2`, role.Table())
	res, err := r.DB.Exec(q, hash, email)
	if err != nil {
		return false, fmt.Errorf("update password hash: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *credentialRepository) UpdateRefresh(id int, role models.Role, token string, expiresAt time.Time) error {
	q := fmt.Sprintf(`
		UPDATE %s SET refresh_token = $1, refresh_expires_at = $2 WHERE id = $3
	`, role.Table())
	_, err := r.DB.Exec(q, token, expiresAt, id)
	return err
}

func (r *credentialRepository) GetByRefreshToken(role models.Role, token string) (*models.User, error) {
	q := fmt.Sprintf(`
		SELECT id, email, first_name, last_name, phone, password_hash,
		       email_verified, verified_at, refresh_token, refresh_expires_at, created_at
		FROM %s
		WHERE refresh_token = $1
	`, role.Table())
	return r.scanUser(r.DB.QueryRow(q, token), role)
}

func (r *credentialRepository) ClearRefresh(id int, role models.Role) error {
	q := fmt.Sprintf(`
		UPDATE %s SET refresh_token = NULL, refresh_expires_at = NULL WHERE id = $1
	`, role.Table())
	_, err := r.DB.Exec(q, id)
	return err
}

func (r *credentialRepository) VerifyEmail(role models.Role, token string) (bool, error) {
	q := fmt.Sprintf(`
		UPDATE %s
		SET email_verified = TRUE, verified_at = NOW(), email_verification_token = NULL
		WHERE email_verification_token = $1 AND email_verified = FALSE
	`, role.Table())
	res, err := r.DB.Exec(q, token)
	if err != nil {
		return false, fmt.Errorf("verify email: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *credentialRepository) CountByRole(role models.Role) (int, error) {
	var c int
	err := r.DB.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, role.Table())).Scan(&c)
	return c, err
}

func (r *credentialRepository) CountByRoleSince(role models.Role, since time.Time) (int, error) {
	var c int
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE created_at >= $1`, role.Table())
	err := r.DB.QueryRow(q, since).Scan(&c)
	return c, err
}

func (r *credentialRepository) scanUser(row *sql.Row, role models.Role) (*models.User, error) {
	u := &models.User{Role: role}
	var (
		phone      sql.NullString
		verified   sql.NullBool
		verifiedAt sql.NullTime
		rt         sql.NullString
		rte        sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &phone, &u.PasswordHash,
		&verified, &verifiedAt, &rt, &rte, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", role.Table(), err)
	}
	if phone.Valid {
		u.Phone = phone.String
	}
	if verified.Valid {
		u.EmailVerified = verified.Bool
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		u.VerifiedAt = &t
	}
	if rt.Valid {
		s := rt.String
		u.RefreshToken = &s
	}
	if rte.Valid {
		t := rte.Time
		u.RefreshExpiresAt = &t
	}
	return u, nil
}
