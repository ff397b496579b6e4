package models

import (
	"fmt"
	"time"
)

// Role selects the account partition a credential lives in. Each role is
// backed by its own table; nothing outside ParseRole may turn a client
// string into a table name.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleCouple Role = "bride_groom"
	RoleVendor Role = "vendor"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCouple, RoleVendor:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown user type %q", s)
}

// Table returns the credential table backing the role.
func (r Role) Table() string {
	switch r {
	case RoleAdmin:
		return "admins"
	case RoleCouple:
		return "customers"
	case RoleVendor:
		return "vendors"
	}
	return ""
}

type User struct {
	ID           int    `json:"id"`
	Role         Role   `json:"role"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone,omitempty"`
	PasswordHash string `json:"-"`
	Newsletter   bool   `json:"newsletter"`

	// couple fields
	WeddingDate *time.Time `json:"wedding_date,omitempty"`
	GuestCount  *int       `json:"guest_count,omitempty"`

	// vendor fields
	BusinessName string `json:"business_name,omitempty"`
	BusinessType string `json:"business_type,omitempty"`
	ServiceArea  string `json:"service_area,omitempty"`

	EmailVerified bool       `json:"email_verified"`
	VerifiedAt    *time.Time `json:"-"`

	// refresh-token storage on the user row
	RefreshToken     *string    `json:"-"`
	RefreshExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"user_type" binding:"required"`
}
