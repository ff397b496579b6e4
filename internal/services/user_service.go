package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"aiowedding/internal/models"
	"aiowedding/internal/repositories"
	"aiowedding/internal/utils"
)

var (
	ErrEmailTaken        = errors.New("an account with this email already exists")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrInvalidInput      = errors.New("invalid registration data")
	ErrInvalidCredential = errors.New("invalid email or password")
)

// RegisterInput carries the sign-up form. Couples and vendors have
// different required fields; admins are not self-registerable.
type RegisterInput struct {
	UserType        string `json:"user_type" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Phone           string `json:"phone"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Newsletter      bool   `json:"newsletter"`

	WeddingDate string `json:"wedding_date"`
	GuestCount  *int   `json:"guest_count"`

	BusinessName string `json:"business_name"`
	BusinessType string `json:"business_type"`
	ServiceArea  string `json:"service_area"`
}

type UserService interface {
	Register(in RegisterInput) (*models.User, error)
	Authenticate(email, password string, role models.Role) (*models.User, error)
	VerifyEmail(role models.Role, token string) (bool, error)
	GetByID(id int, role models.Role) (*models.User, error)
	UpdateRefresh(id int, role models.Role, token string, expiresAt time.Time) error
	GetByRefreshToken(role models.Role, token string) (*models.User, error)
	ClearRefresh(id int, role models.Role) error
}

type userService struct {
	credentials repositories.CredentialRepository
	emails      EmailService
	auth        AuthService
	notifier    Notifier
}

func NewUserService(
	credentials repositories.CredentialRepository,
	emails EmailService,
	auth AuthService,
	notifier Notifier,
) UserService {
	return &userService{
		credentials: credentials,
		emails:      emails,
		auth:        auth,
		notifier:    notifier,
	}
}

func (s *userService) Register(in RegisterInput) (*models.User, error) {
	role, err := models.ParseRole(in.UserType)
	if err != nil || role == models.RoleAdmin {
		return nil, fmt.Errorf("%w: user type", ErrInvalidInput)
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))
	if !utils.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: email", ErrInvalidInput)
	}
	if !utils.IsStrongPassword(in.Password) {
		return nil, ErrWeakPassword
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	user := &models.User{
		Role:       role,
		Email:      email,
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Phone:      strings.TrimSpace(in.Phone),
		Newsletter: in.Newsletter,
	}
	if user.FirstName == "" || user.LastName == "" {
		return nil, fmt.Errorf("%w: name", ErrInvalidInput)
	}

	switch role {
	case models.RoleCouple:
		if in.WeddingDate != "" {
			d, err := time.Parse("2006-01-02", in.WeddingDate)
			if err != nil {
				return nil, fmt.Errorf("%w: wedding date", ErrInvalidInput)
			}
			if d.Before(time.Now().Truncate(24 * time.Hour)) {
				return nil, fmt.Errorf("%w: wedding date must be in the future", ErrInvalidInput)
			}
			user.WeddingDate = &d
		}
		if in.GuestCount != nil && (*in.GuestCount < 1 || *in.GuestCount > 1000) {
			return nil, fmt.Errorf("%w: guest count must be between 1 and 1000", ErrInvalidInput)
		}
		user.GuestCount = in.GuestCount
	case models.RoleVendor:
		user.BusinessName = strings.TrimSpace(in.BusinessName)
		user.BusinessType = strings.TrimSpace(in.BusinessType)
		user.ServiceArea = strings.TrimSpace(in.ServiceArea)
		if user.BusinessName == "" || user.BusinessType == "" {
			return nil, fmt.Errorf("%w: business name and type are required", ErrInvalidInput)
		}
	}

	taken, err := s.credentials.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	verificationToken, err := utils.NewResetToken(32)
	if err != nil {
		return nil, err
	}
	if err := s.credentials.Create(user, verificationToken); err != nil {
		return nil, err
	}

	if s.emails != nil {
		if err := s.emails.SendWelcomeEmail(user.Email, user.FullName(), verificationToken); err != nil {
			// account exists either way; the user can ask for a resend
			log.Printf("[user][register] welcome email failed email=%q: %v", user.Email, err)
		}
	}
	if s.notifier != nil && role == models.RoleVendor {
		s.notifier.NotifyVendorRegistered(user.BusinessName, user.Email)
	}
	log.Printf("[user][register] created id=%d role=%s", user.ID, role)
	return user, nil
}

func (s *userService) Authenticate(email, password string, role models.Role) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.credentials.FindByEmailAndRole(email, role)
	if err != nil {
		return nil, err
	}
	if user == nil || strings.TrimSpace(user.PasswordHash) == "" {
		return nil, ErrInvalidCredential
	}
	if err := s.auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredential
	}
	return user, nil
}

func (s *userService) VerifyEmail(role models.Role, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}
	return s.credentials.VerifyEmail(role, token)
}

func (s *userService) GetByID(id int, role models.Role) (*models.User, error) {
	return s.credentials.FindByID(id, role)
}

func (s *userService) UpdateRefresh(id int, role models.Role, token string, expiresAt time.Time) error {
	return s.credentials.UpdateRefresh(id, role, token, expiresAt)
}

func (s *userService) GetByRefreshToken(role models.Role, token string) (*models.User, error) {
	return s.credentials.GetByRefreshToken(role, token)
}

func (s *userService) ClearRefresh(id int, role models.Role) error {
	return s.credentials.ClearRefresh(id, role)
}
