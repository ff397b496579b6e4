package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email, name, verificationToken string) error
	SendVerificationCode(email, name, code string) error
	SendResetConfirmation(email, name string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendWelcomeEmail(email, name, verificationToken string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to All in One Wedding!")

	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Thank you for joining All in One Wedding. Your account has been created.</p>
		<p>Please confirm your email address by opening the link below within 24 hours:</p>
		<p><a href="https://allinonewedding.example/verify-email?token=%s">Verify my email</a></p>
		<p>Best regards,<br>The All in One Wedding Team</p>
	`, name, verificationToken)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendVerificationCode(email, name, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your password reset code")

	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>Dear %s,</p>
		<p>We received a request to reset the password for your All in One Wedding account.</p>
		<p>Your verification code is: <strong>%s</strong></p>
		<p>The code expires in 10 minutes. If you did not request a reset, you can ignore this email.</p>
	`, name, code)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}

func (s *emailService) SendResetConfirmation(email, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your password has been changed")

	body := fmt.Sprintf(`
		<h3>Password changed</h3>
		<p>Dear %s,</p>
		<p>The password for your All in One Wedding account was just changed.</p>
		<p>If this wasn't you, please contact support immediately.</p>
	`, name)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reset confirmation: %w", err)
	}
	return nil
}
