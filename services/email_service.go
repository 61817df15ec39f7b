package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Tinnitussen/DAT250/config"
)

// EmailService sends transactional mail. Sending is disabled by
// default so local development needs no SMTP credentials.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		config: cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

// SendWelcomeEmail greets a freshly registered user. Callers fire it
// from a goroutine; a failure must never fail the registration.
func (es *EmailService) SendWelcomeEmail(to, firstName string) error {
	if !es.config.MailEnabled {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome to Social Insecurity")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour account has been created. Log in and say hello to your friends!\n", firstName))

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
