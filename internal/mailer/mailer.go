package mailer

import (
	"crypto/tls"
	"fmt"

	"farmstock_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer delivers notification emails produced by the intake endpoints.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer creates a Mailer backed by an SMTP server.
func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if m.cfg.InsecureSkipVerify {
		dialer.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}
