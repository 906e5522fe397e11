// Package mail sends transactional email through an SMTP relay.
package mail

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/insign-app/backend/config"
)

var (
	// ErrNotConfigured is returned when SMTP host, user, or password are missing.
	ErrNotConfigured = errors.New("mail relay not configured")
	// ErrDeliveryFailed is the sanitized error returned for any transport
	// failure. Transport detail stays in the server log.
	ErrDeliveryFailed = errors.New("mail delivery failed")
)

// Mailer sends messages through the configured SMTP relay. It is constructed
// once at startup and is read-only afterwards, so it is safe for concurrent
// use across request handlers.
type Mailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// NewMailer creates a mailer from SMTP configuration.
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// Configured reports whether the relay settings are complete.
func (m *Mailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.User != "" && m.cfg.Password != ""
}

// send delivers one HTML message. Port 465 speaks implicit TLS; other ports
// use net/smtp's STARTTLS path.
func (m *Mailer) send(from, to, subject, htmlBody string) error {
	if !m.Configured() {
		m.logger.Error("smtp relay settings incomplete", zap.String("host", m.cfg.Host))
		return ErrNotConfigured
	}

	msg := []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		htmlBody + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)

	var err error
	if m.cfg.Port == 465 {
		err = m.sendImplicitTLS(auth, to, msg)
	} else {
		err = smtp.SendMail(m.cfg.Addr(), auth, m.cfg.From(), []string{to}, msg)
	}
	if err != nil {
		m.logger.Error("mail delivery failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return ErrDeliveryFailed
	}
	return nil
}

// sendImplicitTLS dials a TLS connection first (SMTPS), then runs the SMTP
// conversation over it.
func (m *Mailer) sendImplicitTLS(auth smtp.Auth, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", m.cfg.Addr(), &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return fmt.Errorf("dial smtps: %w", err)
	}
	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(m.cfg.From()); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return client.Quit()
}
