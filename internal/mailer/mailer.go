package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"terra-form/internal/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var (
	ErrNotConfigured = errors.New("mail relay is not configured")
)

// Message is a plain-text notification addressed to the studio inbox.
type Message struct {
	ReplyTo string
	Subject string
	Body    string
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer relays messages through an authenticated SMTP server.
type Mailer struct {
	from    string
	to      string
	enabled bool
	dialer  sender
	logger  *zap.Logger
}

// New builds a Mailer from the SMTP settings. The mailer is disabled
// unless both the account user and password are present.
func New(cfg config.MailConfig, logger *zap.Logger) *Mailer {
	to := cfg.AdminEmail
	if to == "" {
		to = cfg.User
	}

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.User, cfg.Password)
	if cfg.InsecureSkipVerify {
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &Mailer{
		from:    cfg.User,
		to:      to,
		enabled: cfg.User != "" && cfg.Password != "",
		dialer:  d,
		logger:  logger,
	}
}

// Enabled reports whether credentials were configured.
func (m *Mailer) Enabled() bool {
	return m != nil && m.enabled
}

// Recipient is the address every message is delivered to.
func (m *Mailer) Recipient() string {
	return m.to
}

// Send delivers msg in a single SMTP session. No retry is attempted.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if !m.Enabled() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(m.build(msg)); err != nil {
		m.logger.Error("Failed to send email",
			zap.String("to", m.to),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("Email sent",
		zap.String("to", m.to),
		zap.String("reply_to", msg.ReplyTo),
	)
	return nil
}

func (m *Mailer) build(msg Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", m.to)
	if msg.ReplyTo != "" {
		gm.SetHeader("Reply-To", msg.ReplyTo)
	}
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)
	return gm
}
