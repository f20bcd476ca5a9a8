package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"terra-form/internal/domain"
	"terra-form/internal/mailer"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	ErrInvalidContact = errors.New("invalid contact message")
)

var contactValidator = newContactValidator()

func newContactValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// Mailer delivers contact notifications to the studio inbox
type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, msg mailer.Message) error
}

// ContactService defines the interface for contact form submissions
type ContactService interface {
	// Submit relays msg to the studio. When no relay is configured the
	// message is logged and dropped without error, whatever it contains.
	// Otherwise an incomplete message fails with ErrInvalidContact.
	Submit(ctx context.Context, msg domain.ContactMessage) error
}

type contactService struct {
	mailer Mailer
	logger *zap.Logger
}

// NewContactService creates a new instance of ContactService
func NewContactService(m Mailer, logger *zap.Logger) ContactService {
	return &contactService{mailer: m, logger: logger}
}

func (s *contactService) Submit(ctx context.Context, msg domain.ContactMessage) error {
	if s.mailer == nil || !s.mailer.Enabled() {
		s.logger.Info("Mail relay not configured, skipping contact email",
			zap.String("name", msg.Name),
			zap.String("email", msg.Email),
		)
		return nil
	}

	if err := contactValidator.Struct(msg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContact, err)
	}

	if err := s.mailer.Send(ctx, ContactEmail(msg)); err != nil {
		return fmt.Errorf("failed to relay contact message: %w", err)
	}
	return nil
}

// ContactEmail formats a contact submission as the studio notification.
func ContactEmail(msg domain.ContactMessage) mailer.Message {
	return mailer.Message{
		ReplyTo: msg.Email,
		Subject: "Nowa wiadomość z formularza Terra & Form od: " + msg.Name,
		Body:    fmt.Sprintf("Imię: %s\nEmail: %s\n\nWiadomość:\n%s", msg.Name, msg.Email, msg.Message),
	}
}
