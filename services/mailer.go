package services

import (
	"context"
	"fmt"

	"github.com/jalencar/clean-blog/config"
	"github.com/jalencar/clean-blog/errs"
	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

// ContactMessage is one contact-form submission. All four fields are
// required by the form layer before a message is built.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Body renders the plaintext email body relayed to the blog owner.
func (m ContactMessage) Body() string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nMessage: %s\n",
		m.Name, m.Email, m.Phone, m.Message)
}

// Mailer is the outbound-mail capability injected into the contact
// handler, so the handler is testable without a real SMTP server.
type Mailer interface {
	Send(ctx context.Context, msg ContactMessage) error
}

// SMTPMailer relays contact messages over an authenticated STARTTLS
// session, one session per submission. Configuration comes from the
// environment:
//
//   - MAIL_USERNAME / MAIL_PASSWORD: SMTP credentials (also the sender)
//   - MAIL_HOST / MAIL_PORT:         server, default smtp.gmail.com:587
//   - CONTACT_RECIPIENT:             fixed recipient of every relay
//   - MAIL_TIMEOUT_SECONDS:          dial/send timeout, default 15
type SMTPMailer struct {
	client    *mail.Client
	sender    string
	recipient string
}

func NewSMTPMailer(cfg map[string]string) (*SMTPMailer, error) {
	username := config.GetString(cfg, "MAIL_USERNAME", "")
	password := config.GetString(cfg, "MAIL_PASSWORD", "")
	if username == "" || password == "" {
		return nil, fmt.Errorf("MAIL_USERNAME and MAIL_PASSWORD are required")
	}

	recipient := config.GetString(cfg, "CONTACT_RECIPIENT", "")
	if recipient == "" {
		return nil, fmt.Errorf("CONTACT_RECIPIENT is required")
	}

	host := config.GetString(cfg, "MAIL_HOST", "smtp.gmail.com")
	port := config.GetInt(cfg, "MAIL_PORT", 587)
	timeout := config.GetSeconds(cfg, "MAIL_TIMEOUT_SECONDS", 15)

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build SMTP client: %w", err)
	}

	return &SMTPMailer{
		client:    client,
		sender:    username,
		recipient: recipient,
	}, nil
}

// Send delivers one plaintext message to the fixed recipient. The call is
// synchronous; a transport failure comes back as a typed delivery error
// the contact page can show.
func (s *SMTPMailer) Send(ctx context.Context, msg ContactMessage) error {
	m := mail.NewMsg()
	if err := m.From(s.sender); err != nil {
		return errs.NewMailDeliveryError(err)
	}
	if err := m.To(s.recipient); err != nil {
		return errs.NewMailDeliveryError(err)
	}
	m.Subject("New blog message")
	m.SetBodyString(mail.TypeTextPlain, msg.Body())

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		log.Error().Err(err).Str("recipient", s.recipient).Msg("Failed to relay contact message")
		return errs.NewMailDeliveryError(err)
	}

	log.Info().Str("recipient", s.recipient).Msg("Relayed contact message")
	return nil
}
