// Package mailer sends alumni notifications over SMTP.
//
// The SMTP settings live in the email_config table and are read on every
// send, so a configuration saved from the admin menu takes effect at once.
// Notifier implements core.Notifier: failures are logged and swallowed.
package mailer

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/JonMunkholm/alumni/internal/core"
	"github.com/JonMunkholm/alumni/internal/logging"
)

// DefaultTimeout bounds one SMTP session.
const DefaultTimeout = 15 * time.Second

// Message is one outgoing plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers one message using the given SMTP configuration.
type Sender interface {
	Send(ctx context.Context, cfg core.EmailConfig, msg Message) error
}

// ConfigSource returns the active SMTP configuration.
type ConfigSource interface {
	EmailConfig(ctx context.Context) (core.EmailConfig, error)
}

/* ---- SMTP ---- */

// SMTPSender sends through an SMTP server, requiring STARTTLS.
type SMTPSender struct {
	Timeout time.Duration
}

// Send implements Sender.
func (s SMTPSender) Send(ctx context.Context, cfg core.EmailConfig, msg Message) error {
	m, err := buildMessage(cfg, msg)
	if err != nil {
		return err
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client, err := gomail.NewClient(cfg.SMTPServer,
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SenderEmail),
		gomail.WithPassword(cfg.SenderPassword),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithTimeout(timeout),
	)
	if err != nil {
		return fmt.Errorf("smtp client %s:%d: %w", cfg.SMTPServer, cfg.SMTPPort, err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send to %s: %w", msg.To, err)
	}
	return nil
}

func buildMessage(cfg core.EmailConfig, msg Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(cfg.SenderEmail); err != nil {
		return nil, fmt.Errorf("sender %q: %w", cfg.SenderEmail, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("recipient %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return m, nil
}

/* ---- Notifier ---- */

// Notifier looks up the SMTP configuration and sends through a Sender.
type Notifier struct {
	source ConfigSource
	sender Sender
}

// NewNotifier creates a Notifier. A nil sender uses SMTPSender.
func NewNotifier(source ConfigSource, sender Sender) *Notifier {
	if sender == nil {
		sender = SMTPSender{}
	}
	return &Notifier{source: source, sender: sender}
}

// Send delivers one message and reports the outcome.
func (n *Notifier) Send(ctx context.Context, to, subject, body string) error {
	cfg, err := n.source.EmailConfig(ctx)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, cfg, Message{To: to, Subject: subject, Body: body})
}

// Notify implements core.Notifier. Errors are logged, never returned.
func (n *Notifier) Notify(ctx context.Context, to, subject, body string) {
	logger := logging.WithFields(ctx, "to", to, "subject", subject)
	if err := n.Send(ctx, to, subject, body); err != nil {
		logger.Error("email not sent", "error", err)
		return
	}
	logger.Info("email sent")
}

var _ core.Notifier = (*Notifier)(nil)
