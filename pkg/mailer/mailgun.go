package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"

	"github.com/campus-kit/society-events/internal/config"
)

// Sender delivers email. Satisfied by Mailgun and by test fakes.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	domain string
	apiKey string
	sender string
}

// NewMailgun builds a sender from config.
func NewMailgun(cfg config.MailConfig) *Mailgun {
	return &Mailgun{domain: cfg.Domain, apiKey: cfg.APIKey, sender: cfg.Sender}
}

// Send sends an email via Mailgun. html is optional; if provided it will
// be used as HTML body.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	client := mg.NewMailgun(m.domain, m.apiKey)
	msg := client.NewMessage(m.sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}
