// Package mail sends transactional email. Sends are always best-effort:
// callers log failures and never surface them to the request that triggered
// the notification.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// Message is one outbound email.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ResendMailer sends through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send %q to %v: %w", msg.Subject, msg.To, err)
	}
	return nil
}

// LogMailer is the fallback when no mail API key is configured: it logs the
// send instead of performing it, so local development works without secrets.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	slog.Info("mail send skipped (no mailer configured)", "to", msg.To, "subject", msg.Subject)
	return nil
}

var (
	_ Mailer = (*ResendMailer)(nil)
	_ Mailer = LogMailer{}
)
