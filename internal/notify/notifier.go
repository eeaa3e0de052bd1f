// Package notify turns domain events into email sends. Every send is
// best-effort: a failure is logged and swallowed, never reported back to the
// operation that published the event.
package notify

import (
	"context"
	"log/slog"

	"github.com/aiopscouncil/council-backend/internal/events"
	"github.com/aiopscouncil/council-backend/internal/mail"
	"github.com/aiopscouncil/council-backend/internal/models"
)

type Notifier struct {
	mailer      mail.Mailer
	adminEmails []string
}

func NewNotifier(mailer mail.Mailer, adminEmails []string) *Notifier {
	return &Notifier{mailer: mailer, adminEmails: adminEmails}
}

// RegisterHandlers subscribes the notifier to the events it emails about.
func (n *Notifier) RegisterHandlers(d events.Dispatcher) {
	d.Subscribe(events.EventApplicationReceived, n.handleApplicationReceived)
	d.Subscribe(events.EventMembershipActivated, n.handleMembershipActivated)
	d.Subscribe(events.EventPaymentFailed, n.handlePaymentFailed)
}

func (n *Notifier) handleApplicationReceived(ctx context.Context, event events.Event) {
	app, ok := event.Payload.(models.Application)
	if !ok {
		slog.Error("unexpected payload for application_received", "email", event.Email)
		return
	}
	for _, recipient := range n.adminEmails {
		n.send(ctx, mail.AdminApplicationNotice(app, recipient), "admin application notice")
	}
	n.send(ctx, mail.ApplicantConfirmation(app), "application confirmation")
}

func (n *Notifier) handleMembershipActivated(ctx context.Context, event events.Event) {
	n.send(ctx, mail.Welcome(event.Email), "welcome email")
}

func (n *Notifier) handlePaymentFailed(ctx context.Context, event events.Event) {
	n.send(ctx, mail.PaymentFailed(event.Email), "payment failed email")
}

func (n *Notifier) send(ctx context.Context, msg mail.Message, kind string) {
	if err := n.mailer.Send(ctx, msg); err != nil {
		slog.Error("failed to send "+kind, "to", msg.To, "error", err)
	}
}
