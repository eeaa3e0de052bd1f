package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aiopscouncil/council-backend/internal/billing"
	"github.com/aiopscouncil/council-backend/internal/config"
	"github.com/aiopscouncil/council-backend/internal/events"
	"github.com/aiopscouncil/council-backend/internal/models"
	"github.com/aiopscouncil/council-backend/internal/store"
	"github.com/stripe/stripe-go/v78"
)

// SubscriptionService applies membership state transitions driven by verified
// Stripe events. Events not tagged with our source are skipped silently:
// the Stripe account is shared with unrelated integrations.
type SubscriptionService struct {
	store      store.Store
	billing    billing.Provider
	dispatcher events.Dispatcher
	sourceTag  string
}

func NewSubscriptionService(st store.Store, provider billing.Provider, dispatcher events.Dispatcher) *SubscriptionService {
	return &SubscriptionService{
		store:      st,
		billing:    provider,
		dispatcher: dispatcher,
		sourceTag:  config.SourceTag,
	}
}

// HandleEvent processes one verified event. A returned error means the
// provider should redeliver; unknown event types are accepted and ignored.
func (s *SubscriptionService) HandleEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.updated":
		return s.handleSubscriptionUpdated(ctx, event)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(ctx, event)
	case "invoice.payment_failed":
		return s.handlePaymentFailed(ctx, event)
	default:
		return nil
	}
}

func (s *SubscriptionService) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("failed to parse checkout session: %w", err)
	}
	if session.Metadata["source"] != s.sourceTag {
		return nil
	}
	email := session.Metadata["email"]
	if email == "" {
		return nil
	}

	subscriptionID := ""
	if session.Subscription != nil {
		subscriptionID = session.Subscription.ID
	}

	if err := s.store.Update(ctx, config.UsersCollection, email, store.Fields{
		"membershipStatus":     models.MembershipActive,
		"stripeSubscriptionId": subscriptionID,
	}); err != nil {
		return fmt.Errorf("checkout completed for %s: %w", email, err)
	}

	slog.Info("membership activated", "email", email, "subscription_id", subscriptionID)
	s.dispatcher.Publish(events.Event{Type: events.EventMembershipActivated, Email: email})
	return nil
}

func (s *SubscriptionService) handleSubscriptionUpdated(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to parse subscription: %w", err)
	}
	if sub.Metadata["source"] != s.sourceTag {
		return nil
	}
	email := sub.Metadata["email"]
	if email == "" {
		return nil
	}

	status := models.MembershipExpired
	if sub.Status == stripe.SubscriptionStatusActive {
		status = models.MembershipActive
	}
	expiresAt := time.Unix(sub.CurrentPeriodEnd, 0).UTC()

	if err := s.store.Update(ctx, config.UsersCollection, email, store.Fields{
		"membershipStatus":    status,
		"membershipExpiresAt": expiresAt,
	}); err != nil {
		return fmt.Errorf("subscription updated for %s: %w", email, err)
	}

	slog.Info("membership status updated", "email", email, "status", status)
	return nil
}

func (s *SubscriptionService) handleSubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to parse subscription: %w", err)
	}
	if sub.Metadata["source"] != s.sourceTag {
		return nil
	}
	email := sub.Metadata["email"]
	if email == "" {
		return nil
	}

	if err := s.store.Update(ctx, config.UsersCollection, email, store.Fields{
		"membershipStatus": models.MembershipExpired,
	}); err != nil {
		return fmt.Errorf("subscription deleted for %s: %w", email, err)
	}

	slog.Info("membership expired", "email", email)
	return nil
}

// handlePaymentFailed needs a secondary lookup: the invoice carries no
// metadata of ours, only the subscription it bills does.
func (s *SubscriptionService) handlePaymentFailed(ctx context.Context, event stripe.Event) error {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return fmt.Errorf("failed to parse invoice: %w", err)
	}
	if invoice.Subscription == nil || invoice.Subscription.ID == "" {
		return nil
	}

	sub, err := s.billing.GetSubscription(ctx, invoice.Subscription.ID)
	if err != nil {
		return fmt.Errorf("payment failed lookup: %w", err)
	}
	if sub.Metadata["source"] != s.sourceTag {
		return nil
	}
	email := sub.Metadata["email"]
	if email == "" {
		return nil
	}

	slog.Warn("membership payment failed", "email", email, "subscription_id", sub.ID)
	s.dispatcher.Publish(events.Event{Type: events.EventPaymentFailed, Email: email})
	return nil
}
