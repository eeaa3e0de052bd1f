// Package billing wraps the payment provider behind the narrow surface the
// membership flow needs: customer provisioning, hosted checkout and portal
// sessions, and subscription lookup for webhook processing.
package billing

import (
	"context"
	"time"
)

// Subscription is the provider-side subscription state relevant to membership.
type Subscription struct {
	ID               string
	Status           string
	CurrentPeriodEnd time.Time
	Metadata         map[string]string
}

type Provider interface {
	// CreateCustomer returns the provider's customer id.
	CreateCustomer(ctx context.Context, email, name string, metadata map[string]string) (string, error)
	// CreateCheckoutSession returns the hosted checkout URL for the
	// membership price, tagging session and subscription metadata.
	CreateCheckoutSession(ctx context.Context, customerID string, metadata map[string]string) (string, error)
	// CreatePortalSession returns the self-service billing portal URL.
	CreatePortalSession(ctx context.Context, customerID string) (string, error)
	GetSubscription(ctx context.Context, id string) (*Subscription, error)
}
