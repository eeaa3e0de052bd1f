package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aiopscouncil/council-backend/internal/billing"
	"github.com/aiopscouncil/council-backend/internal/config"
	"github.com/aiopscouncil/council-backend/internal/models"
	"github.com/aiopscouncil/council-backend/internal/store"
)

// fakeBilling implements billing.Provider with overridable functions.
type fakeBilling struct {
	createCustomerFunc  func(ctx context.Context, email, name string, metadata map[string]string) (string, error)
	createCheckoutFunc  func(ctx context.Context, customerID string, metadata map[string]string) (string, error)
	createPortalFunc    func(ctx context.Context, customerID string) (string, error)
	getSubscriptionFunc func(ctx context.Context, id string) (*billing.Subscription, error)

	customersCreated int
}

func (f *fakeBilling) CreateCustomer(ctx context.Context, email, name string, metadata map[string]string) (string, error) {
	f.customersCreated++
	if f.createCustomerFunc != nil {
		return f.createCustomerFunc(ctx, email, name, metadata)
	}
	return "cus_test", nil
}

func (f *fakeBilling) CreateCheckoutSession(ctx context.Context, customerID string, metadata map[string]string) (string, error) {
	if f.createCheckoutFunc != nil {
		return f.createCheckoutFunc(ctx, customerID, metadata)
	}
	return "https://checkout.example.com/session", nil
}

func (f *fakeBilling) CreatePortalSession(ctx context.Context, customerID string) (string, error) {
	if f.createPortalFunc != nil {
		return f.createPortalFunc(ctx, customerID)
	}
	return "https://billing.example.com/portal", nil
}

func (f *fakeBilling) GetSubscription(ctx context.Context, id string) (*billing.Subscription, error) {
	if f.getSubscriptionFunc != nil {
		return f.getSubscriptionFunc(ctx, id)
	}
	return &billing.Subscription{ID: id}, nil
}

func seedUser(t *testing.T, st store.Store, user models.User) {
	t.Helper()
	if err := st.Put(context.Background(), config.UsersCollection, user.Email, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestInfoReturnsFixedPricing(t *testing.T) {
	svc := NewMembershipService(store.NewMemory(), &fakeBilling{})

	info := svc.Info()
	if info.Price != 500 || info.Interval != "year" || info.Currency != "usd" {
		t.Errorf("pricing = %d/%s/%s, want 500/year/usd", info.Price, info.Interval, info.Currency)
	}
	if len(info.Benefits) != 6 {
		t.Errorf("got %d benefits, want 6", len(info.Benefits))
	}
}

func TestStatusDefaultsToNone(t *testing.T) {
	st := store.NewMemory()
	svc := NewMembershipService(st, &fakeBilling{})
	seedUser(t, st, models.User{Email: "alice@example.com", UserID: "u-1"})

	status, err := svc.Status(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Status != models.MembershipNone {
		t.Errorf("status = %q, want %q", status.Status, models.MembershipNone)
	}
}

func TestStatusIncludesExpiry(t *testing.T) {
	st := store.NewMemory()
	svc := NewMembershipService(st, &fakeBilling{})
	expires := time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)
	seedUser(t, st, models.User{
		Email:                "alice@example.com",
		UserID:               "u-1",
		MembershipStatus:     models.MembershipActive,
		StripeSubscriptionID: "sub_123",
		MembershipExpiresAt:  &expires,
	})

	status, err := svc.Status(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Status != models.MembershipActive {
		t.Errorf("status = %q", status.Status)
	}
	if status.SubscriptionID != "sub_123" {
		t.Errorf("subscriptionId = %q", status.SubscriptionID)
	}
	if status.ExpiresAt != "2027-01-15T00:00:00Z" {
		t.Errorf("expiresAt = %q", status.ExpiresAt)
	}
}

func TestCheckoutProvisionsCustomerOnce(t *testing.T) {
	st := store.NewMemory()
	fb := &fakeBilling{}
	svc := NewMembershipService(st, fb)
	ctx := context.Background()
	seedUser(t, st, models.User{Email: "alice@example.com", UserID: "u-1", Name: "Alice"})

	url, err := svc.Checkout(ctx, "u-1", "alice@example.com")
	if err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	if url == "" {
		t.Error("expected a checkout URL")
	}

	var user models.User
	if err := st.Get(ctx, config.UsersCollection, "alice@example.com", &user); err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.StripeCustomerID != "cus_test" {
		t.Errorf("stripeCustomerId = %q, want cus_test", user.StripeCustomerID)
	}

	// A retried checkout reuses the persisted customer.
	if _, err := svc.Checkout(ctx, "u-1", "alice@example.com"); err != nil {
		t.Fatalf("second checkout: %v", err)
	}
	if fb.customersCreated != 1 {
		t.Errorf("created %d customers, want 1", fb.customersCreated)
	}
}

func TestCheckoutCarriesSourceMetadata(t *testing.T) {
	st := store.NewMemory()
	var sessionMetadata map[string]string
	fb := &fakeBilling{
		createCheckoutFunc: func(_ context.Context, _ string, metadata map[string]string) (string, error) {
			sessionMetadata = metadata
			return "https://checkout.example.com/session", nil
		},
	}
	svc := NewMembershipService(st, fb)
	seedUser(t, st, models.User{Email: "alice@example.com", UserID: "u-1", Name: "Alice"})

	if _, err := svc.Checkout(context.Background(), "u-1", "alice@example.com"); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if sessionMetadata["source"] != config.SourceTag {
		t.Errorf("source = %q, want %q", sessionMetadata["source"], config.SourceTag)
	}
	if sessionMetadata["userId"] != "u-1" || sessionMetadata["email"] != "alice@example.com" {
		t.Errorf("metadata = %v", sessionMetadata)
	}
}

func TestCheckoutRejectsActiveMember(t *testing.T) {
	st := store.NewMemory()
	svc := NewMembershipService(st, &fakeBilling{})
	seedUser(t, st, models.User{Email: "alice@example.com", UserID: "u-1", MembershipStatus: models.MembershipActive})

	if _, err := svc.Checkout(context.Background(), "u-1", "alice@example.com"); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("expected ErrAlreadyActive, got %v", err)
	}
}

func TestCheckoutUnknownUser(t *testing.T) {
	svc := NewMembershipService(store.NewMemory(), &fakeBilling{})
	if _, err := svc.Checkout(context.Background(), "u-1", "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPortalRequiresBillingAccount(t *testing.T) {
	st := store.NewMemory()
	svc := NewMembershipService(st, &fakeBilling{})
	ctx := context.Background()

	if _, err := svc.Portal(ctx, "nobody@example.com"); !errors.Is(err, ErrNoBillingAccount) {
		t.Fatalf("missing user: expected ErrNoBillingAccount, got %v", err)
	}

	seedUser(t, st, models.User{Email: "alice@example.com", UserID: "u-1"})
	if _, err := svc.Portal(ctx, "alice@example.com"); !errors.Is(err, ErrNoBillingAccount) {
		t.Fatalf("no customer id: expected ErrNoBillingAccount, got %v", err)
	}

	seedUser(t, st, models.User{Email: "bob@example.com", UserID: "u-2", StripeCustomerID: "cus_9"})
	url, err := svc.Portal(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("portal: %v", err)
	}
	if url == "" {
		t.Error("expected a portal URL")
	}
}
