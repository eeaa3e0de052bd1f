package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aiopscouncil/council-backend/internal/billing"
	"github.com/aiopscouncil/council-backend/internal/config"
	"github.com/aiopscouncil/council-backend/internal/dto"
	"github.com/aiopscouncil/council-backend/internal/models"
	"github.com/aiopscouncil/council-backend/internal/store"
)

var (
	ErrAlreadyActive    = errors.New("already an active member")
	ErrNoBillingAccount = errors.New("no billing account found")
)

// MembershipService drives the checkout and billing-portal flows.
type MembershipService struct {
	store   store.Store
	billing billing.Provider
}

func NewMembershipService(st store.Store, provider billing.Provider) *MembershipService {
	return &MembershipService{store: st, billing: provider}
}

// Info returns the static pricing and benefits payload.
func (s *MembershipService) Info() dto.MembershipInfoResponse {
	return dto.MembershipInfoResponse{
		Price:    500,
		Interval: "year",
		Currency: "usd",
		Benefits: config.MembershipBenefits,
	}
}

func (s *MembershipService) Status(ctx context.Context, email string) (*dto.MembershipStatusResponse, error) {
	var user models.User
	if err := s.store.Get(ctx, config.UsersCollection, email, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	status := user.MembershipStatus
	if status == "" {
		status = models.MembershipNone
	}
	resp := &dto.MembershipStatusResponse{
		Status:         status,
		SubscriptionID: user.StripeSubscriptionID,
	}
	if user.MembershipExpiresAt != nil {
		resp.ExpiresAt = user.MembershipExpiresAt.Format(time.RFC3339)
	}
	return resp, nil
}

// Checkout returns the hosted checkout URL for the caller. Customer
// provisioning is idempotent: the id is persisted before the session is
// created, so a retried checkout reuses the same customer.
func (s *MembershipService) Checkout(ctx context.Context, userID, email string) (string, error) {
	var user models.User
	if err := s.store.Get(ctx, config.UsersCollection, email, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	if user.MembershipStatus == models.MembershipActive {
		return "", ErrAlreadyActive
	}

	customerID := user.StripeCustomerID
	if customerID == "" {
		created, err := s.billing.CreateCustomer(ctx, user.Email, user.Name, map[string]string{
			"userId": userID,
			"source": config.SourceTag,
		})
		if err != nil {
			return "", fmt.Errorf("failed to create billing customer: %w", err)
		}
		customerID = created

		if err := s.store.Update(ctx, config.UsersCollection, user.Email, store.Fields{
			"stripeCustomerId": customerID,
		}); err != nil {
			return "", fmt.Errorf("failed to save billing customer id: %w", err)
		}
	}

	url, err := s.billing.CreateCheckoutSession(ctx, customerID, map[string]string{
		"userId": userID,
		"email":  user.Email,
		"source": config.SourceTag,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return url, nil
}

// Portal returns the self-service billing portal URL for the caller.
func (s *MembershipService) Portal(ctx context.Context, email string) (string, error) {
	var user models.User
	if err := s.store.Get(ctx, config.UsersCollection, email, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNoBillingAccount
		}
		return "", fmt.Errorf("failed to load user: %w", err)
	}
	if user.StripeCustomerID == "" {
		return "", ErrNoBillingAccount
	}

	url, err := s.billing.CreatePortalSession(ctx, user.StripeCustomerID)
	if err != nil {
		return "", fmt.Errorf("failed to create portal session: %w", err)
	}
	return url, nil
}
