package models

import "time"

// Membership lifecycle states. Transitions are driven by Stripe webhook
// events; "pending" is reserved for the application-review flow.
const (
	MembershipNone    = "none"
	MembershipPending = "pending"
	MembershipActive  = "active"
	MembershipExpired = "expired"
)

// User is the document stored in the users collection, keyed by email. A
// record may carry a password hash, one or more OAuth provider ids, or both,
// but always exactly one canonical email.
type User struct {
	Email        string `json:"email"`
	UserID       string `json:"userId"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
	Company      string `json:"company,omitempty"`

	AuthProvider string `json:"authProvider,omitempty"`
	GoogleID     string `json:"googleId,omitempty"`
	DiscordID    string `json:"discordId,omitempty"`
	GithubID     string `json:"githubId,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`

	StripeCustomerID     string     `json:"stripeCustomerId,omitempty"`
	StripeSubscriptionID string     `json:"stripeSubscriptionId,omitempty"`
	MembershipStatus     string     `json:"membershipStatus"`
	MembershipExpiresAt  *time.Time `json:"membershipExpiresAt,omitempty"`
}

// Sanitized returns the public projection of the user, with the password hash
// stripped.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
