package dto

type MembershipInfoResponse struct {
	Price    int      `json:"price"`
	Interval string   `json:"interval"`
	Currency string   `json:"currency"`
	Benefits []string `json:"benefits"`
}

type MembershipStatusResponse struct {
	Status         string `json:"status"`
	SubscriptionID string `json:"subscriptionId,omitempty"`
	ExpiresAt      string `json:"expiresAt,omitempty"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}
