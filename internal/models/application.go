package models

import "time"

// Application review states. Transitions out of pending happen in an external
// admin process.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// Application is the membership application document, keyed by email. At most
// one application exists per email.
type Application struct {
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role,omitempty"`
	Company     string    `json:"company,omitempty"`
	Experience  string    `json:"experience"`
	WarStory    string    `json:"warStory"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}
