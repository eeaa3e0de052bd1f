package events

// EventType enumerates notification events emitted by the services.
type EventType string

const (
	EventApplicationReceived EventType = "application_received"
	EventMembershipActivated EventType = "membership_activated"
	EventPaymentFailed       EventType = "payment_failed"
)

// Event is published after the authoritative state change has committed.
type Event struct {
	Type    EventType
	Email   string
	Payload any
}
