package events

import (
	"context"
	"testing"
	"time"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(time.Second)

	got := make(chan Event, 2)
	handler := func(_ context.Context, e Event) { got <- e }
	d.Subscribe(EventApplicationReceived, handler)
	d.Subscribe(EventApplicationReceived, handler)

	d.Publish(Event{Type: EventApplicationReceived, Email: "bob@example.com"})

	for i := 0; i < 2; i++ {
		select {
		case e := <-got:
			if e.Email != "bob@example.com" {
				t.Errorf("email = %q", e.Email)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("handler was not invoked")
		}
	}
}

func TestPublishIgnoresOtherEventTypes(t *testing.T) {
	d := NewInMemoryDispatcher(time.Second)

	got := make(chan Event, 1)
	d.Subscribe(EventPaymentFailed, func(_ context.Context, e Event) { got <- e })

	d.Publish(Event{Type: EventMembershipActivated, Email: "bob@example.com"})

	select {
	case <-got:
		t.Fatal("handler for a different event type was invoked")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHandlerContextCarriesDeadline(t *testing.T) {
	d := NewInMemoryDispatcher(time.Minute)

	got := make(chan bool, 1)
	d.Subscribe(EventPaymentFailed, func(ctx context.Context, _ Event) {
		_, ok := ctx.Deadline()
		got <- ok
	})

	d.Publish(Event{Type: EventPaymentFailed})

	select {
	case ok := <-got:
		if !ok {
			t.Error("handler context has no deadline")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}
}
