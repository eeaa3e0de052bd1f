package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aiopscouncil/council-backend/internal/dto"
	"github.com/aiopscouncil/council-backend/internal/events"
	"github.com/aiopscouncil/council-backend/internal/models"
	"github.com/aiopscouncil/council-backend/internal/store"
)

// recordingDispatcher captures published events synchronously.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(event events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.Handler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

func validApplication() *dto.ApplicationRequest {
	return &dto.ApplicationRequest{
		Email:      "bob@example.com",
		Name:       "Bob",
		Role:       "Platform Engineer",
		Company:    "ExampleCorp",
		Experience: "8 years running inference fleets",
		WarStory:   "Recovered a sharded queue during a region failover",
	}
}

func TestSubmitStoresApplicationAndNotifies(t *testing.T) {
	st := store.NewMemory()
	dispatcher := &recordingDispatcher{}
	svc := NewApplicationService(st, dispatcher)

	app, err := svc.Submit(context.Background(), validApplication())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if app.Status != models.ApplicationPending {
		t.Errorf("status = %q, want %q", app.Status, models.ApplicationPending)
	}
	if app.SubmittedAt.IsZero() {
		t.Error("submittedAt not set")
	}

	got := dispatcher.published()
	if len(got) != 1 {
		t.Fatalf("published %d events, want 1", len(got))
	}
	if got[0].Type != events.EventApplicationReceived {
		t.Errorf("event type = %q, want %q", got[0].Type, events.EventApplicationReceived)
	}
	if got[0].Email != "bob@example.com" {
		t.Errorf("event email = %q", got[0].Email)
	}
}

func TestSubmitValidatesRequiredFields(t *testing.T) {
	svc := NewApplicationService(store.NewMemory(), &recordingDispatcher{})

	tests := []struct {
		name   string
		mutate func(*dto.ApplicationRequest)
	}{
		{"missing name", func(r *dto.ApplicationRequest) { r.Name = "" }},
		{"missing email", func(r *dto.ApplicationRequest) { r.Email = "" }},
		{"missing experience", func(r *dto.ApplicationRequest) { r.Experience = "" }},
		{"missing war story", func(r *dto.ApplicationRequest) { r.WarStory = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validApplication()
			tt.mutate(req)
			if _, err := svc.Submit(context.Background(), req); !errors.Is(err, ErrMissingFields) {
				t.Fatalf("expected ErrMissingFields, got %v", err)
			}
		})
	}
}

func TestSubmitDuplicateKeepsFirstApplication(t *testing.T) {
	st := store.NewMemory()
	dispatcher := &recordingDispatcher{}
	svc := NewApplicationService(st, dispatcher)
	ctx := context.Background()

	first, err := svc.Submit(ctx, validApplication())
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}

	second := validApplication()
	second.WarStory = "A different story"
	if _, err := svc.Submit(ctx, second); !errors.Is(err, ErrDuplicateApplication) {
		t.Fatalf("expected ErrDuplicateApplication, got %v", err)
	}

	stored, err := svc.Status(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if stored.WarStory != first.WarStory {
		t.Error("duplicate submit overwrote the original application")
	}
	if !stored.SubmittedAt.Equal(first.SubmittedAt) {
		t.Error("duplicate submit changed submittedAt")
	}
	if got := dispatcher.published(); len(got) != 1 {
		t.Errorf("published %d events, want 1", len(got))
	}
}

func TestStatusUnknownEmail(t *testing.T) {
	svc := NewApplicationService(store.NewMemory(), &recordingDispatcher{})
	if _, err := svc.Status(context.Background(), "nobody@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected store.ErrNotFound, got %v", err)
	}
}
