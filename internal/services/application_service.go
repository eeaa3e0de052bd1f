package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aiopscouncil/council-backend/internal/config"
	"github.com/aiopscouncil/council-backend/internal/dto"
	"github.com/aiopscouncil/council-backend/internal/events"
	"github.com/aiopscouncil/council-backend/internal/models"
	"github.com/aiopscouncil/council-backend/internal/store"
)

var ErrDuplicateApplication = errors.New("application already submitted")

// ApplicationService accepts membership applications, one per email.
type ApplicationService struct {
	store      store.Store
	dispatcher events.Dispatcher
}

func NewApplicationService(st store.Store, dispatcher events.Dispatcher) *ApplicationService {
	return &ApplicationService{store: st, dispatcher: dispatcher}
}

// Submit persists the application, then publishes the notification event.
// Email sends never affect the outcome once the record is durably stored.
func (s *ApplicationService) Submit(ctx context.Context, req *dto.ApplicationRequest) (*models.Application, error) {
	if req.Name == "" || req.Email == "" || req.Experience == "" || req.WarStory == "" {
		return nil, fmt.Errorf("%w: name, email, experience, and warStory are required", ErrMissingFields)
	}

	// Existence pre-check, not a conditional write: two concurrent submits
	// for the same email can both pass and the second overwrites the first.
	var existing models.Application
	err := s.store.Get(ctx, config.ApplicationsCollection, req.Email, &existing)
	if err == nil {
		return nil, ErrDuplicateApplication
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}

	app := models.Application{
		Email:       req.Email,
		Name:        req.Name,
		Role:        req.Role,
		Company:     req.Company,
		Experience:  req.Experience,
		WarStory:    req.WarStory,
		Status:      models.ApplicationPending,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.store.Put(ctx, config.ApplicationsCollection, app.Email, app); err != nil {
		return nil, fmt.Errorf("failed to store application: %w", err)
	}

	s.dispatcher.Publish(events.Event{
		Type:    events.EventApplicationReceived,
		Email:   app.Email,
		Payload: app,
	})
	return &app, nil
}

// Status returns store.ErrNotFound when no application exists for the email.
func (s *ApplicationService) Status(ctx context.Context, email string) (*models.Application, error) {
	var app models.Application
	if err := s.store.Get(ctx, config.ApplicationsCollection, email, &app); err != nil {
		return nil, err
	}
	return &app, nil
}
