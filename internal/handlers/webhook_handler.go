package handlers

import (
	"log/slog"

	"github.com/aiopscouncil/council-backend/internal/dto"
	"github.com/aiopscouncil/council-backend/internal/metrics"
	"github.com/aiopscouncil/council-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v78/webhook"
)

// WebhookHandler verifies Stripe signatures and forwards events to the
// subscription state machine. A handler error maps to 500 so Stripe
// redelivers; that redelivery is the only retry mechanism.
type WebhookHandler struct {
	subscriptions *services.SubscriptionService
	collector     *metrics.Collector
	signingSecret string
}

func NewWebhookHandler(subscriptions *services.SubscriptionService, collector *metrics.Collector, signingSecret string) *WebhookHandler {
	return &WebhookHandler{
		subscriptions: subscriptions,
		collector:     collector,
		signingSecret: signingSecret,
	}
}

func (h *WebhookHandler) HandleStripe(c *fiber.Ctx) error {
	event, err := webhook.ConstructEventWithOptions(
		c.Body(),
		c.Get("Stripe-Signature"),
		h.signingSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		slog.Warn("webhook signature verification failed", "error", err)
		h.collector.RecordWebhookEvent("unknown", "rejected")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Webhook signature verification failed"})
	}

	if err := h.subscriptions.HandleEvent(c.Context(), event); err != nil {
		slog.Error("webhook processing failed", "type", event.Type, "error", err)
		h.collector.RecordWebhookEvent(string(event.Type), "failed")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Webhook processing failed"})
	}

	h.collector.RecordWebhookEvent(string(event.Type), "processed")
	return c.JSON(fiber.Map{"received": true})
}
