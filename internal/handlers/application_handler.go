package handlers

import (
	"errors"
	"time"

	"github.com/aiopscouncil/council-backend/internal/dto"
	"github.com/aiopscouncil/council-backend/internal/services"
	"github.com/aiopscouncil/council-backend/internal/store"
	"github.com/gofiber/fiber/v2"
)

type ApplicationHandler struct {
	applications *services.ApplicationService
}

func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	var req dto.ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	if _, err := h.applications.Submit(c.Context(), &req); err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "All fields are required"})
		case errors.Is(err, services.ErrDuplicateApplication):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "You have already submitted an application"})
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to submit application")
		}
	}

	return c.JSON(dto.ApplicationSubmitResponse{
		Success: true,
		Message: "Application submitted successfully",
	})
}

func (h *ApplicationHandler) Status(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Email required"})
	}

	app, err := h.applications.Status(c.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(dto.ApplicationStatusResponse{Status: "not_found"})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check status")
	}

	return c.JSON(dto.ApplicationStatusResponse{
		Status:      app.Status,
		SubmittedAt: app.SubmittedAt.Format(time.RFC3339),
	})
}
