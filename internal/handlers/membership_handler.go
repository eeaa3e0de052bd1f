package handlers

import (
	"errors"

	"github.com/aiopscouncil/council-backend/internal/dto"
	"github.com/aiopscouncil/council-backend/internal/middleware"
	"github.com/aiopscouncil/council-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type MembershipHandler struct {
	memberships *services.MembershipService
}

func NewMembershipHandler(memberships *services.MembershipService) *MembershipHandler {
	return &MembershipHandler{memberships: memberships}
}

func (h *MembershipHandler) Info(c *fiber.Ctx) error {
	return c.JSON(h.memberships.Info())
}

func (h *MembershipHandler) Status(c *fiber.Ctx) error {
	ident, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid token"})
	}

	status, err := h.memberships.Status(c.Context(), ident.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "User not found"})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to get membership status")
	}
	return c.JSON(status)
}

func (h *MembershipHandler) Checkout(c *fiber.Ctx) error {
	ident, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid token"})
	}

	url, err := h.memberships.Checkout(c.Context(), ident.UserID, ident.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "User not found"})
		case errors.Is(err, services.ErrAlreadyActive):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Already an active member"})
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create checkout session")
		}
	}
	return c.JSON(dto.CheckoutResponse{URL: url})
}

func (h *MembershipHandler) Portal(c *fiber.Ctx) error {
	ident, err := middleware.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid token"})
	}

	url, err := h.memberships.Portal(c.Context(), ident.Email)
	if err != nil {
		if errors.Is(err, services.ErrNoBillingAccount) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "No billing account found"})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create portal session")
	}
	return c.JSON(dto.CheckoutResponse{URL: url})
}
