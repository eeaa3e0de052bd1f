package handlers

import (
	"github.com/aiopscouncil/council-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

func Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:  "ok",
		Service: "aiopscouncil-backend",
	})
}
