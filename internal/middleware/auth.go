package middleware

import (
	"github.com/aiopscouncil/council-backend/internal/auth"
	"github.com/aiopscouncil/council-backend/internal/config"
	"github.com/aiopscouncil/council-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTProtected rejects requests without a valid bearer session token.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "Invalid token",
			})
		},
	})
}

// CurrentUser extracts the authenticated identity placed in context by
// JWTProtected.
func CurrentUser(c *fiber.Ctx) (*auth.Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, auth.ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return auth.IdentityFromClaims(claims)
}
