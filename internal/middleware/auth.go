package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// AuthMiddleware validates the static service token presented by the
// conversation handler and the administrative frontend. User-facing
// session auth lives upstream and never reaches this service.
type AuthMiddleware struct {
	token string
}

// NewAuthMiddleware creates a new auth middleware instance. An empty token
// disables authentication, intended for local development only.
func NewAuthMiddleware(token string) *AuthMiddleware {
	return &AuthMiddleware{token: token}
}

// RequireToken ensures the request carries the configured bearer token.
func (m *AuthMiddleware) RequireToken(c fiber.Ctx) error {
	if m.token == "" {
		return c.Next()
	}

	header := c.Get("Authorization")
	presented, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error":  "missing bearer token",
		})
	}

	if subtle.ConstantTimeCompare([]byte(presented), []byte(m.token)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error":  "invalid token",
		})
	}

	return c.Next()
}
