package handlers

import (
	"github.com/gofiber/fiber/v3"

	"mindline/internal/config"
	"mindline/internal/db"
)

// StatusHandler reports service liveness and readiness.
type StatusHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(database *db.DB, cfg *config.Config) *StatusHandler {
	return &StatusHandler{db: database, cfg: cfg}
}

// Healthz reports whether the service can reach its database. The contextual
// provider is deliberately excluded: the engine degrades without it, so its
// state never makes the service unhealthy.
func (h *StatusHandler) Healthz(c fiber.Ctx) error {
	if err := h.db.Pool.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"database": "unreachable",
		})
	}

	return c.JSON(fiber.Map{
		"status":     "healthy",
		"database":   "ok",
		"contextual": h.cfg.IsContextualEnabled(),
	})
}
