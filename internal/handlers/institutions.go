package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"mindline/internal/db"
)

// InstitutionHandler resolves institution slugs for API callers.
type InstitutionHandler struct {
	db *db.DB
}

// NewInstitutionHandler creates a new institution handler.
func NewInstitutionHandler(database *db.DB) *InstitutionHandler {
	return &InstitutionHandler{db: database}
}

// GetBySlug resolves an institution slug to its record. The conversation
// handler uses this to turn a configured slug into the scope id it sends
// to the analyze endpoint.
func (h *InstitutionHandler) GetBySlug(c fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return jsonError(c, fiber.StatusBadRequest, "slug is required")
	}

	inst, err := h.db.GetInstitutionBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, db.ErrInstitutionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "institution not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch institution")
	}

	return jsonSuccess(c, inst)
}
