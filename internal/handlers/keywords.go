package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"mindline/internal/catalog"
	"mindline/internal/db"
	"mindline/internal/models"
	"mindline/internal/validation"
)

// KeywordHandler handles keyword rule CRUD operations via JSON API.
type KeywordHandler struct {
	db      *db.DB
	catalog *catalog.Catalog
}

// NewKeywordHandler creates a new keyword handler.
func NewKeywordHandler(database *db.DB, cat *catalog.Catalog) *KeywordHandler {
	return &KeywordHandler{db: database, catalog: cat}
}

// List returns an institution's keyword rules. By default only active rules;
// ?all=true includes deactivated ones.
func (h *KeywordHandler) List(c fiber.Ctx) error {
	institutionID, err := uuid.Parse(c.Query("institution", ""))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid institution id")
	}

	var rules []models.KeywordRule
	if c.Query("all", "") == "true" {
		rules, err = h.db.ListRules(c.Context(), institutionID)
	} else {
		rules, err = h.db.ListActiveRules(c.Context(), institutionID)
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch keyword rules")
	}

	return jsonSuccess(c, rules)
}

// Create adds a keyword rule to an institution's catalog.
func (h *KeywordHandler) Create(c fiber.Ctx) error {
	var body struct {
		InstitutionID string  `json:"institution_id"`
		Phrase        string  `json:"phrase"`
		Category      string  `json:"category"`
		Weight        int     `json:"weight"`
		OwnerID       *string `json:"owner_id"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	institutionID, err := uuid.Parse(body.InstitutionID)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid institution id")
	}

	phrase := validation.NormalizePhrase(body.Phrase)
	if valid, msg := validation.ValidatePhrase(phrase); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if valid, msg := validation.ValidateCategory(body.Category); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if valid, msg := validation.ValidateWeight(body.Weight); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	rule := &models.KeywordRule{
		InstitutionID: institutionID,
		Phrase:        phrase,
		Category:      body.Category,
		Weight:        body.Weight,
	}
	if body.OwnerID != nil && *body.OwnerID != "" {
		ownerID, err := uuid.Parse(*body.OwnerID)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid owner id")
		}
		rule.OwnerID = &ownerID
	}

	if err := h.db.CreateRule(c.Context(), rule); err != nil {
		if errors.Is(err, db.ErrDuplicateRule) {
			return jsonError(c, fiber.StatusConflict, err.Error())
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to create keyword rule")
	}

	h.catalog.Invalidate(institutionID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   rule,
	})
}

// UpdateWeight changes a rule's severity weight.
func (h *KeywordHandler) UpdateWeight(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid rule id")
	}

	var body struct {
		Weight int `json:"weight"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if valid, msg := validation.ValidateWeight(body.Weight); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	rule, err := h.db.UpdateRuleWeight(c.Context(), id, body.Weight)
	if err != nil {
		if errors.Is(err, db.ErrRuleNotFound) {
			return jsonError(c, fiber.StatusNotFound, "keyword rule not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update keyword rule")
	}

	h.catalog.Invalidate(rule.InstitutionID)

	return jsonSuccess(c, rule)
}

// Deactivate retires a rule from matching. The row is kept so historical
// assessments stay interpretable.
func (h *KeywordHandler) Deactivate(c fiber.Ctx) error {
	return h.setActive(c, false)
}

// Activate restores a previously deactivated rule.
func (h *KeywordHandler) Activate(c fiber.Ctx) error {
	return h.setActive(c, true)
}

func (h *KeywordHandler) setActive(c fiber.Ctx, active bool) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid rule id")
	}

	rule, err := h.db.SetRuleActive(c.Context(), id, active)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrRuleNotFound):
			return jsonError(c, fiber.StatusNotFound, "keyword rule not found")
		case errors.Is(err, db.ErrDuplicateRule):
			return jsonError(c, fiber.StatusConflict, err.Error())
		default:
			return jsonError(c, fiber.StatusInternalServerError, "failed to update keyword rule")
		}
	}

	h.catalog.Invalidate(rule.InstitutionID)

	return jsonSuccess(c, rule)
}
