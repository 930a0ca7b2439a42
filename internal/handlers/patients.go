package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"mindline/internal/db"
)

// PatientHandler handles patient risk queries via JSON API.
type PatientHandler struct {
	db *db.DB
}

// NewPatientHandler creates a new patient handler.
func NewPatientHandler(database *db.DB) *PatientHandler {
	return &PatientHandler{db: database}
}

// HighRisk returns an expert's patients currently at elevated risk.
func (h *PatientHandler) HighRisk(c fiber.Ctx) error {
	expertID, err := uuid.Parse(c.Query("expert", ""))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid expert id")
	}

	patients, err := h.db.ListHighRiskPatients(c.Context(), expertID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch high-risk patients")
	}

	return jsonSuccess(c, patients)
}

// Get returns one patient's current risk snapshot.
func (h *PatientHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid patient id")
	}

	patient, err := h.db.GetPatient(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrPatientNotFound) {
			return jsonError(c, fiber.StatusNotFound, "patient not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch patient")
	}

	return jsonSuccess(c, patient)
}

// History returns a patient's assessment history, newest first.
func (h *PatientHandler) History(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid patient id")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	assessments, err := h.db.ListPatientAssessments(c.Context(), id, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch assessment history")
	}

	return jsonSuccess(c, assessments)
}
