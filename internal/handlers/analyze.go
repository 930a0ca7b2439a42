package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"mindline/internal/alert"
	"mindline/internal/db"
	"mindline/internal/metrics"
	"mindline/internal/models"
	"mindline/internal/validation"
)

// Analyzer runs the risk analysis pipeline for one message.
type Analyzer interface {
	Analyze(ctx context.Context, text string, scope uuid.UUID) *models.RiskAssessment
}

// AnalyzeHandler handles risk analysis requests.
type AnalyzeHandler struct {
	analyzer Analyzer
	db       *db.DB
	alerts   *alert.Service
	logger   *slog.Logger
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(analyzer Analyzer, database *db.DB, alerts *alert.Service, logger *slog.Logger) *AnalyzeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyzeHandler{analyzer: analyzer, db: database, alerts: alerts, logger: logger}
}

// Analyze assesses one message. The analysis itself cannot fail: collaborator
// or catalog trouble degrades the result rather than erroring. Persistence is
// best-effort so a storage hiccup never swallows a crisis-level result.
func (h *AnalyzeHandler) Analyze(c fiber.Ctx) error {
	var body struct {
		Text          string  `json:"text"`
		InstitutionID string  `json:"institution_id"`
		PatientID     *string `json:"patient_id"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateAnalysisText(body.Text); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	institutionID, err := uuid.Parse(body.InstitutionID)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid institution id")
	}

	var patientID *uuid.UUID
	if body.PatientID != nil && *body.PatientID != "" {
		id, err := uuid.Parse(*body.PatientID)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid patient id")
		}
		patientID = &id
	}

	assessment := h.analyzer.Analyze(c.Context(), body.Text, institutionID)
	assessment.PatientID = patientID

	metrics.RecordAssessment(assessment.Level.String(), assessment.Outcome())

	if err := h.db.InsertAssessment(c.Context(), assessment); err != nil {
		h.logger.Error("failed to persist assessment", "institution", institutionID, "error", err)
	}

	if patientID != nil {
		h.updatePatient(c.Context(), *patientID, assessment)
	}

	return jsonSuccess(c, assessment)
}

// updatePatient refreshes the patient risk snapshot and fires the expert
// alert. Failures are logged; the assessment already happened.
func (h *AnalyzeHandler) updatePatient(ctx context.Context, patientID uuid.UUID, assessment *models.RiskAssessment) {
	if err := h.db.UpdatePatientRisk(ctx, patientID, assessment); err != nil {
		if errors.Is(err, db.ErrPatientNotFound) {
			h.logger.Warn("assessment referenced unknown patient", "patient", patientID)
			return
		}
		h.logger.Error("failed to update patient risk snapshot", "patient", patientID, "error", err)
		return
	}

	if h.alerts == nil || !h.alerts.IsEnabled() || !assessment.Level.IsElevated() {
		return
	}

	patient, err := h.db.GetPatient(ctx, patientID)
	if err != nil {
		h.logger.Error("failed to load patient for alert", "patient", patientID, "error", err)
		return
	}

	go func() {
		alertCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := h.alerts.NotifyElevatedRisk(alertCtx, patient, assessment); err != nil {
			h.logger.Error("failed to send expert alert", "patient", patientID, "error", err)
		}
	}()
}
