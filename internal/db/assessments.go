package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mindline/internal/models"
)

// InsertAssessment persists one assessment. The record is append-only;
// nothing updates an assessment after this insert.
func (d *DB) InsertAssessment(ctx context.Context, a *models.RiskAssessment) error {
	keywords, err := json.Marshal(a.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}
	indicators, err := json.Marshal(a.Indicators)
	if err != nil {
		return fmt.Errorf("failed to encode indicators: %w", err)
	}
	var contextual []byte
	if a.Contextual != nil {
		contextual, err = json.Marshal(a.Contextual)
		if err != nil {
			return fmt.Errorf("failed to encode contextual assessment: %w", err)
		}
	}
	appointment, err := json.Marshal(a.Appointment)
	if err != nil {
		return fmt.Errorf("failed to encode appointment: %w", err)
	}

	query := `
		INSERT INTO assessments (
			patient_id, institution_id, level, score, detected_keywords,
			indicators, contextual, tone, appointment, summary, degraded, outcome
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	return d.Pool.QueryRow(ctx, query,
		a.PatientID,
		a.InstitutionID,
		a.Level.String(),
		a.Score,
		keywords,
		indicators,
		contextual,
		a.Tone.String(),
		appointment,
		a.Summary,
		a.Degraded,
		a.Outcome(),
	).Scan(&a.ID, &a.CreatedAt)
}

// ListPatientAssessments returns a patient's most recent assessments,
// newest first.
func (d *DB) ListPatientAssessments(ctx context.Context, patientID uuid.UUID, limit int) ([]models.RiskAssessment, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, patient_id, institution_id, level, score, detected_keywords,
			indicators, contextual, tone, appointment, summary, degraded, created_at
		FROM assessments
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := d.Pool.Query(ctx, query, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RiskAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}

	return out, rows.Err()
}

func scanAssessment(row pgx.Row) (*models.RiskAssessment, error) {
	var (
		a           models.RiskAssessment
		level, tone string
		keywords    []byte
		indicators  []byte
		contextual  []byte
		appointment []byte
	)

	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.InstitutionID,
		&level,
		&a.Score,
		&keywords,
		&indicators,
		&contextual,
		&tone,
		&appointment,
		&a.Summary,
		&a.Degraded,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Level, _ = models.ParseRiskLevel(level)
	a.Tone, _ = models.ParseRiskLevel(tone)

	if err := json.Unmarshal(keywords, &a.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords: %w", err)
	}
	if err := json.Unmarshal(indicators, &a.Indicators); err != nil {
		return nil, fmt.Errorf("failed to decode indicators: %w", err)
	}
	if len(contextual) > 0 {
		a.Contextual = &models.ContextualAssessment{}
		if err := json.Unmarshal(contextual, a.Contextual); err != nil {
			return nil, fmt.Errorf("failed to decode contextual assessment: %w", err)
		}
	}
	if err := json.Unmarshal(appointment, &a.Appointment); err != nil {
		return nil, fmt.Errorf("failed to decode appointment: %w", err)
	}

	return &a, nil
}
