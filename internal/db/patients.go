package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mindline/internal/models"
)

const patientColumns = `id, institution_id, expert_id, name, email,
	risk_level, risk_score, assessed_at, keyword_count, created_at, updated_at`

func scanPatient(row pgx.Row) (*models.Patient, error) {
	var (
		p     models.Patient
		level string
	)
	err := row.Scan(
		&p.ID,
		&p.InstitutionID,
		&p.ExpertID,
		&p.Name,
		&p.Email,
		&level,
		&p.RiskScore,
		&p.AssessedAt,
		&p.KeywordCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	p.RiskLevel, _ = models.ParseRiskLevel(level)
	return &p, nil
}

// GetPatient fetches one patient by id.
func (d *DB) GetPatient(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`
	return scanPatient(d.Pool.QueryRow(ctx, query, id))
}

// UpdatePatientRisk overwrites a patient's risk snapshot with the outcome of
// the latest assessment. The snapshot is a cache of the newest state; the
// assessments table keeps the history.
func (d *DB) UpdatePatientRisk(ctx context.Context, patientID uuid.UUID, a *models.RiskAssessment) error {
	query := `
		UPDATE patients
		SET risk_level = $2,
			risk_score = $3,
			assessed_at = $4,
			keyword_count = $5,
			updated_at = now()
		WHERE id = $1
	`

	tag, err := d.Pool.Exec(ctx, query,
		patientID,
		a.Level.String(),
		a.Score,
		a.CreatedAt,
		len(a.Keywords),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPatientNotFound
	}
	return nil
}

// ListHighRiskPatients returns an expert's patients at elevated risk,
// most severe and most recent first.
func (d *DB) ListHighRiskPatients(ctx context.Context, expertID uuid.UUID) ([]models.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patients
		WHERE expert_id = $1 AND risk_level IN ('alto', 'critico')
		ORDER BY risk_score DESC, assessed_at DESC NULLS LAST
	`

	rows, err := d.Pool.Query(ctx, query, expertID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patients []models.Patient
	for rows.Next() {
		var (
			p     models.Patient
			level string
		)
		if err := rows.Scan(
			&p.ID,
			&p.InstitutionID,
			&p.ExpertID,
			&p.Name,
			&p.Email,
			&level,
			&p.RiskScore,
			&p.AssessedAt,
			&p.KeywordCount,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.RiskLevel, _ = models.ParseRiskLevel(level)
		patients = append(patients, p)
	}

	return patients, rows.Err()
}

// GetExpert fetches one expert by id.
func (d *DB) GetExpert(ctx context.Context, id uuid.UUID) (*models.Expert, error) {
	query := `SELECT id, institution_id, name, email, created_at FROM experts WHERE id = $1`

	var e models.Expert
	err := d.Pool.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.InstitutionID,
		&e.Name,
		&e.Email,
		&e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExpertNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
