package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"mindline/internal/models"
)

// ruleColumns is the standard column list for keyword rule queries.
const ruleColumns = `id, institution_id, phrase, symptom_category, weight, owner_id, active, created_at, updated_at`

// scanRule scans a row into a KeywordRule struct.
func scanRule(row pgx.Row) (*models.KeywordRule, error) {
	var rule models.KeywordRule
	err := row.Scan(
		&rule.ID,
		&rule.InstitutionID,
		&rule.Phrase,
		&rule.Category,
		&rule.Weight,
		&rule.OwnerID,
		&rule.Active,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// scanRules scans multiple rows into a slice of KeywordRules.
func scanRules(rows pgx.Rows) ([]models.KeywordRule, error) {
	defer rows.Close()

	var rules []models.KeywordRule
	for rows.Next() {
		var rule models.KeywordRule
		if err := rows.Scan(
			&rule.ID,
			&rule.InstitutionID,
			&rule.Phrase,
			&rule.Category,
			&rule.Weight,
			&rule.OwnerID,
			&rule.Active,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

// ListActiveRules returns the active keyword rules for an institution,
// ordered for deterministic matching.
func (d *DB) ListActiveRules(ctx context.Context, institutionID uuid.UUID) ([]models.KeywordRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM keyword_rules
		WHERE institution_id = $1 AND active = true
		ORDER BY phrase, symptom_category
	`

	rows, err := d.Pool.Query(ctx, query, institutionID)
	if err != nil {
		return nil, err
	}

	return scanRules(rows)
}

// ListRules returns all keyword rules for an institution, active or not.
func (d *DB) ListRules(ctx context.Context, institutionID uuid.UUID) ([]models.KeywordRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM keyword_rules
		WHERE institution_id = $1
		ORDER BY phrase, symptom_category
	`

	rows, err := d.Pool.Query(ctx, query, institutionID)
	if err != nil {
		return nil, err
	}

	return scanRules(rows)
}

// GetRule fetches a single keyword rule by id.
func (d *DB) GetRule(ctx context.Context, id uuid.UUID) (*models.KeywordRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM keyword_rules WHERE id = $1`
	return scanRule(d.Pool.QueryRow(ctx, query, id))
}

// CreateRule inserts a new keyword rule. The phrase must already be
// normalized by the caller.
func (d *DB) CreateRule(ctx context.Context, rule *models.KeywordRule) error {
	query := `
		INSERT INTO keyword_rules (institution_id, phrase, symptom_category, weight, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, active, created_at, updated_at
	`

	err := d.Pool.QueryRow(ctx, query,
		rule.InstitutionID,
		rule.Phrase,
		rule.Category,
		rule.Weight,
		rule.OwnerID,
	).Scan(&rule.ID, &rule.Active, &rule.CreatedAt, &rule.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateRule
		}
		return err
	}

	return nil
}

// UpdateRuleWeight changes the severity weight of an existing rule.
func (d *DB) UpdateRuleWeight(ctx context.Context, id uuid.UUID, weight int) (*models.KeywordRule, error) {
	query := `
		UPDATE keyword_rules
		SET weight = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + ruleColumns

	return scanRule(d.Pool.QueryRow(ctx, query, id, weight))
}

// SetRuleActive activates or deactivates a rule. Deactivation is the
// supported removal path so past assessments keep their reference.
func (d *DB) SetRuleActive(ctx context.Context, id uuid.UUID, active bool) (*models.KeywordRule, error) {
	query := `
		UPDATE keyword_rules
		SET active = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + ruleColumns

	rule, err := scanRule(d.Pool.QueryRow(ctx, query, id, active))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateRule
		}
		return nil, err
	}
	return rule, nil
}
