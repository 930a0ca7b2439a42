package db

import (
	"context"

	"mindline/internal/models"
)

// IncrementAssessmentCount upserts an assessment count by level and outcome.
func (d *DB) IncrementAssessmentCount(ctx context.Context, level, outcome string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO assessment_counts (level, outcome, count, last_seen_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (level, outcome) DO UPDATE
		SET count = assessment_counts.count + 1, last_seen_at = NOW()
	`, level, outcome)
	return err
}

// GetAllAssessmentCounts returns all assessment count rows for metrics export.
func (d *DB) GetAllAssessmentCounts(ctx context.Context) ([]models.AssessmentCount, error) {
	rows, err := d.Pool.Query(ctx, `SELECT level, outcome, count, last_seen_at FROM assessment_counts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.AssessmentCount
	for rows.Next() {
		var c models.AssessmentCount
		if err := rows.Scan(&c.Level, &c.Outcome, &c.Count, &c.LastSeenAt); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
