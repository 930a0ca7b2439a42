package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mindline/internal/models"
)

// GetInstitution fetches one institution by id.
func (d *DB) GetInstitution(ctx context.Context, id uuid.UUID) (*models.Institution, error) {
	query := `SELECT id, name, slug, created_at FROM institutions WHERE id = $1`

	var inst models.Institution
	err := d.Pool.QueryRow(ctx, query, id).Scan(&inst.ID, &inst.Name, &inst.Slug, &inst.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInstitutionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// GetInstitutionBySlug fetches one institution by its slug.
func (d *DB) GetInstitutionBySlug(ctx context.Context, slug string) (*models.Institution, error) {
	query := `SELECT id, name, slug, created_at FROM institutions WHERE slug = $1`

	var inst models.Institution
	err := d.Pool.QueryRow(ctx, query, slug).Scan(&inst.ID, &inst.Name, &inst.Slug, &inst.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInstitutionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inst, nil
}
