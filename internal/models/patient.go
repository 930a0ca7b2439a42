package models

import (
	"time"

	"github.com/google/uuid"
)

// Institution is a catalog scope. Rows are managed by the administrative
// collaborator; the engine only reads them.
type Institution struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Expert is a professional who curates keyword rules and receives risk alerts
// for assigned patients. Managed by the administrative collaborator.
type Expert struct {
	ID            uuid.UUID `json:"id"`
	InstitutionID uuid.UUID `json:"institution_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"created_at"`
}

// Patient carries the rolling risk profile: the last-assessment snapshot is
// overwritten by each new assessment, never merged.
type Patient struct {
	ID            uuid.UUID  `json:"id"`
	InstitutionID uuid.UUID  `json:"institution_id"`
	ExpertID      *uuid.UUID `json:"expert_id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`

	// Last-assessment snapshot
	RiskLevel    RiskLevel  `json:"risk_level"`
	RiskScore    int        `json:"risk_score"`
	AssessedAt   *time.Time `json:"assessed_at"`
	KeywordCount int        `json:"keyword_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
