package models

import (
	"time"

	"github.com/google/uuid"
)

// Symptom category constants
const (
	SymptomAnxiety    = "anxiety"
	SymptomDepression = "depression"
	SymptomInsomnia   = "insomnia"
	SymptomStress     = "stress"
	SymptomPanic      = "panic"
	SymptomOther      = "other"
)

// SymptomCategories lists all valid categories.
var SymptomCategories = []string{
	SymptomAnxiety,
	SymptomDepression,
	SymptomInsomnia,
	SymptomStress,
	SymptomPanic,
	SymptomOther,
}

// IsValidSymptomCategory reports whether s is a known category.
func IsValidSymptomCategory(s string) bool {
	for _, c := range SymptomCategories {
		if s == c {
			return true
		}
	}
	return false
}

// KeywordRule is an expert-curated phrase with a severity weight (1-5),
// scoped to an institution. At most one active rule may exist per
// (institution, phrase, category) tuple.
type KeywordRule struct {
	ID            uuid.UUID  `json:"id"`
	InstitutionID uuid.UUID  `json:"institution_id"`
	Phrase        string     `json:"phrase"` // normalized lowercase
	Category      string     `json:"category"`
	Weight        int        `json:"weight"` // 1-5
	OwnerID       *uuid.UUID `json:"owner_id"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// MinWeight and MaxWeight bound expert-assigned severity.
const (
	MinWeight = 1
	MaxWeight = 5
)
