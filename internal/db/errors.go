package db

import "errors"

// Domain-level database error sentinels.
var (
	// Keyword rule errors
	ErrRuleNotFound  = errors.New("keyword rule not found")
	ErrDuplicateRule = errors.New("an active rule with this phrase and category already exists")

	// Patient errors
	ErrPatientNotFound = errors.New("patient not found")

	// Expert errors
	ErrExpertNotFound = errors.New("expert not found")

	// Institution errors
	ErrInstitutionNotFound = errors.New("institution not found")

	// Assessment errors
	ErrAssessmentNotFound = errors.New("assessment not found")
)
