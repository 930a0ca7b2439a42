package validation

import (
	"strings"

	"mindline/internal/models"
)

// MaxPhraseLength bounds keyword phrases. Catalog phrases are short clinical
// terms or expressions, not sentences.
const MaxPhraseLength = 100

// NormalizePhrase lowercases and collapses whitespace so matching and the
// (scope, phrase, category) uniqueness invariant are case-insensitive.
func NormalizePhrase(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

// ValidatePhrase checks a normalized keyword phrase.
func ValidatePhrase(phrase string) (bool, string) {
	if phrase == "" {
		return false, "phrase is required"
	}
	if len(phrase) > MaxPhraseLength {
		return false, "phrase is too long"
	}
	return true, ""
}

// ValidateWeight checks the expert-assigned severity weight.
func ValidateWeight(weight int) (bool, string) {
	if weight < models.MinWeight || weight > models.MaxWeight {
		return false, "weight must be between 1 and 5"
	}
	return true, ""
}

// ValidateCategory checks the symptom category.
func ValidateCategory(category string) (bool, string) {
	if !models.IsValidSymptomCategory(category) {
		return false, "unknown symptom category"
	}
	return true, ""
}

// ValidateAnalysisText checks the inbound utterance. Empty and
// whitespace-only text is rejected at the API boundary; the engine itself
// never sees it.
func ValidateAnalysisText(text string) (bool, string) {
	if strings.TrimSpace(text) == "" {
		return false, "text is required"
	}
	return true, ""
}
