package risk

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"mindline/internal/models"
)

// fallbackScorePerHit is the increment for each critical term found by the
// degraded-mode scan.
const fallbackScorePerHit = 20

// fallbackAnalyze is the minimal, dependency-free scan used when the keyword
// catalog is unreachable. It checks only the configured critical-term list,
// never calls the contextual collaborator, and classifies with the same
// thresholds as the full pipeline so the level vocabulary stays consistent.
func (e *Engine) fallbackAnalyze(text string, scope uuid.UUID, indicators models.IndicatorSet) *models.RiskAssessment {
	lower := strings.ToLower(text)

	score := 0
	for _, term := range e.patterns.FallbackTerms {
		if strings.Contains(lower, term) {
			score += fallbackScorePerHit
		}
	}
	score = clampScore(score)

	level := Classify(score)
	band := BandFor(IndicatorScore(indicators))

	return &models.RiskAssessment{
		InstitutionID: scope,
		Level:         level,
		Score:         score,
		Keywords:      nil,
		Indicators:    indicators,
		Contextual:    nil,
		Tone:          band.RiskLevel(),
		Appointment:   DecideAppointment(level, score, indicators, e.appointmentURL),
		Summary:       "Análisis básico realizado (catálogo no disponible).",
		Degraded:      true,
		CreatedAt:     time.Now().UTC(),
	}
}
