package risk

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"mindline/internal/config"
	"mindline/internal/models"
)

// Catalog supplies the active keyword rules for an institution scope.
type Catalog interface {
	ActiveRules(ctx context.Context, scope uuid.UUID) ([]models.KeywordRule, error)
}

// Assessor is the contextual collaborator. Implementations must treat the
// response as untrusted input and return an error rather than a partially
// parsed assessment.
type Assessor interface {
	Assess(ctx context.Context, prompt string) (*models.ContextualAssessment, error)
}

// Engine runs the full analysis pipeline: catalog matching, indicator
// detection, local scoring, optional contextual fusion, classification and
// the appointment decision. It is safe for concurrent use.
type Engine struct {
	catalog        Catalog
	assessor       Assessor // nil when contextual analysis is disabled
	patterns       *config.PatternSet
	appointmentURL string
	logger         *slog.Logger
}

// NewEngine wires an analysis engine. assessor may be nil; the engine then
// runs local-only for every message.
func NewEngine(catalog Catalog, assessor Assessor, patterns *config.PatternSet, appointmentURL string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		catalog:        catalog,
		assessor:       assessor,
		patterns:       patterns,
		appointmentURL: appointmentURL,
		logger:         logger,
	}
}

// Analyze assesses one message within an institution scope. It never returns
// nil and never returns an error: any failure along the pipeline degrades to
// a cheaper path and the result records how it was produced.
func (e *Engine) Analyze(ctx context.Context, text string, scope uuid.UUID) *models.RiskAssessment {
	indicators := DetectIndicators(text, e.patterns)

	rules, err := e.catalog.ActiveRules(ctx, scope)
	if err != nil {
		e.logger.Error("keyword catalog unavailable, using fallback analyzer",
			"institution", scope, "error", err)
		return e.fallbackAnalyze(text, scope, indicators)
	}

	detected, totalWeight := MatchKeywords(text, rules)
	local := LocalScore(detected)

	var contextual *models.ContextualAssessment
	if len(detected) > 0 && e.assessor != nil {
		prompt := BuildContextualPrompt(text, detected, rules, e.appointmentURL)
		contextual, err = e.assessor.Assess(ctx, prompt)
		if err != nil {
			e.logger.Warn("contextual assessment failed, continuing local-only",
				"institution", scope, "error", err)
			contextual = nil
		}
	}

	score := FuseScores(local, contextual)
	level := Classify(score)
	band := BandFor(IndicatorScore(indicators))

	assessment := &models.RiskAssessment{
		InstitutionID: scope,
		Level:         level,
		Score:         score,
		Keywords:      detected,
		Indicators:    indicators,
		Contextual:    contextual,
		Tone:          band.RiskLevel(),
		Appointment:   DecideAppointment(level, score, indicators, e.appointmentURL),
		Summary:       summarize(len(detected), contextual, level),
		CreatedAt:     time.Now().UTC(),
	}

	e.logger.Info("risk analysis complete",
		"institution", scope,
		"level", level.String(),
		"score", score,
		"keywords", len(detected),
		"total_weight", totalWeight,
		"outcome", assessment.Outcome())

	return assessment
}

// summarize renders the short Spanish digest stored with each assessment.
func summarize(keywordCount int, contextual *models.ContextualAssessment, level models.RiskLevel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Se detectaron %d palabra(s) clave de riesgo. ", keywordCount)
	if contextual != nil && contextual.EmotionalContext != "" {
		fmt.Fprintf(&b, "Contexto emocional: %s. ", contextual.EmotionalContext)
	}
	fmt.Fprintf(&b, "Nivel de riesgo: %s.", strings.ToUpper(level.String()))
	return b.String()
}
