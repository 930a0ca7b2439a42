package risk

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"mindline/internal/models"
)

type stubCatalog struct {
	rules []models.KeywordRule
	err   error
}

func (s *stubCatalog) ActiveRules(ctx context.Context, scope uuid.UUID) ([]models.KeywordRule, error) {
	return s.rules, s.err
}

type stubAssessor struct {
	result *models.ContextualAssessment
	err    error
	calls  int
}

func (s *stubAssessor) Assess(ctx context.Context, prompt string) (*models.ContextualAssessment, error) {
	s.calls++
	return s.result, s.err
}

func newTestEngine(t *testing.T, cat Catalog, assessor Assessor) *Engine {
	t.Helper()
	return NewEngine(cat, assessor, loadPatterns(t), testAppointmentURL, nil)
}

func TestEngine_SevereKeywordIsCritical(t *testing.T) {
	cat := &stubCatalog{rules: []models.KeywordRule{rule("suicidar", models.SymptomAnxiety, 5)}}
	e := newTestEngine(t, cat, nil)

	got := e.Analyze(context.Background(), "ya no aguanto, me quiero suicidar", uuid.New())

	if len(got.Keywords) != 1 {
		t.Fatalf("expected 1 keyword hit, got %d", len(got.Keywords))
	}
	if got.Level != models.RiskCritical {
		t.Errorf("level = %s, want critico", got.Level)
	}
	if !got.Indicators.SuicidalIdeation {
		t.Error("expected suicidal ideation indicator")
	}
	if !got.Appointment.Recommended || !got.Appointment.Urgent {
		t.Errorf("expected urgent referral, got %+v", got.Appointment)
	}
	if got.Degraded {
		t.Error("working catalog must not mark the result degraded")
	}
	if got.Outcome() != models.OutcomeLocal {
		t.Errorf("outcome = %s, want local (no assessor configured)", got.Outcome())
	}
}

func TestEngine_ContextualFusion(t *testing.T) {
	cat := &stubCatalog{rules: []models.KeywordRule{rule("estresado", models.SymptomStress, 3)}}
	assessor := &stubAssessor{result: &models.ContextualAssessment{
		Level: models.RiskModerate,
		Score: 60,
	}}
	e := newTestEngine(t, cat, assessor)

	got := e.Analyze(context.Background(), "me siento muy estresado por los exámenes", uuid.New())

	if assessor.calls != 1 {
		t.Fatalf("assessor calls = %d, want 1", assessor.calls)
	}
	// local 45, fused round(0.7*45 + 0.3*60) = 50
	if got.Score != 50 {
		t.Errorf("fused score = %d, want 50", got.Score)
	}
	if got.Level != models.RiskModerate {
		t.Errorf("level = %s, want medio", got.Level)
	}
	if got.Contextual == nil {
		t.Fatal("contextual assessment should be attached")
	}
	if got.Outcome() != models.OutcomeContextual {
		t.Errorf("outcome = %s, want contextual", got.Outcome())
	}
}

func TestEngine_NoHitsSkipsAssessor(t *testing.T) {
	assessor := &stubAssessor{result: &models.ContextualAssessment{Score: 90}}
	e := newTestEngine(t, &stubCatalog{}, assessor)

	got := e.Analyze(context.Background(), "hola, ¿cómo estás?", uuid.New())

	if assessor.calls != 0 {
		t.Errorf("assessor must not run without keyword hits, got %d calls", assessor.calls)
	}
	if got.Score != 0 || got.Level != models.RiskMinimal {
		t.Errorf("expected score 0 / minimo, got %d / %s", got.Score, got.Level)
	}
	if got.Appointment.Recommended {
		t.Error("no referral expected for a neutral message")
	}
}

func TestEngine_AssessorFailureFallsBackToLocal(t *testing.T) {
	cat := &stubCatalog{rules: []models.KeywordRule{rule("estresado", models.SymptomStress, 3)}}
	assessor := &stubAssessor{err: errors.New("provider unreachable")}
	e := newTestEngine(t, cat, assessor)

	got := e.Analyze(context.Background(), "estoy estresado", uuid.New())

	if got == nil {
		t.Fatal("analysis must always return a result")
	}
	if got.Contextual != nil {
		t.Error("failed assessment must not attach a contextual result")
	}
	// local-only score for a single weight-3 hit
	if got.Score != 45 {
		t.Errorf("score = %d, want local-only 45", got.Score)
	}
	if got.Degraded {
		t.Error("assessor failure is not fallback mode")
	}
	if got.Outcome() != models.OutcomeLocal {
		t.Errorf("outcome = %s, want local", got.Outcome())
	}
}

func TestEngine_CatalogFailureUsesFallback(t *testing.T) {
	cat := &stubCatalog{err: errors.New("connection refused")}
	assessor := &stubAssessor{}
	e := newTestEngine(t, cat, assessor)

	got := e.Analyze(context.Background(), "me quiero morir", uuid.New())

	if !got.Degraded {
		t.Fatal("catalog failure must mark the result degraded")
	}
	if assessor.calls != 0 {
		t.Error("fallback must not call the assessor")
	}
	// fallback terms hit: "morir", "quiero morir", "me quiero morir" = 60
	if got.Score != 60 {
		t.Errorf("fallback score = %d, want 60", got.Score)
	}
	if got.Level != models.RiskHigh {
		t.Errorf("level = %s, want alto", got.Level)
	}
	if !got.Indicators.SuicidalIdeation {
		t.Error("indicator detection still runs in fallback mode")
	}
	if !got.Appointment.Urgent {
		t.Error("crisis signal must still trigger an urgent referral in fallback mode")
	}
	if got.Outcome() != models.OutcomeFallback {
		t.Errorf("outcome = %s, want fallback", got.Outcome())
	}
}

func TestEngine_FallbackScoreIsClamped(t *testing.T) {
	e := newTestEngine(t, &stubCatalog{err: errors.New("down")}, nil)

	text := "suicid matar morir acabar no quiero vivir quiero morir me quiero morir"
	got := e.Analyze(context.Background(), text, uuid.New())

	if got.Score != 100 {
		t.Errorf("fallback score = %d, want clamp at 100", got.Score)
	}
	if got.Level != models.RiskCritical {
		t.Errorf("level = %s, want critico", got.Level)
	}
}

func TestEngine_SummaryMentionsLevel(t *testing.T) {
	cat := &stubCatalog{rules: []models.KeywordRule{rule("estresado", models.SymptomStress, 3)}}
	e := newTestEngine(t, cat, nil)

	got := e.Analyze(context.Background(), "estoy estresado", uuid.New())

	if got.Summary == "" {
		t.Fatal("summary must not be empty")
	}
	if want := "MEDIO"; !strings.Contains(got.Summary, want) {
		t.Errorf("summary %q should mention level %s", got.Summary, want)
	}
}
