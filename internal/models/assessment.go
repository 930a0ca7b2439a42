package models

import (
	"time"

	"github.com/google/uuid"
)

// DetectedKeyword is a catalog rule hit in the analyzed text. It exists only
// for the duration of an analysis; the enclosing assessment is what persists.
type DetectedKeyword struct {
	Phrase        string   `json:"phrase"`
	Category      string   `json:"category"`
	Weight        int      `json:"weight"`
	ContextWindow []string `json:"context_window"` // words surrounding the first occurrence
	ExactMatch    bool     `json:"exact_match"`
}

// IndicatorSet is the output of the pattern-rule detector: one flag per
// clinical indicator category plus any regional colloquialisms that fired.
// Produced fresh per message.
type IndicatorSet struct {
	SuicidalIdeation bool `json:"suicidal_ideation"`
	SelfHarm         bool `json:"self_harm"`
	Panic            bool `json:"panic"`
	AcuteAnxiety     bool `json:"acute_anxiety"`
	Physical         bool `json:"physical"`
	Cognitive        bool `json:"cognitive"`
	Emotional        bool `json:"emotional"`
	Severity         bool `json:"severity"`
	Hopelessness     bool `json:"hopelessness"`

	Colloquial []string `json:"colloquial,omitempty"`
}

// Crisis reports whether a never-suppress crisis signal fired.
func (s IndicatorSet) Crisis() bool {
	return s.SuicidalIdeation || s.SelfHarm
}

// ContextualAssessment is the structured secondary assessment returned by the
// language-model collaborator. It is untrusted and optional: a nil
// *ContextualAssessment means the collaborator was skipped, unreachable, or
// returned something unparsable.
type ContextualAssessment struct {
	Level            RiskLevel `json:"level"`
	Score            int       `json:"score"`      // 0-100
	Confidence       float64   `json:"confidence"` // 0.0-1.0
	NeedsAppointment bool      `json:"needs_appointment"`
	EmotionalContext string    `json:"emotional_context"`
	KeyConcerns      []string  `json:"key_concerns"`
	Recommendations  []string  `json:"recommendations"`
	Urgency          string    `json:"urgency"`
}

// Appointment is the referral decision for a turn.
type Appointment struct {
	Recommended bool   `json:"recommended"`
	Urgent      bool   `json:"urgent"`
	Message     string `json:"message,omitempty"`
}

// RiskAssessment is the engine's output for one analyzed message. It is
// immutable once created; a newer assessment supersedes, never edits, a prior
// one.
type RiskAssessment struct {
	ID            uuid.UUID             `json:"id,omitempty"`
	PatientID     *uuid.UUID            `json:"patient_id,omitempty"`
	InstitutionID uuid.UUID             `json:"institution_id"`
	Level         RiskLevel             `json:"level"`
	Score         int                   `json:"score"`
	Keywords      []DetectedKeyword     `json:"detected_keywords"`
	Indicators    IndicatorSet          `json:"indicators"`
	Contextual    *ContextualAssessment `json:"contextual"`
	Tone          RiskLevel             `json:"tone"` // reply-tone steer, canonical scale
	Appointment   Appointment           `json:"appointment"`
	Summary       string                `json:"summary"`
	Degraded      bool                  `json:"degraded"` // fallback analyzer was used
	CreatedAt     time.Time             `json:"created_at"`
}

// Assessment outcome constants, recorded per analysis for metrics.
const (
	OutcomeContextual = "contextual" // local + collaborator fusion
	OutcomeLocal      = "local"      // local-only score (no hits or collaborator unavailable)
	OutcomeFallback   = "fallback"   // catalog unavailable, fallback analyzer
)

// Outcome reports which path produced this assessment.
func (a *RiskAssessment) Outcome() string {
	switch {
	case a.Degraded:
		return OutcomeFallback
	case a.Contextual != nil:
		return OutcomeContextual
	default:
		return OutcomeLocal
	}
}

// AssessmentCount is a per-level hit count by outcome, scraped into metrics.
type AssessmentCount struct {
	Level      string
	Outcome    string
	Count      int64
	LastSeenAt time.Time
}
