package models

import (
	"encoding/json"
	"testing"
)

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		input  string
		want   RiskLevel
		wantOK bool
	}{
		{"minimo", RiskMinimal, true},
		{"bajo", RiskLow, true},
		{"medio", RiskModerate, true},
		{"alto", RiskHigh, true},
		{"critico", RiskCritical, true},
		{"extremo", RiskMinimal, false},
		{"", RiskMinimal, false},
	}

	for _, tt := range tests {
		got, ok := ParseRiskLevel(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseRiskLevel(%q) = %s, %v; want %s, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRiskLevel_Ordering(t *testing.T) {
	if !(RiskMinimal < RiskLow && RiskLow < RiskModerate && RiskModerate < RiskHigh && RiskHigh < RiskCritical) {
		t.Error("risk levels must be strictly ordered")
	}
	if RiskModerate.IsElevated() {
		t.Error("medio is not elevated")
	}
	if !RiskHigh.IsElevated() || !RiskCritical.IsElevated() {
		t.Error("alto and critico are elevated")
	}
}

func TestRiskLevel_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(RiskHigh)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"alto"` {
		t.Errorf("marshal = %s, want \"alto\"", data)
	}

	var l RiskLevel
	if err := json.Unmarshal([]byte(`"critico"`), &l); err != nil {
		t.Fatal(err)
	}
	if l != RiskCritical {
		t.Errorf("unmarshal = %s, want critico", l)
	}

	// Unknown values degrade instead of failing.
	if err := json.Unmarshal([]byte(`"desconocido"`), &l); err != nil {
		t.Errorf("unknown level should not error: %v", err)
	}
	if l != RiskMinimal {
		t.Errorf("unknown level should map to minimo, got %s", l)
	}
}

func TestNormalizeUrgency(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"baja", UrgencyLow},
		{"media", UrgencyMedium},
		{"alta", UrgencyHigh},
		{"inmediata", UrgencyImmediate},
		{"high", UrgencyHigh},
		{"??", UrgencyLow},
	}

	for _, tt := range tests {
		if got := NormalizeUrgency(tt.input); got != tt.want {
			t.Errorf("NormalizeUrgency(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAssessmentOutcome(t *testing.T) {
	if got := (&RiskAssessment{Degraded: true}).Outcome(); got != OutcomeFallback {
		t.Errorf("degraded outcome = %s", got)
	}
	if got := (&RiskAssessment{Contextual: &ContextualAssessment{}}).Outcome(); got != OutcomeContextual {
		t.Errorf("contextual outcome = %s", got)
	}
	if got := (&RiskAssessment{}).Outcome(); got != OutcomeLocal {
		t.Errorf("local outcome = %s", got)
	}
}
