package models

import (
	"encoding/json"
	"fmt"
)

// RiskLevel is the canonical five-level ordinal risk scale.
// The ordering is significant: comparisons between levels use <.
type RiskLevel int

const (
	RiskMinimal RiskLevel = iota // minimo
	RiskLow                      // bajo
	RiskModerate                 // medio
	RiskHigh                     // alto
	RiskCritical                 // critico
)

// riskLevelNames is the external vocabulary, indexed by ordinal.
var riskLevelNames = [...]string{"minimo", "bajo", "medio", "alto", "critico"}

func (l RiskLevel) String() string {
	if l < RiskMinimal || l > RiskCritical {
		return "minimo"
	}
	return riskLevelNames[l]
}

// IsElevated returns true for the levels that trigger profile updates and alerts.
func (l RiskLevel) IsElevated() bool {
	return l >= RiskHigh
}

// ParseRiskLevel maps an external level string to a RiskLevel.
// Unknown strings map to RiskMinimal with ok=false so that untrusted
// collaborator output degrades instead of failing.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	for i, name := range riskLevelNames {
		if s == name {
			return RiskLevel(i), true
		}
	}
	return RiskMinimal, false
}

// MarshalJSON encodes the level using the external vocabulary.
func (l RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes the external vocabulary, tolerating unknown values.
func (l *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("risk level must be a string: %w", err)
	}
	parsed, _ := ParseRiskLevel(s)
	*l = parsed
	return nil
}

// Urgency vocabulary reported by the contextual collaborator.
const (
	UrgencyLow       = "low"
	UrgencyMedium    = "medium"
	UrgencyHigh      = "high"
	UrgencyImmediate = "immediate"
)

// NormalizeUrgency maps collaborator urgency strings (including the Spanish
// variants the prompt asks for) onto the canonical vocabulary.
func NormalizeUrgency(s string) string {
	switch s {
	case UrgencyLow, "baja":
		return UrgencyLow
	case UrgencyMedium, "media":
		return UrgencyMedium
	case UrgencyHigh, "alta":
		return UrgencyHigh
	case UrgencyImmediate, "inmediata":
		return UrgencyImmediate
	default:
		return UrgencyLow
	}
}
