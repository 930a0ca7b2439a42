package risk

import (
	"regexp"
	"strings"

	"mindline/internal/config"
	"mindline/internal/models"
)

// Indicator weights. Crisis signals dominate; softer symptom categories add
// progressively less.
const (
	weightSuicidalIdeation = 40
	weightSelfHarm         = 35
	weightPanic            = 25
	weightAcuteAnxiety     = 20
	weightHopelessness     = 15
	weightPhysical         = 12
	weightCognitive        = 10
	weightEmotional        = 8
	weightSeverity         = 5

	colloquialBonusPerHit = 3
	colloquialBonusCap    = 10
)

// Band is the detector's internal four-level scale, used only to steer the
// reply prompt. It must be translated with RiskLevel before crossing any
// package boundary.
type Band int

const (
	BandMinimal Band = iota // minimo
	BandMild                // leve
	BandModerate            // moderado
	BandHigh                // alto
)

var bandNames = [...]string{"minimo", "leve", "moderado", "alto"}

func (b Band) String() string {
	if b < BandMinimal || b > BandHigh {
		return "minimo"
	}
	return bandNames[b]
}

// RiskLevel translates the internal band onto the canonical five-level scale.
// This is the single place the two scales meet.
func (b Band) RiskLevel() models.RiskLevel {
	switch b {
	case BandHigh:
		return models.RiskHigh
	case BandModerate:
		return models.RiskModerate
	case BandMild:
		return models.RiskLow
	default:
		return models.RiskMinimal
	}
}

// DetectIndicators scans raw text with the configured pattern rules. Each
// category fires independently of the keyword catalog.
func DetectIndicators(text string, ps *config.PatternSet) models.IndicatorSet {
	lower := strings.ToLower(text)

	set := models.IndicatorSet{
		SuicidalIdeation: anyMatch(lower, ps.Indicators[config.IndicatorSuicidalIdeation]),
		SelfHarm:         anyMatch(lower, ps.Indicators[config.IndicatorSelfHarm]),
		Panic:            anyMatch(lower, ps.Indicators[config.IndicatorPanic]),
		AcuteAnxiety:     anyMatch(lower, ps.Indicators[config.IndicatorAcuteAnxiety]),
		Physical:         anyMatch(lower, ps.Indicators[config.IndicatorPhysical]),
		Cognitive:        anyMatch(lower, ps.Indicators[config.IndicatorCognitive]),
		Emotional:        anyMatch(lower, ps.Indicators[config.IndicatorEmotional]),
		Severity:         anyMatch(lower, ps.Indicators[config.IndicatorSeverity]),
		Hopelessness:     anyMatch(lower, ps.Indicators[config.IndicatorHopelessness]),
	}

	for _, expr := range ps.Colloquial {
		for _, term := range expr.Terms {
			if strings.Contains(lower, strings.ToLower(term)) {
				set.Colloquial = append(set.Colloquial, expr.Name)
				break
			}
		}
	}

	return set
}

func anyMatch(text string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// IndicatorScore produces the detector's weighted sum, including the bounded
// colloquial-expression bonus.
func IndicatorScore(set models.IndicatorSet) int {
	score := 0
	if set.SuicidalIdeation {
		score += weightSuicidalIdeation
	}
	if set.SelfHarm {
		score += weightSelfHarm
	}
	if set.Panic {
		score += weightPanic
	}
	if set.AcuteAnxiety {
		score += weightAcuteAnxiety
	}
	if set.Hopelessness {
		score += weightHopelessness
	}
	if set.Physical {
		score += weightPhysical
	}
	if set.Cognitive {
		score += weightCognitive
	}
	if set.Emotional {
		score += weightEmotional
	}
	if set.Severity {
		score += weightSeverity
	}
	if n := len(set.Colloquial); n > 0 {
		score += minInt(colloquialBonusPerHit*n, colloquialBonusCap)
	}
	return score
}

// BandFor maps the detector sum onto the internal four-level scale. The
// thresholds are independent of Classify's.
func BandFor(sum int) Band {
	switch {
	case sum >= 30:
		return BandHigh
	case sum >= 15:
		return BandModerate
	case sum >= 5:
		return BandMild
	default:
		return BandMinimal
	}
}
