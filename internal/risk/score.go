package risk

import (
	"math"

	"mindline/internal/models"
)

// Score calculation is weight-dominant: a single severe keyword already lands
// in a concerning band, while breadth of evidence adds bounded increments so
// no bonus alone can force a critical classification.

const (
	countBonusPerHit = 2
	countBonusCap    = 15

	highWeightBonusPerHit = 10
	highWeightBonusCap    = 20

	mediumWeightBonusPerHit = 3
	mediumWeightBonusCap    = 10
)

// baseScoreForWeight is the step function of the highest weight among hits.
func baseScoreForWeight(maxWeight int) int {
	switch maxWeight {
	case 5:
		return 80
	case 4:
		return 60
	case 3:
		return 40
	case 2:
		return 20
	case 1:
		return 10
	default:
		return 0
	}
}

// LocalScore converts the detected keyword set into a 0-100 score.
func LocalScore(detected []models.DetectedKeyword) int {
	if len(detected) == 0 {
		return 0
	}

	maxWeight := 0
	highCount := 0
	mediumCount := 0
	for _, kw := range detected {
		if kw.Weight > maxWeight {
			maxWeight = kw.Weight
		}
		switch {
		case kw.Weight >= 4:
			highCount++
		case kw.Weight == 3:
			mediumCount++
		}
	}

	score := baseScoreForWeight(maxWeight)
	score += minInt(countBonusPerHit*len(detected), countBonusCap)
	score += minInt(highWeightBonusPerHit*highCount, highWeightBonusCap)
	score += minInt(mediumWeightBonusPerHit*mediumCount, mediumWeightBonusCap)

	return clampScore(score)
}

// FuseScores combines the local score with the contextual score when one is
// present: final = round(0.7*local + 0.3*contextual), clamped to [0,100].
func FuseScores(local int, contextual *models.ContextualAssessment) int {
	if contextual == nil {
		return clampScore(local)
	}
	fused := 0.7*float64(local) + 0.3*float64(contextual.Score)
	return clampScore(int(math.Round(fused)))
}

// Classify maps a 0-100 score onto the five-level ordinal scale. The
// thresholds are monotonic and non-overlapping.
func Classify(score int) models.RiskLevel {
	switch {
	case score >= 80:
		return models.RiskCritical
	case score >= 60:
		return models.RiskHigh
	case score >= 40:
		return models.RiskModerate
	case score >= 20:
		return models.RiskLow
	default:
		return models.RiskMinimal
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
