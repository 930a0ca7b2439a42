package risk

import (
	"sort"
	"strings"

	"mindline/internal/models"
)

// contextWords is the symmetric word window captured around a match for
// audit and prompt context.
const contextWords = 5

// MatchKeywords scans text for active catalog rules. Matching is
// case-insensitive; multi-word phrases match when every word is present
// (tolerating reordering and insertions), and single words retry with a naive
// singular form to catch simple plurals. The result is sorted by phrase and
// category so identical input always produces an identical set.
func MatchKeywords(text string, rules []models.KeywordRule) ([]models.DetectedKeyword, int) {
	lower := strings.ToLower(text)

	var detected []models.DetectedKeyword
	totalWeight := 0

	for _, rule := range rules {
		exact, ok := containsPhrase(lower, rule.Phrase)
		if !ok {
			continue
		}
		detected = append(detected, models.DetectedKeyword{
			Phrase:        rule.Phrase,
			Category:      rule.Category,
			Weight:        rule.Weight,
			ContextWindow: extractContext(text, rule.Phrase),
			ExactMatch:    exact,
		})
		totalWeight += rule.Weight
	}

	sort.Slice(detected, func(i, j int) bool {
		if detected[i].Phrase != detected[j].Phrase {
			return detected[i].Phrase < detected[j].Phrase
		}
		return detected[i].Category < detected[j].Category
	})

	return detected, totalWeight
}

// containsPhrase reports whether the lowercased text contains the phrase.
// The second return is true for a direct match, false for a morphological
// (singular-form) match.
func containsPhrase(lower, phrase string) (exact bool, ok bool) {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return false, false
	}

	if strings.Contains(lower, phrase) {
		return true, true
	}

	words := strings.Fields(phrase)
	if len(words) > 1 {
		for _, w := range words {
			if !strings.Contains(lower, w) {
				return false, false
			}
		}
		return true, true
	}

	// Naive singular: strip a trailing "s" to catch simple plurals.
	base := strings.TrimSuffix(phrase, "s")
	if base != phrase && strings.Contains(lower, base) {
		return false, true
	}

	return false, false
}

// extractContext returns up to contextWords words on each side of the first
// word containing the phrase's leading word. Word-tokenized, not
// character-based.
func extractContext(text, phrase string) []string {
	words := strings.Fields(text)
	needle := strings.ToLower(phrase)
	if parts := strings.Fields(needle); len(parts) > 0 {
		needle = parts[0]
	}

	idx := -1
	for i, w := range words {
		if strings.Contains(strings.ToLower(w), needle) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	start := idx - contextWords
	if start < 0 {
		start = 0
	}
	end := idx + contextWords + 1
	if end > len(words) {
		end = len(words)
	}

	window := make([]string, end-start)
	copy(window, words[start:end])
	return window
}
