package risk

import (
	"reflect"
	"testing"

	"mindline/internal/models"
)

func rule(phrase, category string, weight int) models.KeywordRule {
	return models.KeywordRule{Phrase: phrase, Category: category, Weight: weight, Active: true}
}

func TestMatchKeywords(t *testing.T) {
	rules := []models.KeywordRule{
		rule("estresado", models.SymptomStress, 3),
		rule("no puedo dormir", models.SymptomInsomnia, 2),
		rule("preocupado", models.SymptomAnxiety, 2),
	}

	tests := []struct {
		name        string
		text        string
		wantPhrases []string
		wantWeight  int
	}{
		{
			name:        "direct substring",
			text:        "me siento muy estresado por los exámenes",
			wantPhrases: []string{"estresado"},
			wantWeight:  3,
		},
		{
			name:        "case insensitive",
			text:        "ESTOY ESTRESADO",
			wantPhrases: []string{"estresado"},
			wantWeight:  3,
		},
		{
			name:        "multiword all words present despite reordering",
			text:        "no sé qué me pasa, dormir no puedo casi nunca",
			wantPhrases: []string{"no puedo dormir"},
			wantWeight:  2,
		},
		{
			name:        "multiword missing a word",
			text:        "dormir bien es importante",
			wantPhrases: nil,
			wantWeight:  0,
		},
		{
			name:        "multiple hits sorted by phrase",
			text:        "estoy estresado y preocupado",
			wantPhrases: []string{"estresado", "preocupado"},
			wantWeight:  5,
		},
		{
			name:        "no hits",
			text:        "hola, ¿cómo estás?",
			wantPhrases: nil,
			wantWeight:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detected, weight := MatchKeywords(tt.text, rules)

			var phrases []string
			for _, d := range detected {
				phrases = append(phrases, d.Phrase)
			}
			if !reflect.DeepEqual(phrases, tt.wantPhrases) {
				t.Errorf("phrases = %v, want %v", phrases, tt.wantPhrases)
			}
			if weight != tt.wantWeight {
				t.Errorf("total weight = %d, want %d", weight, tt.wantWeight)
			}
		})
	}
}

func TestMatchKeywords_SingularForm(t *testing.T) {
	rules := []models.KeywordRule{rule("nervios", models.SymptomAnxiety, 2)}

	detected, _ := MatchKeywords("ando con mucho nervio hoy", rules)
	if len(detected) != 1 {
		t.Fatalf("expected singular-form match, got %d hits", len(detected))
	}
	if detected[0].ExactMatch {
		t.Error("singular-form match should not report as exact")
	}
}

func TestMatchKeywords_Deterministic(t *testing.T) {
	rules := []models.KeywordRule{
		rule("preocupado", models.SymptomAnxiety, 2),
		rule("estresado", models.SymptomStress, 3),
	}
	text := "estoy estresado y preocupado"

	first, firstWeight := MatchKeywords(text, rules)
	for i := 0; i < 10; i++ {
		again, weight := MatchKeywords(text, rules)
		if !reflect.DeepEqual(first, again) || weight != firstWeight {
			t.Fatal("identical input produced a different result")
		}
	}
}

func TestExtractContext(t *testing.T) {
	text := "uno dos tres cuatro cinco seis estresado siete ocho nueve diez once doce"

	window := extractContext(text, "estresado")
	want := []string{"dos", "tres", "cuatro", "cinco", "seis", "estresado", "siete", "ocho", "nueve", "diez", "once"}
	if !reflect.DeepEqual(window, want) {
		t.Errorf("context window = %v, want %v", window, want)
	}
}

func TestExtractContext_AtTextStart(t *testing.T) {
	window := extractContext("estresado por todo", "estresado")
	want := []string{"estresado", "por", "todo"}
	if !reflect.DeepEqual(window, want) {
		t.Errorf("context window = %v, want %v", window, want)
	}
}
