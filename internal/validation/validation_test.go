package validation

import (
	"strings"
	"testing"
)

func TestNormalizePhrase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Quiero Morir", "quiero morir"},
		{"  ataque   de  pánico ", "ataque de pánico"},
		{"ESTRESADO", "estresado"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizePhrase(tt.input); got != tt.want {
			t.Errorf("NormalizePhrase(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidatePhrase(t *testing.T) {
	if valid, _ := ValidatePhrase("no puedo dormir"); !valid {
		t.Error("valid phrase rejected")
	}
	if valid, _ := ValidatePhrase(""); valid {
		t.Error("empty phrase accepted")
	}
	if valid, _ := ValidatePhrase(strings.Repeat("a", MaxPhraseLength+1)); valid {
		t.Error("overlong phrase accepted")
	}
}

func TestValidateWeight(t *testing.T) {
	for w := 1; w <= 5; w++ {
		if valid, _ := ValidateWeight(w); !valid {
			t.Errorf("weight %d rejected", w)
		}
	}
	for _, w := range []int{0, 6, -1, 100} {
		if valid, _ := ValidateWeight(w); valid {
			t.Errorf("weight %d accepted", w)
		}
	}
}

func TestValidateCategory(t *testing.T) {
	if valid, _ := ValidateCategory("anxiety"); !valid {
		t.Error("known category rejected")
	}
	if valid, _ := ValidateCategory("astrology"); valid {
		t.Error("unknown category accepted")
	}
}

func TestValidateAnalysisText(t *testing.T) {
	if valid, _ := ValidateAnalysisText("me siento mal"); !valid {
		t.Error("valid text rejected")
	}
	if valid, _ := ValidateAnalysisText("   \t\n"); valid {
		t.Error("whitespace-only text accepted")
	}
	if valid, _ := ValidateAnalysisText(""); valid {
		t.Error("empty text accepted")
	}
}
