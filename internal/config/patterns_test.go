package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPatterns_EmbeddedDefaults(t *testing.T) {
	ps, err := LoadPatterns("")
	if err != nil {
		t.Fatalf("failed to load embedded pattern set: %v", err)
	}

	if ps.Version == 0 {
		t.Error("embedded pattern set should carry a version")
	}
	for _, name := range indicatorNames {
		if len(ps.Indicators[name]) == 0 {
			t.Errorf("indicator category %q has no patterns", name)
		}
	}
	if len(ps.Colloquial) == 0 {
		t.Error("embedded pattern set should include colloquial expressions")
	}
	if len(ps.FallbackTerms) == 0 {
		t.Error("embedded pattern set should include fallback terms")
	}
}

func TestLoadPatterns_FileOverride(t *testing.T) {
	content := `version: 7
indicators:
  panic:
    - '\bpánico\b'
fallback_terms:
  - morir
`
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	ps, err := LoadPatterns(path)
	if err != nil {
		t.Fatalf("failed to load override: %v", err)
	}
	if ps.Version != 7 {
		t.Errorf("version = %d, want 7", ps.Version)
	}
	if len(ps.Indicators[IndicatorPanic]) != 1 {
		t.Errorf("expected 1 panic pattern, got %d", len(ps.Indicators[IndicatorPanic]))
	}
}

func TestLoadPatterns_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown indicator category",
			content: `version: 1
indicators:
  despair:
    - '\bx\b'
fallback_terms: [morir]
`,
		},
		{
			name: "bad regex",
			content: `version: 1
indicators:
  panic:
    - '\b(pánico\b'
fallback_terms: [morir]
`,
		},
		{
			name: "missing fallback terms",
			content: `version: 1
indicators:
  panic:
    - '\bpánico\b'
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "patterns.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadPatterns(path); err == nil {
				t.Error("expected error for invalid pattern file")
			}
		})
	}
}
