package config

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed patterns.yaml
var defaultPatterns []byte

// Indicator category names. These are the only keys accepted in the
// indicators section of a pattern-set file.
const (
	IndicatorSuicidalIdeation = "suicidal_ideation"
	IndicatorSelfHarm         = "self_harm"
	IndicatorPanic            = "panic"
	IndicatorAcuteAnxiety     = "acute_anxiety"
	IndicatorPhysical         = "physical"
	IndicatorCognitive        = "cognitive"
	IndicatorEmotional        = "emotional"
	IndicatorSeverity         = "severity"
	IndicatorHopelessness     = "hopelessness"
)

var indicatorNames = []string{
	IndicatorSuicidalIdeation,
	IndicatorSelfHarm,
	IndicatorPanic,
	IndicatorAcuteAnxiety,
	IndicatorPhysical,
	IndicatorCognitive,
	IndicatorEmotional,
	IndicatorSeverity,
	IndicatorHopelessness,
}

// rawPatternSet is the YAML shape of a pattern-set file.
type rawPatternSet struct {
	Version    int                 `yaml:"version"`
	Indicators map[string][]string `yaml:"indicators"`
	Colloquial []ColloquialExpr    `yaml:"colloquial"`
	Fallback   []string            `yaml:"fallback_terms"`
}

// ColloquialExpr groups regionally idiomatic distress terms under one name.
type ColloquialExpr struct {
	Name  string   `yaml:"name"`
	Terms []string `yaml:"terms"`
}

// PatternSet is the compiled, read-only pattern configuration shared by every
// analysis. Built once at startup and never mutated afterwards.
type PatternSet struct {
	Version       int
	Indicators    map[string][]*regexp.Regexp
	Colloquial    []ColloquialExpr
	FallbackTerms []string
}

// LoadPatterns loads the pattern set from path, or the embedded defaults when
// path is empty.
func LoadPatterns(path string) (*PatternSet, error) {
	data := defaultPatterns
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read pattern file %s: %w", path, err)
		}
		data = b
	}

	var raw rawPatternSet
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse pattern file: %w", err)
	}

	return compilePatterns(&raw)
}

func compilePatterns(raw *rawPatternSet) (*PatternSet, error) {
	ps := &PatternSet{
		Version:       raw.Version,
		Indicators:    make(map[string][]*regexp.Regexp, len(indicatorNames)),
		Colloquial:    raw.Colloquial,
		FallbackTerms: raw.Fallback,
	}

	for name, exprs := range raw.Indicators {
		if !isIndicatorName(name) {
			return nil, fmt.Errorf("unknown indicator category %q", name)
		}
		compiled := make([]*regexp.Regexp, 0, len(exprs))
		for _, expr := range exprs {
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern for %s: %w", name, err)
			}
			compiled = append(compiled, re)
		}
		ps.Indicators[name] = compiled
	}

	if len(ps.FallbackTerms) == 0 {
		return nil, fmt.Errorf("pattern set has no fallback terms")
	}

	return ps, nil
}

func isIndicatorName(name string) bool {
	for _, n := range indicatorNames {
		if n == name {
			return true
		}
	}
	return false
}
