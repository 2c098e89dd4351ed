// Package knowledge holds the static catalog of design-pattern detection
// criteria: indicator phrases, numeric thresholds, anti-pattern red flags,
// and advisory text. The catalog is read-only after construction and safe
// for unsynchronized concurrent reads.
package knowledge

import (
	"fmt"
	"sort"
	"strings"
)

// ComplexityLevel is the ordinal complexity tier a pattern is suited for.
type ComplexityLevel string

const (
	ComplexitySimple     ComplexityLevel = "simple"
	ComplexityModerate   ComplexityLevel = "moderate"
	ComplexityComplex    ComplexityLevel = "complex"
	ComplexityEnterprise ComplexityLevel = "enterprise"
)

// Rank orders complexity tiers: simple < moderate < complex < enterprise.
func (c ComplexityLevel) Rank() int {
	switch c {
	case ComplexitySimple:
		return 1
	case ComplexityModerate:
		return 2
	case ComplexityComplex:
		return 3
	case ComplexityEnterprise:
		return 4
	default:
		return 0
	}
}

// PatternCriteria describes when a pattern applies.
type PatternCriteria struct {
	MinimumComplexity ComplexityLevel
	Indicators        []string       // Phrases/scenarios that suggest this pattern
	Thresholds        map[string]int // Named numeric thresholds (e.g. "algorithms": 3)
	UseCases          []string
	Benefits          []string
}

// AntiPatternCriteria describes when a pattern is a misuse.
type AntiPatternCriteria struct {
	RedFlags           []string // Phrases that indicate pattern misuse
	ScenariosToAvoid   []string
	BetterAlternatives []string
	CommonMistakes     []string
}

// AdvancedNotes carries condensed advanced-scenario advisory text.
type AdvancedNotes struct {
	Threading   string
	Performance string
	Testing     string
	Enterprise  string
}

// PatternKnowledge aggregates everything known about one pattern.
type PatternKnowledge struct {
	Name               string
	Category           string // creational, structural, behavioral
	Description        string
	WhenToUse          PatternCriteria
	WhenNotToUse       AntiPatternCriteria
	Advanced           AdvancedNotes
	Alternatives       []string
	ComplexityScore    int // 1-10, implementation complexity
	LearningDifficulty int // 1-10, how hard to understand
}

// IndicatorScore pairs a pattern name with an indicator-match score.
type IndicatorScore struct {
	PatternName string
	Score       float64
}

// AntiPatternWarning pairs a pattern name with a red-flag warning message.
type AntiPatternWarning struct {
	PatternName string
	Warning     string
}

// Base is the pattern knowledge registry. Iteration order is the fixed
// catalog order, which keeps indicator-score tie-breaks deterministic.
type Base struct {
	names  []string
	byName map[string]PatternKnowledge
}

// New builds the registry from the built-in catalog.
func New() *Base {
	b := &Base{byName: make(map[string]PatternKnowledge, len(catalog))}
	for _, k := range catalog {
		key := strings.ToLower(k.key)
		b.names = append(b.names, key)
		b.byName[key] = k.knowledge
	}
	return b
}

// Names returns pattern keys in registry order.
func (b *Base) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Lookup returns the knowledge for a pattern name, case-insensitive.
func (b *Base) Lookup(name string) (PatternKnowledge, bool) {
	k, ok := b.byName[strings.ToLower(name)]
	return k, ok
}

// ByCategory returns all patterns in a category, in registry order.
func (b *Base) ByCategory(category string) []PatternKnowledge {
	var out []PatternKnowledge
	for _, name := range b.names {
		if k := b.byName[name]; k.Category == category {
			out = append(out, k)
		}
	}
	return out
}

// Threshold returns a named numeric threshold for a pattern, or fallback
// when the pattern or key is absent. Detector thresholds live here rather
// than as per-detector constants.
func (b *Base) Threshold(pattern, key string, fallback int) int {
	k, ok := b.Lookup(pattern)
	if !ok {
		return fallback
	}
	if v, ok := k.WhenToUse.Thresholds[key]; ok {
		return v
	}
	return fallback
}

// ScoreIndicators scores each pattern against free-text tokens. Every
// indicator phrase containing a token as a case-insensitive substring adds
// 1/|indicators|; scores cap at 1.0 and zero-score patterns are excluded.
// The result is sorted descending by score; ties keep registry order.
func (b *Base) ScoreIndicators(tokens []string) []IndicatorScore {
	var results []IndicatorScore

	for _, name := range b.names {
		k := b.byName[name]
		total := len(k.WhenToUse.Indicators)
		if total == 0 {
			continue
		}

		var score float64
		for _, token := range tokens {
			lower := strings.ToLower(token)
			for _, indicator := range k.WhenToUse.Indicators {
				if strings.Contains(strings.ToLower(indicator), lower) {
					score += 1.0 / float64(total)
				}
			}
		}

		if score > 0 {
			results = append(results, IndicatorScore{
				PatternName: name,
				Score:       min(score, 1.0),
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// DetectAntiPatternMentions scans text for red-flag phrases. A pattern may
// emit multiple warnings, one per matching red flag. Absent matches yield
// an empty result; this never errors.
func (b *Base) DetectAntiPatternMentions(text string) []AntiPatternWarning {
	lower := strings.ToLower(text)
	var warnings []AntiPatternWarning

	for _, name := range b.names {
		k := b.byName[name]
		for _, flag := range k.WhenNotToUse.RedFlags {
			if strings.Contains(lower, strings.ToLower(flag)) {
				warnings = append(warnings, AntiPatternWarning{
					PatternName: name,
					Warning:     fmt.Sprintf("potential %s anti-pattern detected: %s", name, flag),
				})
			}
		}
	}
	return warnings
}

// ComplexityRecommendation advises whether a pattern fits a scenario's
// complexity tier.
func (b *Base) ComplexityRecommendation(pattern string, scenario ComplexityLevel) string {
	k, ok := b.Lookup(pattern)
	if !ok {
		return "pattern not found"
	}
	if scenario.Rank() < k.WhenToUse.MinimumComplexity.Rank() {
		return fmt.Sprintf("%s might be overkill for %s scenarios", k.Name, scenario)
	}
	return fmt.Sprintf("%s is appropriate for %s scenarios", k.Name, scenario)
}
