package knowledge

import (
	"reflect"
	"strings"
	"testing"
)

func TestNewRegistersAllPatterns(t *testing.T) {
	b := New()
	want := []string{
		"singleton", "factory", "observer", "strategy", "command",
		"builder", "adapter", "decorator", "state", "repository",
	}
	if got := b.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestLookup(t *testing.T) {
	b := New()

	k, ok := b.Lookup("singleton")
	if !ok {
		t.Fatal("Lookup(singleton) not found")
	}
	if k.Name != "Singleton Pattern" {
		t.Errorf("Name = %q", k.Name)
	}
	if k.Category != "creational" {
		t.Errorf("Category = %q", k.Category)
	}

	// Case-insensitive
	if _, ok := b.Lookup("Strategy"); !ok {
		t.Error("Lookup should be case-insensitive")
	}

	if _, ok := b.Lookup("flyweight"); ok {
		t.Error("Lookup(flyweight) should not be found")
	}
}

func TestByCategory(t *testing.T) {
	b := New()

	creational := b.ByCategory("creational")
	names := make([]string, 0, len(creational))
	for _, k := range creational {
		names = append(names, k.Name)
	}
	want := []string{"Singleton Pattern", "Factory Pattern", "Builder Pattern"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ByCategory(creational) = %v, want %v", names, want)
	}

	if got := b.ByCategory("nonexistent"); len(got) != 0 {
		t.Errorf("ByCategory(nonexistent) returned %d entries", len(got))
	}
}

func TestThreshold(t *testing.T) {
	b := New()

	tests := []struct {
		pattern  string
		key      string
		fallback int
		want     int
	}{
		{"builder", "constructor_parameters", 99, 5},
		{"builder", "high_confidence_parameters", 99, 7},
		{"builder", "high_effort_parameters", 99, 8},
		{"strategy", "chain_length", 99, 3},
		{"strategy", "high_confidence_chain", 99, 4},
		{"factory", "type_check_chain", 99, 2},
		{"factory", "return_calls", 99, 2},
		{"builder", "no_such_key", 42, 42},
		{"no_such_pattern", "anything", 7, 7},
	}
	for _, tt := range tests {
		if got := b.Threshold(tt.pattern, tt.key, tt.fallback); got != tt.want {
			t.Errorf("Threshold(%s, %s) = %d, want %d", tt.pattern, tt.key, got, tt.want)
		}
	}
}

func TestScoreIndicators(t *testing.T) {
	b := New()

	scores := b.ScoreIndicators([]string{"single instance", "global access"})
	if len(scores) == 0 {
		t.Fatal("expected at least one match")
	}
	if scores[0].PatternName != "singleton" {
		t.Errorf("top match = %q, want singleton", scores[0].PatternName)
	}

	for _, s := range scores {
		if s.Score <= 0 || s.Score > 1.0 {
			t.Errorf("score %v for %s out of (0,1]", s.Score, s.PatternName)
		}
	}

	// Descending order
	for i := 1; i < len(scores); i++ {
		if scores[i-1].Score < scores[i].Score {
			t.Error("scores are not sorted descending")
		}
	}
}

func TestScoreIndicatorsDeterministic(t *testing.T) {
	b := New()
	tokens := []string{"create", "event", "algorithm"}

	first := b.ScoreIndicators(tokens)
	for i := 0; i < 10; i++ {
		again := b.ScoreIndicators(tokens)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed: %v vs %v", i, first, again)
		}
	}
}

func TestScoreIndicatorsNoMatch(t *testing.T) {
	b := New()
	if got := b.ScoreIndicators([]string{"zzzzz"}); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestDetectAntiPatternMentions(t *testing.T) {
	b := New()

	warnings := b.DetectAntiPatternMentions("we just want global variables for the session")
	found := false
	for _, w := range warnings {
		if w.PatternName == "singleton" {
			found = true
			if !strings.Contains(w.Warning, "potential singleton anti-pattern detected") {
				t.Errorf("warning text = %q", w.Warning)
			}
		}
	}
	if !found {
		t.Error("expected a singleton warning")
	}

	if got := b.DetectAntiPatternMentions("nothing suspicious here at all"); len(got) != 0 {
		t.Errorf("expected no warnings, got %v", got)
	}
}

func TestComplexityRecommendation(t *testing.T) {
	b := New()

	got := b.ComplexityRecommendation("decorator", ComplexitySimple)
	if !strings.Contains(got, "overkill") {
		t.Errorf("expected overkill warning, got %q", got)
	}

	got = b.ComplexityRecommendation("adapter", ComplexityEnterprise)
	if !strings.Contains(got, "appropriate") {
		t.Errorf("expected appropriate, got %q", got)
	}

	if got := b.ComplexityRecommendation("nope", ComplexitySimple); got != "pattern not found" {
		t.Errorf("unknown pattern = %q", got)
	}
}

func TestCatalogIntegrity(t *testing.T) {
	b := New()
	for _, name := range b.Names() {
		k, _ := b.Lookup(name)
		if k.Description == "" {
			t.Errorf("%s: empty description", name)
		}
		if len(k.WhenToUse.Indicators) == 0 {
			t.Errorf("%s: no indicators", name)
		}
		if len(k.WhenNotToUse.RedFlags) == 0 {
			t.Errorf("%s: no red flags", name)
		}
		if k.ComplexityScore < 1 || k.ComplexityScore > 10 {
			t.Errorf("%s: complexity score %d out of range", name, k.ComplexityScore)
		}
		if k.LearningDifficulty < 1 || k.LearningDifficulty > 10 {
			t.Errorf("%s: learning difficulty %d out of range", name, k.LearningDifficulty)
		}
	}
}
