package models

import (
	"path/filepath"
	"testing"
)

func TestInsightPriorityScore(t *testing.T) {
	insight := ArchitecturalInsight{
		Confidence: ConfidenceHigh,
		Impact:     "High",
		Effort:     "Medium",
	}
	want := 0.8*0.4 + 0.7*0.2 + 0.8*0.4
	if got := insight.PriorityScore(); got != want {
		t.Errorf("PriorityScore() = %v, want %v", got, want)
	}
}

func TestAssessmentInsightScore(t *testing.T) {
	// The assessment insight always carries "N/A" effort; the effort term
	// must drop out instead of panicking or going negative.
	assessment := ArchitecturalInsight{
		Confidence: ConfidenceHigh,
		Impact:     "Critical",
		Effort:     "N/A",
	}
	want := 0.8*0.4 + 1.0*0.4
	if got := assessment.PriorityScore(); got != want {
		t.Errorf("PriorityScore() = %v, want %v", got, want)
	}
}

func TestAllOpportunities(t *testing.T) {
	analysis := RepositoryAnalysis{
		OpportunitiesByFile: map[string][]PatternOpportunity{
			"a.py": {{PatternName: "singleton"}, {PatternName: "builder"}},
			"b.py": {{PatternName: "strategy"}},
		},
	}
	if got := len(analysis.AllOpportunities()); got != 3 {
		t.Errorf("AllOpportunities() returned %d, want 3", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	analysis := &RepositoryAnalysis{
		RepositoryPath:     "/tmp/project",
		TotalFilesAnalyzed: 2,
		TotalOpportunities: 1,
		OpportunitiesByFile: map[string][]PatternOpportunity{
			"app/user.py": {{
				PatternName:     "singleton",
				OpportunityType: OpportunityAntiPattern,
				Confidence:      ConfidenceCritical,
				FilePath:        "app/user.py",
				LineNumber:      4,
				LineEnd:         12,
				Description:     "Anti-pattern: UserModel should not be a singleton",
				EffortEstimate:  "Low",
				ImpactEstimate:  "High",
			}},
		},
		ArchitecturalInsights: []ArchitecturalInsight{{
			InsightType:     InsightAssessment,
			Title:           "Codebase Complexity Assessment",
			Description:     "Complexity Level: High (Anti-patterns detected)",
			AffectedFiles:   []string{},
			Confidence:      ConfidenceHigh,
			Impact:          "Critical",
			Effort:          "N/A",
			Recommendations: []string{"Focus on eliminating anti-patterns first"},
		}},
		PatternUsageSummary:    map[string]int{"singleton": 1},
		ComplexityAssessment:   "Complexity Level: High (Anti-patterns detected)",
		RecommendationsSummary: []string{"Focus on eliminating anti-patterns first"},
	}

	path := filepath.Join(t.TempDir(), "analysis.json")
	if err := analysis.SaveJSON(path); err != nil {
		t.Fatalf("SaveJSON() error: %v", err)
	}

	loaded, err := LoadAnalysis(path)
	if err != nil {
		t.Fatalf("LoadAnalysis() error: %v", err)
	}

	if loaded.RepositoryPath != analysis.RepositoryPath {
		t.Errorf("RepositoryPath = %q, want %q", loaded.RepositoryPath, analysis.RepositoryPath)
	}
	if loaded.TotalOpportunities != 1 {
		t.Errorf("TotalOpportunities = %d, want 1", loaded.TotalOpportunities)
	}
	opps := loaded.OpportunitiesByFile["app/user.py"]
	if len(opps) != 1 {
		t.Fatalf("expected 1 opportunity for app/user.py, got %d", len(opps))
	}
	if opps[0].Confidence != ConfidenceCritical {
		t.Errorf("Confidence = %q, want critical", opps[0].Confidence)
	}
	if opps[0].OpportunityType != OpportunityAntiPattern {
		t.Errorf("OpportunityType = %q, want anti_pattern_detected", opps[0].OpportunityType)
	}
	if len(loaded.ArchitecturalInsights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(loaded.ArchitecturalInsights))
	}
	if loaded.ArchitecturalInsights[0].Effort != "N/A" {
		t.Errorf("insight effort = %q, want N/A", loaded.ArchitecturalInsights[0].Effort)
	}
}

func TestLoadAnalysisMissingFile(t *testing.T) {
	if _, err := LoadAnalysis(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadAnalysis() on missing file should fail")
	}
}

func TestStringerValues(t *testing.T) {
	if ConfidenceCritical.String() != "critical" {
		t.Errorf("Confidence.String() = %q", ConfidenceCritical.String())
	}
	if OpportunityRefactor.String() != "refactor_to_pattern" {
		t.Errorf("OpportunityType.String() = %q", OpportunityRefactor.String())
	}
	if InsightAssessment.String() != "assessment" {
		t.Errorf("InsightType.String() = %q", InsightAssessment.String())
	}
}
