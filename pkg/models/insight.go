package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// InsightType classifies a codebase-level architectural insight.
type InsightType string

const (
	InsightArchitecturalPattern InsightType = "architectural_pattern"
	InsightAntiPattern          InsightType = "anti_pattern"
	InsightOptimization         InsightType = "optimization"
	InsightComplexityReduction  InsightType = "complexity_reduction"
	InsightAssessment           InsightType = "assessment"
)

// ArchitecturalInsight is a codebase-wide conclusion derived by aggregating
// opportunities across files.
type ArchitecturalInsight struct {
	InsightType     InsightType `json:"insight_type"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	AffectedFiles   []string    `json:"affected_files"`
	Confidence      Confidence  `json:"confidence"`
	Impact          string      `json:"impact"` // "Low", "Medium", "High", "Critical"
	Effort          string      `json:"effort"` // "Low", "Medium", "High", "N/A"
	Recommendations []string    `json:"recommendations"`
}

// Insight weighting differs from opportunity weighting: organizational
// impact counts for more (40%) and effort for less (20%).
var insightEffortWeights = map[string]float64{
	"Low":    1.0,
	"Medium": 0.7,
	"High":   0.4,
}

var insightImpactWeights = map[string]float64{
	"Low":      0.3,
	"Medium":   0.6,
	"High":     0.8,
	"Critical": 1.0,
}

// PriorityScore combines confidence (40%), effort-inverse (20%), and
// impact (40%). Labels outside the tables ("N/A" effort) weigh zero.
func (i ArchitecturalInsight) PriorityScore() float64 {
	return i.Confidence.Weight()*0.4 +
		insightEffortWeights[i.Effort]*0.2 +
		insightImpactWeights[i.Impact]*0.4
}

// RepositoryAnalysis is the immutable snapshot of one aggregator run.
type RepositoryAnalysis struct {
	RepositoryPath         string                          `json:"repository_path"`
	TotalFilesAnalyzed     int                             `json:"total_files_analyzed"`
	TotalOpportunities     int                             `json:"total_opportunities"`
	OpportunitiesByFile    map[string][]PatternOpportunity `json:"opportunities_by_file"`
	ArchitecturalInsights  []ArchitecturalInsight          `json:"architectural_insights"`
	PatternUsageSummary    map[string]int                  `json:"pattern_usage_summary"`
	ComplexityAssessment   string                          `json:"complexity_assessment"`
	RecommendationsSummary []string                        `json:"recommendations_summary"`
}

// AllOpportunities flattens the per-file map. Order is unspecified; callers
// that need determinism sort the result.
func (a *RepositoryAnalysis) AllOpportunities() []PatternOpportunity {
	var all []PatternOpportunity
	for _, opportunities := range a.OpportunitiesByFile {
		all = append(all, opportunities...)
	}
	return all
}

// SaveJSON writes the analysis snapshot to path as indented JSON with all
// enum fields rendered as their lowercase string names. Write failures are
// surfaced to the caller.
func (a *RepositoryAnalysis) SaveJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create analysis file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	return nil
}

// LoadAnalysis reads a snapshot previously written by SaveJSON.
func LoadAnalysis(path string) (*RepositoryAnalysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open analysis file: %w", err)
	}
	defer f.Close()

	var analysis RepositoryAnalysis
	if err := json.NewDecoder(f).Decode(&analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return &analysis, nil
}
