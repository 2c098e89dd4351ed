// Package report renders a RepositoryAnalysis as a human-readable report.
package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/panbanda/patternlens/internal/analyzer"
	"github.com/panbanda/patternlens/internal/output"
	"github.com/panbanda/patternlens/pkg/models"
)

const (
	reportTitle       = "Repository Pattern Analysis Report"
	topInsights       = 5
	maxActionItems    = 8
	maxFileFindings   = 8
	highPriorityScore = 0.7
)

// Write renders the analysis through a formatter in its configured format.
func Write(f *output.Formatter, analysis *models.RepositoryAnalysis) error {
	return f.Output(Build(analysis))
}

// Build assembles the report renderable: summary statistics, the pattern
// summary table, top insights, priority action items, and high-priority
// file findings, in that fixed order.
func Build(analysis *models.RepositoryAnalysis) *output.Report {
	r := &output.Report{
		Title: reportTitle,
		Data:  analysis,
	}

	r.Sections = append(r.Sections, summarySection(analysis))

	if analysis.TotalOpportunities == 0 {
		r.Sections = append(r.Sections, &output.Section{
			Content: "No pattern opportunities detected. Your codebase appears well-structured.",
		})
		return r
	}

	r.Sections = append(r.Sections,
		patternSummaryTable(analysis),
		insightsSection(analysis),
		actionItemsSection(analysis),
		fileFindingsSection(analysis),
	)
	return r
}

func summarySection(analysis *models.RepositoryAnalysis) *output.Section {
	var b strings.Builder
	fmt.Fprintf(&b, "Repository: %s\n", analysis.RepositoryPath)
	fmt.Fprintf(&b, "Files Analyzed: %d\n", analysis.TotalFilesAnalyzed)
	fmt.Fprintf(&b, "Total Opportunities: %d\n", analysis.TotalOpportunities)
	fmt.Fprintf(&b, "Complexity: %s", analysis.ComplexityAssessment)
	return &output.Section{Content: b.String()}
}

// patternSummaryTable lists per-pattern counts, highest first, ties broken
// by pattern name.
func patternSummaryTable(analysis *models.RepositoryAnalysis) *output.Table {
	type patternCount struct {
		name  string
		count int
	}
	counts := make([]patternCount, 0, len(analysis.PatternUsageSummary))
	for name, count := range analysis.PatternUsageSummary {
		counts = append(counts, patternCount{name, count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].name < counts[j].name
	})

	rows := make([][]string, 0, len(counts))
	for _, pc := range counts {
		rows = append(rows, []string{titleCase(pc.name), fmt.Sprintf("%d", pc.count)})
	}

	return output.NewTable(
		"Pattern Opportunity Summary",
		[]string{"Pattern", "Opportunities"},
		rows, nil, nil,
	)
}

func insightsSection(analysis *models.RepositoryAnalysis) *output.Section {
	section := &output.Section{Title: "Key Architectural Insights"}

	for i, insight := range analyzer.TopInsights(analysis.ArchitecturalInsights, topInsights) {
		var b strings.Builder
		fmt.Fprintf(&b, "Type: %s\n", titleCase(strings.ReplaceAll(string(insight.InsightType), "_", " ")))
		fmt.Fprintf(&b, "Impact: %s | Effort: %s\n", insight.Impact, insight.Effort)
		fmt.Fprintf(&b, "Description: %s\n", insight.Description)
		if len(insight.AffectedFiles) > 0 {
			fmt.Fprintf(&b, "Affected Files: %d files\n", len(insight.AffectedFiles))
		}
		b.WriteString("Recommendations:")
		recs := insight.Recommendations
		if len(recs) > 3 {
			recs = recs[:3]
		}
		for _, rec := range recs {
			fmt.Fprintf(&b, "\n- %s", rec)
		}

		section.Sections = append(section.Sections, output.Section{
			Title:   fmt.Sprintf("%d. %s", i+1, insight.Title),
			Content: b.String(),
		})
	}

	return section
}

func actionItemsSection(analysis *models.RepositoryAnalysis) *output.Section {
	var b strings.Builder
	items := analysis.RecommendationsSummary
	if len(items) > maxActionItems {
		items = items[:maxActionItems]
	}
	for i, rec := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, rec)
	}
	return &output.Section{
		Title:   "Priority Action Items",
		Content: b.String(),
	}
}

// fileFindingsSection lists the highest-priority per-file findings, score
// above 0.7, capped at eight.
func fileFindingsSection(analysis *models.RepositoryAnalysis) *output.Section {
	var high []models.PatternOpportunity
	for _, opp := range sortedOpportunities(analysis) {
		if opp.PriorityScore() > highPriorityScore {
			high = append(high, opp)
		}
	}
	sort.SliceStable(high, func(i, j int) bool {
		return high[i].PriorityScore() > high[j].PriorityScore()
	})
	if len(high) > maxFileFindings {
		high = high[:maxFileFindings]
	}

	section := &output.Section{Title: "High-Priority File Opportunities"}
	var b strings.Builder
	for i, opp := range high {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s in %s:%d\n", titleCase(opp.PatternName), filepath.Base(opp.FilePath), opp.LineNumber)
		fmt.Fprintf(&b, "- %s\n", opp.Description)
		fmt.Fprintf(&b, "- Effort: %s | Impact: %s", opp.EffortEstimate, opp.ImpactEstimate)
	}
	section.Content = b.String()
	return section
}

// Markdown renders the analysis as a standalone markdown document.
func Markdown(analysis *models.RepositoryAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", reportTitle)
	fmt.Fprintf(&b, "**Repository**: %s\n", analysis.RepositoryPath)
	fmt.Fprintf(&b, "**Files Analyzed**: %d\n", analysis.TotalFilesAnalyzed)
	fmt.Fprintf(&b, "**Total Opportunities**: %d\n", analysis.TotalOpportunities)
	fmt.Fprintf(&b, "**Complexity**: %s\n\n", analysis.ComplexityAssessment)

	if analysis.TotalOpportunities == 0 {
		b.WriteString("**Excellent!** No pattern opportunities detected. Your codebase appears well-structured.\n\n")
		return b.String()
	}

	b.WriteString("## Pattern Opportunity Summary\n\n")
	type patternCount struct {
		name  string
		count int
	}
	counts := make([]patternCount, 0, len(analysis.PatternUsageSummary))
	for name, count := range analysis.PatternUsageSummary {
		counts = append(counts, patternCount{name, count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].name < counts[j].name
	})
	for _, pc := range counts {
		fmt.Fprintf(&b, "- **%s**: %d opportunities\n", titleCase(pc.name), pc.count)
	}

	b.WriteString("\n## Key Architectural Insights\n\n")
	for i, insight := range analyzer.TopInsights(analysis.ArchitecturalInsights, topInsights) {
		fmt.Fprintf(&b, "### %d. %s\n", i+1, insight.Title)
		fmt.Fprintf(&b, "**Type**: %s\n", titleCase(strings.ReplaceAll(string(insight.InsightType), "_", " ")))
		fmt.Fprintf(&b, "**Impact**: %s | **Effort**: %s\n", insight.Impact, insight.Effort)
		fmt.Fprintf(&b, "**Description**: %s\n", insight.Description)
		if len(insight.AffectedFiles) > 0 {
			fmt.Fprintf(&b, "**Affected Files**: %d files\n", len(insight.AffectedFiles))
		}
		b.WriteString("**Recommendations**:\n")
		recs := insight.Recommendations
		if len(recs) > 3 {
			recs = recs[:3]
		}
		for _, rec := range recs {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Priority Action Items\n\n")
	items := analysis.RecommendationsSummary
	if len(items) > maxActionItems {
		items = items[:maxActionItems]
	}
	for i, rec := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}

	b.WriteString("\n## High-Priority File Opportunities\n\n")
	var high []models.PatternOpportunity
	for _, opp := range sortedOpportunities(analysis) {
		if opp.PriorityScore() > highPriorityScore {
			high = append(high, opp)
		}
	}
	sort.SliceStable(high, func(i, j int) bool {
		return high[i].PriorityScore() > high[j].PriorityScore()
	})
	if len(high) > maxFileFindings {
		high = high[:maxFileFindings]
	}
	for _, opp := range high {
		fmt.Fprintf(&b, "**%s** in `%s:%d`\n", titleCase(opp.PatternName), filepath.Base(opp.FilePath), opp.LineNumber)
		fmt.Fprintf(&b, "- %s\n", opp.Description)
		fmt.Fprintf(&b, "- Effort: %s | Impact: %s\n\n", opp.EffortEstimate, opp.ImpactEstimate)
	}

	return b.String()
}

// sortedOpportunities flattens the per-file map in path order so repeated
// renders are byte-identical.
func sortedOpportunities(analysis *models.RepositoryAnalysis) []models.PatternOpportunity {
	files := make([]string, 0, len(analysis.OpportunitiesByFile))
	for path := range analysis.OpportunitiesByFile {
		files = append(files, path)
	}
	sort.Strings(files)

	var all []models.PatternOpportunity
	for _, path := range files {
		all = append(all, analysis.OpportunitiesByFile[path]...)
	}
	return all
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
