package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/panbanda/patternlens/internal/fileproc"
	"github.com/panbanda/patternlens/internal/scanner"
	"github.com/panbanda/patternlens/pkg/config"
	"github.com/panbanda/patternlens/pkg/models"
	"github.com/panbanda/patternlens/pkg/parser"
)

// Aggregation thresholds for architectural insights.
const (
	singletonOveruseMin   = 2
	sharedResourceMin     = 2
	factoryClusterMin     = 3
	observerClusterMin    = 2
	strategyClusterMin    = 3
	builderClusterMin     = 2
	patternOveruseMin     = 5
	complexityOverloadMin = 20
	highConfidenceMin     = 5
	mediumComplexityMin   = 10
	lowMediumMin          = 5
	topInsightCount       = 5
	maxRecommendations    = 10
)

// RepositoryAnalyzer analyzes an entire repository for pattern
// opportunities and derives architectural insights from them.
type RepositoryAnalyzer struct {
	root        string
	cfg         *config.Config
	file        *FileAnalyzer
	workers     int
	extraTokens []string
	onProgress  fileproc.ProgressFunc
	onError     fileproc.ErrorFunc
	insights    []models.ArchitecturalInsight
}

// RepoOption is a functional option for configuring RepositoryAnalyzer.
type RepoOption func(*RepositoryAnalyzer)

// WithConfig applies exclusion tokens, worker count, and detector threshold
// overrides from a config.
func WithConfig(cfg *config.Config) RepoOption {
	return func(a *RepositoryAnalyzer) {
		a.cfg = cfg
	}
}

// WithWorkers sets the parallel analysis worker count. Zero means 2x CPU.
func WithWorkers(n int) RepoOption {
	return func(a *RepositoryAnalyzer) {
		a.workers = n
	}
}

// WithFileAnalyzer sets a custom file analyzer.
func WithFileAnalyzer(fa *FileAnalyzer) RepoOption {
	return func(a *RepositoryAnalyzer) {
		a.file = fa
	}
}

// WithExcludeTokens appends extra exclusion substrings to the configured
// set. The default exclusions always remain in effect.
func WithExcludeTokens(tokens ...string) RepoOption {
	return func(a *RepositoryAnalyzer) {
		a.extraTokens = append(a.extraTokens, tokens...)
	}
}

// WithProgress registers a callback invoked after each file is processed,
// whether it succeeded or not.
func WithProgress(fn fileproc.ProgressFunc) RepoOption {
	return func(a *RepositoryAnalyzer) {
		a.onProgress = fn
	}
}

// WithErrorHandler registers a callback for per-file failures. Failed files
// are skipped either way; the handler only observes them.
func WithErrorHandler(fn fileproc.ErrorFunc) RepoOption {
	return func(a *RepositoryAnalyzer) {
		a.onError = fn
	}
}

// NewRepositoryAnalyzer creates a repository analyzer rooted at the given
// directory.
func NewRepositoryAnalyzer(root string, opts ...RepoOption) *RepositoryAnalyzer {
	a := &RepositoryAnalyzer{root: root}
	for _, opt := range opts {
		opt(a)
	}
	if a.cfg == nil {
		a.cfg = config.DefaultConfig()
	}
	if len(a.extraTokens) > 0 {
		cfg := *a.cfg
		cfg.Exclude.Tokens = append(append([]string{}, a.cfg.Exclude.Tokens...), a.extraTokens...)
		a.cfg = &cfg
	}
	if a.workers == 0 {
		a.workers = a.cfg.Analysis.Workers
	}
	if a.file == nil {
		t := a.cfg.Thresholds
		a.file = NewFileAnalyzer(
			WithBuilderParameterThreshold(t.BuilderParameters),
			WithStrategyChainThreshold(t.StrategyChainLength),
			WithFactoryThresholds(t.FactoryTypeChecks, t.FactoryReturnCalls),
		)
	}
	return a
}

type fileResult struct {
	path          string
	opportunities []models.PatternOpportunity
}

// Analyze scans the repository, analyzes every eligible file in parallel,
// and aggregates the findings into a RepositoryAnalysis snapshot. Files
// that fail to read or parse are skipped; they do not fail the run.
func (a *RepositoryAnalyzer) Analyze() (*models.RepositoryAnalysis, error) {
	files, err := scanner.NewScanner(a.cfg).ScanDir(a.root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan repository: %w", err)
	}

	results := fileproc.MapFilesN(files, a.workers, func(p *parser.Parser, path string) (fileResult, error) {
		opportunities, err := a.file.AnalyzeFile(p, path)
		if err != nil {
			return fileResult{}, err
		}
		return fileResult{path: path, opportunities: opportunities}, nil
	}, a.onProgress, a.onError)

	// Worker completion order is arbitrary; restore path order so insight
	// generation and affected-file lists are deterministic.
	sort.Slice(results, func(i, j int) bool {
		return results[i].path < results[j].path
	})

	opportunitiesByFile := make(map[string][]models.PatternOpportunity)
	var all []models.PatternOpportunity
	for _, r := range results {
		if len(r.opportunities) > 0 {
			opportunitiesByFile[r.path] = r.opportunities
			all = append(all, r.opportunities...)
		}
	}

	byPattern := make(map[string][]models.PatternOpportunity)
	for _, opp := range all {
		byPattern[opp.PatternName] = append(byPattern[opp.PatternName], opp)
	}

	a.insights = nil
	a.analyzeSingletonUsage(byPattern["singleton"])
	a.analyzeFactoryOpportunities(byPattern["factory"])
	a.analyzeObserverOpportunities(byPattern["observer"])
	a.analyzeStrategyOpportunities(byPattern["strategy"])
	a.analyzeBuilderOpportunities(byPattern["builder"])
	a.analyzeRepositoryOpportunities(byPattern["repository"])
	a.analyzeCrossPatternOpportunities(byPattern)
	a.detectArchitecturalAntiPatterns(all)
	a.assessOverallComplexity(all)

	patternCounts := make(map[string]int)
	for _, opp := range all {
		patternCounts[opp.PatternName]++
	}

	return &models.RepositoryAnalysis{
		RepositoryPath:         a.root,
		TotalFilesAnalyzed:     len(results),
		TotalOpportunities:     len(all),
		OpportunitiesByFile:    opportunitiesByFile,
		ArchitecturalInsights:  a.insights,
		PatternUsageSummary:    patternCounts,
		ComplexityAssessment:   a.complexityAssessment(),
		RecommendationsSummary: a.summarizeRecommendations(),
	}, nil
}

func (a *RepositoryAnalyzer) analyzeSingletonUsage(opportunities []models.PatternOpportunity) {
	if len(opportunities) == 0 {
		return
	}

	var antiPatterns, valid []models.PatternOpportunity
	for _, opp := range opportunities {
		if opp.OpportunityType == models.OpportunityAntiPattern {
			antiPatterns = append(antiPatterns, opp)
		} else {
			valid = append(valid, opp)
		}
	}

	if len(antiPatterns) >= singletonOveruseMin {
		a.insights = append(a.insights, models.ArchitecturalInsight{
			InsightType: models.InsightAntiPattern,
			Title:       "Singleton Pattern Overuse Detected",
			Description: fmt.Sprintf("Found %d inappropriate singleton implementations. "+
				"Singletons should not be used for data models or entity classes.", len(antiPatterns)),
			AffectedFiles: paths(antiPatterns),
			Confidence:    models.ConfidenceHigh,
			Impact:        "High",
			Effort:        "Medium",
			Recommendations: []string{
				"Convert data model singletons to regular classes",
				"Use dependency injection for better testability",
				"Consider Repository pattern for data access centralization",
				"Review singleton usage - ensure they're truly needed",
			},
		})
	}

	if len(valid) >= sharedResourceMin {
		var configFiles, dbFiles []string
		for _, opp := range valid {
			lower := strings.ToLower(opp.FilePath)
			if strings.Contains(lower, "config") {
				configFiles = append(configFiles, opp.FilePath)
			}
			if containsAny(lower, []string{"database", "connection", "db"}) {
				dbFiles = append(dbFiles, opp.FilePath)
			}
		}

		if len(configFiles) > 0 || len(dbFiles) > 0 {
			a.insights = append(a.insights, models.ArchitecturalInsight{
				InsightType:   models.InsightOptimization,
				Title:         "Centralize Shared Resources with Singleton",
				Description:   "Multiple configuration or database connection classes could benefit from singleton pattern.",
				AffectedFiles: append(configFiles, dbFiles...),
				Confidence:    models.ConfidenceMedium,
				Impact:        "Medium",
				Effort:        "Low",
				Recommendations: []string{
					"Implement singleton for configuration management",
					"Centralize database connections with singleton pattern",
					"Ensure thread-safety for multi-threaded applications",
					"Consider lazy initialization for performance",
				},
			})
		}
	}
}

func (a *RepositoryAnalyzer) analyzeFactoryOpportunities(opportunities []models.PatternOpportunity) {
	if len(opportunities) < factoryClusterMin {
		return
	}
	a.insights = append(a.insights, models.ArchitecturalInsight{
		InsightType: models.InsightArchitecturalPattern,
		Title:       "Standardize Object Creation with Factory Pattern",
		Description: fmt.Sprintf("Found %d factory pattern opportunities. "+
			"Consider implementing a consistent object creation strategy.", len(opportunities)),
		AffectedFiles: paths(opportunities),
		Confidence:    models.ConfidenceMedium,
		Impact:        "Medium",
		Effort:        "Medium",
		Recommendations: []string{
			"Implement factory methods for complex object creation",
			"Consider Abstract Factory for families of related objects",
			"Centralize creation logic to improve maintainability",
			"Use factories to support polymorphism and extensibility",
		},
	})
}

func (a *RepositoryAnalyzer) analyzeObserverOpportunities(opportunities []models.PatternOpportunity) {
	if len(opportunities) < observerClusterMin {
		return
	}
	a.insights = append(a.insights, models.ArchitecturalInsight{
		InsightType: models.InsightArchitecturalPattern,
		Title:       "Implement Event-Driven Architecture",
		Description: fmt.Sprintf("Found %d observer pattern opportunities. "+
			"Consider implementing a centralized event system.", len(opportunities)),
		AffectedFiles: paths(opportunities),
		Confidence:    models.ConfidenceMedium,
		Impact:        "High",
		Effort:        "Medium",
		Recommendations: []string{
			"Implement centralized event bus or observer registry",
			"Define clear event contracts and interfaces",
			"Consider async event handling for performance",
			"Implement proper error handling in event notifications",
		},
	})
}

func (a *RepositoryAnalyzer) analyzeStrategyOpportunities(opportunities []models.PatternOpportunity) {
	if len(opportunities) < strategyClusterMin {
		return
	}
	a.insights = append(a.insights, models.ArchitecturalInsight{
		InsightType: models.InsightComplexityReduction,
		Title:       "Reduce Complexity with Strategy Pattern",
		Description: fmt.Sprintf("Found %d strategy pattern opportunities. "+
			"Multiple conditional chains suggest high algorithmic complexity.", len(opportunities)),
		AffectedFiles: paths(opportunities),
		Confidence:    models.ConfidenceHigh,
		Impact:        "Medium",
		Effort:        "Medium",
		Recommendations: []string{
			"Replace complex conditional logic with strategy patterns",
			"Create strategy interfaces for algorithm families",
			"Implement strategy selection mechanisms",
			"Consider configuration-driven strategy selection",
		},
	})
}

func (a *RepositoryAnalyzer) analyzeBuilderOpportunities(opportunities []models.PatternOpportunity) {
	if len(opportunities) < builderClusterMin {
		return
	}
	a.insights = append(a.insights, models.ArchitecturalInsight{
		InsightType: models.InsightOptimization,
		Title:       "Simplify Object Construction with Builder Pattern",
		Description: fmt.Sprintf("Found %d builder pattern opportunities. "+
			"Complex constructors suggest need for builder pattern.", len(opportunities)),
		AffectedFiles: paths(opportunities),
		Confidence:    models.ConfidenceMedium,
		Impact:        "Medium",
		Effort:        "Low",
		Recommendations: []string{
			"Implement builder pattern for complex object construction",
			"Use fluent interfaces for better readability",
			"Add validation at each construction step",
			"Consider immutable objects with builders",
		},
	})
}

func (a *RepositoryAnalyzer) analyzeRepositoryOpportunities(opportunities []models.PatternOpportunity) {
	if len(opportunities) == 0 {
		return
	}
	a.insights = append(a.insights, models.ArchitecturalInsight{
		InsightType:   models.InsightArchitecturalPattern,
		Title:         "Centralize Data Access with Repository Pattern",
		Description:   "Data access logic could benefit from repository pattern implementation.",
		AffectedFiles: paths(opportunities),
		Confidence:    models.ConfidenceMedium,
		Impact:        "High",
		Effort:        "High",
		Recommendations: []string{
			"Implement repository interfaces for data access",
			"Separate domain logic from data access logic",
			"Consider Unit of Work pattern for transaction management",
			"Implement repository abstractions for testing",
		},
	})
}

func (a *RepositoryAnalyzer) analyzeCrossPatternOpportunities(byPattern map[string][]models.PatternOpportunity) {
	if len(byPattern["factory"]) >= 1 && len(byPattern["strategy"]) >= 1 {
		a.insights = append(a.insights, models.ArchitecturalInsight{
			InsightType:   models.InsightArchitecturalPattern,
			Title:         "Combine Factory and Strategy Patterns",
			Description:   "Factory and Strategy opportunities detected. Consider creating strategies through factories.",
			AffectedFiles: uniquePaths(byPattern["factory"], byPattern["strategy"]),
			Confidence:    models.ConfidenceLow,
			Impact:        "Medium",
			Effort:        "Medium",
			Recommendations: []string{
				"Use Factory pattern to create Strategy instances",
				"Implement strategy registry for dynamic selection",
				"Consider configuration-driven strategy creation",
			},
		})
	}

	if len(byPattern["observer"]) >= 1 && len(byPattern["command"]) >= 1 {
		a.insights = append(a.insights, models.ArchitecturalInsight{
			InsightType:   models.InsightArchitecturalPattern,
			Title:         "Event Sourcing Architecture Opportunity",
			Description:   "Observer and Command patterns together suggest event sourcing possibilities.",
			AffectedFiles: uniquePaths(byPattern["observer"], byPattern["command"]),
			Confidence:    models.ConfidenceLow,
			Impact:        "High",
			Effort:        "High",
			Recommendations: []string{
				"Consider implementing event sourcing architecture",
				"Use Command pattern for event creation",
				"Use Observer pattern for event handling",
				"Implement event store for audit and replay capabilities",
			},
		})
	}
}

func (a *RepositoryAnalyzer) detectArchitecturalAntiPatterns(all []models.PatternOpportunity) {
	patternCounts := make(map[string]int)
	for _, opp := range all {
		patternCounts[opp.PatternName]++
	}

	var overused []string
	for pattern, count := range patternCounts {
		if count >= patternOveruseMin {
			overused = append(overused, pattern)
		}
	}
	sort.Strings(overused)

	if len(overused) > 0 {
		parts := make([]string, 0, len(overused))
		for _, pattern := range overused {
			parts = append(parts, fmt.Sprintf("%s (%d)", pattern, patternCounts[pattern]))
		}
		a.insights = append(a.insights, models.ArchitecturalInsight{
			InsightType: models.InsightAntiPattern,
			Title:       "Potential Pattern Overuse",
			Description: fmt.Sprintf("High number of pattern opportunities detected: %s. "+
				"Consider if simpler solutions might be more appropriate.", strings.Join(parts, ", ")),
			AffectedFiles: []string{},
			Confidence:    models.ConfidenceLow,
			Impact:        "Medium",
			Effort:        "Low",
			Recommendations: []string{
				"Review each pattern opportunity carefully",
				"Consider simpler alternatives where appropriate",
				"Ensure patterns solve real problems, not imaginary ones",
				"Follow YAGNI (You Aren't Gonna Need It) principle",
			},
		})
	}

	if len(all) >= complexityOverloadMin {
		a.insights = append(a.insights, models.ArchitecturalInsight{
			InsightType: models.InsightAntiPattern,
			Title:       "High Complexity Warning",
			Description: fmt.Sprintf("Found %d pattern opportunities. "+
				"High pattern density might indicate over-engineering.", len(all)),
			AffectedFiles: []string{},
			Confidence:    models.ConfidenceMedium,
			Impact:        "High",
			Effort:        "Low",
			Recommendations: []string{
				"Prioritize high-impact, low-effort improvements",
				"Focus on anti-pattern elimination first",
				"Consider architectural simplification",
				"Implement patterns incrementally, not all at once",
			},
		})
	}
}

// assessOverallComplexity appends the always-present assessment insight.
// It carries "N/A" effort, which intentionally weighs zero in the priority
// score.
func (a *RepositoryAnalyzer) assessOverallComplexity(all []models.PatternOpportunity) {
	antiPatterns := 0
	highConfidence := 0
	for _, opp := range all {
		if opp.OpportunityType == models.OpportunityAntiPattern {
			antiPatterns++
		}
		if opp.Confidence == models.ConfidenceHigh || opp.Confidence == models.ConfidenceCritical {
			highConfidence++
		}
	}

	var level, primary string
	switch {
	case antiPatterns > 0:
		level = "High (Anti-patterns detected)"
		primary = "Focus on eliminating anti-patterns first"
	case highConfidence >= highConfidenceMin:
		level = "Medium-High (Multiple clear improvement opportunities)"
		primary = "Implement high-confidence patterns for immediate benefits"
	case len(all) >= mediumComplexityMin:
		level = "Medium (Multiple opportunities available)"
		primary = "Prioritize patterns by business value and technical debt reduction"
	case len(all) >= lowMediumMin:
		level = "Low-Medium (Some improvement opportunities)"
		primary = "Selective pattern implementation based on team capacity"
	default:
		level = "Low (Well-structured codebase)"
		primary = "Maintain current good practices"
	}

	a.insights = append(a.insights, models.ArchitecturalInsight{
		InsightType:     models.InsightAssessment,
		Title:           "Codebase Complexity Assessment",
		Description:     fmt.Sprintf("Complexity Level: %s", level),
		AffectedFiles:   []string{},
		Confidence:      models.ConfidenceHigh,
		Impact:          "Critical",
		Effort:          "N/A",
		Recommendations: []string{primary},
	})
}

func (a *RepositoryAnalyzer) complexityAssessment() string {
	for _, insight := range a.insights {
		if insight.Title == "Codebase Complexity Assessment" {
			return insight.Description
		}
	}
	return "Unknown"
}

// summarizeRecommendations takes the first two recommendations from each of
// the top insights, deduplicated in order, capped at ten.
func (a *RepositoryAnalyzer) summarizeRecommendations() []string {
	top := TopInsights(a.insights, a.maxInsights())

	seen := make(map[string]struct{})
	var out []string
	for _, insight := range top {
		recs := insight.Recommendations
		if len(recs) > 2 {
			recs = recs[:2]
		}
		for _, rec := range recs {
			if _, ok := seen[rec]; ok {
				continue
			}
			seen[rec] = struct{}{}
			out = append(out, rec)
		}
	}

	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}
	return out
}

// maxInsights is the configured insight count feeding the recommendations
// summary; zero falls back to the default of five.
func (a *RepositoryAnalyzer) maxInsights() int {
	if a.cfg.Analysis.MaxInsights > 0 {
		return a.cfg.Analysis.MaxInsights
	}
	return topInsightCount
}

// TopInsights returns the n highest-priority insights. Ties keep the fixed
// generation order.
func TopInsights(insights []models.ArchitecturalInsight, n int) []models.ArchitecturalInsight {
	sorted := make([]models.ArchitecturalInsight, len(insights))
	copy(sorted, insights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PriorityScore() > sorted[j].PriorityScore()
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func paths(opportunities []models.PatternOpportunity) []string {
	out := make([]string, 0, len(opportunities))
	for _, opp := range opportunities {
		out = append(out, opp.FilePath)
	}
	return out
}

// uniquePaths merges opportunity paths from multiple groups, deduplicated
// in first-seen order.
func uniquePaths(groups ...[]models.PatternOpportunity) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, group := range groups {
		for _, opp := range group {
			if _, ok := seen[opp.FilePath]; ok {
				continue
			}
			seen[opp.FilePath] = struct{}{}
			out = append(out, opp.FilePath)
		}
	}
	return out
}
