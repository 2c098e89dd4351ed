package models

// Confidence is the ordinal strength-of-belief tier attached to a finding.
type Confidence string

const (
	ConfidenceLow      Confidence = "low"
	ConfidenceMedium   Confidence = "medium"
	ConfidenceHigh     Confidence = "high"
	ConfidenceCritical Confidence = "critical"
)

// Rank returns the position of the tier in the strict order
// low < medium < high < critical. Unknown tiers rank below low.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceLow:
		return 1
	case ConfidenceMedium:
		return 2
	case ConfidenceHigh:
		return 3
	case ConfidenceCritical:
		return 4
	default:
		return 0
	}
}

// Weight returns the priority-score weight for the tier.
func (c Confidence) Weight() float64 {
	switch c {
	case ConfidenceLow:
		return 0.2
	case ConfidenceMedium:
		return 0.5
	case ConfidenceHigh:
		return 0.8
	case ConfidenceCritical:
		return 1.0
	default:
		return 0
	}
}

// OpportunityType classifies a pattern opportunity.
type OpportunityType string

const (
	OpportunityRefactor    OpportunityType = "refactor_to_pattern"
	OpportunityAntiPattern OpportunityType = "anti_pattern_detected"
	OpportunityOptimize    OpportunityType = "optimization_opportunity"
	OpportunityComplexity  OpportunityType = "complexity_reduction"
)

// PatternOpportunity is a single file-localized heuristic finding suggesting
// a design-pattern refactor or flagging a misuse. Immutable once emitted.
type PatternOpportunity struct {
	PatternName     string          `json:"pattern_name"`
	OpportunityType OpportunityType `json:"opportunity_type"`
	Confidence      Confidence      `json:"confidence"`
	FilePath        string          `json:"file_path"`
	LineNumber      int             `json:"line_number"`
	LineEnd         int             `json:"line_end,omitempty"`
	Description     string          `json:"description"`
	CodeSnippet     string          `json:"current_code_snippet"`
	Suggestion      string          `json:"suggested_improvement"`
	Reasoning       string          `json:"reasoning"`
	EffortEstimate  string          `json:"effort_estimate"` // "Low", "Medium", "High"
	ImpactEstimate  string          `json:"impact_estimate"` // "Low", "Medium", "High"
}

// opportunityEffortWeights and opportunityImpactWeights feed PriorityScore.
// Missing labels weigh zero so the score stays in [0, 1].
var opportunityEffortWeights = map[string]float64{
	"Low":    1.0,
	"Medium": 0.7,
	"High":   0.4,
}

var opportunityImpactWeights = map[string]float64{
	"Low":    0.3,
	"Medium": 0.6,
	"High":   1.0,
}

// PriorityScore combines confidence (40%), effort-inverse (30%), and
// impact (30%) into a normalized [0, 1] ranking value.
func (o PatternOpportunity) PriorityScore() float64 {
	return o.Confidence.Weight()*0.4 +
		opportunityEffortWeights[o.EffortEstimate]*0.3 +
		opportunityImpactWeights[o.ImpactEstimate]*0.3
}
