// Package analyzer detects design-pattern opportunities in Python source
// and aggregates them into repository-level architectural insights.
package analyzer

import (
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/panbanda/patternlens/pkg/knowledge"
	"github.com/panbanda/patternlens/pkg/models"
	"github.com/panbanda/patternlens/pkg/parser"
)

// dataModelNames are class-name fragments that mark a class as a data model.
// Data models must never be singletons.
var dataModelNames = []string{
	"user", "product", "order", "customer", "item", "model",
	"entity", "record", "data", "person", "account", "invoice",
}

// singletonCandidateNames are class-name fragments for shared resources that
// commonly benefit from instance control.
var singletonCandidateNames = []string{
	"database", "connection", "config", "settings", "logger",
	"cache", "registry", "manager", "service", "client",
}

// fileThresholds are the tunable detector limits, resolved from the
// knowledge base at construction time.
type fileThresholds struct {
	builderParams     int // constructor parameter count that triggers builder
	builderHighConf   int // parameter count for high confidence
	builderHighEffort int // parameter count for high effort estimate
	strategyChain     int // if/elif chain length that triggers strategy
	strategyHighConf  int // chain length for high confidence
	factoryTypeChain  int // isinstance chain length that triggers factory
	factoryReturns    int // constructing returns that trigger factory
}

// FileAnalyzer detects pattern opportunities in a single parsed file.
// It is stateless between calls and safe for concurrent use.
type FileAnalyzer struct {
	kb         *knowledge.Base
	thresholds fileThresholds
}

// FileOption is a functional option for configuring FileAnalyzer.
type FileOption func(*FileAnalyzer)

// WithKnowledgeBase sets the pattern knowledge base used for thresholds.
func WithKnowledgeBase(kb *knowledge.Base) FileOption {
	return func(a *FileAnalyzer) {
		a.kb = kb
	}
}

// WithBuilderParameterThreshold overrides the constructor parameter count
// that triggers a builder opportunity.
func WithBuilderParameterThreshold(n int) FileOption {
	return func(a *FileAnalyzer) {
		if n > 0 {
			a.thresholds.builderParams = n
		}
	}
}

// WithStrategyChainThreshold overrides the if/elif chain length that
// triggers a strategy opportunity.
func WithStrategyChainThreshold(n int) FileOption {
	return func(a *FileAnalyzer) {
		if n > 0 {
			a.thresholds.strategyChain = n
		}
	}
}

// WithFactoryThresholds overrides the isinstance chain length and the
// constructing-return count that trigger factory opportunities.
func WithFactoryThresholds(typeChecks, returnCalls int) FileOption {
	return func(a *FileAnalyzer) {
		if typeChecks > 0 {
			a.thresholds.factoryTypeChain = typeChecks
		}
		if returnCalls > 0 {
			a.thresholds.factoryReturns = returnCalls
		}
	}
}

// NewFileAnalyzer creates a file analyzer. Thresholds default to the
// knowledge-base values and may be overridden with options.
func NewFileAnalyzer(opts ...FileOption) *FileAnalyzer {
	a := &FileAnalyzer{kb: knowledge.New()}
	for _, opt := range opts {
		opt(a)
	}
	if a.kb == nil {
		a.kb = knowledge.New()
	}

	t := &a.thresholds
	if t.builderParams <= 0 {
		t.builderParams = a.kb.Threshold("builder", "constructor_parameters", 5)
	}
	t.builderHighConf = a.kb.Threshold("builder", "high_confidence_parameters", 7)
	t.builderHighEffort = a.kb.Threshold("builder", "high_effort_parameters", 8)
	if t.strategyChain <= 0 {
		t.strategyChain = a.kb.Threshold("strategy", "chain_length", 3)
	}
	t.strategyHighConf = a.kb.Threshold("strategy", "high_confidence_chain", 4)
	if t.factoryTypeChain <= 0 {
		t.factoryTypeChain = a.kb.Threshold("factory", "type_check_chain", 2)
	}
	if t.factoryReturns <= 0 {
		t.factoryReturns = a.kb.Threshold("factory", "return_calls", 2)
	}

	return a
}

// AnalyzeFile parses and analyzes a single file on disk.
func (a *FileAnalyzer) AnalyzeFile(p *parser.Parser, path string) ([]models.PatternOpportunity, error) {
	result, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeParsed(result), nil
}

// AnalyzeSource analyzes in-memory Python source.
func (a *FileAnalyzer) AnalyzeSource(p *parser.Parser, source []byte, path string) ([]models.PatternOpportunity, error) {
	result, err := p.Parse(source, parser.LangPython, path)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeParsed(result), nil
}

// AnalyzeParsed walks a parsed tree and returns opportunities sorted by
// priority score, highest first. Files with syntax errors yield an empty
// list rather than partial findings.
func (a *FileAnalyzer) AnalyzeParsed(result *parser.ParseResult) []models.PatternOpportunity {
	if result == nil || result.HasSyntaxError() {
		return []models.PatternOpportunity{}
	}

	c := &collector{
		analyzer: a,
		path:     result.Path,
		source:   result.Source,
	}

	parser.WalkTyped(result.Tree.RootNode(), result.Source, func(node *sitter.Node, nodeType string, source []byte) bool {
		switch nodeType {
		case "class_definition":
			c.checkSingleton(node)
			c.checkBuilder(node)
			c.checkAdapter(node)
		case "function_definition":
			c.checkFactoryCreation(node)
			c.checkCommand(node)
		case "if_statement":
			c.checkConditionalChain(node)
		case "for_statement":
			c.checkObserverLoop(node)
		}
		return true
	})

	sort.SliceStable(c.opportunities, func(i, j int) bool {
		return c.opportunities[i].PriorityScore() > c.opportunities[j].PriorityScore()
	})

	if c.opportunities == nil {
		return []models.PatternOpportunity{}
	}
	return c.opportunities
}

// collector accumulates opportunities for one file during the walk.
type collector struct {
	analyzer      *FileAnalyzer
	path          string
	source        []byte
	opportunities []models.PatternOpportunity
}

func (c *collector) add(o models.PatternOpportunity) {
	o.FilePath = c.path
	c.opportunities = append(c.opportunities, o)
}

// checkSingleton flags singleton implementations on data-model classes as
// anti-patterns, and shared-resource classes as refactor candidates only
// while no instance-control hook exists yet.
func (c *collector) checkSingleton(class *sitter.Node) {
	name := c.text(class.ChildByFieldName("name"))
	if name == "" {
		return
	}

	hasNew := false
	hasInstanceVar := false
	for _, item := range c.bodyChildren(class) {
		item = parser.Unwrap(item)
		switch item.Type() {
		case "function_definition":
			if c.text(item.ChildByFieldName("name")) == "__new__" {
				hasNew = true
			}
		case "expression_statement":
			for _, expr := range parser.NamedChildren(item) {
				if expr.Type() == "assignment" {
					left := expr.ChildByFieldName("left")
					if left != nil && left.Type() == "identifier" && c.text(left) == "_instance" {
						hasInstanceVar = true
					}
				}
			}
		}
	}

	switch {
	case hasNew && hasInstanceVar:
		if nameContainsAny(name, dataModelNames) {
			c.add(models.PatternOpportunity{
				PatternName:     "singleton",
				OpportunityType: models.OpportunityAntiPattern,
				Confidence:      models.ConfidenceCritical,
				LineNumber:      parser.StartLine(class),
				LineEnd:         parser.EndLine(class),
				Description:     fmt.Sprintf("Anti-pattern: %s should not be a singleton", name),
				CodeSnippet:     fmt.Sprintf("class %s with singleton implementation", name),
				Suggestion:      "Convert to regular class - data models should have multiple instances",
				Reasoning:       "Data models (User, Product, Order, etc.) should not be singletons as you need multiple instances",
				EffortEstimate:  "Low",
				ImpactEstimate:  "High",
			})
		}
	case !hasNew && nameContainsAny(name, singletonCandidateNames):
		c.add(models.PatternOpportunity{
			PatternName:     "singleton",
			OpportunityType: models.OpportunityRefactor,
			Confidence:      models.ConfidenceMedium,
			LineNumber:      parser.StartLine(class),
			LineEnd:         parser.EndLine(class),
			Description:     fmt.Sprintf("%s could benefit from singleton pattern", name),
			CodeSnippet:     fmt.Sprintf("class %s", name),
			Suggestion:      "Implement singleton pattern with thread-safe instance control",
			Reasoning:       "Classes like DatabaseConnection, ConfigManager, Logger often benefit from singleton",
			EffortEstimate:  "Medium",
			ImpactEstimate:  "Medium",
		})
	}
}

// checkBuilder flags constructors whose parameter count exceeds the builder
// threshold. Only the first __init__ in the class body is considered.
func (c *collector) checkBuilder(class *sitter.Node) {
	t := c.analyzer.thresholds

	for _, item := range c.bodyChildren(class) {
		item = parser.Unwrap(item)
		if item.Type() != "function_definition" || c.text(item.ChildByFieldName("name")) != "__init__" {
			continue
		}

		params, optional := countParameters(item)
		if params >= t.builderParams {
			confidence := models.ConfidenceMedium
			if params >= t.builderHighConf {
				confidence = models.ConfidenceHigh
			}
			effort := "Medium"
			if params >= t.builderHighEffort {
				effort = "High"
			}

			c.add(models.PatternOpportunity{
				PatternName:     "builder",
				OpportunityType: models.OpportunityRefactor,
				Confidence:      confidence,
				LineNumber:      parser.StartLine(item),
				LineEnd:         parser.EndLine(item),
				Description:     fmt.Sprintf("Constructor with %d parameters could benefit from Builder pattern", params),
				CodeSnippet:     fmt.Sprintf("def __init__(self, %d parameters)", params),
				Suggestion:      "Implement Builder pattern for more readable object construction",
				Reasoning:       fmt.Sprintf("Constructor has %d parameters (%d optional). Builder pattern threshold: %d+ parameters", params, optional, t.builderParams),
				EffortEstimate:  effort,
				ImpactEstimate:  "Medium",
			})
		}
		break
	}
}

// checkAdapter flags classes that take an object in the constructor and
// delegate calls to a non-self object in other methods.
func (c *collector) checkAdapter(class *sitter.Node) {
	name := c.text(class.ChildByFieldName("name"))
	hasAdaptee := false
	hasDelegation := false

	for _, item := range c.bodyChildren(class) {
		item = parser.Unwrap(item)
		if item.Type() != "function_definition" {
			continue
		}

		if c.text(item.ChildByFieldName("name")) == "__init__" {
			if params, _ := countParameters(item); params >= 1 {
				hasAdaptee = true
			}
			continue
		}

		parser.WalkTyped(item, c.source, func(n *sitter.Node, nt string, _ []byte) bool {
			if hasDelegation {
				return false
			}
			if nt == "attribute" {
				obj := n.ChildByFieldName("object")
				if obj != nil && obj.Type() == "identifier" && c.text(obj) != "self" {
					hasDelegation = true
					return false
				}
			}
			return true
		})
	}

	if hasAdaptee && hasDelegation {
		c.add(models.PatternOpportunity{
			PatternName:     "adapter",
			OpportunityType: models.OpportunityOptimize,
			Confidence:      models.ConfidenceLow,
			LineNumber:      parser.StartLine(class),
			LineEnd:         parser.EndLine(class),
			Description:     fmt.Sprintf("Class %s shows adapter-like behavior", name),
			CodeSnippet:     fmt.Sprintf("class %s with delegation pattern", name),
			Suggestion:      "Consider formalizing as Adapter pattern if interfacing incompatible classes",
			Reasoning:       "Class takes object in constructor and delegates calls - possible adapter",
			EffortEstimate:  "Low",
			ImpactEstimate:  "Low",
		})
	}
}

// checkFactoryCreation flags creation-named functions with multiple
// constructing return statements.
func (c *collector) checkFactoryCreation(fn *sitter.Node) {
	name := c.text(fn.ChildByFieldName("name"))
	lower := strings.ToLower(name)
	if !strings.Contains(lower, "create") && !strings.Contains(lower, "factory") {
		return
	}

	returnCalls := 0
	parser.WalkTyped(fn, c.source, func(n *sitter.Node, nt string, _ []byte) bool {
		if nt == "return_statement" {
			for _, child := range parser.NamedChildren(n) {
				if child.Type() == "call" {
					returnCalls++
				}
			}
		}
		return true
	})

	if returnCalls >= c.analyzer.thresholds.factoryReturns {
		c.add(models.PatternOpportunity{
			PatternName:     "factory",
			OpportunityType: models.OpportunityOptimize,
			Confidence:      models.ConfidenceMedium,
			LineNumber:      parser.StartLine(fn),
			LineEnd:         parser.EndLine(fn),
			Description:     fmt.Sprintf("Function %s returns multiple types - consider Factory pattern", name),
			CodeSnippet:     fmt.Sprintf("def %s() with %d different return types", name, returnCalls),
			Suggestion:      "Formalize as Factory pattern with clear interface",
			Reasoning:       fmt.Sprintf("Function returns %d different types, suggesting factory behavior", returnCalls),
			EffortEstimate:  "Low",
			ImpactEstimate:  "Low",
		})
	}
}

// checkCommand flags execution-named functions that store state on self.
func (c *collector) checkCommand(fn *sitter.Node) {
	name := c.text(fn.ChildByFieldName("name"))
	lower := strings.ToLower(name)
	if !containsAny(lower, []string{"execute", "run", "perform", "do"}) {
		return
	}

	hasStateStorage := false
	parser.WalkTyped(fn, c.source, func(n *sitter.Node, nt string, _ []byte) bool {
		if hasStateStorage {
			return false
		}
		if nt == "assignment" {
			left := n.ChildByFieldName("left")
			if left != nil && left.Type() == "attribute" {
				obj := left.ChildByFieldName("object")
				if obj != nil && obj.Type() == "identifier" && c.text(obj) == "self" {
					hasStateStorage = true
					return false
				}
			}
		}
		return true
	})

	if hasStateStorage {
		c.add(models.PatternOpportunity{
			PatternName:     "command",
			OpportunityType: models.OpportunityOptimize,
			Confidence:      models.ConfidenceLow,
			LineNumber:      parser.StartLine(fn),
			LineEnd:         parser.EndLine(fn),
			Description:     fmt.Sprintf("Function %s stores state - consider Command pattern", name),
			CodeSnippet:     fmt.Sprintf("def %s() with state storage", name),
			Suggestion:      "Consider Command pattern if undo/redo or queuing needed",
			Reasoning:       "Function stores state and has execution-like name - possible command",
			EffortEstimate:  "Medium",
			ImpactEstimate:  "Low",
		})
	}
}

// checkConditionalChain flags long if/elif chains as strategy opportunities
// and isinstance-based chains as factory opportunities. An if/elif chain is
// a single if_statement node, so each chain is examined exactly once.
func (c *collector) checkConditionalChain(ifNode *sitter.Node) {
	t := c.analyzer.thresholds

	chainLength := 1
	hasIsinstance := c.conditionChecksType(ifNode.ChildByFieldName("condition"))

	for _, child := range parser.NamedChildren(ifNode) {
		if child.Type() == "elif_clause" {
			chainLength++
			if c.conditionChecksType(child.ChildByFieldName("condition")) {
				hasIsinstance = true
			}
		}
	}

	if chainLength >= t.strategyChain && c.looksLikeAlgorithmSelection(ifNode, chainLength) {
		confidence := models.ConfidenceMedium
		if chainLength >= t.strategyHighConf {
			confidence = models.ConfidenceHigh
		}
		c.add(models.PatternOpportunity{
			PatternName:     "strategy",
			OpportunityType: models.OpportunityRefactor,
			Confidence:      confidence,
			LineNumber:      parser.StartLine(ifNode),
			LineEnd:         parser.EndLine(ifNode),
			Description:     fmt.Sprintf("Long if/elif chain (%d conditions) suggests Strategy pattern", chainLength),
			CodeSnippet:     fmt.Sprintf("if/elif chain with %d conditions", chainLength),
			Suggestion:      "Replace with Strategy pattern for better maintainability",
			Reasoning:       fmt.Sprintf("Chain length %d exceeds threshold of %d. Strategy pattern helps eliminate conditionals", chainLength, t.strategyChain),
			EffortEstimate:  "Medium",
			ImpactEstimate:  "Medium",
		})
	}

	if hasIsinstance && chainLength >= t.factoryTypeChain {
		c.add(models.PatternOpportunity{
			PatternName:     "factory",
			OpportunityType: models.OpportunityRefactor,
			Confidence:      models.ConfidenceMedium,
			LineNumber:      parser.StartLine(ifNode),
			LineEnd:         parser.EndLine(ifNode),
			Description:     "Type-based conditionals suggest Factory pattern",
			CodeSnippet:     "if/elif with isinstance() checks",
			Suggestion:      "Use Factory pattern to encapsulate object creation logic",
			Reasoning:       "Multiple isinstance() checks indicate object creation based on type",
			EffortEstimate:  "Medium",
			ImpactEstimate:  "Medium",
		})
	}
}

// checkObserverLoop flags manual notification loops: iteration over an
// observer-named collection with notification-style method calls inside.
func (c *collector) checkObserverLoop(forNode *sitter.Node) {
	iter := forNode.ChildByFieldName("right")
	if iter == nil || iter.Type() != "identifier" {
		return
	}
	iterName := strings.ToLower(c.text(iter))
	if !containsAny(iterName, []string{"observer", "listener", "subscriber", "notification"}) {
		return
	}

	found := false
	parser.WalkTyped(forNode, c.source, func(n *sitter.Node, nt string, _ []byte) bool {
		if found {
			return false
		}
		if nt == "call" {
			fn := n.ChildByFieldName("function")
			if fn != nil && fn.Type() == "attribute" {
				method := strings.ToLower(c.text(fn.ChildByFieldName("attribute")))
				if containsAny(method, []string{"update", "notify", "on_", "handle"}) {
					found = true
					return false
				}
			}
		}
		return true
	})

	if found {
		c.add(models.PatternOpportunity{
			PatternName:     "observer",
			OpportunityType: models.OpportunityRefactor,
			Confidence:      models.ConfidenceMedium,
			LineNumber:      parser.StartLine(forNode),
			LineEnd:         parser.EndLine(forNode),
			Description:     "Manual observer notification loop detected",
			CodeSnippet:     fmt.Sprintf("for loop over %s with notification calls", iterName),
			Suggestion:      "Implement formal Observer pattern with subscription management",
			Reasoning:       "Manual loops for notifications suggest need for Observer pattern",
			EffortEstimate:  "Low",
			ImpactEstimate:  "Medium",
		})
	}
}

// conditionChecksType reports whether a branch condition is an isinstance()
// call.
func (c *collector) conditionChecksType(condition *sitter.Node) bool {
	if condition == nil || condition.Type() != "call" {
		return false
	}
	fn := condition.ChildByFieldName("function")
	return fn != nil && fn.Type() == "identifier" && c.text(fn) == "isinstance"
}

// looksLikeAlgorithmSelection reports whether a conditional chain dispatches
// to distinct operations. Branches calling mostly the same functions are
// data checks, not algorithm selection.
func (c *collector) looksLikeAlgorithmSelection(ifNode *sitter.Node, chainLength int) bool {
	if chainLength < 2 {
		return false
	}

	calls := make(map[string]struct{})
	parser.WalkTyped(ifNode, c.source, func(n *sitter.Node, nt string, _ []byte) bool {
		if nt == "call" {
			fn := n.ChildByFieldName("function")
			if fn == nil {
				return true
			}
			switch fn.Type() {
			case "identifier":
				calls[c.text(fn)] = struct{}{}
			case "attribute":
				calls[c.text(fn.ChildByFieldName("attribute"))] = struct{}{}
			}
		}
		return true
	})

	return len(calls) >= chainLength
}

// bodyChildren returns the named statements in a class or function body.
func (c *collector) bodyChildren(node *sitter.Node) []*sitter.Node {
	body := node.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	return parser.NamedChildren(body)
}

func (c *collector) text(node *sitter.Node) string {
	return parser.GetNodeText(node, c.source)
}

// countParameters counts constructor parameters excluding self, and how
// many of them carry defaults.
func countParameters(fn *sitter.Node) (total, optional int) {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return 0, 0
	}
	for i, p := range parser.NamedChildren(params) {
		switch p.Type() {
		case "identifier":
			if i == 0 {
				continue // self
			}
			total++
		case "typed_parameter":
			total++
		case "default_parameter", "typed_default_parameter":
			total++
			optional++
		}
	}
	return total, optional
}

func nameContainsAny(name string, fragments []string) bool {
	return containsAny(strings.ToLower(name), fragments)
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}
