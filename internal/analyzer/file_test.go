package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/patternlens/pkg/models"
	"github.com/panbanda/patternlens/pkg/parser"
)

func analyzeSource(t *testing.T, source string) []models.PatternOpportunity {
	t.Helper()
	p := parser.New()
	defer p.Close()

	a := NewFileAnalyzer()
	opportunities, err := a.AnalyzeSource(p, []byte(source), "test.py")
	require.NoError(t, err)
	return opportunities
}

func findByPattern(opportunities []models.PatternOpportunity, pattern string) []models.PatternOpportunity {
	var out []models.PatternOpportunity
	for _, o := range opportunities {
		if o.PatternName == pattern {
			out = append(out, o)
		}
	}
	return out
}

const dataModelSingleton = `
class UserModel:
    _instance = None

    def __new__(cls):
        if cls._instance is None:
            cls._instance = super().__new__(cls)
        return cls._instance
`

func TestSingletonAntiPatternOnDataModel(t *testing.T) {
	opportunities := analyzeSource(t, dataModelSingleton)

	singletons := findByPattern(opportunities, "singleton")
	require.Len(t, singletons, 1)

	opp := singletons[0]
	assert.Equal(t, models.OpportunityAntiPattern, opp.OpportunityType)
	assert.Equal(t, models.ConfidenceCritical, opp.Confidence)
	assert.Equal(t, "Low", opp.EffortEstimate)
	assert.Equal(t, "High", opp.ImpactEstimate)
	assert.Contains(t, opp.Description, "UserModel should not be a singleton")
	assert.Equal(t, 2, opp.LineNumber)
}

func TestSingletonCandidateSharedResource(t *testing.T) {
	source := `
class DatabaseConnection:
    def connect(self):
        pass
`
	opportunities := analyzeSource(t, source)

	singletons := findByPattern(opportunities, "singleton")
	require.Len(t, singletons, 1)

	opp := singletons[0]
	assert.Equal(t, models.OpportunityRefactor, opp.OpportunityType)
	assert.Equal(t, models.ConfidenceMedium, opp.Confidence)
	assert.Contains(t, opp.Description, "could benefit from singleton pattern")
}

func TestSingletonImplementedSharedResourceIsQuiet(t *testing.T) {
	// A properly implemented singleton on a shared resource is neither an
	// anti-pattern nor a refactor candidate.
	source := `
class ConfigRegistry:
    _instance = None

    def __new__(cls):
        if cls._instance is None:
            cls._instance = super().__new__(cls)
        return cls._instance
`
	opportunities := analyzeSource(t, source)
	assert.Empty(t, findByPattern(opportunities, "singleton"))
}

func TestBuilderOpportunity(t *testing.T) {
	source := `
class Pizza:
    def __init__(self, size, crust, cheese, sauce, toppings=None):
        self.size = size
`
	opportunities := analyzeSource(t, source)

	builders := findByPattern(opportunities, "builder")
	require.Len(t, builders, 1)

	opp := builders[0]
	assert.Equal(t, models.ConfidenceMedium, opp.Confidence)
	assert.Equal(t, "Medium", opp.EffortEstimate)
	assert.Contains(t, opp.Description, "Constructor with 5 parameters")
	assert.Contains(t, opp.Reasoning, "(1 optional)")
}

func TestBuilderHighConfidence(t *testing.T) {
	source := `
class Order:
    def __init__(self, a, b, c, d, e, f, g, h):
        self.a = a
`
	opportunities := analyzeSource(t, source)

	builders := findByPattern(opportunities, "builder")
	require.Len(t, builders, 1)
	assert.Equal(t, models.ConfidenceHigh, builders[0].Confidence)
	assert.Equal(t, "High", builders[0].EffortEstimate)
}

func TestBuilderSevenParameterBoundary(t *testing.T) {
	// Confidence escalates at 7 parameters but effort not until 8.
	source := `
class Shipment:
    def __init__(self, a, b, c, d, e, f, g):
        self.a = a
`
	opportunities := analyzeSource(t, source)

	builders := findByPattern(opportunities, "builder")
	require.Len(t, builders, 1)
	assert.Equal(t, models.ConfidenceHigh, builders[0].Confidence)
	assert.Equal(t, "Medium", builders[0].EffortEstimate)
}

func TestBuilderBelowThreshold(t *testing.T) {
	source := `
class Point:
    def __init__(self, x, y):
        self.x = x
        self.y = y
`
	opportunities := analyzeSource(t, source)
	assert.Empty(t, findByPattern(opportunities, "builder"))
}

const fourWayDispatch = `
def process(data, mode):
    if mode == "fast":
        return quick_sort(data)
    elif mode == "stable":
        return merge_sort(data)
    elif mode == "memory":
        return heap_sort(data)
    elif mode == "simple":
        return bubble_sort(data)
`

func TestStrategyChainSingleOpportunity(t *testing.T) {
	opportunities := analyzeSource(t, fourWayDispatch)

	// One chain, one opportunity, regardless of branch count.
	strategies := findByPattern(opportunities, "strategy")
	require.Len(t, strategies, 1)

	opp := strategies[0]
	assert.Equal(t, models.ConfidenceHigh, opp.Confidence)
	assert.Contains(t, opp.Description, "4 conditions")
}

func TestStrategyChainMediumConfidence(t *testing.T) {
	source := `
def render(fmt, doc):
    if fmt == "html":
        return to_html(doc)
    elif fmt == "pdf":
        return to_pdf(doc)
    elif fmt == "txt":
        return to_text(doc)
`
	opportunities := analyzeSource(t, source)

	strategies := findByPattern(opportunities, "strategy")
	require.Len(t, strategies, 1)
	assert.Equal(t, models.ConfidenceMedium, strategies[0].Confidence)
}

func TestStrategyRequiresDistinctCalls(t *testing.T) {
	// All branches call the same function: a data check, not algorithm
	// selection.
	source := `
def validate(level, x):
    if level == 1:
        check(x)
    elif level == 2:
        check(x)
    elif level == 3:
        check(x)
`
	opportunities := analyzeSource(t, source)
	assert.Empty(t, findByPattern(opportunities, "strategy"))
}

func TestShortChainNoStrategy(t *testing.T) {
	source := `
def pick(kind):
    if kind == "a":
        return first()
    elif kind == "b":
        return second()
`
	opportunities := analyzeSource(t, source)
	assert.Empty(t, findByPattern(opportunities, "strategy"))
}

func TestFactoryFromIsinstanceChain(t *testing.T) {
	source := `
def serialize(obj):
    if isinstance(obj, dict):
        return serialize_dict(obj)
    elif isinstance(obj, list):
        return serialize_list(obj)
`
	opportunities := analyzeSource(t, source)

	factories := findByPattern(opportunities, "factory")
	require.Len(t, factories, 1)

	opp := factories[0]
	assert.Equal(t, models.OpportunityRefactor, opp.OpportunityType)
	assert.Equal(t, "Type-based conditionals suggest Factory pattern", opp.Description)
}

func TestFactoryFromCreationFunction(t *testing.T) {
	source := `
def create_handler(kind):
    if kind == "json":
        return JsonHandler()
    return DefaultHandler()
`
	opportunities := analyzeSource(t, source)

	factories := findByPattern(opportunities, "factory")
	require.Len(t, factories, 1)

	opp := factories[0]
	assert.Equal(t, models.OpportunityOptimize, opp.OpportunityType)
	assert.Contains(t, opp.Description, "create_handler returns multiple types")
}

func TestCreationFunctionSingleReturnIsQuiet(t *testing.T) {
	source := `
def create_widget():
    return Widget()
`
	opportunities := analyzeSource(t, source)
	assert.Empty(t, findByPattern(opportunities, "factory"))
}

func TestObserverLoop(t *testing.T) {
	source := `
def broadcast(observers, event):
    for obs in observers:
        obs.notify(event)
`
	opportunities := analyzeSource(t, source)

	observers := findByPattern(opportunities, "observer")
	require.Len(t, observers, 1)

	opp := observers[0]
	assert.Equal(t, models.ConfidenceMedium, opp.Confidence)
	assert.Contains(t, opp.CodeSnippet, "observers")
}

func TestLoopWithoutNotificationIsQuiet(t *testing.T) {
	source := `
def tally(items):
    for item in items:
        item.count()
`
	opportunities := analyzeSource(t, source)
	assert.Empty(t, findByPattern(opportunities, "observer"))
}

func TestCommandOpportunity(t *testing.T) {
	source := `
class Task:
    def execute(self, payload):
        self.last_payload = payload
        return process(payload)
`
	opportunities := analyzeSource(t, source)

	commands := findByPattern(opportunities, "command")
	require.Len(t, commands, 1)
	assert.Equal(t, models.ConfidenceLow, commands[0].Confidence)
	assert.Contains(t, commands[0].Description, "execute stores state")
}

func TestAdapterOpportunity(t *testing.T) {
	source := `
class LegacyBridge:
    def __init__(self, legacy):
        self.legacy = legacy

    def send(self, msg):
        return transport.deliver(msg)
`
	opportunities := analyzeSource(t, source)

	adapters := findByPattern(opportunities, "adapter")
	require.Len(t, adapters, 1)
	assert.Equal(t, models.ConfidenceLow, adapters[0].Confidence)
	assert.Equal(t, models.OpportunityOptimize, adapters[0].OpportunityType)
}

func TestSyntaxErrorYieldsEmpty(t *testing.T) {
	opportunities := analyzeSource(t, "def broken(:\n    pass\n")
	assert.NotNil(t, opportunities)
	assert.Empty(t, opportunities)
}

func TestCleanSourceYieldsEmpty(t *testing.T) {
	source := `
def add(a, b):
    return a + b
`
	opportunities := analyzeSource(t, source)
	assert.Empty(t, opportunities)
}

func TestOpportunitiesSortedByPriority(t *testing.T) {
	source := dataModelSingleton + "\n" + fourWayDispatch
	opportunities := analyzeSource(t, source)
	require.True(t, len(opportunities) >= 2)

	for i := 1; i < len(opportunities); i++ {
		assert.GreaterOrEqual(t,
			opportunities[i-1].PriorityScore(), opportunities[i].PriorityScore(),
			"opportunities must be sorted by priority descending")
	}
	// The critical anti-pattern outranks everything else.
	assert.Equal(t, "singleton", opportunities[0].PatternName)
}

func TestAnalysisIsIdempotent(t *testing.T) {
	source := dataModelSingleton + "\n" + fourWayDispatch

	first := analyzeSource(t, source)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, analyzeSource(t, source))
	}
}

func TestDecoratedClassStillDetected(t *testing.T) {
	source := `
@dataclass
class OrderRecord:
    _instance = None

    def __new__(cls):
        return cls._instance
`
	opportunities := analyzeSource(t, source)
	singletons := findByPattern(opportunities, "singleton")
	require.Len(t, singletons, 1)
	assert.Equal(t, models.OpportunityAntiPattern, singletons[0].OpportunityType)
}

func TestThresholdOverrides(t *testing.T) {
	p := parser.New()
	defer p.Close()

	a := NewFileAnalyzer(WithBuilderParameterThreshold(3))
	source := `
class Spot:
    def __init__(self, x, y, z):
        self.x = x
`
	opportunities, err := a.AnalyzeSource(p, []byte(source), "spot.py")
	require.NoError(t, err)
	assert.Len(t, findByPattern(opportunities, "builder"), 1)
}
