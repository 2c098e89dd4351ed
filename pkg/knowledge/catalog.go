package knowledge

// catalogEntry keys a pattern's knowledge for registry construction.
type catalogEntry struct {
	key       string
	knowledge PatternKnowledge
}

// catalog is the full pattern knowledge base. Entry order is the registry
// iteration order used for deterministic tie-breaking.
var catalog = []catalogEntry{
	{"singleton", PatternKnowledge{
		Name:        "Singleton Pattern",
		Category:    "creational",
		Description: "Ensures a class has only one instance with global access",
		WhenToUse: PatternCriteria{
			MinimumComplexity: ComplexityModerate,
			Indicators: []string{
				"single instance", "only one", "global access", "shared state",
				"database connection", "configuration", "logging", "cache",
			},
			Thresholds: map[string]int{
				"expensive_creation":   1,
				"global_access_points": 2,
			},
			UseCases: []string{
				"Database connections - expensive to create, should be shared",
				"Configuration settings - one source of truth needed",
				"Logging systems - centralized logging required",
				"Caching mechanisms - shared cache across application",
			},
			Benefits: []string{
				"Controlled access to sole instance",
				"Reduced memory footprint",
				"Global access point",
				"Lazy initialization",
			},
		},
		WhenNotToUse: AntiPatternCriteria{
			RedFlags: []string{
				"just want global variables", "testing is important",
				"multiple instances later", "simple objects", "data models",
				"user objects", "entity classes",
			},
			ScenariosToAvoid: []string{
				"You just want global variables - use modules instead",
				"Testing is important - singletons are hard to test and mock",
				"You might need multiple instances later",
				"Simple objects - don't over-engineer basic data structures",
				"Data models - User, Product, Order should NOT be singletons",
			},
			BetterAlternatives: []string{
				"Module-level variables for simple global state",
				"Dependency injection for better testability",
				"Configuration objects passed as parameters",
				"Context managers for resource control",
			},
			CommonMistakes: []string{
				"Not handling thread safety in concurrent environments",
				"Using for data objects (User, Product entities)",
				"Overuse - creating singletons when regular classes suffice",
			},
		},
		Advanced: AdvancedNotes{
			Threading:   "Use double-checked locking for multi-threaded access; first check without the lock for efficiency.",
			Performance: "Lazy initialization improves startup time; thread-safe versions carry a small locking overhead.",
			Testing:     "Hard to mock; state pollutes across tests. Prefer dependency injection, reset instance state between tests.",
			Enterprise:  "Document the lifecycle; singletons do not scale across processes in distributed systems.",
		},
		Alternatives:       []string{"Module-level variables", "Dependency injection", "Monostate pattern", "Registry pattern"},
		ComplexityScore:    6,
		LearningDifficulty: 4,
	}},
	{"factory", PatternKnowledge{
		Name:        "Factory Pattern",
		Category:    "creational",
		Description: "Creates objects without specifying their exact classes",
		WhenToUse: PatternCriteria{
			MinimumComplexity: ComplexityModerate,
			Indicators: []string{
				"create different types", "multiple classes", "configuration-driven",
				"switch implementations", "object creation", "similar classes",
			},
			Thresholds: map[string]int{
				"similar_classes":     3,
				"creation_complexity": 5,
				"type_check_chain":    2,
				"return_calls":        2,
			},
			UseCases: []string{
				"3+ similar classes that do the same job differently",
				"Complex object creation requiring multiple steps or decisions",
				"Configuration-driven creation - object type depends on config",
				"Need to switch implementations at runtime",
			},
			Benefits: []string{
				"Decouples object creation from usage",
				"Easy to add new types without changing client code",
				"Centralizes creation logic",
				"Supports polymorphism",
			},
		},
		WhenNotToUse: AntiPatternCriteria{
			RedFlags: []string{
				"only one class", "simple object creation", "over-engineering",
				"performance critical", "just in case",
			},
			ScenariosToAvoid: []string{
				"Only one class - don't create a factory for one type",
				"Simple object creation - direct construction is clearer",
				"Over-engineering - don't add factories 'just in case'",
			},
			BetterAlternatives: []string{
				"Function parameters for small variations",
				"Enums with switch statements for fixed options",
				"Direct instantiation for simple cases",
			},
			CommonMistakes: []string{
				"Creating a factory for a single class",
				"Adding factory complexity before it's needed",
				"Not using polymorphism effectively",
			},
		},
		Advanced: AdvancedNotes{
			Threading:   "Factory methods should be thread-safe if called concurrently; cache created objects with synchronization.",
			Performance: "Small call overhead; consider pooling for expensive objects.",
			Testing:     "Mock the factory for client tests; verify the correct type for each input.",
			Enterprise:  "Consider a plugin architecture with factory registration and dependency-injection integration.",
		},
		Alternatives:       []string{"Direct instantiation", "Builder pattern for complex construction", "Prototype pattern for cloning", "Service locator pattern"},
		ComplexityScore:    5,
		LearningDifficulty: 3,
	}},
	{"observer", PatternKnowledge{
		Name:        "Observer Pattern",
		Category:    "behavioral",
		Description: "Defines one-to-many dependency between objects for automatic notifications",
		WhenToUse: PatternCriteria{
			MinimumComplexity: ComplexityModerate,
			Indicators: []string{
				"subscribe", "notify", "listen", "event", "update", "broadcast",
				"model-view", "real-time", "multiple listeners", "one-to-many",
			},
			Thresholds: map[string]int{
				"observers":        2,
				"event_types":      1,
				"update_frequency": 1,
			},
			UseCases: []string{
				"Model-View architectures - views update when the model changes",
				"Event-driven systems - user actions, system events",
				"Real-time updates - stock prices, chat, live dashboards",
				"One-to-many relationships - one subject, many observers",
			},
			Benefits: []string{
				"Loose coupling between subject and observers",
				"Dynamic relationships - add/remove observers at runtime",
				"Broadcast communication",
				"Supports event-driven architectures",
			},
		},
		WhenNotToUse: AntiPatternCriteria{
			RedFlags: []string{
				"simple data binding", "performance critical",
				"complex update sequences", "only one observer", "order dependencies",
			},
			ScenariosToAvoid: []string{
				"Simple data binding - direct references might be simpler",
				"Performance critical code - notification overhead",
				"Complex update sequences - order dependencies confuse",
				"Only one observer - direct method calls are clearer",
			},
			BetterAlternatives: []string{
				"Direct method calls for a single observer",
				"Callback functions for simple notifications",
				"Event queues for decoupled async communication",
			},
			CommonMistakes: []string{
				"Forgetting to unsubscribe - memory leaks",
				"Circular dependencies between observers",
				"Not considering notification order",
			},
		},
		Advanced: AdvancedNotes{
			Threading:   "Protect the observer list with locks; use weak references to avoid leaks in threaded environments.",
			Performance: "Push is efficient, pull is flexible; batch or filter events for large observer lists.",
			Testing:     "Mock observers for subject tests; verify registration, unregistration, and cleanup.",
			Enterprise:  "Document event contracts; plan for distributed observers via message queues.",
		},
		Alternatives:       []string{"Callback functions", "Event queues/message brokers", "Reactive streams", "Signals/slots mechanism"},
		ComplexityScore:    6,
		LearningDifficulty: 5,
	}},
	{"strategy", PatternKnowledge{
		Name:        "Strategy Pattern",
		Category:    "behavioral",
		Description: "Defines family of algorithms and makes them interchangeable",
		WhenToUse: PatternCriteria{
			MinimumComplexity: ComplexityModerate,
			Indicators: []string{
				"multiple algorithms", "different ways", "switch algorithm",
				"runtime selection", "eliminate conditionals", "A/B testing",
			},
			Thresholds: map[string]int{
				"algorithms":            3,
				"conditional_lines":     10,
				"algorithm_complexity":  5,
				"chain_length":          3,
				"high_confidence_chain": 4,
			},
			UseCases: []string{
				"3+ algorithms for the same problem (sorting, compression)",
				"Runtime algorithm switching based on data or user preference",
				"Eliminating conditionals - replace long if/else chains",
				"A/B testing - easily switch between implementations",
			},
			Benefits: []string{
				"Easy to add new algorithms",
				"Runtime algorithm selection",
				"Eliminates conditional statements",
				"Each algorithm can be tested separately",
			},
		},
		WhenNotToUse: AntiPatternCriteria{
			RedFlags: []string{
				"only one algorithm", "simple variations", "algorithms rarely change",
				"performance critical", "two simple cases",
			},
			ScenariosToAvoid: []string{
				"Only one algorithm - no strategies for single implementations",
				"Simple variations - use parameters instead",
				"Algorithms rarely change - overhead not justified",
			},
			BetterAlternatives: []string{
				"Function parameters for small variations",
				"Template methods for algorithms with similar structure",
				"Simple if/else for 2-3 cases",
			},
			CommonMistakes: []string{
				"Creating a strategy for a single algorithm",
				"Not making strategies truly interchangeable",
				"Over-engineering simple conditional logic",
			},
		},
		Advanced: AdvancedNotes{
			Threading:   "Keep strategies stateless for thread safety; synchronize selection logic if shared.",
			Performance: "Small dispatch overhead; cache strategy instances.",
			Testing:     "Test each strategy individually and the selection logic separately.",
			Enterprise:  "Document selection criteria; consider configuration-driven selection and versioning.",
		},
		Alternatives:       []string{"Higher-order functions", "Template method pattern", "State pattern for behavior changes", "Command pattern for action selection"},
		ComplexityScore:    4,
		LearningDifficulty: 3,
	}},
	{"command", PatternKnowledge{
		Name:        "Command Pattern",
		Category:    "behavioral",
		Description: "Encapsulates requests as objects to parameterize and queue operations",
		WhenToUse: PatternCriteria{
			MinimumComplexity: ComplexityModerate,
			Indicators: []string{
				"undo", "redo", "queue", "macro", "log operations",
				"parameterize objects", "decouple invoker", "store operations",
			},
			Thresholds: map[string]int{
				"operations_to_track": 1,
				"macro_commands":      2,
				"queue_size":          1,
			},
			UseCases: []string{
				"Undo/redo operations - commands store state for reversal",
				"Macro recording - combine multiple commands",
				"Queue operations - store commands for later execution",
				"Logging and auditing - track all operations performed",
			},
			Benefits: []string{
				"Decouples invoker from receiver",
				"Commands can be stored and queued",
				"Supports undo/redo functionality",
				"Easy to create macro commands",
			},
		},
		WhenNotToUse: AntiPatternCriteria{
			RedFlags: []string{
				"simple operations", "no undo needed", "performance critical",
				"tight coupling acceptable", "basic getters",
			},
			ScenariosToAvoid: []string{
				"Simple operations - no commands for basic method calls",
				"No undo needed and no logging requirement",
				"Tight coupling acceptable - call the receiver directly",
			},
			BetterAlternatives: []string{
				"Direct method calls for simple operations",
				"Function values for parameterization",
				"Event systems for decoupling",
			},
			CommonMistakes: []string{
				"Creating commands for every operation",
				"Not implementing proper undo logic",
				"Making commands too granular",
			},
		},
		Advanced: AdvancedNotes{
			Threading:   "Immutable commands are thread-safe; synchronize queues and undo stacks.",
			Performance: "Command objects add memory overhead; bound undo history.",
			Testing:     "Test execution and undo separately; mock receivers.",
			Enterprise:  "Document side effects; plan for command serialization and persistence.",
		},
		Alternatives:       []string{"Direct method calls", "Function objects/closures", "Event sourcing", "Transaction scripts"},
		ComplexityScore:    6,
		LearningDifficulty: 5,
	}},
	{"builder", PatternKnowledge{
		Name:        "Builder Pattern",
		Category:    "creational",
		Description: "Constructs complex objects step by step with fluent interface",
		WhenToUse: PatternCriteria{
			MinimumComplexity: ComplexityModerate,
			Indicators: []string{
				"complex construction", "many parameters", "optional parameters",
				"step by step", "fluent interface", "validation during construction",
			},
			Thresholds: map[string]int{
				"constructor_parameters":     5,
				"optional_parameters":        3,
				"construction_steps":         3,
				"high_confidence_parameters": 7,
				"high_effort_parameters":     8,
			},
			UseCases: []string{
				"Objects with many optional parameters (5+ parameters)",
				"Step-by-step construction with validation at each step",
				"Immutable objects that need complex construction",
				"Objects where construction order matters",
			},
			Benefits: []string{
				"Readable object construction",
				"Handles optional parameters elegantly",
				"Validates during construction",
				"Supports fluent interface",
			},
		},
		WhenNotToUse: AntiPatternCriteria{
			RedFlags: []string{
				"few properties", "simple construction", "no variation in process",
				"performance critical", "immutable not needed",
			},
			ScenariosToAvoid: []string{
				"Few properties - no builder for 2-3 simple parameters",
				"Simple construction - a regular constructor is clearer",
				"No variation in the process - unnecessary complexity",
			},
			BetterAlternatives: []string{
				"Regular constructors for simple objects",
				"Structs with defaults for data containers",
				"Factory methods for complex creation logic",
			},
			CommonMistakes: []string{
				"Using a builder for simple objects",
				"Not validating during construction",
				"Making the builder mutable when building immutable objects",
			},
		},
		Advanced: AdvancedNotes{
			Threading:   "Builders should not be shared between threads; built objects can be immutable.",
			Performance: "Method chaining adds small overhead; construct directly on hot paths.",
			Testing:     "Test validation at each step and different construction paths.",
			Enterprise:  "Document required vs optional steps; consider builder inheritance for object families.",
		},
		Alternatives:       []string{"Structs with defaults", "Factory methods", "Keyword arguments", "Configuration objects"},
		ComplexityScore:    5,
		LearningDifficulty: 4,
	}},
	{"adapter", PatternKnowledge{
		Name:        "Adapter Pattern",
		Category:    "structural",
		Description: "Allows incompatible interfaces to work together",
		WhenToUse: PatternCriteria{
			MinimumComplexity: ComplexitySimple,
			Indicators: []string{
				"incompatible interfaces", "third-party integration", "legacy system",
				"cannot modify", "interface mismatch", "wrapper needed",
			},
			Thresholds: map[string]int{
				"interface_differences":     1,
				"modification_restrictions": 1,
			},
			UseCases: []string{
				"Incompatible interfaces between existing classes",
				"Third-party library integration with a different interface",
				"Legacy system integration without modifying old code",
			},
			Benefits: []string{
				"Reuses existing code without modification",
				"Separates interface concerns from business logic",
				"Follows open/closed principle",
			},
		},
		WhenNotToUse: AntiPatternCriteria{
			RedFlags: []string{
				"interfaces already compatible", "can modify existing classes",
				"too complex adaptation", "performance critical",
			},
			ScenariosToAvoid: []string{
				"Interfaces already compatible - no adapter needed",
				"Can modify existing classes - direct modification is simpler",
				"Too complex adaptation - redesign the interfaces instead",
			},
			BetterAlternatives: []string{
				"Direct interface modification if possible",
				"Composition for simple wrapping",
				"Facade pattern for complex subsystem integration",
			},
			CommonMistakes: []string{
				"Over-adapting simple interface differences",
				"Not handling all methods of the adapted interface",
				"Putting business logic in the adapter",
			},
		},
		Advanced: AdvancedNotes{
			Threading:   "Delegate threading concerns to the adaptee; synchronize only adapter-held state.",
			Performance: "One level of indirection; cache adapted results when expensive.",
			Testing:     "Test with a mock adaptee; verify every adapted method.",
			Enterprise:  "Document adaptation contracts and limitations; plan for adapter versioning.",
		},
		Alternatives:       []string{"Direct interface modification", "Facade pattern", "Wrapper functions", "Interface embedding"},
		ComplexityScore:    3,
		LearningDifficulty: 2,
	}},
	{"decorator", PatternKnowledge{
		Name:        "Decorator Pattern",
		Category:    "structural",
		Description: "Adds behavior to objects dynamically without altering structure",
		WhenToUse: PatternCriteria{
			MinimumComplexity: ComplexityModerate,
			Indicators: []string{
				"add responsibilities", "multiple features", "transparent enhancement",
				"composable behaviors", "avoid inheritance explosion",
			},
			Thresholds: map[string]int{
				"optional_features":    3,
				"feature_combinations": 4,
				"inheritance_levels":   3,
			},
			UseCases: []string{
				"Add responsibilities dynamically without inheritance",
				"Multiple feature combinations - avoid class explosion",
				"Composable behaviors - stack multiple decorators",
			},
			Benefits: []string{
				"More flexible than inheritance",
				"Adds responsibilities at runtime",
				"Follows single responsibility principle",
			},
		},
		WhenNotToUse: AntiPatternCriteria{
			RedFlags: []string{
				"component interface too complex", "fixed combinations",
				"performance critical", "simple objects",
			},
			ScenariosToAvoid: []string{
				"Component interface too complex - decorators must implement it all",
				"Fixed set of combinations - inheritance might be simpler",
				"Simple objects - don't over-engineer basic data",
			},
			BetterAlternatives: []string{
				"Inheritance for fixed combinations",
				"Composition for simple wrapping",
				"Strategy pattern for algorithmic variations",
			},
			CommonMistakes: []string{
				"Making decorators too complex",
				"Not maintaining the component interface properly",
				"Using for simple feature additions",
			},
		},
		Advanced: AdvancedNotes{
			Threading:   "Decorators inherit the component's thread-safety; coordinate locking across nested decorators.",
			Performance: "Each level adds call overhead; deep nesting grows memory use.",
			Testing:     "Test decorators individually and stacked; mock the underlying component.",
			Enterprise:  "Document composition rules; plan for decorator configuration and ordering.",
		},
		Alternatives:       []string{"Inheritance hierarchies", "Composition", "Middleware chains", "Aspect-oriented techniques"},
		ComplexityScore:    7,
		LearningDifficulty: 6,
	}},
	{"state", PatternKnowledge{
		Name:        "State Pattern",
		Category:    "behavioral",
		Description: "Allows object to alter behavior when internal state changes",
		WhenToUse: PatternCriteria{
			MinimumComplexity: ComplexityModerate,
			Indicators: []string{
				"behavior depends on state", "finite state machine", "state transitions",
				"workflow", "different behavior", "state-dependent",
			},
			Thresholds: map[string]int{
				"states":               3,
				"state_transitions":    3,
				"behavior_differences": 5,
			},
			UseCases: []string{
				"Behavior depends on object state (game character abilities)",
				"Complex conditionals based on state - replace if/else chains",
				"Finite state machines - clear states and transitions",
				"Workflow systems - document approval, order processing",
			},
			Benefits: []string{
				"Eliminates complex conditional statements",
				"Makes state transitions explicit",
				"Each state encapsulates its behavior",
			},
		},
		WhenNotToUse: AntiPatternCriteria{
			RedFlags: []string{
				"few states", "simple behavior", "rare state changes",
				"simple logic", "performance critical",
			},
			ScenariosToAvoid: []string{
				"Few states with simple behavior - an enum switch is simpler",
				"Rare state changes - overhead not justified",
				"Simple logic - don't over-engineer basic conditionals",
			},
			BetterAlternatives: []string{
				"Enum plus switch statements for simple states",
				"Strategy pattern for algorithmic variations",
				"Boolean flags for binary states",
			},
			CommonMistakes: []string{
				"Using for simple boolean states",
				"Not handling all state transitions properly",
				"Making states too granular",
			},
		},
		Advanced: AdvancedNotes{
			Threading:   "State transitions must be atomic under concurrency; guard state access.",
			Performance: "State object creation overhead; pool states if needed.",
			Testing:     "Test each state's behavior, every transition, and invalid-transition handling.",
			Enterprise:  "Document state machine diagrams; plan for state persistence and restoration.",
		},
		Alternatives:       []string{"Enum plus switch statements", "Strategy pattern", "Boolean flags", "State machine libraries"},
		ComplexityScore:    7,
		LearningDifficulty: 6,
	}},
	{"repository", PatternKnowledge{
		Name:        "Repository Pattern",
		Category:    "behavioral",
		Description: "Centralizes data access logic and provides uniform interface",
		WhenToUse: PatternCriteria{
			MinimumComplexity: ComplexityModerate,
			Indicators: []string{
				"data access", "multiple data sources", "testability",
				"domain logic", "centralize queries", "abstract storage",
			},
			Thresholds: map[string]int{
				"data_sources":    1,
				"complex_queries": 3,
				"entities":        2,
			},
			UseCases: []string{
				"Centralizing data access logic across the application",
				"Supporting multiple data sources (database, file, API)",
				"Improving testability by abstracting the data layer",
				"Domain-driven design - isolate domain from infrastructure",
			},
			Benefits: []string{
				"Centralizes data access logic",
				"Easy to switch data sources",
				"Improves testability with mock repositories",
			},
		},
		WhenNotToUse: AntiPatternCriteria{
			RedFlags: []string{
				"simple applications", "ORM already provides abstraction",
				"unjustified overhead", "single data source",
			},
			ScenariosToAvoid: []string{
				"Simple CRUD applications don't need a repository layer",
				"The ORM already provides abstraction - don't add another layer",
				"Single data source with no switching plans",
			},
			BetterAlternatives: []string{
				"Direct ORM usage for simple applications",
				"Data access objects for simple CRUD",
				"Query builders for dynamic queries",
			},
			CommonMistakes: []string{
				"Making the repository too generic",
				"Putting business logic in the repository",
				"Not pairing with Unit of Work for transactions",
			},
		},
		Advanced: AdvancedNotes{
			Threading:   "Implementations must be thread-safe; pool database connections.",
			Performance: "An extra abstraction layer; use bulk operations and caching inside the repository.",
			Testing:     "Mock repositories for unit tests; integration-test real data sources.",
			Enterprise:  "Document repository contracts; plan for distributed sources and eventual consistency.",
		},
		Alternatives:       []string{"Direct ORM usage", "Data access objects", "Active record pattern", "Query builders"},
		ComplexityScore:    6,
		LearningDifficulty: 5,
	}},
}
