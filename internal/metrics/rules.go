package metrics

// RuleTable describes, for one language, which syntax-node kinds count
// toward complexity and how. Tables are plain data: the calculator has
// no language-specific code, and adding a language means registering a
// table, never touching the traversal.
//
// A table is immutable after registration.
type RuleTable struct {
	// Language the table applies to.
	Language Language

	// Increments maps a node kind to its fixed cyclomatic weight.
	// Each case/when label and each catch clause is its own entry, so
	// every label and handler counts as an independent decision point.
	Increments map[string]int

	// BooleanNodes are node kinds that may carry a short-circuit
	// operator (binary_expression, boolean_operator, ...). They count
	// only when one of Operators appears among their direct children,
	// once per occurrence. Repeated identical operators in a chain are
	// NOT deduplicated.
	BooleanNodes map[string]bool

	// Operators is the language's short-circuit operator token set,
	// matched against the source text of a boolean node's children.
	Operators map[string]bool

	// Nesting lists node kinds that raise the cognitive nesting depth
	// for their own body. Whether a kind nests (catch, elif, ...) is a
	// per-kind decision made here, not a global rule.
	Nesting map[string]bool

	// Functions are the function-like node kinds: declarations,
	// methods, lambdas, closures.
	Functions map[string]bool

	// Anonymous marks the subset of Functions that never carry a name.
	Anonymous map[string]bool

	// NameNodes are the child kinds whose text is a function's name.
	NameNodes map[string]bool
}

// IsFunction reports whether kind is a function-like node.
func (t RuleTable) IsFunction(kind string) bool {
	return t.Functions[kind]
}

// validate checks structural soundness. Called once at registry
// construction; a table that fails here must never reach a calculator.
func (t RuleTable) validate() error {
	if t.Language == "" {
		return errTable(t.Language, "missing language tag")
	}
	if len(t.Functions) == 0 {
		return errTable(t.Language, "no function node kinds")
	}
	if len(t.Increments) == 0 {
		return errTable(t.Language, "no increment rules")
	}
	for kind, weight := range t.Increments {
		if weight < 1 {
			return errTable(t.Language, "increment weight < 1 for "+kind)
		}
	}
	if len(t.BooleanNodes) > 0 && len(t.Operators) == 0 {
		return errTable(t.Language, "boolean nodes declared without an operator set")
	}
	named := false
	for kind := range t.Functions {
		if !t.Anonymous[kind] {
			named = true
			break
		}
	}
	if named && len(t.NameNodes) == 0 {
		return errTable(t.Language, "named function kinds without name node kinds")
	}
	return nil
}
