package metrics

import (
	"fmt"

	"codehealth/internal/syntax"
)

// Calculator produces per-function complexity metrics for one
// language. It is a pure function of (tree, rule table): all mutable
// state lives in a per-invocation walker, so a single Calculator is
// safe to use from many goroutines at once.
type Calculator struct {
	table RuleTable
}

// NewCalculator creates a calculator for the given rule table.
func NewCalculator(table RuleTable) *Calculator {
	return &Calculator{table: table}
}

// Language returns the language the calculator scores.
func (c *Calculator) Language() Language {
	return c.table.Language
}

// Analyze walks the tree rooted at root and returns one FunctionMetric
// per discovered function, in discovery (pre-order) order. Nested
// functions are scored independently: an inner function's nodes never
// contribute to the enclosing function's score.
func (c *Calculator) Analyze(root syntax.Node) []FunctionMetric {
	w := &walker{table: c.table}
	w.discover(root)
	return w.results
}

// AnalyzeFile is Analyze plus file-level aggregation.
func (c *Calculator) AnalyzeFile(path string, root syntax.Node) *FileMetric {
	fm := &FileMetric{
		Path:      path,
		Language:  c.table.Language,
		Functions: c.Analyze(root),
	}
	fm.Finalize()
	return fm
}

// walker holds the mutable state of one Analyze invocation.
type walker struct {
	table     RuleTable
	anonSeq   int
	results   []FunctionMetric
}

// discover finds function nodes in pre-order and scores each one.
func (w *walker) discover(node syntax.Node) {
	syntax.Walk(node, func(n syntax.Node) bool {
		if !w.table.IsFunction(n.Kind()) {
			return true
		}
		w.results = append(w.results, w.score(n))
		// Keep walking inside: nested functions are discovered and
		// scored as their own roots.
		return true
	})
}

// score computes both complexity flavors for one function node.
func (w *walker) score(fn syntax.Node) FunctionMetric {
	s := scorer{table: w.table, cyclomatic: 1}
	// The function node itself neither counts nor nests; depth resets
	// to zero at every function root.
	for i := 0; i < fn.ChildCount(); i++ {
		s.walk(fn.Child(i), 0)
	}

	return FunctionMetric{
		Name:       w.functionName(fn),
		StartLine:  fn.StartLine(),
		EndLine:    fn.EndLine(),
		Cyclomatic: s.cyclomatic,
		Cognitive:  s.cognitive,
	}
}

// functionName extracts the declared name from a function node's
// direct children, or synthesizes one for anonymous functions.
func (w *walker) functionName(fn syntax.Node) string {
	if !w.table.Anonymous[fn.Kind()] {
		for i := 0; i < fn.ChildCount(); i++ {
			child := fn.Child(i)
			if child != nil && w.table.NameNodes[child.Kind()] {
				if name := child.Text(); name != "" {
					return name
				}
			}
		}
	}
	w.anonSeq++
	return fmt.Sprintf("anonymous#%d", w.anonSeq)
}

// scorer accumulates both metrics over one function's subtree.
type scorer struct {
	table      RuleTable
	cyclomatic int
	cognitive  int
}

// walk scores node at the given nesting depth and recurses. depth is
// the count of enclosing nesting constructs within this function, not
// including any increment node itself causes.
func (s *scorer) walk(node syntax.Node, depth int) {
	if node == nil {
		return
	}
	kind := node.Kind()

	// A nested function is a separate scoring root; stop here so its
	// contents are counted exactly once.
	if s.table.IsFunction(kind) {
		return
	}

	if weight, ok := s.table.Increments[kind]; ok {
		s.cyclomatic += weight
		s.cognitive += weight + depth
	} else if s.table.BooleanNodes[kind] && s.hasOperator(node) {
		// One increment per operator occurrence. Chained identical
		// operators parse as nested boolean nodes, so a chain of n
		// operators contributes n increments.
		s.cyclomatic++
		s.cognitive += 1 + depth
	}

	childDepth := depth
	if s.table.Nesting[kind] {
		childDepth++
	}
	for i := 0; i < node.ChildCount(); i++ {
		s.walk(node.Child(i), childDepth)
	}
}

// hasOperator reports whether a boolean-candidate node carries one of
// the language's short-circuit operators among its direct children.
func (s *scorer) hasOperator(node syntax.Node) bool {
	for i := 0; i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.ChildCount() != 0 {
			continue
		}
		if s.table.Operators[child.Text()] {
			return true
		}
	}
	return false
}
