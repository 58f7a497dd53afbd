// Package syntax defines the read-only tree interface the metrics
// engine consumes. Parsers (tree-sitter or otherwise) adapt their
// concrete node types to this interface; the engine never mutates a
// node and never reaches past it into parser internals.
package syntax

// Node is a single node of a parsed syntax tree.
type Node interface {
	// Kind returns the grammar's node-type tag, e.g. "if_statement".
	Kind() string

	// ChildCount returns the number of direct children.
	ChildCount() int

	// Child returns the i-th direct child, or nil if out of range.
	Child(i int) Node

	// Text returns the source text of the node. The engine reads it
	// only on leaf-level tokens: short-circuit operators and the
	// identifiers that name a function.
	Text() string

	// StartLine returns the 1-based line the node starts on.
	StartLine() int

	// EndLine returns the 1-based line the node ends on.
	EndLine() int
}

// Walk visits node and all its descendants in pre-order. The visitor
// returns false to skip the subtree below the visited node.
func Walk(node Node, visit func(Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for i := 0; i < node.ChildCount(); i++ {
		Walk(node.Child(i), visit)
	}
}
