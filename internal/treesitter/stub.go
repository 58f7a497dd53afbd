//go:build !cgo

package treesitter

import (
	"context"
	"errors"

	"codehealth/internal/metrics"
	"codehealth/internal/syntax"
)

// ErrNoCGO is returned when parsing is unavailable because the binary
// was built without cgo.
var ErrNoCGO = errors.New("source parsing requires cgo (tree-sitter)")

// Parser is a stub for non-cgo builds.
type Parser struct{}

// NewParser returns a parser that always fails.
func NewParser() *Parser {
	return &Parser{}
}

// Available reports whether parsing is compiled in.
func Available() bool {
	return false
}

// Parse always returns ErrNoCGO.
func (p *Parser) Parse(ctx context.Context, source []byte, lang metrics.Language) (syntax.Node, error) {
	return nil, ErrNoCGO
}
