//go:build cgo

// Package treesitter adapts tree-sitter parse trees to the generic
// syntax tree consumed by the metrics calculators.
package treesitter

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"codehealth/internal/errors"
	"codehealth/internal/metrics"
	"codehealth/internal/syntax"
)

// Parser wraps tree-sitter for multi-language parsing.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new tree-sitter parser.
func NewParser() *Parser {
	return &Parser{parser: sitter.NewParser()}
}

// Available reports whether parsing is compiled in.
func Available() bool {
	return true
}

// Parse parses source and returns the root of the generic syntax tree.
// A grammar-level error anywhere in the tree fails the whole file.
func (p *Parser) Parse(ctx context.Context, source []byte, lang metrics.Language) (syntax.Node, error) {
	tsLang, err := grammarFor(lang)
	if err != nil {
		return nil, err
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, errors.New(errors.ParseFailure, "tree-sitter parse failed", err)
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, errors.Newf(errors.ParseFailure, "malformed %s source", lang)
	}
	return &node{n: root, source: source}, nil
}

func grammarFor(lang metrics.Language) (*sitter.Language, error) {
	switch lang {
	case metrics.LangGo:
		return golang.GetLanguage(), nil
	case metrics.LangJavaScript:
		return javascript.GetLanguage(), nil
	case metrics.LangTypeScript:
		return typescript.GetLanguage(), nil
	case metrics.LangTSX:
		return tsx.GetLanguage(), nil
	case metrics.LangPython:
		return python.GetLanguage(), nil
	case metrics.LangRust:
		return rust.GetLanguage(), nil
	case metrics.LangJava:
		return java.GetLanguage(), nil
	case metrics.LangKotlin:
		return kotlin.GetLanguage(), nil
	default:
		return nil, errors.Newf(errors.UnsupportedLanguage, "no grammar for language %q", lang)
	}
}

// node adapts a *sitter.Node. The source slice is shared across the
// whole tree so Text can slice it by byte offsets.
type node struct {
	n      *sitter.Node
	source []byte
}

func (a *node) Kind() string {
	return a.n.Type()
}

func (a *node) ChildCount() int {
	return int(a.n.ChildCount())
}

func (a *node) Child(i int) syntax.Node {
	c := a.n.Child(i)
	if c == nil {
		return nil
	}
	return &node{n: c, source: a.source}
}

func (a *node) Text() string {
	return a.n.Content(a.source)
}

func (a *node) StartLine() int {
	return int(a.n.StartPoint().Row) + 1
}

func (a *node) EndLine() int {
	return int(a.n.EndPoint().Row) + 1
}
