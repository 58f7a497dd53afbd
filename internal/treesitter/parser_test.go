//go:build cgo

package treesitter

import (
	"context"
	"testing"

	"codehealth/internal/errors"
	"codehealth/internal/metrics"
	"codehealth/internal/syntax"
)

const goSource = `package demo

func Greet(name string) string {
	if name == "" {
		return "hello"
	}
	return "hello " + name
}
`

func TestParseGoSource(t *testing.T) {
	root, err := NewParser().Parse(context.Background(), []byte(goSource), metrics.LangGo)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if root.Kind() != "source_file" {
		t.Errorf("unexpected root kind %q", root.Kind())
	}

	var fn syntax.Node
	syntax.Walk(root, func(n syntax.Node) bool {
		if n.Kind() == "function_declaration" {
			fn = n
			return false
		}
		return true
	})
	if fn == nil {
		t.Fatal("expected a function_declaration node")
	}
	if fn.StartLine() != 3 || fn.EndLine() != 8 {
		t.Errorf("unexpected function span %d-%d", fn.StartLine(), fn.EndLine())
	}
}

func TestParseMalformedSource(t *testing.T) {
	_, err := NewParser().Parse(context.Background(), []byte("package demo\n\nfunc {{{\n"), metrics.LangGo)
	if err == nil {
		t.Fatal("expected parse failure")
	}
	if errors.CodeOf(err) != errors.ParseFailure {
		t.Errorf("expected ParseFailure, got %s", errors.CodeOf(err))
	}
}

func TestParseUnknownLanguage(t *testing.T) {
	_, err := NewParser().Parse(context.Background(), []byte("x"), metrics.Language("cobol"))
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.CodeOf(err) != errors.UnsupportedLanguage {
		t.Errorf("expected UnsupportedLanguage, got %s", errors.CodeOf(err))
	}
}
