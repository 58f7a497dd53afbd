package metrics

import (
	"sort"
	"testing"
)

func newFactory(t *testing.T) *Factory {
	t.Helper()
	reg, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	return NewFactory(reg)
}

func TestForExtension(t *testing.T) {
	f := newFactory(t)

	tests := []struct {
		ext  string
		lang Language
		ok   bool
	}{
		{".go", LangGo, true},
		{".js", LangJavaScript, true},
		{".mjs", LangJavaScript, true},
		{".jsx", LangJavaScript, true},
		{".ts", LangTypeScript, true},
		{".tsx", LangTSX, true},
		{".py", LangPython, true},
		{".rs", LangRust, true},
		{".java", LangJava, true},
		{".kts", LangKotlin, true},
		{".GO", LangGo, true},
		{".txt", "", false},
		{".md", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		calc, ok := f.ForExtension(tt.ext)
		if ok != tt.ok {
			t.Errorf("ForExtension(%q): expected ok=%v, got %v", tt.ext, tt.ok, ok)
			continue
		}
		if !tt.ok {
			if calc != nil {
				t.Errorf("ForExtension(%q): expected nil calculator", tt.ext)
			}
			continue
		}
		if calc.Language() != tt.lang {
			t.Errorf("ForExtension(%q): expected %s, got %s", tt.ext, tt.lang, calc.Language())
		}
	}
}

func TestSupportedExtensionsSorted(t *testing.T) {
	f := newFactory(t)
	exts := f.SupportedExtensions()

	if len(exts) == 0 {
		t.Fatal("expected supported extensions")
	}
	if !sort.StringsAreSorted(exts) {
		t.Errorf("extensions not sorted: %v", exts)
	}
	if !f.IsSupported(".go") || f.IsSupported(".txt") {
		t.Error("IsSupported disagrees with the extension table")
	}
}
