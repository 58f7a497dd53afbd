package metrics

import (
	"sort"
	"strings"
)

// extensionLanguages is the single point of truth for mapping file
// extensions to languages.
var extensionLanguages = map[string]Language{
	".go":   LangGo,
	".js":   LangJavaScript,
	".mjs":  LangJavaScript,
	".cjs":  LangJavaScript,
	".jsx":  LangJavaScript,
	".ts":   LangTypeScript,
	".mts":  LangTypeScript,
	".cts":  LangTypeScript,
	".tsx":  LangTSX,
	".py":   LangPython,
	".pyw":  LangPython,
	".rs":   LangRust,
	".java": LangJava,
	".kt":   LangKotlin,
	".kts":  LangKotlin,
}

// LanguageFromExtension returns the language for a file extension.
func LanguageFromExtension(ext string) (Language, bool) {
	lang, ok := extensionLanguages[strings.ToLower(ext)]
	return lang, ok
}

// Factory maps file extensions to ready-to-use calculators. A nil
// calculator means "complexity undefined for this file" — deliberately
// distinct from a parse failure.
type Factory struct {
	registry    *Registry
	calculators map[Language]*Calculator
}

// NewFactory builds a factory over a validated registry. Calculators
// are constructed eagerly, one per registered language.
func NewFactory(registry *Registry) *Factory {
	calcs := make(map[Language]*Calculator)
	for _, lang := range registry.Languages() {
		table, _ := registry.Lookup(lang)
		calcs[lang] = NewCalculator(table)
	}
	return &Factory{registry: registry, calculators: calcs}
}

// ForExtension returns the calculator for a file extension, or
// (nil, false) when the extension maps to no registered language.
func (f *Factory) ForExtension(ext string) (*Calculator, bool) {
	lang, ok := LanguageFromExtension(ext)
	if !ok {
		return nil, false
	}
	calc, ok := f.calculators[lang]
	return calc, ok
}

// ForLanguage returns the calculator for a language.
func (f *Factory) ForLanguage(lang Language) (*Calculator, bool) {
	calc, ok := f.calculators[lang]
	return calc, ok
}

// IsSupported reports whether complexity is defined for the extension.
func (f *Factory) IsSupported(ext string) bool {
	_, ok := f.ForExtension(ext)
	return ok
}

// SupportedExtensions returns the supported extensions, sorted.
func (f *Factory) SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionLanguages))
	for ext, lang := range extensionLanguages {
		if _, ok := f.calculators[lang]; ok {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}
