package metrics

import (
	"sort"

	"codehealth/internal/errors"
)

// Registry holds the rule tables for all registered languages. It is
// built once at startup, validated eagerly, and read-only afterwards,
// so concurrent lookups need no synchronization.
type Registry struct {
	tables map[Language]RuleTable
}

// NewRegistry builds a registry from the given tables. Any malformed
// table fails construction with RegistryMisconfigured; no file may be
// analyzed against a partially valid rule set.
func NewRegistry(tables []RuleTable) (*Registry, error) {
	if len(tables) == 0 {
		return nil, errors.New(errors.RegistryMisconfigured, "no rule tables registered", nil)
	}

	byLang := make(map[Language]RuleTable, len(tables))
	for _, t := range tables {
		if err := t.validate(); err != nil {
			return nil, err
		}
		if _, dup := byLang[t.Language]; dup {
			return nil, errors.Newf(errors.RegistryMisconfigured,
				"duplicate rule table for language %q", t.Language)
		}
		byLang[t.Language] = t
	}

	return &Registry{tables: byLang}, nil
}

// DefaultRegistry builds a registry with the built-in tables. The
// built-ins are maintained alongside their validation rules, so this
// cannot fail in a correctly built binary.
func DefaultRegistry() (*Registry, error) {
	return NewRegistry(BuiltinTables())
}

// Lookup returns the rule table for a language.
func (r *Registry) Lookup(lang Language) (RuleTable, bool) {
	t, ok := r.tables[lang]
	return t, ok
}

// Languages returns the registered languages, sorted by name.
func (r *Registry) Languages() []Language {
	langs := make([]Language, 0, len(r.tables))
	for l := range r.tables {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

func errTable(lang Language, reason string) error {
	return errors.Newf(errors.RegistryMisconfigured, "rule table %q: %s", lang, reason)
}
