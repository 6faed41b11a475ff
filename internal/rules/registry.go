package rules

import (
	"fmt"

	"github.com/scansec/scansec/models"
)

// Registry maps each supported language to its ordered rule set. It is built
// once at process start and never mutated afterwards, so reads need no
// synchronisation.
type Registry struct {
	byLang map[models.Language][]CompiledRule
	count  int
}

// NewRegistry compiles the given rules into a Registry. A duplicate rule ID,
// an invalid severity, an unknown language, or a pattern that fails to
// compile is fatal.
func NewRegistry(ruleList []Rule) (*Registry, error) {
	reg := &Registry{byLang: make(map[models.Language][]CompiledRule)}
	seen := make(map[string]struct{}, len(ruleList))

	known := make(map[models.Language]bool, 3)
	for _, l := range models.Languages() {
		known[l] = true
	}

	for _, r := range ruleList {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("duplicate rule id %q", r.ID)
		}
		if !known[r.Language] {
			return nil, fmt.Errorf("rule %s: unsupported language %q", r.ID, r.Language)
		}
		compiled, err := compile(r)
		if err != nil {
			return nil, err
		}
		seen[r.ID] = struct{}{}
		reg.byLang[r.Language] = append(reg.byLang[r.Language], compiled)
		reg.count++
	}
	return reg, nil
}

// Default builds a Registry from the builtin rule set plus any custom rules.
func Default(custom ...Rule) (*Registry, error) {
	return NewRegistry(append(Builtin(), custom...))
}

// ForLanguage returns the ordered rule set for a language. The returned slice
// must be treated as read-only.
func (r *Registry) ForLanguage(lang models.Language) []CompiledRule {
	return r.byLang[lang]
}

// Lookup finds a rule by ID, or nil.
func (r *Registry) Lookup(id string) *CompiledRule {
	for _, set := range r.byLang {
		for i := range set {
			if set[i].ID == id {
				return &set[i]
			}
		}
	}
	return nil
}

// Len returns the total number of registered rules.
func (r *Registry) Len() int {
	return r.count
}

// All returns every rule in language order, for listing.
func (r *Registry) All() []CompiledRule {
	out := make([]CompiledRule, 0, r.count)
	for _, lang := range models.Languages() {
		out = append(out, r.byLang[lang]...)
	}
	return out
}
