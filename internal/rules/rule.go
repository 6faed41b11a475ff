// Package rules defines the detection rule model and the process-wide rule
// registry. Rules are data, not code: adding a detection means adding a Rule
// here (or in a custom YAML file), never touching matcher logic.
package rules

import (
	"fmt"
	"regexp"

	"github.com/scansec/scansec/models"
)

// Rule is a single static, language-scoped detection pattern plus metadata.
// Rules are immutable after registry construction and shared read-only
// across all scans.
type Rule struct {
	// ID is a stable identifier, unique across the whole registry.
	ID       string          `yaml:"id"`
	Language models.Language `yaml:"language"`
	// Category is a free-form tag, e.g. "dangerous_execution".
	Category string          `yaml:"category"`
	Severity models.Severity `yaml:"severity"`
	// Pattern is an RE2 expression. Single-line rules must not match across
	// line breaks; multi-line rules set MultiLine and bound their own window.
	Pattern   string `yaml:"pattern"`
	MultiLine bool   `yaml:"multiline"`
	// Description and Recommendation are static report text.
	Description    string `yaml:"description"`
	Recommendation string `yaml:"recommendation"`
}

// CompiledRule pairs a Rule with its compiled pattern.
type CompiledRule struct {
	Rule
	re *regexp.Regexp
}

// FindAllIndex returns the byte ranges of every non-overlapping match of the
// rule's pattern in content.
func (c *CompiledRule) FindAllIndex(content []byte) [][]int {
	return c.re.FindAllIndex(content, -1)
}

// compile validates and compiles a rule. Any failure here is a startup-time
// fatal error for the process: a scanner with a broken rule must refuse to run.
// The severity is normalised, so custom rule files may use upper-case levels
// or the ERROR/WARNING/INFO aliases.
func compile(r Rule) (CompiledRule, error) {
	if r.ID == "" {
		return CompiledRule{}, fmt.Errorf("rule with empty id (category %q)", r.Category)
	}
	sev, err := models.ParseSeverity(string(r.Severity))
	if err != nil {
		return CompiledRule{}, fmt.Errorf("rule %s: %w", r.ID, err)
	}
	r.Severity = sev
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return CompiledRule{}, fmt.Errorf("rule %s: compiling pattern: %w", r.ID, err)
	}
	return CompiledRule{Rule: r, re: re}, nil
}
