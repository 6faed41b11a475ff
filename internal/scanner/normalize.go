package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/scansec/scansec/internal/rules"
	"github.com/scansec/scansec/models"
)

// maxSnippetLen bounds code_snippet so pathological lines (minified JS and
// the like) cannot bloat reports.
const maxSnippetLen = 500

// Normalize converts a raw hit into the externally visible Vulnerability.
// relPath and sourceLine come from the classifier and matcher respectively;
// the language is the classifier's determination, never re-derived here.
// This function is pure.
func Normalize(hit RawHit, rule *rules.CompiledRule, relPath, sourceLine string) models.Vulnerability {
	return models.Vulnerability{
		Type:           rule.Category,
		Severity:       rule.Severity,
		FilePath:       relPath,
		LineNumber:     hit.LineNumber,
		Description:    rule.Description,
		CodeSnippet:    truncate(strings.TrimSpace(sourceLine), maxSnippetLen),
		Recommendation: rule.Recommendation,
		Language:       rule.Language,
	}
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
