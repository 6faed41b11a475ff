// Package scanner implements the scan engine: per-language rule matching,
// result normalisation, aggregation, and the worker pool that drives them.
package scanner

import (
	"bytes"
	"sort"
	"unicode/utf8"

	"github.com/scansec/scansec/internal/rules"
	"github.com/scansec/scansec/models"
)

// RawHit is the transient product of one pattern match. It is consumed
// immediately by the normaliser and never persisted.
type RawHit struct {
	RuleID     string
	ByteOffset int
	// LineNumber is 1-based: the count of line breaks before ByteOffset,
	// plus one. \r\n and \n both count as a single break.
	LineNumber  int
	MatchedText string
}

// LanguageScanner matches file content against one language's rule set.
type LanguageScanner interface {
	Language() models.Language
	Scan(content []byte) []RawHit
}

// MatcherSet holds one LanguageScanner per supported language, selected by
// the classifier's language tag.
type MatcherSet struct {
	byLang map[models.Language]LanguageScanner
	byID   map[string]*rules.CompiledRule
}

// NewMatcherSet builds the static language→scanner registry from the rule
// registry. The registry is immutable, so a MatcherSet is safe to share
// across workers.
func NewMatcherSet(reg *rules.Registry) *MatcherSet {
	set := &MatcherSet{
		byLang: make(map[models.Language]LanguageScanner, 3),
		byID:   make(map[string]*rules.CompiledRule),
	}
	for _, lang := range models.Languages() {
		langRules := reg.ForLanguage(lang)
		set.byLang[lang] = &ruleScanner{lang: lang, rules: langRules}
		for i := range langRules {
			set.byID[langRules[i].ID] = &langRules[i]
		}
	}
	return set
}

// For returns the scanner for lang, or nil if the language is unsupported.
func (m *MatcherSet) For(lang models.Language) LanguageScanner {
	return m.byLang[lang]
}

// Rule resolves a RawHit's rule ID back to its rule.
func (m *MatcherSet) Rule(id string) *rules.CompiledRule {
	return m.byID[id]
}

// ruleScanner is the rule-set-driven LanguageScanner. Adding a rule never
// requires touching this code.
type ruleScanner struct {
	lang  models.Language
	rules []rules.CompiledRule
}

func (s *ruleScanner) Language() models.Language {
	return s.lang
}

// Scan emits one RawHit per non-overlapping match of each rule. Hits from
// different rules on the same text are all retained. The result is ordered
// by byte offset, then rule ID, so downstream output is deterministic.
func (s *ruleScanner) Scan(content []byte) []RawHit {
	var hits []RawHit
	for i := range s.rules {
		rule := &s.rules[i]
		for _, loc := range rule.FindAllIndex(content) {
			hits = append(hits, RawHit{
				RuleID:      rule.ID,
				ByteOffset:  loc[0],
				LineNumber:  lineNumberAt(content, loc[0]),
				MatchedText: string(content[loc[0]:loc[1]]),
			})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].ByteOffset != hits[j].ByteOffset {
			return hits[i].ByteOffset < hits[j].ByteOffset
		}
		return hits[i].RuleID < hits[j].RuleID
	})
	return hits
}

// IsBinary reports whether content should be skipped rather than matched:
// anything with a NUL byte or invalid UTF-8.
func IsBinary(content []byte) bool {
	return bytes.IndexByte(content, 0) >= 0 || !utf8.Valid(content)
}

// lineNumberAt returns the 1-based line number of the byte at offset.
// Counting \n alone treats \r\n and \n identically.
func lineNumberAt(content []byte, offset int) int {
	return 1 + bytes.Count(content[:offset], []byte{'\n'})
}

// lineAt returns the full source line containing the byte at offset,
// without its line terminator.
func lineAt(content []byte, offset int) string {
	start := bytes.LastIndexByte(content[:offset], '\n') + 1
	end := bytes.IndexByte(content[offset:], '\n')
	if end < 0 {
		end = len(content)
	} else {
		end += offset
	}
	return string(bytes.TrimRight(content[start:end], "\r"))
}
