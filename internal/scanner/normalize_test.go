package scanner

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/scansec/scansec/models"
)

func TestNormalize(t *testing.T) {
	m := testMatchers(t)
	rule := m.Rule("py-eval")
	if rule == nil {
		t.Fatalf("py-eval missing")
	}

	hit := RawHit{RuleID: "py-eval", ByteOffset: 42, LineNumber: 15, MatchedText: "eval("}
	v := Normalize(hit, rule, "app/main.py", "    result = eval(data)  ")

	if v.Type != "dangerous_execution" || v.Severity != models.SeverityHigh {
		t.Fatalf("rule metadata not carried: %+v", v)
	}
	if v.FilePath != "app/main.py" || v.LineNumber != 15 {
		t.Fatalf("location wrong: %+v", v)
	}
	if v.CodeSnippet != "result = eval(data)" {
		t.Fatalf("snippet not trimmed: %q", v.CodeSnippet)
	}
	if v.Language != models.LangPython {
		t.Fatalf("language must come from the rule, got %s", v.Language)
	}
	if v.Description == "" || v.Recommendation == "" {
		t.Fatalf("static report text missing: %+v", v)
	}
}

func TestNormalizeTruncatesLongLines(t *testing.T) {
	m := testMatchers(t)
	rule := m.Rule("js-eval")

	long := "eval(x); " + strings.Repeat("a", 2000)
	v := Normalize(RawHit{RuleID: "js-eval", LineNumber: 1}, rule, "min.js", long)

	if len(v.CodeSnippet) > maxSnippetLen {
		t.Fatalf("snippet length %d exceeds limit", len(v.CodeSnippet))
	}
	if !strings.HasPrefix(v.CodeSnippet, "eval(x);") {
		t.Fatalf("truncation must keep the line head: %q", v.CodeSnippet)
	}
}

func TestTruncateRuneSafe(t *testing.T) {
	s := strings.Repeat("é", 300) // 2 bytes per rune
	got := truncate(s, maxSnippetLen)
	if len(got) > maxSnippetLen {
		t.Fatalf("truncate returned %d bytes", len(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncate split a rune: %q", got[len(got)-4:])
	}
	if truncate("short", 500) != "short" {
		t.Fatalf("short strings must pass through")
	}
}
