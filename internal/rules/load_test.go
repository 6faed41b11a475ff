package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/scansec/scansec/models"
)

const customRuleYAML = `rules:
  - id: custom-py-input
    language: python
    category: dangerous_execution
    severity: medium
    pattern: '\binput\s*\('
    description: "Python 2 input() evaluates its argument"
    recommendation: "Use raw_input() or port to Python 3."
`

func writeRuleFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeRuleFile(t, t.TempDir(), "custom.yaml", customRuleYAML)

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(loaded))
	}
	r := loaded[0]
	if r.ID != "custom-py-input" || r.Language != models.LangPython {
		t.Fatalf("unexpected rule: %+v", r)
	}
	if r.Severity != models.SeverityMedium || r.Category != "dangerous_execution" {
		t.Fatalf("unexpected rule metadata: %+v", r)
	}
}

func TestLoadFileRejectsEmpty(t *testing.T) {
	path := writeRuleFile(t, t.TempDir(), "empty.yaml", "rules: []\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected error for rule file with no rules")
	}
}

func TestLoadDirMissingIsNotAnError(t *testing.T) {
	loaded, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("missing rules dir must not fail: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected nil rules, got %+v", loaded)
	}
}

func TestLoadDirNameOrderAndFiltering(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "20-second.yml", `rules:
  - id: custom-b
    language: javascript
    category: xss
    severity: low
    pattern: 'b'
`)
	writeRuleFile(t, dir, "10-first.yaml", `rules:
  - id: custom-a
    language: python
    category: xss
    severity: low
    pattern: 'a'
`)
	writeRuleFile(t, dir, "notes.txt", "not a rule file\n")

	loaded, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(loaded))
	}
	if loaded[0].ID != "custom-a" || loaded[1].ID != "custom-b" {
		t.Fatalf("rules not in file name order: %+v", loaded)
	}
}

func TestCustomRuleSeverityAliases(t *testing.T) {
	path := writeRuleFile(t, t.TempDir(), "aliases.yaml", `rules:
  - id: custom-upper
    language: python
    category: dangerous_execution
    severity: HIGH
    pattern: 'compile\s*\('
  - id: custom-alias
    language: python
    category: weak_cryptography
    severity: WARNING
    pattern: '\bmd5\b'
`)
	custom, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}

	reg, err := NewRegistry(custom)
	if err != nil {
		t.Fatalf("aliased severities must compile: %v", err)
	}
	if r := reg.Lookup("custom-upper"); r.Severity != models.SeverityHigh {
		t.Fatalf("HIGH not normalised: %q", r.Severity)
	}
	if r := reg.Lookup("custom-alias"); r.Severity != models.SeverityMedium {
		t.Fatalf("WARNING not normalised to medium: %q", r.Severity)
	}
}

func TestCustomRulesJoinRegistry(t *testing.T) {
	path := writeRuleFile(t, t.TempDir(), "custom.yaml", customRuleYAML)
	custom, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}

	reg, err := Default(custom...)
	if err != nil {
		t.Fatalf("registry with custom rules: %v", err)
	}
	r := reg.Lookup("custom-py-input")
	if r == nil {
		t.Fatalf("custom rule missing from registry")
	}
	if locs := r.FindAllIndex([]byte("x = input(prompt)\n")); len(locs) != 1 {
		t.Fatalf("custom rule pattern did not compile usefully: %v", locs)
	}
}
