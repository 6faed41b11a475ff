package models

import (
	"reflect"
	"testing"
)

func TestSeverityWeightOrdering(t *testing.T) {
	if !(SeverityCritical.Weight() > SeverityHigh.Weight() &&
		SeverityHigh.Weight() > SeverityMedium.Weight() &&
		SeverityMedium.Weight() > SeverityLow.Weight() &&
		SeverityLow.Weight() > 0) {
		t.Fatalf("severity weights not strictly ordered")
	}
	if Severity("bogus").Weight() != 0 || Severity("bogus").Valid() {
		t.Fatalf("unknown severity must have zero weight and be invalid")
	}
}

func TestParseSeverity(t *testing.T) {
	cases := map[string]Severity{
		"critical": SeverityCritical,
		"CRITICAL": SeverityCritical,
		"high":     SeverityHigh,
		"ERROR":    SeverityHigh,
		"warning":  SeverityMedium,
		"low":      SeverityLow,
		"INFO":     SeverityLow,
	}
	for raw, want := range cases {
		got, err := ParseSeverity(raw)
		if err != nil || got != want {
			t.Fatalf("ParseSeverity(%q) = %v, %v; want %v", raw, got, err, want)
		}
	}
	if _, err := ParseSeverity("urgent"); err == nil {
		t.Fatalf("expected error for unknown severity")
	}
}

func TestScanStatusTerminal(t *testing.T) {
	if StatusRunning.Terminal() {
		t.Fatalf("running must not be terminal")
	}
	if !StatusCompleted.Terminal() || !StatusFailed.Terminal() {
		t.Fatalf("completed and failed must be terminal")
	}
}

func TestSeverityCounts(t *testing.T) {
	res := &ScanResult{
		Vulnerabilities: []Vulnerability{
			{Severity: SeverityCritical},
			{Severity: SeverityCritical},
			{Severity: SeverityLow},
		},
	}
	counts := res.SeverityCounts()
	want := map[Severity]int{
		SeverityCritical: 2,
		SeverityHigh:     0,
		SeverityMedium:   0,
		SeverityLow:      1,
	}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("counts = %+v, want %+v", counts, want)
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	if total != len(res.Vulnerabilities) {
		t.Fatalf("counts sum %d, expected %d", total, len(res.Vulnerabilities))
	}
}

func TestSortCanonical(t *testing.T) {
	res := &ScanResult{
		Vulnerabilities: []Vulnerability{
			{FilePath: "b.py", LineNumber: 3, Type: "second"},
			{FilePath: "a.py", LineNumber: 9, Type: "third"},
			{FilePath: "a.py", LineNumber: 2, Type: "first"},
			{FilePath: "b.py", LineNumber: 3, Type: "tie-keeps-order"},
		},
	}
	res.SortCanonical()

	want := []string{"first", "third", "second", "tie-keeps-order"}
	for i, v := range res.Vulnerabilities {
		if v.Type != want[i] {
			t.Fatalf("position %d = %q, want %q (all: %+v)", i, v.Type, want[i], res.Vulnerabilities)
		}
	}
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	if len(langs) != 3 {
		t.Fatalf("expected 3 languages, got %v", langs)
	}
	want := []Language{LangPython, LangJavaScript, LangCPP}
	if !reflect.DeepEqual(langs, want) {
		t.Fatalf("language order changed: %v", langs)
	}
}
