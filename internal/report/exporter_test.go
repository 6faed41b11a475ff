package report

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/scansec/scansec/models"
)

func sampleResult() *models.ScanResult {
	return &models.ScanResult{
		RepoURL:       "https://github.com/acme/shop",
		ScanID:        "scan_ab12cd34",
		ScanTimestamp: time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
		Status:        models.StatusCompleted,
		Summary: models.ScanSummary{
			TotalFilesScanned:    12,
			TotalVulnerabilities: 2,
			ScanDurationSeconds:  1.25,
			ScanTypesPerformed:   []string{"dangerous_execution", "sql_injection"},
			LanguageBreakdown:    map[string]int{"python": 12},
		},
		Vulnerabilities: []models.Vulnerability{
			{
				Type:           "sql_injection",
				Severity:       models.SeverityCritical,
				FilePath:       "app/db.py",
				LineNumber:     40,
				Description:    "SQL query built from string formatting or concatenation",
				CodeSnippet:    `cur.execute("SELECT * FROM users WHERE name = '%s'" % name)`,
				Recommendation: "Use parameterized queries (placeholders) instead of building SQL from strings.",
				Language:       models.LangPython,
			},
			{
				Type:           "dangerous_execution",
				Severity:       models.SeverityHigh,
				FilePath:       "app/main.py",
				LineNumber:     15,
				Description:    "Use of eval() allows execution of arbitrary expressions",
				CodeSnippet:    "result = eval(data)",
				Recommendation: "Avoid eval().",
				Language:       models.LangPython,
			},
		},
		Metadata: map[string]string{"provider": "github", "commit": "deadbeef"},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	original := sampleResult()

	data, err := ExportJSON(original)
	if err != nil {
		t.Fatalf("export json: %v", err)
	}
	parsed, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if !reflect.DeepEqual(original, parsed) {
		t.Fatalf("round trip changed the result:\noriginal: %+v\nparsed:   %+v", original, parsed)
	}
}

func TestJSONFieldNames(t *testing.T) {
	data, err := ExportJSON(sampleResult())
	if err != nil {
		t.Fatalf("export json: %v", err)
	}
	for _, field := range []string{
		`"repo_url"`, `"scan_id"`, `"scan_timestamp"`, `"status"`,
		`"summary"`, `"total_files_scanned"`, `"scan_types_performed"`,
		`"language_breakdown"`, `"vulnerabilities"`, `"code_snippet"`,
	} {
		if !bytes.Contains(data, []byte(field)) {
			t.Fatalf("exported JSON missing %s:\n%s", field, data)
		}
	}
}

func TestCSVHeaderOnlyForEmptyResult(t *testing.T) {
	res := sampleResult()
	res.Vulnerabilities = []models.Vulnerability{}

	data, err := ExportCSV(res)
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}
	want := "type,severity,file_path,line_number,description,code_snippet,recommendation,language\n"
	if string(data) != want {
		t.Fatalf("expected header-only CSV, got %q", data)
	}
}

func TestCSVQuoting(t *testing.T) {
	res := sampleResult()
	res.Vulnerabilities[0].CodeSnippet = `query = "SELECT a, b" + name`

	data, err := ExportCSV(res)
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	row := records[1]
	if len(row) != 8 {
		t.Fatalf("expected 8 columns, got %d: %v", len(row), row)
	}
	if row[0] != "sql_injection" || row[1] != "critical" || row[3] != "40" {
		t.Fatalf("unexpected row: %v", row)
	}
	if row[5] != `query = "SELECT a, b" + name` {
		t.Fatalf("snippet not preserved through quoting: %q", row[5])
	}
	if row[7] != "python" {
		t.Fatalf("expected language column, got %q", row[7])
	}
}

func TestExportDispatch(t *testing.T) {
	res := sampleResult()
	if _, err := Export(res, FormatJSON); err != nil {
		t.Fatalf("json dispatch: %v", err)
	}
	if _, err := Export(res, FormatCSV); err != nil {
		t.Fatalf("csv dispatch: %v", err)
	}
	if _, err := Export(nil, FormatJSON); err == nil {
		t.Fatalf("expected error for nil result")
	}
	if _, err := Export(res, Format("xml")); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{"json": FormatJSON, "csv": FormatCSV} {
		got, err := ParseFormat(raw)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v", raw, got, err)
		}
	}
	for _, raw := range []string{"", "xml", "JSON", "csv "} {
		if _, err := ParseFormat(raw); err == nil {
			t.Fatalf("ParseFormat(%q) should fail", raw)
		}
	}
	if FormatJSON.ContentType() != "application/json" || FormatCSV.ContentType() != "text/csv" {
		t.Fatalf("unexpected content types")
	}
}

func TestCSVRowOrderMatchesResult(t *testing.T) {
	res := sampleResult()
	res.SortCanonical()

	data, err := ExportCSV(res)
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "app/db.py") || !strings.Contains(lines[2], "app/main.py") {
		t.Fatalf("rows not in canonical order:\n%s", data)
	}
}
