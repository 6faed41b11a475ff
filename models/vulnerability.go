package models

// Vulnerability is a single normalised finding tying a matched code location
// to a rule category, severity, and remediation guidance.
type Vulnerability struct {
	// Type is the rule category that triggered, e.g. "dangerous_execution".
	Type     string   `json:"type"     db:"type"`
	Severity Severity `json:"severity" db:"severity"`
	// FilePath is relative to the scan root, slash-separated.
	FilePath string `json:"file_path" db:"file_path"`
	// LineNumber is 1-based.
	LineNumber  int    `json:"line_number" db:"line_number"`
	Description string `json:"description" db:"description"`
	// CodeSnippet is the matched source line, trimmed and bounded in length.
	CodeSnippet    string   `json:"code_snippet"   db:"code_snippet"`
	Recommendation string   `json:"recommendation" db:"recommendation"`
	Language       Language `json:"language"       db:"language"`
}
