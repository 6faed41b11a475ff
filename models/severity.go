package models

import "fmt"

// Severity classifies the risk level of a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Weight returns a numeric weight for sorting (higher = more severe).
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

func (s Severity) String() string {
	return string(s)
}

// Valid reports whether s is one of the four recognised levels.
func (s Severity) Valid() bool {
	return s.Weight() > 0
}

// ParseSeverity normalises a raw severity string to a Severity.
// Unrecognised values are an error: severities only enter the system
// through rule definitions, which must be well-formed.
func ParseSeverity(raw string) (Severity, error) {
	switch raw {
	case "critical", "CRITICAL":
		return SeverityCritical, nil
	case "high", "HIGH", "error", "ERROR":
		return SeverityHigh, nil
	case "medium", "MEDIUM", "warning", "WARNING":
		return SeverityMedium, nil
	case "low", "LOW", "info", "INFO":
		return SeverityLow, nil
	default:
		return "", fmt.Errorf("unknown severity %q", raw)
	}
}
