package models

import (
	"sort"
	"time"
)

// ScanStatus tracks the lifecycle of a scan.
type ScanStatus string

const (
	StatusRunning   ScanStatus = "running"
	StatusCompleted ScanStatus = "completed"
	StatusFailed    ScanStatus = "failed"
)

// Terminal reports whether the status is final. A terminal ScanResult is
// immutable and may be handed to the history store.
func (s ScanStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ScanSummary holds the derived statistics for one scan. It is never stored
// independently of its ScanResult.
type ScanSummary struct {
	TotalFilesScanned    int     `json:"total_files_scanned"`
	TotalVulnerabilities int     `json:"total_vulnerabilities"`
	ScanDurationSeconds  float64 `json:"scan_duration_seconds"`
	// ScanTypesPerformed is the sorted set of rule categories that actually
	// triggered at least one finding.
	ScanTypesPerformed []string `json:"scan_types_performed"`
	// LanguageBreakdown maps language to the number of files counted for it.
	LanguageBreakdown map[string]int `json:"language_breakdown"`
}

// ScanResult is the complete output of one scan invocation.
type ScanResult struct {
	RepoURL         string            `json:"repo_url"`
	ScanID          string            `json:"scan_id"`
	ScanTimestamp   time.Time         `json:"scan_timestamp"`
	Status          ScanStatus        `json:"status"`
	Summary         ScanSummary       `json:"summary"`
	Vulnerabilities []Vulnerability   `json:"vulnerabilities"`
	Metadata        map[string]string `json:"metadata"`
}

// SeverityCounts returns the number of vulnerabilities per severity level.
// The four counts always sum to Summary.TotalVulnerabilities.
func (r *ScanResult) SeverityCounts() map[Severity]int {
	counts := map[Severity]int{
		SeverityCritical: 0,
		SeverityHigh:     0,
		SeverityMedium:   0,
		SeverityLow:      0,
	}
	for _, v := range r.Vulnerabilities {
		counts[v.Severity]++
	}
	return counts
}

// SortCanonical orders vulnerabilities by file path, then line number.
// Ties on the same line keep their relative order, which the matcher
// already fixed by byte offset and rule ID.
func (r *ScanResult) SortCanonical() {
	sort.SliceStable(r.Vulnerabilities, func(i, j int) bool {
		a, b := r.Vulnerabilities[i], r.Vulnerabilities[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		return a.LineNumber < b.LineNumber
	})
}
