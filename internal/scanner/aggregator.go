package scanner

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/scansec/scansec/models"
)

// Aggregator folds per-file findings into one ScanResult. Add is
// mutex-guarded so workers may call it concurrently, though the engine
// funnels reports through a single collector goroutine anyway. Finalize
// applies the canonical ordering, so completion order is never observable
// in the output.
type Aggregator struct {
	mu           sync.Mutex
	repoURL      string
	scanID       string
	startedAt    time.Time
	vulns        []models.Vulnerability
	filesScanned int
	langFiles    map[string]int
	finalized    bool
}

// NewAggregator starts the bookkeeping for one scan. The scan ID is unique
// per invocation.
func NewAggregator(repoURL string) *Aggregator {
	return &Aggregator{
		repoURL:   repoURL,
		scanID:    NewScanID(),
		startedAt: time.Now().UTC(),
		vulns:     []models.Vulnerability{},
		langFiles: make(map[string]int),
	}
}

// NewScanID returns a fresh scan identifier, "scan_" plus eight hex chars.
func NewScanID() string {
	return "scan_" + uuid.NewString()[:8]
}

// ScanID returns the identifier assigned to this scan.
func (a *Aggregator) ScanID() string {
	return a.scanID
}

// Add records one classified file and whatever findings it produced. Files
// that were counted but never matched (oversized, binary, unreadable) pass
// a nil slice.
func (a *Aggregator) Add(lang models.Language, vulns []models.Vulnerability) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finalized {
		return
	}
	a.filesScanned++
	a.langFiles[lang.String()]++
	a.vulns = append(a.vulns, vulns...)
}

// Finalize sorts the findings into canonical order, computes the summary,
// and returns the completed, terminal ScanResult. The aggregator rejects
// further Adds afterwards.
func (a *Aggregator) Finalize(metadata map[string]string) *models.ScanResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.finalized = true

	res := &models.ScanResult{
		RepoURL:         a.repoURL,
		ScanID:          a.scanID,
		ScanTimestamp:   a.startedAt,
		Status:          models.StatusCompleted,
		Vulnerabilities: a.vulns,
		Metadata:        map[string]string{},
	}
	for k, v := range metadata {
		res.Metadata[k] = v
	}
	res.SortCanonical()

	categories := make(map[string]struct{})
	for _, v := range res.Vulnerabilities {
		categories[v.Type] = struct{}{}
	}
	performed := make([]string, 0, len(categories))
	for c := range categories {
		performed = append(performed, c)
	}
	sort.Strings(performed)

	res.Summary = models.ScanSummary{
		TotalFilesScanned:    a.filesScanned,
		TotalVulnerabilities: len(res.Vulnerabilities),
		ScanDurationSeconds:  time.Since(a.startedAt).Seconds(),
		ScanTypesPerformed:   performed,
		LanguageBreakdown:    a.langFiles,
	}
	return res
}

// FailedResult builds the terminal result for a scan whose ingestion failed
// before the engine could run. No partial findings are ever attached.
func FailedResult(repoURL, reason string) *models.ScanResult {
	return &models.ScanResult{
		RepoURL:       repoURL,
		ScanID:        NewScanID(),
		ScanTimestamp: time.Now().UTC(),
		Status:        models.StatusFailed,
		Summary: models.ScanSummary{
			ScanTypesPerformed: []string{},
			LanguageBreakdown:  map[string]int{},
		},
		Vulnerabilities: []models.Vulnerability{},
		Metadata:        map[string]string{"error": reason},
	}
}
