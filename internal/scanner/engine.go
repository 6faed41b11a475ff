package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/scansec/scansec/internal/classifier"
	"github.com/scansec/scansec/internal/rules"
	"github.com/scansec/scansec/models"
)

// maxDefaultWorkers caps the worker pool when no explicit count is set.
const maxDefaultWorkers = 8

// Engine runs one scan: classifier traversal feeding a bounded worker pool,
// with a single collector folding per-file reports into the Aggregator.
type Engine struct {
	classifier *classifier.Classifier
	matchers   *MatcherSet
	workers    int
}

// New builds an Engine over an immutable rule registry. workers <= 0 picks
// a default based on CPU count.
func New(reg *rules.Registry, cls *classifier.Classifier, workers int) *Engine {
	if workers <= 0 {
		workers = min(runtime.NumCPU(), maxDefaultWorkers)
	}
	return &Engine{
		classifier: cls,
		matchers:   NewMatcherSet(reg),
		workers:    workers,
	}
}

type fileReport struct {
	lang  models.Language
	vulns []models.Vulnerability
}

// Scan audits the tree rooted at root, which an external collaborator has
// already materialised on disk. repoURL and metadata are recorded verbatim
// in the result. Per-file problems are absorbed; the only fatal case is an
// unreadable root, which yields a failed terminal result and an error.
func (e *Engine) Scan(ctx context.Context, repoURL, root string, metadata map[string]string) (*models.ScanResult, error) {
	agg := NewAggregator(repoURL)
	slog.Info("Starting scan",
		"scan_id", agg.ScanID(),
		"repo", repoURL,
		"root", root,
		"workers", e.workers,
	)

	fileCh := make(chan classifier.File)
	reportCh := make(chan fileReport)
	walkErrCh := make(chan error, 1)

	go func() {
		defer close(fileCh)
		walkErrCh <- e.classifier.Walk(root, func(f classifier.File) error {
			select {
			case fileCh <- f:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	var wg sync.WaitGroup
	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range fileCh {
				reportCh <- e.scanFile(f)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(reportCh)
	}()

	for rep := range reportCh {
		agg.Add(rep.lang, rep.vulns)
	}

	if err := <-walkErrCh; err != nil {
		slog.Error("Scan failed", "scan_id", agg.ScanID(), "error", err)
		return FailedResult(repoURL, err.Error()), fmt.Errorf("scanning %s: %w", root, err)
	}

	res := agg.Finalize(metadata)
	slog.Info("Scan completed",
		"scan_id", res.ScanID,
		"files", res.Summary.TotalFilesScanned,
		"findings", res.Summary.TotalVulnerabilities,
		"duration", fmt.Sprintf("%.2fs", res.Summary.ScanDurationSeconds),
	)
	return res, nil
}

// scanFile matches one classified file. Every classified file is counted;
// oversized, unreadable, and binary files simply contribute no findings.
func (e *Engine) scanFile(f classifier.File) fileReport {
	rep := fileReport{lang: f.Language}
	if f.Oversized {
		slog.Debug("Skipping oversized file", "path", f.RelPath, "size", f.Size)
		return rep
	}

	content, err := os.ReadFile(f.AbsPath)
	if err != nil {
		slog.Warn("Skipping unreadable file", "path", f.RelPath, "error", err)
		return rep
	}
	if IsBinary(content) {
		slog.Debug("Skipping binary file", "path", f.RelPath)
		return rep
	}

	ls := e.matchers.For(f.Language)
	if ls == nil {
		return rep
	}

	for _, hit := range ls.Scan(content) {
		rule := e.matchers.Rule(hit.RuleID)
		if rule == nil {
			continue
		}
		rep.vulns = append(rep.vulns,
			Normalize(hit, rule, f.RelPath, lineAt(content, hit.ByteOffset)))
	}
	return rep
}
