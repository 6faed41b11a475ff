// Package history persists completed scan results keyed by scan_id.
// The engine hands over each terminal ScanResult exactly once; this package
// never mutates a stored result.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/scansec/scansec/internal/config"
	"github.com/scansec/scansec/models"
)

// ErrNotFound is returned when no scan exists for the requested ID.
var ErrNotFound = errors.New("scan not found")

// Entry is the lightweight listing row: the denormalised columns kept next
// to the full result for cheap history browsing.
type Entry struct {
	ScanID               string            `json:"scan_id"`
	RepoURL              string            `json:"repo_url"`
	ScanTimestamp        time.Time         `json:"scan_timestamp"`
	Status               models.ScanStatus `json:"status"`
	DurationSeconds      float64           `json:"duration_seconds"`
	TotalFiles           int               `json:"total_files"`
	TotalVulnerabilities int               `json:"total_vulnerabilities"`
	CriticalCount        int               `json:"critical_count"`
	HighCount            int               `json:"high_count"`
	MediumCount          int               `json:"medium_count"`
	LowCount             int               `json:"low_count"`
}

// Store is the scan history backend. Implementations exist for SQLite
// (default) and MySQL.
type Store interface {
	// Save persists a terminal scan result. Saving a non-terminal result
	// is a programming error and is rejected.
	Save(ctx context.Context, res *models.ScanResult) error

	// Get returns the full stored result, or ErrNotFound.
	Get(ctx context.Context, scanID string) (*models.ScanResult, error)

	// List returns the most recent entries, newest first.
	List(ctx context.Context, limit int) ([]Entry, error)

	// Delete removes a stored scan, or returns ErrNotFound.
	Delete(ctx context.Context, scanID string) error

	// Migrate applies pending schema migrations in order.
	Migrate(ctx context.Context) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection.
	Close() error

	// Driver returns the backend name: "sqlite" or "mysql".
	Driver() string
}

// New returns a Store implementation matching cfg.Driver. SQLite is the
// default when the driver is empty.
func New(cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case "mysql":
		return NewMySQL(cfg)
	case "sqlite", "sqlite3", "":
		return NewSQLite(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q (supported: sqlite, mysql)", cfg.Driver)
	}
}
