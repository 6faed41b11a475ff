package history

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/scansec/scansec/models"
)

//go:embed migrations/sqlite/*.sql migrations/mysql/*.sql
var migrationsFS embed.FS

// SQLStore is the shared Store implementation over database/sql. The scan
// table schema is identical across backends; only the migration DDL and the
// open path differ per driver.
type SQLStore struct {
	db     *sql.DB
	driver string
}

func (s *SQLStore) Driver() string {
	return s.driver
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Migrate applies all *.sql files for this driver in sorted order, tracked
// in a schema_migrations table.
func (s *SQLStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		filename   VARCHAR(255) NOT NULL PRIMARY KEY,
		applied_at VARCHAR(40)  NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	dir := "migrations/" + s.driver
	entries, err := migrationsFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading migrations dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var count int
		row := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM schema_migrations WHERE filename = ?`, name)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("checking migration %s: %w", name, err)
		}
		if count > 0 {
			continue
		}

		data, err := migrationsFS.ReadFile(dir + "/" + name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		for _, stmt := range splitStatements(string(data)) {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("applying migration %s: %w", name, err)
			}
		}

		_, err = s.db.ExecContext(ctx,
			`INSERT INTO schema_migrations (filename, applied_at) VALUES (?, ?)`,
			name, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		slog.Info("Applied migration", "driver", s.driver, "file", name)
	}
	return nil
}

// Save persists a terminal scan result along with its denormalised summary
// columns.
func (s *SQLStore) Save(ctx context.Context, res *models.ScanResult) error {
	if res == nil || res.ScanID == "" {
		return fmt.Errorf("missing scan result")
	}
	if !res.Status.Terminal() {
		return fmt.Errorf("refusing to store non-terminal scan %s (status %s)", res.ScanID, res.Status)
	}

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encoding scan %s: %w", res.ScanID, err)
	}

	counts := res.SeverityCounts()
	_, err = s.db.ExecContext(ctx, `INSERT INTO scans
		(scan_id, repo_url, scan_timestamp, status, duration_seconds,
		 total_files, total_vulnerabilities,
		 critical_count, high_count, medium_count, low_count,
		 result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ScanID,
		res.RepoURL,
		res.ScanTimestamp.UTC().Format(time.RFC3339Nano),
		string(res.Status),
		res.Summary.ScanDurationSeconds,
		res.Summary.TotalFilesScanned,
		res.Summary.TotalVulnerabilities,
		counts[models.SeverityCritical],
		counts[models.SeverityHigh],
		counts[models.SeverityMedium],
		counts[models.SeverityLow],
		data,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("storing scan %s: %w", res.ScanID, err)
	}
	return nil
}

// Get loads the full stored result.
func (s *SQLStore) Get(ctx context.Context, scanID string) (*models.ScanResult, error) {
	var data []byte
	row := s.db.QueryRowContext(ctx,
		`SELECT result_json FROM scans WHERE scan_id = ?`, scanID)
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading scan %s: %w", scanID, err)
	}

	var res models.ScanResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decoding scan %s: %w", scanID, err)
	}
	return &res, nil
}

// List returns the newest entries first.
func (s *SQLStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT
		scan_id, repo_url, scan_timestamp, status, duration_seconds,
		total_files, total_vulnerabilities,
		critical_count, high_count, medium_count, low_count
		FROM scans ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing scans: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			ts string
		)
		if err := rows.Scan(&e.ScanID, &e.RepoURL, &ts, &e.Status, &e.DurationSeconds,
			&e.TotalFiles, &e.TotalVulnerabilities,
			&e.CriticalCount, &e.HighCount, &e.MediumCount, &e.LowCount); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.ScanTimestamp = parsed
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes a stored scan.
func (s *SQLStore) Delete(ctx context.Context, scanID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scans WHERE scan_id = ?`, scanID)
	if err != nil {
		return fmt.Errorf("deleting scan %s: %w", scanID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// splitStatements breaks a migration file into individual statements;
// database/sql drivers do not reliably execute multi-statement strings.
func splitStatements(script string) []string {
	parts := strings.Split(script, ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			stmts = append(stmts, trimmed)
		}
	}
	return stmts
}
