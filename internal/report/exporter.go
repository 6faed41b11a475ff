// Package report serialises scan results for download and storage.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/scansec/scansec/models"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// csvHeader is the fixed CSV column order.
var csvHeader = []string{
	"type", "severity", "file_path", "line_number",
	"description", "code_snippet", "recommendation", "language",
}

// ParseFormat validates a caller-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported export format %q (supported: json, csv)", s)
	}
}

// ContentType returns the MIME type served for a format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// Export renders a scan result in the requested format. An empty
// vulnerability list is a normal outcome, not an error.
func Export(res *models.ScanResult, format Format) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("no scan result to export")
	}
	switch format {
	case FormatJSON:
		return ExportJSON(res)
	case FormatCSV:
		return ExportCSV(res)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// ExportJSON is a direct structural serialisation of the result. It
// round-trips: ParseJSON(ExportJSON(r)) reconstructs an equal result.
func ExportJSON(res *models.ScanResult) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding scan result: %w", err)
	}
	return data, nil
}

// ParseJSON decodes a previously exported result.
func ParseJSON(data []byte) (*models.ScanResult, error) {
	var res models.ScanResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decoding scan result: %w", err)
	}
	return &res, nil
}

// ExportCSV writes one header row plus one row per vulnerability in the
// aggregator's canonical order. encoding/csv handles field quoting.
func ExportCSV(res *models.ScanResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, v := range res.Vulnerabilities {
		row := []string{
			v.Type,
			v.Severity.String(),
			v.FilePath,
			strconv.Itoa(v.LineNumber),
			v.Description,
			v.CodeSnippet,
			v.Recommendation,
			v.Language.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}
