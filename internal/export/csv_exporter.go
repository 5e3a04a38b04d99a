// Package export writes cleaned datasets to output formats.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/inferloop/tabclean/pkg/models"
)

// CSVExporter writes cleaned rows as headered CSV.
type CSVExporter struct {
	// Delimiter defaults to ','.
	Delimiter rune
}

// Name returns the exporter name.
func (ce *CSVExporter) Name() string {
	return "csv"
}

// Export writes the cleaned rows to the writer. Profiled columns come
// first in profile order; any remaining columns follow in sorted order
// so output is deterministic. Absent cells render empty.
func (ce *CSVExporter) Export(ctx context.Context, w io.Writer, result *models.CleaningResult, profile *models.DatasetProfile) error {
	header := columnOrder(result, profile)

	csvWriter := csv.NewWriter(w)
	if ce.Delimiter != 0 {
		csvWriter.Comma = ce.Delimiter
	}
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(header))
	for _, row := range result.Rows {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for i, name := range header {
			record[i] = row[name].Text()
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// columnOrder returns profiled columns in profile order followed by any
// extra columns present in the rows, sorted by name.
func columnOrder(result *models.CleaningResult, profile *models.DatasetProfile) []string {
	var order []string
	seen := make(map[string]bool)
	if profile != nil {
		for _, col := range profile.Columns {
			if !seen[col.Name] {
				order = append(order, col.Name)
				seen[col.Name] = true
			}
		}
	}

	var extras []string
	for _, row := range result.Rows {
		for name := range row {
			if !seen[name] {
				extras = append(extras, name)
				seen[name] = true
			}
		}
	}
	sort.Strings(extras)

	return append(order, extras...)
}
