// Package cleaner implements the column cleaning engine: per-column
// type coercion, imputation, and outlier clipping over an in-memory
// tabular dataset, driven by an externally supplied profile.
package cleaner

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabclean/internal/coerce"
	"github.com/inferloop/tabclean/internal/stats"
	"github.com/inferloop/tabclean/pkg/constants"
	"github.com/inferloop/tabclean/pkg/models"
)

// Engine cleans tabular datasets. It is stateless between calls and
// safe for concurrent use.
type Engine struct {
	config *Config
	logger *logrus.Logger
}

// Config contains configuration for the cleaning engine.
type Config struct {
	// WinsorizeMinSamples is the smallest numeric sample that gets
	// outlier clipping; smaller columns pass through unclipped.
	WinsorizeMinSamples int `json:"winsorize_min_samples" yaml:"winsorize_min_samples"`

	// IQRMultiplier scales the interquartile range when computing the
	// clipping bounds.
	IQRMultiplier float64 `json:"iqr_multiplier" yaml:"iqr_multiplier"`

	// TextFill replaces missing categorical/text cells when a column
	// has no mode.
	TextFill string `json:"text_fill" yaml:"text_fill"`

	// ParallelWorkers caps concurrent column cleaning. Columns are
	// independent, so any value above 1 is safe; 0 or 1 runs serially.
	ParallelWorkers int `json:"parallel_workers" yaml:"parallel_workers"`
}

// DefaultConfig returns the default engine configuration. The
// winsorization threshold and multiplier defaults are load-bearing:
// changing them changes observable output.
func DefaultConfig() *Config {
	return &Config{
		WinsorizeMinSamples: constants.DefaultWinsorizeMinSamples,
		IQRMultiplier:       constants.DefaultIQRMultiplier,
		TextFill:            constants.DefaultTextFill,
		ParallelWorkers:     constants.DefaultParallelWorkers,
	}
}

// NewEngine creates a new cleaning engine.
func NewEngine(config *Config, logger *logrus.Logger) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		config: config,
		logger: logger,
	}
}

// columnOutcome is the result of cleaning a single column: the final
// cell value per row plus the report line. Columns of unsupported type
// produce no outcome and are passed through untouched.
type columnOutcome struct {
	values []models.Value
	report string
}

// Clean produces a canonicalized copy of the dataset plus a per-column
// report, per the profile's column order. Input rows are never mutated;
// columns absent from the profile are carried through unchanged. Dirty
// or unparseable cells never cause an error.
func (e *Engine) Clean(ctx context.Context, rows []models.Row, profile *models.DatasetProfile) (*models.CleaningResult, error) {
	if profile == nil {
		profile = &models.DatasetProfile{}
	}

	outcomes := e.cleanColumns(ctx, rows, profile)

	cleaned := make([]models.Row, len(rows))
	for i, row := range rows {
		cleaned[i] = row.Clone()
	}

	report := make([]string, 0, len(profile.Columns))
	for ci, col := range profile.Columns {
		outcome := outcomes[ci]
		if outcome == nil {
			continue
		}
		for i := range cleaned {
			cleaned[i][col.Name] = outcome.values[i]
		}
		report = append(report, outcome.report)
	}

	e.logger.WithFields(logrus.Fields{
		"rows":    len(rows),
		"columns": len(profile.Columns),
	}).Debug("Dataset cleaned")

	return &models.CleaningResult{
		Rows:   cleaned,
		Report: report,
	}, nil
}

// cleanColumns runs both phases for every profiled column. Each column
// reads only its own raw cells and writes into its own outcome slot, so
// the work parallelizes without locking when configured to.
func (e *Engine) cleanColumns(ctx context.Context, rows []models.Row, profile *models.DatasetProfile) []*columnOutcome {
	outcomes := make([]*columnOutcome, len(profile.Columns))

	workers := e.config.ParallelWorkers
	if workers <= 1 || len(profile.Columns) < 2 {
		for ci, col := range profile.Columns {
			outcomes[ci] = e.cleanColumn(rows, col)
		}
		return outcomes
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for ci, col := range profile.Columns {
		wg.Add(1)
		sem <- struct{}{}
		go func(ci int, col models.ColumnDescriptor) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[ci] = e.cleanColumn(rows, col)
		}(ci, col)
	}
	wg.Wait()

	return outcomes
}

// cleanColumn dispatches on the profiled column type. Unsupported types
// return nil: no transform, no report line.
func (e *Engine) cleanColumn(rows []models.Row, col models.ColumnDescriptor) *columnOutcome {
	switch col.Type {
	case models.ColumnTypeNumeric:
		return e.cleanNumeric(rows, col.Name)
	case models.ColumnTypeDatetime:
		return e.cleanDatetime(rows, col.Name)
	case models.ColumnTypeBoolean:
		return e.cleanBoolean(rows, col.Name)
	case models.ColumnTypeCategorical, models.ColumnTypeText:
		return e.cleanText(rows, col.Name)
	default:
		e.logger.WithFields(logrus.Fields{
			"column": col.Name,
			"type":   col.Type,
		}).Debug("Unsupported column type, passing through")
		return nil
	}
}

// cleanNumeric coerces every cell to a number, fills missing cells with
// the column median (0 when the column has no valid numbers at all),
// then winsorizes the whole filled column.
func (e *Engine) cleanNumeric(rows []models.Row, name string) *columnOutcome {
	valid := make([]float64, 0, len(rows))
	for _, row := range rows {
		if n, ok := coerce.ToNumber(row[name]); ok {
			valid = append(valid, n)
		}
	}

	median := 0.0
	if len(valid) > 0 {
		median = stats.Quantiles(valid).Q2
	}

	filled := make([]float64, len(rows))
	for i, row := range rows {
		if n, ok := coerce.ToNumber(row[name]); ok {
			filled[i] = n
		} else {
			filled[i] = median
		}
	}

	clipped := stats.Winsorize(filled, e.config.WinsorizeMinSamples, e.config.IQRMultiplier)

	values := make([]models.Value, len(rows))
	for i, n := range clipped {
		values[i] = models.Number(n)
	}

	return &columnOutcome{
		values: values,
		report: fmt.Sprintf("%s: converted to number, imputed median %.2f, winsorized outliers", name, median),
	}
}

// cleanDatetime normalizes parseable cells to canonical date strings.
// Unparseable cells keep their raw value verbatim: dates are the one
// column type where failure means "leave unchanged", not "impute".
func (e *Engine) cleanDatetime(rows []models.Row, name string) *columnOutcome {
	values := make([]models.Value, len(rows))
	for i, row := range rows {
		if s, ok := coerce.ToDateString(row[name]); ok {
			values[i] = models.String(s)
		} else {
			values[i] = row[name]
		}
	}

	return &columnOutcome{
		values: values,
		report: fmt.Sprintf("%s: normalized dates to ISO (YYYY-MM-DD or ISO 8601)", name),
	}
}

// cleanBoolean normalizes cells to booleans and fills missing cells
// with the column mode (false when no cell normalized at all).
func (e *Engine) cleanBoolean(rows []models.Row, name string) *columnOutcome {
	valid := make([]bool, 0, len(rows))
	for _, row := range rows {
		if b, ok := coerce.ToBool(row[name]); ok {
			valid = append(valid, b)
		}
	}

	fill := false
	if mode, ok := stats.Mode(valid); ok {
		fill = mode
	}

	values := make([]models.Value, len(rows))
	for i, row := range rows {
		if b, ok := coerce.ToBool(row[name]); ok {
			values[i] = models.Bool(b)
		} else {
			values[i] = models.Bool(fill)
		}
	}

	return &columnOutcome{
		values: values,
		report: fmt.Sprintf("%s: normalized booleans and filled missing with mode", name),
	}
}

// cleanText trims whitespace and fills missing cells with the column
// mode, or the configured fallback when the column has no mode. A cell
// that trims to the empty string counts as missing.
func (e *Engine) cleanText(rows []models.Row, name string) *columnOutcome {
	valid := make([]string, 0, len(rows))
	for _, row := range rows {
		if s, ok := textCell(row[name]); ok {
			valid = append(valid, s)
		}
	}

	fill := e.config.TextFill
	if mode, ok := stats.Mode(valid); ok {
		fill = mode
	}

	values := make([]models.Value, len(rows))
	for i, row := range rows {
		if s, ok := textCell(row[name]); ok {
			values[i] = models.String(s)
		} else {
			values[i] = models.String(fill)
		}
	}

	return &columnOutcome{
		values: values,
		report: fmt.Sprintf("%s: trimmed text and filled missing with '%s'", name, fill),
	}
}

// textCell renders a cell as trimmed text; absent cells and cells that
// trim to empty are missing.
func textCell(v models.Value) (string, bool) {
	if v.IsAbsent() {
		return "", false
	}
	s := strings.TrimSpace(v.Text())
	if s == "" {
		return "", false
	}
	return s, true
}
