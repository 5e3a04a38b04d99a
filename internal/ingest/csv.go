// Package ingest provides row sources for the cleaning engine. Sources
// load the full dataset into memory as raw, loosely typed rows; cell
// typing is left to the engine and its profile.
package ingest

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabclean/pkg/errors"
	"github.com/inferloop/tabclean/pkg/models"
)

// CSVConfig holds configuration for the CSV file source.
type CSVConfig struct {
	Path      string `json:"path" yaml:"path"`
	Delimiter string `json:"delimiter" yaml:"delimiter"`
}

// CSVSource reads raw rows from a headered CSV file. Every non-empty
// cell is ingested as text; empty cells are absent.
type CSVSource struct {
	config *CSVConfig
	logger *logrus.Logger
}

// NewCSVSource creates a new CSV file source.
func NewCSVSource(config *CSVConfig, logger *logrus.Logger) (*CSVSource, error) {
	if config == nil || config.Path == "" {
		return nil, errors.NewIngestError("INVALID_CONFIG", "CSV path is required")
	}
	if config.Delimiter != "" && len(config.Delimiter) != 1 {
		return nil, errors.NewIngestError("INVALID_CONFIG", "CSV delimiter must be a single character")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &CSVSource{config: config, logger: logger}, nil
}

// Name returns the source type.
func (s *CSVSource) Name() string {
	return "csv"
}

// Read loads every row of the file.
func (s *CSVSource) Read(ctx context.Context) ([]models.Row, error) {
	f, err := os.Open(s.config.Path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIngest, errors.CodeSourceNotFound, "Failed to open CSV file")
	}
	defer f.Close()

	delimiter := ','
	if s.config.Delimiter != "" {
		delimiter = rune(s.config.Delimiter[0])
	}

	rows, err := DecodeCSV(ctx, f, delimiter)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"path": s.config.Path,
		"rows": len(rows),
	}).Debug("CSV dataset loaded")

	return rows, nil
}

// Close is a no-op; the file handle is scoped to Read.
func (s *CSVSource) Close() error {
	return nil
}

// DecodeCSV decodes a headered CSV stream into raw rows.
func DecodeCSV(ctx context.Context, r io.Reader, delimiter rune) ([]models.Row, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []models.Row{}, nil
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIngest, errors.CodeDecodeFailed, "Failed to read CSV header")
	}

	var rows []models.Row
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrorTypeIngest, errors.CodeDecodeFailed, "Failed to read CSV record")
		}

		row := make(models.Row, len(header))
		for i, name := range header {
			if i >= len(record) || record[i] == "" {
				row[name] = models.Absent()
				continue
			}
			row[name] = models.String(record[i])
		}
		rows = append(rows, row)
	}

	return rows, nil
}
