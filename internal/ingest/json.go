package ingest

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabclean/pkg/errors"
	"github.com/inferloop/tabclean/pkg/models"
)

// JSONConfig holds configuration for the JSON file source.
type JSONConfig struct {
	Path string `json:"path" yaml:"path"`
}

// JSONSource reads raw rows from a JSON file containing an array of
// objects. Cell values keep their JSON types: null, boolean, number,
// or string.
type JSONSource struct {
	config *JSONConfig
	logger *logrus.Logger
}

// NewJSONSource creates a new JSON file source.
func NewJSONSource(config *JSONConfig, logger *logrus.Logger) (*JSONSource, error) {
	if config == nil || config.Path == "" {
		return nil, errors.NewIngestError("INVALID_CONFIG", "JSON path is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &JSONSource{config: config, logger: logger}, nil
}

// Name returns the source type.
func (s *JSONSource) Name() string {
	return "json"
}

// Read loads every row of the file.
func (s *JSONSource) Read(ctx context.Context) ([]models.Row, error) {
	f, err := os.Open(s.config.Path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIngest, errors.CodeSourceNotFound, "Failed to open JSON file")
	}
	defer f.Close()

	rows, err := DecodeJSON(ctx, f)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"path": s.config.Path,
		"rows": len(rows),
	}).Debug("JSON dataset loaded")

	return rows, nil
}

// Close is a no-op; the file handle is scoped to Read.
func (s *JSONSource) Close() error {
	return nil
}

// DecodeJSON decodes a JSON array of objects into raw rows.
func DecodeJSON(ctx context.Context, r io.Reader) ([]models.Row, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var rows []models.Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIngest, errors.CodeDecodeFailed, "Failed to decode JSON dataset")
	}
	if rows == nil {
		rows = []models.Row{}
	}
	return rows, nil
}
