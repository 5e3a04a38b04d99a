package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/inferloop/tabclean/pkg/models"
)

// JSONExporter writes the full cleaning result, rows and report, as a
// single JSON document.
type JSONExporter struct {
	// Indent enables pretty-printed output.
	Indent bool
}

// Name returns the exporter name.
func (je *JSONExporter) Name() string {
	return "json"
}

// Export writes the cleaning result to the writer.
func (je *JSONExporter) Export(ctx context.Context, w io.Writer, result *models.CleaningResult, profile *models.DatasetProfile) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	encoder := json.NewEncoder(w)
	if je.Indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON result: %w", err)
	}
	return nil
}
