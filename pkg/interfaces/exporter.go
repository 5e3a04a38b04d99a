package interfaces

import (
	"context"
	"io"

	"github.com/inferloop/tabclean/pkg/models"
)

// Exporter defines the interface for writing cleaned datasets.
type Exporter interface {
	// Name returns the exporter name
	Name() string

	// Export writes the cleaned rows to the writer. The profile supplies
	// column ordering for positional formats such as CSV.
	Export(ctx context.Context, w io.Writer, result *models.CleaningResult, profile *models.DatasetProfile) error
}
