package interfaces

import (
	"context"

	"github.com/inferloop/tabclean/pkg/models"
)

// DataSource defines the interface for row ingestion backends. Sources
// produce raw, loosely typed rows; typing and cleaning is the engine's
// responsibility.
type DataSource interface {
	// Name returns the source type for logging/debugging
	Name() string

	// Read loads the full dataset into memory as raw rows
	Read(ctx context.Context) ([]models.Row, error)

	// Close cleans up resources
	Close() error
}
