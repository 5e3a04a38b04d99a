package interfaces

import (
	"context"

	"github.com/inferloop/tabclean/pkg/models"
)

// ResultCache defines the interface for caching cleaning results keyed
// by a request digest. A cache is an optimization only; callers must
// treat every cache failure as a miss.
type ResultCache interface {
	// Connect establishes connection to the cache backend
	Connect(ctx context.Context) error

	// Close closes the connection and cleans up resources
	Close() error

	// Get returns the cached result for the key, or (nil, nil) on miss
	Get(ctx context.Context, key string) (*models.CleaningResult, error)

	// Put stores the result under the key with the backend's TTL
	Put(ctx context.Context, key string, result *models.CleaningResult) error
}
