package store

import (
	"context"

	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
)

// Handle is one open connection to the store.
type Handle interface {
	// ID identifies the handle in logs.
	ID() string
}

// Connector abstracts the store's connection lifecycle
type Connector interface {
	// Initialize creates the schema and seeds it exactly once per schema
	// version. Later calls only open and close the store.
	Initialize(ctx context.Context, seed model.Seed) error

	// Open returns a handle to an initialized store.
	Open(ctx context.Context) (Handle, error)

	// Close releases the handle.
	Close(h Handle)
}
