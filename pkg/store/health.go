package store

import "context"

// HealthStore provides health check operations
type HealthStore interface {
	// CheckConnectivity verifies the store can be opened
	CheckConnectivity(ctx context.Context) error
}
