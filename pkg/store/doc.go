// Package store provides storage abstractions for ums.
//
// This package defines the interfaces the presentation layer and the CLI
// program against. The GORM implementation lives in pkg/store/gorm.
//
// # Lifecycle
//
// A Connector owns the store's identity (its location and schema version).
// Initialize is run once at startup with the seed; afterwards every
// repository call opens its own Handle, runs a single transaction and
// closes the handle again, on success and on failure.
//
// # Available Stores
//
//   - Repository[model.User]: the users collection
//   - Repository[model.Group]: the groups collection
//   - HealthStore: connectivity checks
//
// # Errors
//
//	users, err := repo.GetAll(ctx)
//	var connErr *store.ConnectionError
//	if errors.As(err, &connErr) {
//	    // the store could not be opened
//	}
package store
