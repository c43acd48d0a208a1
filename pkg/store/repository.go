package store

import (
	"context"

	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
)

// Repository abstracts access to one keyed collection
type Repository[T any] interface {
	// GetAll returns every record in storage order.
	GetAll(ctx context.Context) ([]T, error)

	// GetByKey returns the record stored under key. A missing key yields
	// the zero value and a nil error.
	GetByKey(ctx context.Context, key int64) (T, error)

	// Find is GetByKey with ErrNotFound for a missing key.
	Find(ctx context.Context, key int64) (T, error)

	// Save stores v under its key, replacing every field of any existing
	// record.
	Save(ctx context.Context, v T) error

	// Collection is the name of the underlying collection.
	Collection() string
}

// UsersRepository is the users collection
type UsersRepository = Repository[model.User]

// GroupsRepository is the groups collection
type GroupsRepository = Repository[model.Group]
