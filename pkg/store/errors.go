package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Repository.Find for a missing key.
	ErrNotFound = errors.New("record not found")

	// ErrVersionMismatch means the store's schema version differs from the
	// one this build expects.
	ErrVersionMismatch = errors.New("schema version mismatch")

	// ErrDirtySchema means a schema migration was interrupted.
	ErrDirtySchema = errors.New("schema is dirty")

	// ErrNotInitialized means the store has never been initialized.
	ErrNotInitialized = errors.New("store is not initialized")
)

// ConnectionError is returned when the store cannot be opened.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("store connection failed: %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// QueryError is returned when a transaction fails on an open store.
type QueryError struct {
	Op         string
	Collection string
	Err        error
}

func (e *QueryError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("store query failed: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store query failed: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsConnectionError reports whether err wraps a ConnectionError.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// IsQueryError reports whether err wraps a QueryError.
func IsQueryError(err error) bool {
	var queryErr *QueryError
	return errors.As(err, &queryErr)
}
