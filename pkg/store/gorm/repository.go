package gorm

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/ums-in-go/pkg/store"
)

type record interface {
	TableName() string
}

// RecordStore implements store.Repository for one table. Every call opens
// its own handle, runs one transaction and closes the handle.
type RecordStore[T any, R record] struct {
	connector  *Connector
	collection string
	toValue    func(R) T
	toRecord   func(T) R
}

func newRecordStore[T any, R record](c *Connector, toValue func(R) T, toRecord func(T) R) *RecordStore[T, R] {
	var r R
	return &RecordStore[T, R]{
		connector:  c,
		collection: r.TableName(),
		toValue:    toValue,
		toRecord:   toRecord,
	}
}

// Collection returns the table name
func (s *RecordStore[T, R]) Collection() string {
	return s.collection
}

// GetAll returns every record ordered by key
func (s *RecordStore[T, R]) GetAll(ctx context.Context) ([]T, error) {
	var recs []R
	err := s.transact(ctx, "get all", readOnly, func(tx *gorm.DB) error {
		return tx.Order("id").Find(&recs).Error
	})
	if err != nil {
		return nil, err
	}
	return mapSlice(recs, s.toValue), nil
}

// GetByKey returns the record for key, or the zero value if there is none
func (s *RecordStore[T, R]) GetByKey(ctx context.Context, key int64) (T, error) {
	v, _, err := s.get(ctx, "get", key)
	return v, err
}

// Find returns the record for key or store.ErrNotFound
func (s *RecordStore[T, R]) Find(ctx context.Context, key int64) (T, error) {
	v, found, err := s.get(ctx, "find", key)
	if err != nil {
		return v, err
	}
	if !found {
		return v, fmt.Errorf("%s %d: %w", s.collection, key, store.ErrNotFound)
	}
	return v, nil
}

// Save inserts v or replaces every column of the stored record
func (s *RecordStore[T, R]) Save(ctx context.Context, v T) error {
	rec := s.toRecord(v)
	return s.transact(ctx, "save", nil, func(tx *gorm.DB) error {
		return tx.Clauses(upsertByID).Create(&rec).Error
	})
}

func (s *RecordStore[T, R]) get(ctx context.Context, op string, key int64) (T, bool, error) {
	var (
		zero T
		recs []R
	)
	err := s.transact(ctx, op, readOnly, func(tx *gorm.DB) error {
		return tx.Where("id = ?", key).Limit(1).Find(&recs).Error
	})
	if err != nil || len(recs) == 0 {
		return zero, false, err
	}
	return s.toValue(recs[0]), true, nil
}

var readOnly = &sql.TxOptions{ReadOnly: true}

// transact runs fn in one transaction on a fresh handle. A nil opts means a
// read-write transaction.
func (s *RecordStore[T, R]) transact(ctx context.Context, op string, opts *sql.TxOptions, fn func(tx *gorm.DB) error) error {
	h, err := s.connector.open(ctx)
	if err != nil {
		return err
	}
	defer s.connector.release(h)

	var txOpts []*sql.TxOptions
	if opts != nil {
		txOpts = append(txOpts, opts)
	}
	if err := h.DB().WithContext(ctx).Transaction(fn, txOpts...); err != nil {
		s.connector.log.Debug().Err(err).
			Str("handle", h.id).
			Str("collection", s.collection).
			Str("op", op).
			Msg("store transaction failed")
		return &store.QueryError{Op: op, Collection: s.collection, Err: err}
	}
	return nil
}
