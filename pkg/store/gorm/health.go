package gorm

import (
	"context"

	"github.com/doodlesbykumbi/ums-in-go/pkg/store"
)

// Ensure HealthStore implements store.HealthStore
var _ store.HealthStore = (*HealthStore)(nil)

// HealthStore provides health check operations using GORM
type HealthStore struct {
	connector *Connector
}

// NewHealthStore creates a new HealthStore
func NewHealthStore(c *Connector) *HealthStore {
	return &HealthStore{connector: c}
}

// CheckConnectivity opens the store and runs a trivial query
func (s *HealthStore) CheckConnectivity(ctx context.Context) error {
	h, err := s.connector.open(ctx)
	if err != nil {
		return err
	}
	defer s.connector.release(h)

	return h.DB().WithContext(ctx).Exec("SELECT 1").Error
}
