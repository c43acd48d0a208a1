package model

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned by Seed.Validate when two records of the same
// kind share an id.
var ErrDuplicateID = errors.New("duplicate id")

// Seed is the initial content of a freshly created store.
type Seed struct {
	Users  []User  `json:"users" yaml:"users"`
	Groups []Group `json:"groups" yaml:"groups"`
}

// Validate rejects seeds that could not be stored as a whole.
func (s Seed) Validate() error {
	seen := make(map[int64]struct{}, len(s.Users))
	for _, u := range s.Users {
		if _, ok := seen[u.ID]; ok {
			return fmt.Errorf("seed users: %w: %d", ErrDuplicateID, u.ID)
		}
		seen[u.ID] = struct{}{}
	}

	seen = make(map[int64]struct{}, len(s.Groups))
	for _, g := range s.Groups {
		if _, ok := seen[g.ID]; ok {
			return fmt.Errorf("seed groups: %w: %d", ErrDuplicateID, g.ID)
		}
		seen[g.ID] = struct{}{}
	}
	return nil
}
