package gorm

import (
	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
	"github.com/doodlesbykumbi/ums-in-go/pkg/store"
)

// Ensure UsersStore implements store.UsersRepository
var _ store.UsersRepository = (*UsersStore)(nil)

// UsersStore implements store.UsersRepository using GORM
type UsersStore = RecordStore[model.User, userRecord]

// NewUsersStore creates a new UsersStore
func NewUsersStore(c *Connector) *UsersStore {
	return newRecordStore(c, userFromRecord, userToRecord)
}
