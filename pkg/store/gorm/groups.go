package gorm

import (
	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
	"github.com/doodlesbykumbi/ums-in-go/pkg/store"
)

// Ensure GroupsStore implements store.GroupsRepository
var _ store.GroupsRepository = (*GroupsStore)(nil)

// GroupsStore implements store.GroupsRepository using GORM
type GroupsStore = RecordStore[model.Group, groupRecord]

// NewGroupsStore creates a new GroupsStore
func NewGroupsStore(c *Connector) *GroupsStore {
	return newRecordStore(c, groupFromRecord, groupToRecord)
}
