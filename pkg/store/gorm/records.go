package gorm

import (
	"fmt"
	"slices"
	"time"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
)

type userRecord struct {
	ID       int64        `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name     string       `gorm:"column:name"`
	Gender   model.Gender `gorm:"column:gender"`
	Role     string       `gorm:"column:role"`
	GroupIDs []int64      `gorm:"column:group_ids;serializer:json"`
}

func (userRecord) TableName() string {
	return "users"
}

// BeforeSave rejects genders the column could not be read back as.
func (r *userRecord) BeforeSave(*gorm.DB) error {
	if !r.Gender.IsAGender() {
		return fmt.Errorf("user %d: invalid gender %d", r.ID, int(r.Gender))
	}
	return nil
}

func userToRecord(u model.User) userRecord {
	return userRecord{
		ID:       u.ID,
		Name:     u.Name,
		Gender:   u.Gender,
		Role:     u.Role,
		GroupIDs: slices.Clone(u.GroupIDs),
	}
}

func userFromRecord(r userRecord) model.User {
	return model.User{
		ID:       r.ID,
		Name:     r.Name,
		Gender:   r.Gender,
		Role:     r.Role,
		GroupIDs: slices.Clone(r.GroupIDs),
	}
}

type groupRecord struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name        string `gorm:"column:name"`
	Description string `gorm:"column:description"`
}

func (groupRecord) TableName() string {
	return "groups"
}

func groupToRecord(g model.Group) groupRecord {
	return groupRecord(g)
}

func groupFromRecord(r groupRecord) model.Group {
	return model.Group(r)
}

// seedMarker records that the seed for a schema version was applied.
type seedMarker struct {
	SchemaVersion int64     `gorm:"column:schema_version;primaryKey;autoIncrement:false"`
	SeededAt      time.Time `gorm:"column:seeded_at"`
}

func (seedMarker) TableName() string {
	return "seed_history"
}
