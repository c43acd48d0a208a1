package model

import "slices"

// User is a person known to ums. ID is immutable once the user has been
// stored.
type User struct {
	ID       int64   `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Gender   Gender  `json:"gender" yaml:"gender"`
	Role     string  `json:"role" yaml:"role"`
	GroupIDs []int64 `json:"group_ids" yaml:"group_ids"`
}

// InGroup reports whether the user lists groupID among its groups.
func (u User) InGroup(groupID int64) bool {
	return slices.Contains(u.GroupIDs, groupID)
}

// ToggleGroup adds groupID to the user's groups, or removes every
// occurrence of it when already present.
func (u *User) ToggleGroup(groupID int64) {
	if u.InGroup(groupID) {
		u.GroupIDs = slices.DeleteFunc(u.GroupIDs, func(id int64) bool { return id == groupID })
		return
	}
	u.GroupIDs = append(u.GroupIDs, groupID)
}

// Clone returns a copy that shares no memory with u.
func (u User) Clone() User {
	u.GroupIDs = slices.Clone(u.GroupIDs)
	return u
}
