// Package membership derives group membership from the users collection.
//
// Groups do not record their members. A user is a member of a group when
// the group id is listed in the user's GroupIDs, so every count here is
// computed from a snapshot of users.
package membership

import "github.com/doodlesbykumbi/ums-in-go/pkg/model"

// GroupCount is the number of groups listed on u.
func GroupCount(u model.User) int {
	return len(u.GroupIDs)
}

// MemberCounts maps each group id to the number of users that list it.
// A user listing the same group twice is counted once.
func MemberCounts(users []model.User, groups []model.Group) map[int64]int {
	counts := make(map[int64]int, len(groups))
	for _, g := range groups {
		counts[g.ID] = 0
	}
	for _, u := range users {
		for _, g := range groups {
			if u.InGroup(g.ID) {
				counts[g.ID]++
			}
		}
	}
	return counts
}

// Members returns the users that list groupID, in input order.
func Members(users []model.User, groupID int64) []model.User {
	var members []model.User
	for _, u := range users {
		if u.InGroup(groupID) {
			members = append(members, u)
		}
	}
	return members
}
