// Package model defines the records managed by ums.
//
// # Records
//
//   - User: a person with a gender, a role and the ids of the groups it
//     belongs to
//   - Group: a named group with a free-form Markdown description
//   - Seed: the document used to populate an empty store
//
// Membership is not stored on groups. A user belongs to a group when the
// group's id appears in the user's GroupIDs; see package membership for the
// derived counts.
//
// Values in this package are plain snapshots. Copying a User with Clone
// gives a working copy that can be edited without touching the original.
package model
