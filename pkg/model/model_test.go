package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGender(t *testing.T) {
	t.Run("serializes by first letter", func(t *testing.T) {
		assert.Equal(t, "M", GenderMale.String())
		assert.Equal(t, "F", GenderFemale.String())
		assert.Equal(t, "U", GenderUnknown.String())
	})

	t.Run("labels", func(t *testing.T) {
		assert.Equal(t, "Male", GenderMale.Label())
		assert.Equal(t, "Female", GenderFemale.Label())
		assert.Equal(t, "", GenderUnknown.Label())
	})

	t.Run("parses lower case", func(t *testing.T) {
		g, err := GenderString("f")
		require.NoError(t, err)
		assert.Equal(t, GenderFemale, g)
	})

	t.Run("rejects unknown codes", func(t *testing.T) {
		_, err := GenderString("X")
		assert.Error(t, err)
	})

	t.Run("sql value", func(t *testing.T) {
		v, err := GenderMale.Value()
		require.NoError(t, err)
		assert.Equal(t, "M", v)

		var g Gender
		require.NoError(t, g.Scan([]byte("F")))
		assert.Equal(t, GenderFemale, g)
	})
}

func TestUserDecoding(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var u User
		err := json.Unmarshal([]byte(`{"id":1,"name":"Ann","gender":"F","role":"admin","group_ids":[10,20]}`), &u)
		require.NoError(t, err)
		assert.Equal(t, User{ID: 1, Name: "Ann", Gender: GenderFemale, Role: "admin", GroupIDs: []int64{10, 20}}, u)
	})

	t.Run("yaml", func(t *testing.T) {
		var u User
		err := yaml.Unmarshal([]byte("id: 2\nname: Bob\ngender: M\nrole: dev\ngroup_ids: [10]\n"), &u)
		require.NoError(t, err)
		assert.Equal(t, User{ID: 2, Name: "Bob", Gender: GenderMale, Role: "dev", GroupIDs: []int64{10}}, u)
	})
}

func TestUserGroups(t *testing.T) {
	u := User{ID: 1, GroupIDs: []int64{10, 20}}

	assert.True(t, u.InGroup(10))
	assert.False(t, u.InGroup(30))

	u.ToggleGroup(30)
	assert.Equal(t, []int64{10, 20, 30}, u.GroupIDs)

	u.ToggleGroup(10)
	assert.Equal(t, []int64{20, 30}, u.GroupIDs)
}

func TestUserClone(t *testing.T) {
	u := User{ID: 1, GroupIDs: []int64{10}}
	c := u.Clone()
	c.GroupIDs[0] = 99

	assert.Equal(t, []int64{10}, u.GroupIDs)
}

func TestSeedValidate(t *testing.T) {
	t.Run("accepts unique ids", func(t *testing.T) {
		s := Seed{
			Users:  []User{{ID: 1}, {ID: 2}},
			Groups: []Group{{ID: 1}, {ID: 2}},
		}
		assert.NoError(t, s.Validate())
	})

	t.Run("rejects duplicate users", func(t *testing.T) {
		s := Seed{Users: []User{{ID: 1}, {ID: 1}}}
		assert.ErrorIs(t, s.Validate(), ErrDuplicateID)
	})

	t.Run("rejects duplicate groups", func(t *testing.T) {
		s := Seed{Groups: []Group{{ID: 7}, {ID: 7}}}
		assert.ErrorIs(t, s.Validate(), ErrDuplicateID)
	})
}
