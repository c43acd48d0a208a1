package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
	"github.com/doodlesbykumbi/ums-in-go/pkg/store"
)

const jsonContentType = "application/json"

func TestAPIList(t *testing.T) {
	t.Run("users", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("GetAll", mock.Anything).Return(testUsers(), nil)

		w := ts.do("GET", "/api/users", "", "")

		require.Equal(t, http.StatusOK, w.Code)
		var got []model.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, testUsers(), got)
	})

	t.Run("empty collection is an empty array", func(t *testing.T) {
		ts := newTestServer(t)
		ts.groups.On("GetAll", mock.Anything).Return(nil, nil)

		w := ts.do("GET", "/api/groups", "", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("connection failure", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("GetAll", mock.Anything).
			Return(nil, &store.ConnectionError{Op: "open", Err: store.ErrNotInitialized})

		w := ts.do("GET", "/api/users", "", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "store connection failed")
	})
}

func TestAPIGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		ts := newTestServer(t)
		ts.groups.On("Find", mock.Anything, int64(20)).Return(testGroups()[1], nil)

		w := ts.do("GET", "/api/groups/20", "", "")

		require.Equal(t, http.StatusOK, w.Code)
		var got model.Group
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, testGroups()[1], got)
	})

	t.Run("not found", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("Find", mock.Anything, int64(42)).Return(model.User{}, store.ErrNotFound)

		w := ts.do("GET", "/api/users/42", "", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("query failure", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("Find", mock.Anything, int64(1)).
			Return(model.User{}, &store.QueryError{Op: "get", Collection: "users", Err: errors.New("disk I/O error")})

		w := ts.do("GET", "/api/users/1", "", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAPIPut(t *testing.T) {
	t.Run("replaces the record", func(t *testing.T) {
		ts := newTestServer(t)
		want := model.User{ID: 1, Name: "Ann", Gender: model.GenderFemale, Role: "owner", GroupIDs: []int64{20}}
		ts.users.On("Find", mock.Anything, int64(1)).Return(testUsers()[0], nil)
		ts.users.On("Save", mock.Anything, want).Return(nil)

		w := ts.do("PUT", "/api/users/1",
			`{"name":"Ann","gender":"F","role":"owner","group_ids":[20]}`, jsonContentType)

		require.Equal(t, http.StatusOK, w.Code)
		var got model.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, want, got)
	})

	t.Run("id mismatch", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do("PUT", "/api/groups/10", `{"id":20,"name":"Dev"}`, jsonContentType)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do("PUT", "/api/users/1", `{"name":`, jsonContentType)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do("PUT", "/api/users/1", `{"name":"Ann","email":"ann@example.com"}`, jsonContentType)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown gender", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do("PUT", "/api/users/1", `{"name":"Ann","gender":"X"}`, jsonContentType)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown id is not inserted", func(t *testing.T) {
		ts := newTestServer(t)
		ts.groups.On("Find", mock.Anything, int64(30)).Return(model.Group{}, store.ErrNotFound)

		w := ts.do("PUT", "/api/groups/30", `{"name":"QA"}`, jsonContentType)

		assert.Equal(t, http.StatusNotFound, w.Code)
		ts.groups.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("save failure", func(t *testing.T) {
		ts := newTestServer(t)
		ts.groups.On("Find", mock.Anything, int64(10)).Return(testGroups()[0], nil)
		ts.groups.On("Save", mock.Anything, mock.Anything).
			Return(&store.QueryError{Op: "save", Collection: "groups", Err: errors.New("constraint failed")})

		w := ts.do("PUT", "/api/groups/10", `{"id":10,"name":"Ops"}`, jsonContentType)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "store query failed")
		assert.Contains(t, ts.trail.String(), `[action@32473 operation="update" result="failure"][client@32473 ip="192.0.2.1" via="api"]`)
	})
}
