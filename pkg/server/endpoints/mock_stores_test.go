package endpoints

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
	"github.com/doodlesbykumbi/ums-in-go/pkg/server"
)

// MockRepository implements store.Repository for testing using testify/mock
type MockRepository[T any] struct {
	mock.Mock
	collection string
}

func NewMockUsersRepository() *MockRepository[model.User] {
	return &MockRepository[model.User]{collection: "users"}
}

func NewMockGroupsRepository() *MockRepository[model.Group] {
	return &MockRepository[model.Group]{collection: "groups"}
}

func (m *MockRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockRepository[T]) GetByKey(ctx context.Context, key int64) (T, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(T), args.Error(1)
}

func (m *MockRepository[T]) Find(ctx context.Context, key int64) (T, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(T), args.Error(1)
}

func (m *MockRepository[T]) Save(ctx context.Context, v T) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockRepository[T]) Collection() string {
	return m.collection
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) CheckConnectivity(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type testServer struct {
	*server.Server
	users  *MockRepository[model.User]
	groups *MockRepository[model.Group]
	health *MockHealthStore
	trail  *bytes.Buffer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		users:  NewMockUsersRepository(),
		groups: NewMockGroupsRepository(),
		health: &MockHealthStore{},
		trail:  &bytes.Buffer{},
	}
	ts.Server = server.NewServer(ts.users, ts.groups, ts.health, zerolog.Nop(), "127.0.0.1", 0)
	ts.Audit.SetWriter(ts.trail)
	RegisterAll(ts.Server)

	t.Cleanup(func() {
		ts.users.AssertExpectations(t)
		ts.groups.AssertExpectations(t)
		ts.health.AssertExpectations(t)
	})
	return ts
}

func (ts *testServer) do(method, target, body, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func testUsers() []model.User {
	return []model.User{
		{ID: 1, Name: "Ann", Gender: model.GenderFemale, Role: "admin", GroupIDs: []int64{10}},
		{ID: 2, Name: "Bob", Gender: model.GenderMale, Role: "dev", GroupIDs: []int64{10, 20}},
	}
}

func testGroups() []model.Group {
	return []model.Group{
		{ID: 10, Name: "Ops", Description: "Runs **production**"},
		{ID: 20, Name: "Dev", Description: "Writes code<script>alert(1)</script>"},
	}
}
