package seed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
)

const seedJSON = `{
  "users": [{"id": 1, "name": "Ann", "gender": "F", "role": "admin", "group_ids": [10]}],
  "groups": [{"id": 10, "name": "Ops", "description": "Runs things"}]
}`

const seedYAML = `users:
  - id: 1
    name: Ann
    gender: F
    role: admin
    group_ids: [10]
groups:
  - id: 10
    name: Ops
    description: Runs things
`

var wantSeed = model.Seed{
	Users:  []model.User{{ID: 1, Name: "Ann", Gender: model.GenderFemale, Role: "admin", GroupIDs: []int64{10}}},
	Groups: []model.Group{{ID: 10, Name: "Ops", Description: "Runs things"}},
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew(t *testing.T) {
	src, err := New("https://example.com/seed.json")
	require.NoError(t, err)
	assert.IsType(t, &HTTPSource{}, src)

	src, err = New("data/seed.json")
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, src)

	_, err = New("")
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		src := &FileSource{Path: writeFile(t, "seed.json", seedJSON)}
		got, err := src.Load(t.Context())
		require.NoError(t, err)
		assert.Equal(t, wantSeed, got)
	})

	t.Run("yaml", func(t *testing.T) {
		src := &FileSource{Path: writeFile(t, "seed.yml", seedYAML)}
		got, err := src.Load(t.Context())
		require.NoError(t, err)
		assert.Equal(t, wantSeed, got)
	})

	t.Run("missing file", func(t *testing.T) {
		src := &FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}
		_, err := src.Load(t.Context())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed", func(t *testing.T) {
		src := &FileSource{Path: writeFile(t, "seed.json", `{"users": [`)}
		_, err := src.Load(t.Context())
		assert.ErrorContains(t, err, "failed to parse seed")
	})

	t.Run("unknown gender", func(t *testing.T) {
		src := &FileSource{Path: writeFile(t, "seed.json", `{"users": [{"id": 1, "gender": "X"}]}`)}
		_, err := src.Load(t.Context())
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		src := &FileSource{Path: writeFile(t, "seed.json", seedJSON)}
		_, err := src.Load(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("bundled seed is valid", func(t *testing.T) {
		src := &FileSource{Path: filepath.Join("..", "..", DefaultLocation)}
		got, err := src.Load(t.Context())
		require.NoError(t, err)
		assert.NotEmpty(t, got.Users)
		assert.NotEmpty(t, got.Groups)
		assert.NoError(t, got.Validate())
	})
}

func TestHTTPSource(t *testing.T) {
	t.Run("fetches json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/data/seed.json", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(seedJSON))
		}))
		defer srv.Close()

		src := &HTTPSource{URL: srv.URL + "/data/seed.json"}
		got, err := src.Load(t.Context())
		require.NoError(t, err)
		assert.Equal(t, wantSeed, got)
	})

	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		src := &HTTPSource{URL: srv.URL, Client: srv.Client()}
		_, err := src.Load(t.Context())
		assert.ErrorContains(t, err, "404")
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}))
		defer srv.Close()

		src := &HTTPSource{URL: srv.URL}
		_, err := src.Load(t.Context())
		assert.ErrorContains(t, err, "failed to parse seed")
	})
}
