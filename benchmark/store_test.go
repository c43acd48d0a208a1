package benchmark

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
	"github.com/doodlesbykumbi/ums-in-go/pkg/server"
	"github.com/doodlesbykumbi/ums-in-go/pkg/server/endpoints"
	gormstore "github.com/doodlesbykumbi/ums-in-go/pkg/store/gorm"
)

func benchSeed(users, groups int) model.Seed {
	var s model.Seed
	for g := 1; g <= groups; g++ {
		s.Groups = append(s.Groups, model.Group{ID: int64(g), Name: fmt.Sprintf("group-%d", g), Description: "A **group**"})
	}
	for u := 1; u <= users; u++ {
		s.Users = append(s.Users, model.User{
			ID:       int64(u),
			Name:     fmt.Sprintf("user-%d", u),
			Gender:   model.GenderFemale,
			Role:     "member",
			GroupIDs: []int64{int64(u%groups + 1)},
		})
	}
	return s
}

func newConnector(b *testing.B) *gormstore.Connector {
	b.Helper()
	c := gormstore.NewConnector(gormstore.Config{
		URL:    filepath.Join(b.TempDir(), "bench.db"),
		Logger: zerolog.Nop(),
	})
	if err := c.Initialize(context.Background(), benchSeed(500, 20)); err != nil {
		b.Fatal(err)
	}
	return c
}

func BenchmarkRepository(b *testing.B) {
	c := newConnector(b)
	users := gormstore.NewUsersStore(c)
	ctx := context.Background()

	b.Run("GetAll users", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_, _ = users.GetAll(ctx)
		}
	})

	b.Run("GetByKey user", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_, _ = users.GetByKey(ctx, int64(i%500+1))
		}
	})

	b.Run("Save user", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_ = users.Save(ctx, model.User{ID: int64(i%500 + 1), Name: "renamed", GroupIDs: []int64{1, 2}})
		}
	})
}

func BenchmarkDashboardHandler(b *testing.B) {
	c := newConnector(b)
	s := server.NewServer(
		gormstore.NewUsersStore(c),
		gormstore.NewGroupsStore(c),
		gormstore.NewHealthStore(c),
		zerolog.Nop(),
		"127.0.0.1",
		0,
	)
	endpoints.RegisterAll(s)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			w := httptest.NewRecorder()
			s.Router.ServeHTTP(w, r)
		}
	})
}
