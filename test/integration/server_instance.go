package integration

import (
	"bytes"
	"net/http/httptest"
	"sync"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/ums-in-go/pkg/server"
	"github.com/doodlesbykumbi/ums-in-go/pkg/server/endpoints"
	gormstore "github.com/doodlesbykumbi/ums-in-go/pkg/store/gorm"
)

// ServerInstance is an in-process server bound to one scenario's store
type ServerInstance struct {
	Server    *server.Server
	ServerURL string
	Audit     *syncBuffer
	http      *httptest.Server
}

// StartServer serves the full router over a loopback listener
func StartServer(connector *gormstore.Connector) *ServerInstance {
	s := server.NewServer(
		gormstore.NewUsersStore(connector),
		gormstore.NewGroupsStore(connector),
		gormstore.NewHealthStore(connector),
		zerolog.Nop(),
		"127.0.0.1",
		0,
	)
	trail := &syncBuffer{}
	s.Audit.SetWriter(trail)
	endpoints.RegisterAll(s)

	ts := httptest.NewServer(s.Router)
	return &ServerInstance{Server: s, ServerURL: ts.URL, Audit: trail, http: ts}
}

func (si *ServerInstance) Close() {
	si.http.Close()
}

// syncBuffer collects audit lines written from handler goroutines
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
