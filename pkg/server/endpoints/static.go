package endpoints

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/doodlesbykumbi/ums-in-go/pkg/server"
)

//go:embed static/css
var staticFiles embed.FS

// RegisterStaticFiles serves the embedded stylesheets.
func RegisterStaticFiles(srv *server.Server) {
	cssFS := mustSub(staticFiles, "static/css")
	srv.Router.PathPrefix("/css/").Handler(
		http.StripPrefix("/css/", http.FileServer(http.FS(cssFS))),
	)

	srv.Router.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
}

// mustSub panics when dir is not a valid path into fsys.
func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(fmt.Sprintf("embedded static files: %v", err))
	}
	return sub
}
