package endpoints

import "github.com/doodlesbykumbi/ums-in-go/pkg/server"

// RegisterAll registers all endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterDashboardEndpoints(srv)
	RegisterUserEndpoints(srv)
	RegisterGroupEndpoints(srv)
	RegisterAPIEndpoints(srv)
	RegisterStatusEndpoints(srv)
	RegisterStaticFiles(srv)
}
