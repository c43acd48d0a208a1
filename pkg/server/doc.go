// Package server provides the HTTP server for the user management service.
//
// The server wires the users and groups repositories into a gorilla/mux
// router. Every request is access-logged through gorilla/handlers.
//
// # Server Setup
//
//	srv := server.NewServer(users, groups, health, logger, "127.0.0.1", 8080)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// Handlers are registered via the endpoints subpackage:
//
//   - /dashboard - users and groups overview
//   - /users/{id}/edit, /groups/{id}/edit - edit forms
//   - /api/users, /api/groups - JSON API
//   - /health - store connectivity
package server
