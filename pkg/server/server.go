package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/ums-in-go/pkg/audit"
	"github.com/doodlesbykumbi/ums-in-go/pkg/store"
)

type Server struct {
	Users  store.UsersRepository
	Groups store.GroupsRepository
	Health store.HealthStore
	Logger zerolog.Logger
	Audit  *audit.Logger
	Router *mux.Router
	srv    *http.Server
}

func NewServer(
	users store.UsersRepository,
	groups store.GroupsRepository,
	health store.HealthStore,
	logger zerolog.Logger,
	host string,
	port int,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler:      handlers.LoggingHandler(os.Stdout, router),
		Addr:         host + ":" + strconv.Itoa(port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Users:  users,
		Groups: groups,
		Health: health,
		Logger: logger.With().Str("component", "server").Logger(),
		Audit:  audit.NewLogger(),
		Router: router,
		srv:    srv,
	}
}

// Addr is the address the server listens on
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.Logger.Info().Str("addr", s.srv.Addr).Msg("listening")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
