package endpoints

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/ums-in-go/pkg/server"
	"github.com/doodlesbykumbi/ums-in-go/pkg/store"
)

// HealthResponse is the body of /health
type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RegisterStatusEndpoints registers the health check
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/health", handleHealth(s.Health, s.Logger)).Methods("GET")
}

func handleHealth(health store.HealthStore, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := health.CheckConnectivity(r.Context()); err != nil {
			log.Warn().Err(err).Msg("health check failed")
			respondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: err.Error()})
			return
		}
		respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
