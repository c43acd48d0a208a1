package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/ums-in-go/pkg/audit"
	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
	"github.com/doodlesbykumbi/ums-in-go/pkg/server"
	"github.com/doodlesbykumbi/ums-in-go/pkg/store"
)

// keyed gives the API handlers access to a record's key
type keyed[T any] struct {
	get func(T) int64
	set func(*T, int64)
}

var (
	userKey = keyed[model.User]{
		get: func(u model.User) int64 { return u.ID },
		set: func(u *model.User, id int64) { u.ID = id },
	}
	groupKey = keyed[model.Group]{
		get: func(g model.Group) int64 { return g.ID },
		set: func(g *model.Group, id int64) { g.ID = id },
	}
)

// RegisterAPIEndpoints registers the JSON API for users and groups
func RegisterAPIEndpoints(s *server.Server) {
	registerCollection(s, "/api/users", s.Users, userKey)
	registerCollection(s, "/api/groups", s.Groups, groupKey)
}

func registerCollection[T any](s *server.Server, prefix string, repo store.Repository[T], key keyed[T]) {
	log := s.Logger.With().Str("collection", repo.Collection()).Logger()

	s.Router.HandleFunc(prefix, handleList(repo, log)).Methods("GET")
	s.Router.HandleFunc(prefix+"/{id:[0-9]+}", handleGet(repo, log)).Methods("GET")
	s.Router.HandleFunc(prefix+"/{id:[0-9]+}", handlePut(repo, key, s.Audit, log)).Methods("PUT")
}

func handleList[T any](repo store.Repository[T], log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := repo.GetAll(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to list records")
			respondWithError(w, statusFor(err), err.Error())
			return
		}
		if records == nil {
			records = []T{}
		}
		respondWithJSON(w, http.StatusOK, records)
	}
}

func handleGet[T any](repo store.Repository[T], log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid id")
			return
		}

		record, err := repo.Find(r.Context(), id)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Error().Err(err).Int64("id", id).Msg("failed to fetch record")
			}
			respondWithError(w, statusFor(err), err.Error())
			return
		}
		respondWithJSON(w, http.StatusOK, record)
	}
}

// handlePut replaces an existing record. A body without an id takes the id
// from the path; a different id is rejected.
func handlePut[T any](repo store.Repository[T], key keyed[T], trail *audit.Logger, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid id")
			return
		}

		var record T
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&record); err != nil {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("malformed body: %v", err))
			return
		}
		switch key.get(record) {
		case 0:
			key.set(&record, id)
		case id:
		default:
			respondWithError(w, http.StatusBadRequest, "id in body does not match path")
			return
		}

		if _, err := repo.Find(r.Context(), id); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Error().Err(err).Int64("id", id).Msg("failed to fetch record")
			}
			respondWithError(w, statusFor(err), err.Error())
			return
		}

		err = repo.Save(r.Context(), record)
		recordUpdate(trail, r, repo.Collection(), id, "api", err)
		if err != nil {
			log.Error().Err(err).Int64("id", id).Msg("failed to save record")
			respondWithError(w, statusFor(err), err.Error())
			return
		}
		respondWithJSON(w, http.StatusOK, record)
	}
}
