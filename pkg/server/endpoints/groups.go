package endpoints

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/ums-in-go/pkg/audit"
	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
	"github.com/doodlesbykumbi/ums-in-go/pkg/server"
	"github.com/doodlesbykumbi/ums-in-go/pkg/store"
)

type groupForm struct {
	ID    int64
	Group model.Group
	Error string
}

// RegisterGroupEndpoints registers the group edit form
func RegisterGroupEndpoints(s *server.Server) {
	s.Router.HandleFunc("/groups/{id:[0-9]+}/edit", handleEditGroup(s.Groups, s.Logger)).Methods("GET")
	s.Router.HandleFunc("/groups/{id:[0-9]+}/edit", handleUpdateGroup(s.Groups, s.Audit, s.Logger)).Methods("POST")
}

func handleEditGroup(groups store.GroupsRepository, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			renderError(w, http.StatusBadRequest, "Invalid group id.")
			return
		}

		group, err := groups.GetByKey(r.Context(), id)
		if err != nil {
			log.Error().Err(err).Int64("id", id).Msg("failed to load group")
			renderError(w, statusFor(err), "Could not load the group.")
			return
		}

		render(w, http.StatusOK, "group_edit.html", groupForm{ID: id, Group: group})
	}
}

func handleUpdateGroup(groups store.GroupsRepository, trail *audit.Logger, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			renderError(w, http.StatusBadRequest, "Invalid group id.")
			return
		}
		if err := r.ParseForm(); err != nil {
			renderError(w, http.StatusBadRequest, "Malformed form.")
			return
		}

		if _, err := groups.Find(r.Context(), id); errors.Is(err, store.ErrNotFound) {
			renderError(w, http.StatusNotFound, "No such group.")
			return
		} else if err != nil {
			log.Error().Err(err).Int64("id", id).Msg("failed to load group")
			renderError(w, statusFor(err), "Could not load the group.")
			return
		}

		form := groupForm{
			ID: id,
			Group: model.Group{
				ID:          id,
				Name:        r.PostFormValue("name"),
				Description: r.PostFormValue("description"),
			},
		}

		err = groups.Save(r.Context(), form.Group)
		recordUpdate(trail, r, groups.Collection(), id, "form", err)
		if err != nil {
			log.Error().Err(err).Int64("id", id).Msg("failed to save group")
			form.Error = "The group could not be saved."
			render(w, http.StatusInternalServerError, "group_edit.html", form)
			return
		}

		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}
