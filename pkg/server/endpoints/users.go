package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/ums-in-go/pkg/audit"
	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
	"github.com/doodlesbykumbi/ums-in-go/pkg/server"
	"github.com/doodlesbykumbi/ums-in-go/pkg/store"
)

type userForm struct {
	ID      int64
	User    model.User
	Groups  []model.Group
	Genders []model.Gender
	Error   string
}

// RegisterUserEndpoints registers the user edit form
func RegisterUserEndpoints(s *server.Server) {
	s.Router.HandleFunc("/users/{id:[0-9]+}/edit", handleEditUser(s.Users, s.Groups, s.Logger)).Methods("GET")
	s.Router.HandleFunc("/users/{id:[0-9]+}/edit", handleUpdateUser(s.Users, s.Groups, s.Audit, s.Logger)).Methods("POST")
}

func handleEditUser(users store.UsersRepository, groups store.GroupsRepository, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			renderError(w, http.StatusBadRequest, "Invalid user id.")
			return
		}

		// an unknown id renders a blank form
		user, err := users.GetByKey(r.Context(), id)
		if err != nil {
			log.Error().Err(err).Int64("id", id).Msg("failed to load user")
			renderError(w, statusFor(err), "Could not load the user.")
			return
		}
		allGroups, err := groups.GetAll(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to load groups")
			renderError(w, statusFor(err), "Could not load groups.")
			return
		}

		render(w, http.StatusOK, "user_edit.html", userForm{
			ID:      id,
			User:    user,
			Groups:  allGroups,
			Genders: model.SelectableGenders(),
		})
	}
}

func handleUpdateUser(users store.UsersRepository, groups store.GroupsRepository, trail *audit.Logger, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			renderError(w, http.StatusBadRequest, "Invalid user id.")
			return
		}
		if err := r.ParseForm(); err != nil {
			renderError(w, http.StatusBadRequest, "Malformed form.")
			return
		}

		current, err := users.Find(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			renderError(w, http.StatusNotFound, "No such user.")
			return
		}
		if err != nil {
			log.Error().Err(err).Int64("id", id).Msg("failed to load user")
			renderError(w, statusFor(err), "Could not load the user.")
			return
		}
		allGroups, err := groups.GetAll(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to load groups")
			renderError(w, statusFor(err), "Could not load groups.")
			return
		}

		form := userForm{
			ID:      id,
			User:    userFromForm(r, current, allGroups),
			Groups:  allGroups,
			Genders: model.SelectableGenders(),
		}

		gender, err := model.GenderString(r.PostFormValue("gender"))
		if err != nil {
			form.Error = "Unknown gender."
			render(w, http.StatusBadRequest, "user_edit.html", form)
			return
		}
		form.User.Gender = gender

		err = users.Save(r.Context(), form.User)
		recordUpdate(trail, r, users.Collection(), id, "form", err)
		if err != nil {
			log.Error().Err(err).Int64("id", id).Msg("failed to save user")
			form.Error = "The user could not be saved."
			render(w, http.StatusInternalServerError, "user_edit.html", form)
			return
		}

		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

// userFromForm builds the working copy. Memberships of groups that are not
// listed on the form are kept as they are.
func userFromForm(r *http.Request, current model.User, groups []model.Group) model.User {
	working := current.Clone()
	working.Name = r.PostFormValue("name")
	working.Role = r.PostFormValue("role")

	checked := make(map[int64]bool)
	for _, raw := range r.PostForm["group_ids"] {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			checked[id] = true
		}
	}
	for _, g := range groups {
		if checked[g.ID] != working.InGroup(g.ID) {
			working.ToggleGroup(g.ID)
		}
	}
	return working
}
