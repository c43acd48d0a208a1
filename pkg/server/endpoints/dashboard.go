package endpoints

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/ums-in-go/pkg/membership"
	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
	"github.com/doodlesbykumbi/ums-in-go/pkg/server"
	"github.com/doodlesbykumbi/ums-in-go/pkg/store"
)

type userRow struct {
	model.User
	Groups int
}

type groupRow struct {
	model.Group
	Members int
}

type dashboardPage struct {
	Users  []userRow
	Groups []groupRow
}

// RegisterDashboardEndpoints registers the overview page
func RegisterDashboardEndpoints(s *server.Server) {
	s.Router.Handle("/", http.RedirectHandler("/dashboard", http.StatusSeeOther)).Methods("GET")
	s.Router.HandleFunc("/dashboard", handleDashboard(s.Users, s.Groups, s.Logger)).Methods("GET")
}

func handleDashboard(users store.UsersRepository, groups store.GroupsRepository, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allUsers, err := users.GetAll(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to load users")
			renderError(w, statusFor(err), "Could not load users.")
			return
		}
		allGroups, err := groups.GetAll(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to load groups")
			renderError(w, statusFor(err), "Could not load groups.")
			return
		}

		page := dashboardPage{
			Users:  make([]userRow, 0, len(allUsers)),
			Groups: make([]groupRow, 0, len(allGroups)),
		}
		for _, u := range allUsers {
			page.Users = append(page.Users, userRow{User: u, Groups: membership.GroupCount(u)})
		}
		counts := membership.MemberCounts(allUsers, allGroups)
		for _, g := range allGroups {
			page.Groups = append(page.Groups, groupRow{Group: g, Members: counts[g.ID]})
		}

		render(w, http.StatusOK, "dashboard.html", page)
	}
}
