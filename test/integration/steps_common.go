package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/ums-in-go/pkg/membership"
	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
	"github.com/doodlesbykumbi/ums-in-go/pkg/store"
	gormstore "github.com/doodlesbykumbi/ums-in-go/pkg/store/gorm"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	backend   Backend
	connector *gormstore.Connector
	users     *gormstore.UsersStore
	groups    *gormstore.GroupsStore
	seed      model.Seed
	server    *ServerInstance
	client    *http.Client

	response     *http.Response
	responseBody []byte
	lastErr      error
}

// NewStepsContext creates a new steps context
func NewStepsContext(backend Backend) *StepsContext {
	return &StepsContext{
		backend: backend,
		client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if s.server != nil {
			s.server.Close()
		}
		return ctx, nil
	})

	// Store steps
	sc.Step(`^an empty store$`, s.anEmptyStore)
	sc.Step(`^the seed:$`, s.theSeed)
	sc.Step(`^the store is initialized$`, s.theStoreIsInitialized)
	sc.Step(`^the store holds (\d+) users and (\d+) groups$`, s.theStoreHolds)
	sc.Step(`^no connections are left open$`, s.noConnectionsAreLeftOpen)

	// Repository steps
	sc.Step(`^I save user (\d+) as:$`, s.iSaveUserAs)
	sc.Step(`^I save group (\d+) as:$`, s.iSaveGroupAs)
	sc.Step(`^user (\d+) is:$`, s.userIs)
	sc.Step(`^group (\d+) is:$`, s.groupIs)
	sc.Step(`^user (\d+) is named "([^"]*)"$`, s.userIsNamed)
	sc.Step(`^user (\d+) has role "([^"]*)" and (\d+) groups$`, s.userHasRoleAndGroups)
	sc.Step(`^group (\d+) has (\d+) members?$`, s.groupHasMembers)
	sc.Step(`^fetching user (\d+) returns an empty user$`, s.fetchingUserReturnsAnEmptyUser)
	sc.Step(`^finding user (\d+) fails with not found$`, s.findingUserFailsWithNotFound)
	sc.Step(`^I list users$`, s.iListUsers)
	sc.Step(`^the request fails with a connection error$`, s.theRequestFailsWithAConnectionError)

	// HTTP steps
	sc.Step(`^the server is running$`, s.theServerIsRunning)
	sc.Step(`^I GET "([^"]*)"$`, s.iGET)
	sc.Step(`^I POST "([^"]*)" with form "([^"]*)"$`, s.iPOSTWithForm)
	sc.Step(`^I PUT "([^"]*)" with JSON:$`, s.iPUTWithJSON)
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response body should contain "([^"]*)"$`, s.theResponseBodyShouldContain)
	sc.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, s.theResponseHeaderShouldBe)
	sc.Step(`^the audit trail should contain "([^"]*)"$`, s.theAuditTrailShouldContain)
}

// Store steps

func (s *StepsContext) anEmptyStore(ctx context.Context) error {
	url, err := s.backend.NewStore(ctx)
	if err != nil {
		return err
	}
	s.connector = gormstore.NewConnector(gormstore.Config{
		Driver: s.backend.Driver(),
		URL:    url,
		Logger: zerolog.Nop(),
	})
	s.users = gormstore.NewUsersStore(s.connector)
	s.groups = gormstore.NewGroupsStore(s.connector)
	return nil
}

func (s *StepsContext) theSeed(doc *godog.DocString) error {
	return json.Unmarshal([]byte(doc.Content), &s.seed)
}

func (s *StepsContext) theStoreIsInitialized(ctx context.Context) error {
	return s.connector.Initialize(ctx, s.seed)
}

func (s *StepsContext) theStoreHolds(ctx context.Context, userCount, groupCount int) error {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return err
	}
	groups, err := s.groups.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(users) != userCount || len(groups) != groupCount {
		return fmt.Errorf("expected %d users and %d groups, got %d and %d", userCount, groupCount, len(users), len(groups))
	}
	return nil
}

func (s *StepsContext) noConnectionsAreLeftOpen() error {
	if n := s.connector.OpenHandles(); n != 0 {
		return fmt.Errorf("expected no open handles, got %d", n)
	}
	return nil
}

// Repository steps

func (s *StepsContext) iSaveUserAs(ctx context.Context, id int64, doc *godog.DocString) error {
	var u model.User
	if err := json.Unmarshal([]byte(doc.Content), &u); err != nil {
		return err
	}
	u.ID = id
	return s.users.Save(ctx, u)
}

func (s *StepsContext) iSaveGroupAs(ctx context.Context, id int64, doc *godog.DocString) error {
	var g model.Group
	if err := json.Unmarshal([]byte(doc.Content), &g); err != nil {
		return err
	}
	g.ID = id
	return s.groups.Save(ctx, g)
}

func (s *StepsContext) userIs(ctx context.Context, id int64, doc *godog.DocString) error {
	var want model.User
	if err := json.Unmarshal([]byte(doc.Content), &want); err != nil {
		return err
	}
	got, err := s.users.GetByKey(ctx, id)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(want, got) {
		return fmt.Errorf("expected user %+v, got %+v", want, got)
	}
	return nil
}

func (s *StepsContext) groupIs(ctx context.Context, id int64, doc *godog.DocString) error {
	var want model.Group
	if err := json.Unmarshal([]byte(doc.Content), &want); err != nil {
		return err
	}
	got, err := s.groups.GetByKey(ctx, id)
	if err != nil {
		return err
	}
	if want != got {
		return fmt.Errorf("expected group %+v, got %+v", want, got)
	}
	return nil
}

func (s *StepsContext) userIsNamed(ctx context.Context, id int64, name string) error {
	u, err := s.users.Find(ctx, id)
	if err != nil {
		return err
	}
	if u.Name != name {
		return fmt.Errorf("expected user %d to be named %q, got %q", id, name, u.Name)
	}
	return nil
}

func (s *StepsContext) userHasRoleAndGroups(ctx context.Context, id int64, role string, groupCount int) error {
	u, err := s.users.Find(ctx, id)
	if err != nil {
		return err
	}
	if u.Role != role || membership.GroupCount(u) != groupCount {
		return fmt.Errorf("expected role %q and %d groups, got %q and %d", role, groupCount, u.Role, membership.GroupCount(u))
	}
	return nil
}

func (s *StepsContext) groupHasMembers(ctx context.Context, id int64, count int) error {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return err
	}
	if got := len(membership.Members(users, id)); got != count {
		return fmt.Errorf("expected group %d to have %d members, got %d", id, count, got)
	}
	return nil
}

func (s *StepsContext) fetchingUserReturnsAnEmptyUser(ctx context.Context, id int64) error {
	u, err := s.users.GetByKey(ctx, id)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(u, model.User{}) {
		return fmt.Errorf("expected an empty user, got %+v", u)
	}
	return nil
}

func (s *StepsContext) findingUserFailsWithNotFound(ctx context.Context, id int64) error {
	_, err := s.users.Find(ctx, id)
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("expected ErrNotFound, got %v", err)
	}
	return nil
}

func (s *StepsContext) iListUsers(ctx context.Context) error {
	_, s.lastErr = s.users.GetAll(ctx)
	return nil
}

func (s *StepsContext) theRequestFailsWithAConnectionError() error {
	if !store.IsConnectionError(s.lastErr) {
		return fmt.Errorf("expected a connection error, got %v", s.lastErr)
	}
	return nil
}

// HTTP steps

func (s *StepsContext) theServerIsRunning() error {
	s.server = StartServer(s.connector)
	return nil
}

func (s *StepsContext) iGET(path string) error {
	return s.do(http.MethodGet, path, "", nil)
}

func (s *StepsContext) iPOSTWithForm(path, form string) error {
	return s.do(http.MethodPost, path, "application/x-www-form-urlencoded", strings.NewReader(form))
}

func (s *StepsContext) iPUTWithJSON(path string, doc *godog.DocString) error {
	return s.do(http.MethodPut, path, "application/json", strings.NewReader(doc.Content))
}

func (s *StepsContext) do(method, path, contentType string, body io.Reader) error {
	req, err := http.NewRequest(method, s.server.ServerURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	s.response = resp
	s.responseBody, err = io.ReadAll(resp.Body)
	return err
}

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response received")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseBodyShouldContain(text string) error {
	if !strings.Contains(string(s.responseBody), text) {
		return fmt.Errorf("expected body to contain %q, got %s", text, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseHeaderShouldBe(name, value string) error {
	if got := s.response.Header.Get(name); got != value {
		return fmt.Errorf("expected header %s to be %q, got %q", name, value, got)
	}
	return nil
}

func (s *StepsContext) theAuditTrailShouldContain(text string) error {
	if s.server == nil {
		return fmt.Errorf("server is not running")
	}
	if trail := s.server.Audit.String(); !strings.Contains(trail, text) {
		return fmt.Errorf("expected audit trail to contain %q, got %s", text, trail)
	}
	return nil
}
