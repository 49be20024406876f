package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time_manager/internal/api"
	"time_manager/internal/auth"
	"time_manager/internal/config"
	"time_manager/internal/domain"
	"time_manager/internal/repository"
	"time_manager/internal/service"
	"time_manager/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type server struct {
	router *gin.Engine
	users  *service.Users
}

func newServer(t *testing.T) *server {
	t.Helper()
	repos := repository.NewSet(testutil.NewDB(t))
	reports := service.NewReports(repos, nil)
	users := service.NewUsers(repos)
	cfg := &config.Config{JWTSecret: "test-secret", LoginRateLimit: 100}
	router := api.NewRouter(cfg, api.Services{
		Sessions:     auth.NewSessions(repos.Users, cfg.JWTSecret, nil, false),
		Users:        users,
		Activities:   service.NewActivities(repos, reports),
		Categories:   service.NewCategories(repos, reports),
		Habits:       service.NewHabits(repos, reports),
		Projects:     service.NewProjects(repos, reports),
		ActivityLogs: service.NewActivityLogs(repos, reports),
		Relations:    service.NewRelations(repos, reports),
		Reports:      reports,
	})
	return &server{router: router, users: users}
}

func (s *server) account(t *testing.T, username, role string) {
	t.Helper()
	_, err := s.users.Register(context.Background(), service.UserInput{Name: username, Username: username, Password: "secret123", Role: role})
	require.NoError(t, err)
}

func (s *server) do(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *server) login(t *testing.T, username string) *http.Cookie {
	t.Helper()
	w := s.do(http.MethodPost, "/auth/login", `{"username":"`+username+`","password":"secret123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestGuardedRouteRedirectsWithoutSession(t *testing.T) {
	s := newServer(t)

	for _, path := range []string{"/dashboard", "/activities", "/users", "/activity-logs/open-activities"} {
		w := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/auth/login", w.Header().Get("Location"), path)
	}
}

func TestGuardedRouteRejectsForgedCookie(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/activities", "", &http.Cookie{Name: auth.CookieName, Value: "forged"})
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestLoginWrongPasswordSetsNoCookie(t *testing.T) {
	s := newServer(t)
	s.account(t, "ana", domain.RoleUser)

	w := s.do(http.MethodPost, "/auth/login", `{"username":"ana","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
	assert.Equal(t, auth.MsgBadCredential, decode(t, w)["error"])
}

func TestLoginPageRedirectsWhenLoggedIn(t *testing.T) {
	s := newServer(t)
	s.account(t, "ana", domain.RoleUser)
	cookie := s.login(t, "ana")

	w := s.do(http.MethodGet, "/auth/login", "", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/auth/login", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserRoleCannotManageAccounts(t *testing.T) {
	s := newServer(t)
	s.account(t, "ana", domain.RoleUser)
	cookie := s.login(t, "ana")

	w := s.do(http.MethodGet, "/users", "", cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Acceso prohibido", decode(t, w)["error"])

	w = s.do(http.MethodGet, "/auth/", "", cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/dashboard", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminListsUsers(t *testing.T) {
	s := newServer(t)
	s.account(t, "root", domain.RoleAdmin)
	cookie := s.login(t, "root")

	w := s.do(http.MethodGet, "/users?page=1&page_size=10", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["total"])
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegisterNeverGrantsAdmin(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPost, "/auth/register", `{"name":"Eve","username":"eve","password":"secret123","role":"admin"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	cookie := s.login(t, "eve")
	w = s.do(http.MethodGet, "/users", "", cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCategoryCRUDStatuses(t *testing.T) {
	s := newServer(t)
	s.account(t, "ana", domain.RoleUser)
	cookie := s.login(t, "ana")

	w := s.do(http.MethodPost, "/categories", `{"name":"Fitness","description":"Sport"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/categories", `{"name":"Fitness","description":"Again"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/categories", `{"name":"Work"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.MsgRequiredFields, decode(t, w)["error"])

	w = s.do(http.MethodGet, "/categories/999", "", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/categories/abc", "", cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/categories/999", `{"name":"Other"}`, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/categories/time-used", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestLinkRoutes(t *testing.T) {
	s := newServer(t)
	s.account(t, "ana", domain.RoleUser)
	cookie := s.login(t, "ana")

	w := s.do(http.MethodPost, "/activities", `{"name":"Run","description":"Morning run"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.do(http.MethodPost, "/categories", `{"name":"Fitness","description":"Sport"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/activities/1/categories/2", "", cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/activities/1/categories/1", "", cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decode(t, w)["relation_id"])

	w = s.do(http.MethodPost, "/activities/1/categories/1", "", cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/activities/1/categories", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"relation_id":1`)
	assert.Contains(t, w.Body.String(), `"Fitness"`)

	w = s.do(http.MethodDelete, "/activities/categories/1", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, "/activities/categories/1", "", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestActivityLogRoutes(t *testing.T) {
	s := newServer(t)
	s.account(t, "ana", domain.RoleUser)
	cookie := s.login(t, "ana")

	w := s.do(http.MethodPost, "/activities", `{"name":"Run","description":"Morning run"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := `{"activity_id":1,"user_id":1,"start_time":"2024-03-01T07:00:00Z"}`
	w = s.do(http.MethodPost, "/activity-logs", body, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/activity-logs", body, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.MsgDuplicateLog, decode(t, w)["error"])

	w = s.do(http.MethodGet, "/activity-logs/open-activities", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"activity_name":"Run"`)

	w = s.do(http.MethodGet, "/activity-logs/activities/search?name=Ru", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Run"`)

	w = s.do(http.MethodGet, "/activity-logs/habits/1/activities?startDate=2024-03-01", "", cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/activity-logs/habits/1/activities?startDate=01/03/2024&endDate=2024-03-02", "", cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/activity-logs/users/1/last-activities", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Run"`)
}

func TestLogoutClearsCookie(t *testing.T) {
	s := newServer(t)
	s.account(t, "ana", domain.RoleUser)
	cookie := s.login(t, "ana")

	w := s.do(http.MethodGet, "/auth/logout", "", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestReportsOnUnknownIDsAreNotFound(t *testing.T) {
	s := newServer(t)
	s.account(t, "root", domain.RoleAdmin)
	cookie := s.login(t, "root")

	for _, path := range []string{
		"/activity-logs/users/999/last-activities",
		"/activity-logs/projects/999/activities",
		"/activity-logs/habits/999/activities?startDate=2024-01-01&endDate=2024-12-31",
		"/activity-logs/user/999",
		"/activity-logs/activity/999",
		"/activities/users/999/categories/999",
		"/categories/999/activities",
	} {
		w := s.do(http.MethodGet, path, "", cookie)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, decode(t, w)["error"], "no existe", path)
	}

	w := s.do(http.MethodGet, "/activity-logs/users/1/last-activities", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestUserLookupByUsername(t *testing.T) {
	s := newServer(t)
	s.account(t, "root", domain.RoleAdmin)
	s.account(t, "ana", domain.RoleUser)
	cookie := s.login(t, "root")

	w := s.do(http.MethodGet, "/users/username/ANA", "", cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "ana", body["username"])
	assert.NotContains(t, body, "password")

	w = s.do(http.MethodGet, "/users/username/nobody", "", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/users/username/ana", "", s.login(t, "ana"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
