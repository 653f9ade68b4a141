package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/projectify-backend/internal/auth"
	"github.com/baharkarakas/projectify-backend/internal/config"
	"github.com/baharkarakas/projectify-backend/internal/repository/memory"
	"github.com/baharkarakas/projectify-backend/internal/services"
	"github.com/baharkarakas/projectify-backend/internal/week"
)

type testServer struct {
	t     *testing.T
	h     http.Handler
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	tm := auth.NewTokenManager("access", "refresh", "projectify", time.Hour, 24*time.Hour)
	h := NewRouter(RouterDeps{
		Cfg:        config.Config{RateRPS: 0},
		TM:         tm,
		UserSvc:    services.NewUserService(store.Repos().Users, tm, nil),
		ProjectSvc: services.NewProjectService(store.Repos().Projects, nil),
		ReportSvc:  services.NewReportService(store, nil, nil, nil),
	})
	return &testServer{t: t, h: h}
}

func (s *testServer) do(method, path string, body any) (int, map[string]any) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rr := httptest.NewRecorder()
	s.h.ServeHTTP(rr, req)

	out := map[string]any{}
	if rr.Body.Len() > 0 && rr.Header().Get("Content-Type") != "text/plain; charset=utf-8" {
		require.NoError(s.t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	}
	return rr.Code, out
}

// login registers alice, logs in and returns her id.
func (s *testServer) login() string {
	s.t.Helper()
	code, body := s.do(http.MethodPost, "/user/create", map[string]string{"username": "alice", "password": "pw"})
	require.Equal(s.t, http.StatusOK, code, body)
	assert.Equal(s.t, "New user created", body["message"])
	user := body["user"].(map[string]any)
	assert.NotContains(s.t, user, "password")

	code, body = s.do(http.MethodPost, "/user/login", map[string]string{"username": "alice", "password": "pw"})
	require.Equal(s.t, http.StatusOK, code, body)
	s.token = body["token"].(string)
	assert.NotEmpty(s.t, body["refresh_token"])
	assert.InDelta(s.t, 3600, body["expires_in"], 2)
	return user["_id"].(string)
}

func (s *testServer) project(name string) string {
	s.t.Helper()
	code, body := s.do(http.MethodPost, "/projects/create", map[string]string{"name": name})
	require.Equal(s.t, http.StatusOK, code, body)
	return body["project"].(map[string]any)["_id"].(string)
}

func TestRouter_ReportFlow(t *testing.T) {
	s := newTestServer(t)
	userID := s.login()
	apollo := s.project("apollo")
	gemini := s.project("gemini")

	lm := week.LastMonth(time.Now())
	report := map[string]any{"userId": userID, "projectId": apollo, "weekNumber": lm.StartWeek, "hours": 30, "year": lm.StartYear}

	code, body := s.do(http.MethodPost, "/reports/create", report)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "New report created", body["message"])
	created := body["report"].(map[string]any)
	reportID := created["_id"].(string)
	assert.Equal(t, userID, created["user"])
	assert.Equal(t, apollo, created["project"])

	code, body = s.do(http.MethodPost, "/reports/create", report)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Report for this week and project already exists", body["error"])

	over := map[string]any{"userId": userID, "projectId": gemini, "weekNumber": lm.StartWeek, "hours": 16, "year": lm.StartYear}
	code, body = s.do(http.MethodPost, "/reports/create", over)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Total hours for this week exceed the limit of 45", body["error"])

	code, body = s.do(http.MethodPost, "/reports/create", map[string]any{"userId": userID, "projectId": "0123456789abcdef01234567", "weekNumber": 1, "hours": 1, "year": 2026})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User or project not found", body["error"])

	code, body = s.do(http.MethodPut, "/reports/update", map[string]any{"reportId": reportID, "hours": 12})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Report updated", body["message"])

	code, body = s.do(http.MethodPut, "/reports/update", map[string]any{"reportId": reportID})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "ReportId and hours are required", body["error"])

	code, body = s.do(http.MethodGet, "/reports?userId="+userID, nil)
	require.Equal(t, http.StatusOK, code, body)
	reports := body["reports"].([]any)
	require.Len(t, reports, 1)
	assert.Equal(t, 12.0, reports[0].(map[string]any)["hours"])

	code, body = s.do(http.MethodGet, "/reports", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "UserId is required", body["error"])

	code, body = s.do(http.MethodGet, "/reports?userId=0123456789abcdef01234567", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", body["error"])

	code, body = s.do(http.MethodPost, "/reports/reconcile?userId="+userID, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, []any{apollo}, body["user"].(map[string]any)["projects"])

	code, body = s.do(http.MethodGet, "/projects/all", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["projects"], 2)
}

func TestRouter_UpdateOutsideLastMonth(t *testing.T) {
	s := newTestServer(t)
	userID := s.login()
	apollo := s.project("apollo")

	code, body := s.do(http.MethodPost, "/reports/create", map[string]any{"userId": userID, "projectId": apollo, "weekNumber": 10, "hours": 5, "year": 2000})
	require.Equal(t, http.StatusOK, code, body)

	code, body = s.do(http.MethodPut, "/reports/update", map[string]any{"reportId": body["report"].(map[string]any)["_id"], "hours": 6})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "The report is not from the last month", body["error"])

	code, body = s.do(http.MethodPut, "/reports/update", map[string]any{"reportId": "0123456789abcdef01234567", "hours": 6})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Report not found", body["error"])
}

func TestRouter_AuthAndFallbacks(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/reports?userId=x", "/projects/all"} {
		code, body := s.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "You need a valid token to access this route", body["error"])
	}

	code, body := s.do(http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Not found", body["error"])

	code, body = s.do(http.MethodPost, "/user/login", map[string]string{"username": "ghost", "password": "pw"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid username or password", body["error"])

	code, _ = s.do(http.MethodPost, "/user/create", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestRouter_Refresh(t *testing.T) {
	s := newTestServer(t)
	s.login()
	_, body := s.do(http.MethodPost, "/user/login", map[string]string{"username": "alice", "password": "pw"})

	code, next := s.do(http.MethodPost, "/user/refresh", map[string]string{"refresh_token": body["refresh_token"].(string)})
	require.Equal(t, http.StatusOK, code, next)
	assert.NotEmpty(t, next["token"])

	code, _ = s.do(http.MethodPost, "/user/refresh", map[string]string{"refresh_token": "junk"})
	assert.Equal(t, http.StatusUnauthorized, code)
}
