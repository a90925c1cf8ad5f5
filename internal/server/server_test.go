package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(&Config{DBPath: ":memory:", Port: 0, Logger: zerolog.Nop()})
}

func doJSON(t *testing.T, srv *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestRegisterDeployEventsScenario(t *testing.T) {
	srv := newTestServer(t)

	// register
	rec, svc := doJSON(t, srv, http.MethodPost, "/api/services",
		`{"name":"auth-service","owner":"identity-team","language":"python","repo":"https://x/y"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "auth-service", svc["name"])
	assert.Nil(t, svc["deployed_version"])

	// duplicate registration is rejected and reports an error message
	rec, body := doJSON(t, srv, http.MethodPost, "/api/services",
		`{"name":"auth-service","owner":"identity-team","language":"python","repo":"https://x/y"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NotEmpty(t, body["error"])

	// listing filtered by owner contains exactly that service
	rec, list := doJSON(t, srv, http.MethodGet, "/api/services?owner=identity-team", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, list["total"])
	services := list["services"].([]any)
	require.Len(t, services, 1)
	assert.Equal(t, "auth-service", services[0].(map[string]any)["name"])

	// deploy
	rec, svc = doJSON(t, srv, http.MethodPost, "/api/services/auth-service/deploy", `{"version":"v1.0.0"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v1.0.0", svc["deployed_version"])
	assert.NotNil(t, svc["deployed_at"])

	// events are newest first: the deploy leads
	rec, events := doJSON(t, srv, http.MethodGet, "/api/services/auth-service/events", "")
	require.Equal(t, http.StatusOK, rec.Code)
	evs := events["events"].([]any)
	require.Len(t, evs, 2)
	first := evs[0].(map[string]any)
	assert.Equal(t, "deployed", first["event_type"])
	assert.Equal(t, "v1.0.0", first["event_data"].(map[string]any)["version"])
	last := evs[1].(map[string]any)
	assert.Equal(t, "created", last["event_type"])
}

func TestRegisterValidationError(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/services", `{"name":"x","owner":"","language":"go","repo":"r"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, body["error"])
}

func TestDeployErrors(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodPost, "/api/services/ghost/deploy", `{"version":"v1"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, body["error"])

	doJSON(t, srv, http.MethodPost, "/api/services",
		`{"name":"svc","owner":"team","language":"go","repo":"r"}`)
	rec, body = doJSON(t, srv, http.MethodPost, "/api/services/svc/deploy", `{"version":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, body["error"])
}

func TestNextStepsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/services",
		`{"name":"auth-service","owner":"identity-team","language":"python","repo":"https://x/y"}`)

	rec, body := doJSON(t, srv, http.MethodGet, "/api/services/auth-service/next-steps", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "auth-service", body["service_name"])
	assert.NotEmpty(t, body["next_steps"])
	assert.NotEmpty(t, body["templates"])
	assert.Equal(t, "python", body["service_info"].(map[string]any)["language"])

	rec, _ = doJSON(t, srv, http.MethodGet, "/api/services/ghost/next-steps", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusOverviewEndpoint(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/services",
		`{"name":"svc-a","owner":"team","language":"go","repo":"r"}`)
	doJSON(t, srv, http.MethodPost, "/api/services",
		`{"name":"svc-b","owner":"team","language":"go","repo":"r"}`)
	doJSON(t, srv, http.MethodPost, "/api/services/svc-a/deploy", `{"version":"v1"}`)

	rec, body := doJSON(t, srv, http.MethodGet, "/api/services/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := body["summary"].(map[string]any)
	assert.EqualValues(t, 2, summary["total_services"])
	assert.EqualValues(t, 1, summary["deployed_services"])
	assert.Len(t, body["services"].([]any), 2)
	recent := body["recent_deployments"].([]any)
	require.Len(t, recent, 1)
	assert.Equal(t, "svc-a", recent[0].(map[string]any)["name"])
}

func TestAnalyticsAndFiltersEndpoints(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/services",
		`{"name":"auth-service","owner":"identity-team","language":"python","repo":"r"}`)
	doJSON(t, srv, http.MethodPost, "/api/services",
		`{"name":"user-service","owner":"platform-team","language":"go","repo":"r"}`)

	rec, body := doJSON(t, srv, http.MethodGet, "/api/analytics/overview", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 30, body["period_days"])
	stats := body["deployment_stats"].(map[string]any)
	assert.EqualValues(t, 2, stats["total_services"])
	assert.Len(t, body["recent_activity"].([]any), 2)

	rec, body = doJSON(t, srv, http.MethodGet, "/api/filters", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.ElementsMatch(t, []any{"identity-team", "platform-team"}, body["owners"].([]any))
	assert.ElementsMatch(t, []any{"go", "python"}, body["languages"].([]any))
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec, body := doJSON(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])
	assert.EqualValues(t, 0, body["services_count"])
}
