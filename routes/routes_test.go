package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/mbolis/formbox/app"
	"github.com/mbolis/formbox/config"
	"github.com/mbolis/formbox/database"
	"github.com/mbolis/formbox/routes"
	"github.com/mbolis/formbox/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Config{
		DBUrl:         filepath.Join(t.TempDir(), "formbox.sqlite"),
		TokenSecret:   "test-secret",
		TokenTTL:      time.Hour,
		AdminPassword: "hunter2",
		CorsOrigin:    "http://localhost:5173",
	}

	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	guard, err := session.NewGuard(cfg.AdminPassword, cfg.TokenSecret, cfg.TokenTTL, session.NewMemoryStore())
	require.NoError(t, err)

	srv := httptest.NewServer(routes.Wire(app.New(db, guard, cfg)))
	t.Cleanup(srv.Close)

	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(payload)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, srv.URL+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	decoded := map[string]any{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	status, body := call(t, srv, "POST", "/api/admin/login", "", map[string]any{"password": "hunter2"})
	require.Equal(t, http.StatusOK, status)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	status, body := call(t, srv, "GET", "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestAdminSessionFlow(t *testing.T) {
	srv := newTestServer(t)

	status, _ := call(t, srv, "POST", "/api/admin/login", "", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, srv, "POST", "/api/admin/login", "", map[string]any{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := call(t, srv, "POST", "/api/admin/login", "", map[string]any{"password": "hunter2"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1h", body["expiresIn"])
	token := body["token"].(string)

	status, body = call(t, srv, "GET", "/api/admin/verify", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["authenticated"])

	status, _ = call(t, srv, "GET", "/api/admin/verify", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, srv, "POST", "/api/admin/logout", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, srv, "GET", "/api/admin/verify", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminEndpointsRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	for _, endpoint := range []struct{ method, path string }{
		{"GET", "/api/form/all"},
		{"POST", "/api/form/new"},
		{"PUT", "/api/form/some-id"},
		{"DELETE", "/api/form/some-id"},
		{"GET", "/api/responses"},
		{"DELETE", "/api/responses/some-id"},
	} {
		status, _ := call(t, srv, endpoint.method, endpoint.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, "%s %s", endpoint.method, endpoint.path)
	}
}

func TestPrimaryForm_InitializeAndFetch(t *testing.T) {
	srv := newTestServer(t)

	status, _ := call(t, srv, "GET", "/api/form/primary", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body := call(t, srv, "POST", "/api/form/initialize", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "default-form", body["id"])

	status, body = call(t, srv, "GET", "/api/form/primary", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Customer Feedback Form", body["title"])
	assert.Equal(t, true, body["isPrimary"])

	// legacy alias serves the same document
	status, body = call(t, srv, "GET", "/api/form", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "default-form", body["id"])
}

func TestFormCRUDAndLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	_, body := call(t, srv, "POST", "/api/form/initialize", "", nil)
	require.Equal(t, "default-form", body["id"])

	status, _ := call(t, srv, "POST", "/api/form/new", token, map[string]any{"title": "No fields"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = call(t, srv, "POST", "/api/form/new", token, map[string]any{
		"title":  "Second form",
		"fields": []any{map[string]any{"id": "q", "name": "q", "label": "Q", "type": "text"}},
	})
	require.Equal(t, http.StatusCreated, status)
	created := body["form"].(map[string]any)
	formID := created["id"].(string)
	assert.Equal(t, false, created["isPrimary"])

	// archiving the primary form is rejected
	status, body = call(t, srv, "PUT", "/api/form/default-form/archive", token, map[string]any{"isArchived": true})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body["error"], "cannot archive primary form")

	// the archive endpoint only accepts the archive direction
	status, _ = call(t, srv, "PUT", "/api/form/"+formID+"/archive", token, map[string]any{"isArchived": false})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, srv, "PUT", "/api/form/"+formID+"/set-primary", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = call(t, srv, "GET", "/api/form/primary", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, formID, body["id"])

	// now the old primary can be archived, and the new one cannot be deleted
	status, _ = call(t, srv, "PUT", "/api/form/default-form/archive", token, map[string]any{"isArchived": true})
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, srv, "DELETE", "/api/form/"+formID, token, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = call(t, srv, "DELETE", "/api/form/default-form", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, srv, "GET", "/api/form/default-form", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdateForm(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	_, body := call(t, srv, "POST", "/api/form/new", token, map[string]any{
		"title":  "Draft",
		"fields": []any{},
	})
	formID := body["form"].(map[string]any)["id"].(string)

	status, _ := call(t, srv, "PUT", "/api/form/"+formID, token, map[string]any{"title": "Renamed"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = call(t, srv, "PUT", "/api/form/"+formID, token, map[string]any{
		"title":  "Renamed",
		"fields": []any{},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Renamed", body["form"].(map[string]any)["title"])

	status, _ = call(t, srv, "PUT", "/api/form/missing", token, map[string]any{
		"title":  "Renamed",
		"fields": []any{},
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFormAnalytics(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	_, body := call(t, srv, "POST", "/api/form/initialize", "", nil)
	require.Equal(t, "default-form", body["id"])

	for _, rating := range []string{"5 - Excellent", "5 - Excellent", "3 - Average"} {
		status, _ := call(t, srv, "POST", "/api/responses", "", map[string]any{
			"formId": "default-form",
			"data":   map[string]any{"rating": rating, "subscribe": true},
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := call(t, srv, "GET", "/api/form/default-form/analytics", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "default-form", body["formId"])
	assert.Equal(t, 3.0, body["total"])

	fields := body["fields"].([]any)
	require.Len(t, fields, 2)
	rating := fields[0].(map[string]any)
	assert.Equal(t, "distribution", rating["type"])
	assert.Equal(t, map[string]any{
		"5 - Excellent": 2.0,
		"3 - Average":   1.0,
	}, rating["distribution"])

	status, _ = call(t, srv, "GET", "/api/form/missing/analytics", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestResponsesFlow(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	status, _ := call(t, srv, "POST", "/api/responses", "", map[string]any{"formId": "default-form"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := call(t, srv, "POST", "/api/responses", "", map[string]any{
		"formId": "default-form",
		"data":   map[string]any{"name": "Jane", "rating": "5 - Excellent"},
		"email":  "jane@example.com",
	})
	require.Equal(t, http.StatusCreated, status)
	submitted := body["response"].(map[string]any)
	responseID := submitted["id"].(string)
	assert.Equal(t, "jane@example.com", submitted["email"])

	status, body = call(t, srv, "GET", "/api/responses/"+responseID, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Jane", body["data"].(map[string]any)["name"])

	status, _ = call(t, srv, "GET", "/api/responses", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, srv, "DELETE", "/api/responses/"+responseID, token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, srv, "DELETE", "/api/responses/"+responseID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
