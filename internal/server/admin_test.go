package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel/portfolio-api/internal/analytics"
)

func TestAdminLogin(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	body, _ := json.Marshal(LoginRequest{Password: testAdminPassword})
	w := postJSON(t, s.handleAdminLogin, "/api/admin/login", string(body))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, 3600, resp.ExpiresIn)

	// The issued token must pass the server's own validation.
	assert.NoError(t, s.jwtService.ValidateToken(resp.Token))
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	body, _ := json.Marshal(LoginRequest{Password: "not-the-password"})
	w := postJSON(t, s.handleAdminLogin, "/api/admin/login", string(body))

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid password", resp["error"])
}

func TestAdminLogin_ShortPassword(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	// Under the 8 character minimum: rejected by validation, not bcrypt.
	w := postJSON(t, s.handleAdminLogin, "/api/admin/login", `{"password": "short"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminLogin_InvalidJSON(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	w := postJSON(t, s.handleAdminLogin, "/api/admin/login", `{broken`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAssessments_NoStore(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/assessments", nil)
	w := httptest.NewRecorder()
	s.handleListAssessments(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "not configured")
}

func TestListAssessments_PagingParams(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	// Even without a store, bad paging params must not error before the
	// storage check; the handler falls back to defaults.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/assessments?limit=abc&offset=-3", nil)
	w := httptest.NewRecorder()
	s.handleListAssessments(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListOptionsFromQuery(t *testing.T) {
	opts := analytics.ListOptions{Limit: 500, Offset: -1}.Normalized()
	assert.Equal(t, analytics.MaxPageSize, opts.Limit)
	assert.Equal(t, 0, opts.Offset)
}
