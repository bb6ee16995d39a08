package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superadmin/config"
	"superadmin/models"
	"superadmin/services"
)

type stubProvider struct {
	users []models.User
}

func (s *stubProvider) ListUsers(_ context.Context, page, _ int) ([]models.User, error) {
	if page > 1 {
		return nil, nil
	}
	return s.users, nil
}

func (s *stubProvider) UpdateUserByID(_ context.Context, id string, _ models.UserAttributes) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, &services.ProviderError{Status: 404, Message: "User not found"}
}

func serve(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{AppEnv: "test", LogLevel: "info"}
	provider := &stubProvider{users: []models.User{models.NewUser("u1", "a@x.com")}}
	app := newApp(cfg, logger, services.NewAdminService(provider))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealth(t *testing.T) {
	resp, body := serve(t, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, "healthy", payload["status"])
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users?page=2", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	resp, body := serve(t, req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"users":[]}`, body)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestResetPasswordEndToEnd(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/reset-password", strings.NewReader(`{"userId":"u1","newPassword":"Secr3t!"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body := serve(t, req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true,"user":{"id":"u1","email":"a@x.com"}}`, body)
}

func TestUnknownRouteIsJSON(t *testing.T) {
	resp, body := serve(t, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, `"success":false`)
}

func TestMetricsEndpoint(t *testing.T) {
	resp, body := serve(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "go_goroutines")
}
