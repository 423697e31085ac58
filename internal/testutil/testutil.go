// Package testutil provides helpers for spinning up an API server over a
// fresh in-memory store in tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dom/kpitter/internal/api"
	"github.com/dom/kpitter/internal/config"
	"github.com/dom/kpitter/internal/repository"
	"github.com/dom/kpitter/internal/repository/memory"
	"github.com/dom/kpitter/internal/service"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server   *httptest.Server
	Repos    *repository.Repositories
	Services *service.Services
}

func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		Environment:        "test",
		CORSAllowedOrigins: []string{"*"},
	}
}

// NewTestServer starts an httptest server backed by empty in-memory
// repositories. The server is shut down via t.Cleanup.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	repos := memory.NewRepositories()
	services := service.NewServices(repos)
	server := httptest.NewServer(api.NewRouter(services, TestConfig()))
	t.Cleanup(server.Close)

	return &TestServer{
		Server:   server,
		Repos:    repos,
		Services: services,
	}
}

// Do issues a JSON request against the test server. A non-empty username adds
// Basic credentials. The response body is closed via t.Cleanup.
func (ts *TestServer) Do(t *testing.T, method, path string, body interface{}, username, password string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if username != "" {
		req.SetBasicAuth(username, password)
	}

	resp, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// Get issues an unauthenticated GET.
func (ts *TestServer) Get(t *testing.T, path string) *http.Response {
	t.Helper()
	return ts.Do(t, http.MethodGet, path, nil, "", "")
}
