package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHTTPSRequirement(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"https allowed", "https://docs.example.com", false},
		{"http localhost allowed", "http://localhost:8080", false},
		{"http loopback IP allowed", "http://127.0.0.1:8080", false},
		{"http IPv6 loopback allowed", "http://[::1]:8080", false},
		{"http non-loopback rejected", "http://docs.example.com", true},
		{"other scheme rejected", "ftp://docs.example.com", true},
		{"empty rejected", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateHTTPSRequirement(tt.baseURL)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewHTTPServerRejectsInsecureBaseURL(t *testing.T) {
	sc := newTestContext(t)
	mcpSrv := mcpserver.NewMCPServer("test", "0.0.0")

	_, err := NewHTTPServer(mcpSrv, sc, "http://docs.example.com")
	require.Error(t, err)
}

func TestHTTPServerHealthEndpoints(t *testing.T) {
	sc := newTestContext(t)
	mcpSrv := mcpserver.NewMCPServer("test", "0.0.0")

	srv, err := NewHTTPServer(mcpSrv, sc, "http://localhost:8080")
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
}

func TestHTTPServerReadinessReflectsState(t *testing.T) {
	sc := newTestContext(t)
	mcpSrv := mcpserver.NewMCPServer("test", "0.0.0")

	srv, err := NewHTTPServer(mcpSrv, sc, "http://localhost:8080")
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	srv.HealthChecker().SetReady(false)

	resp, err := http.Get(ts.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHTTPServerReadinessAfterShutdown(t *testing.T) {
	sc := newTestContext(t)
	mcpSrv := mcpserver.NewMCPServer("test", "0.0.0")

	srv, err := NewHTTPServer(mcpSrv, sc, "http://localhost:8080")
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	require.NoError(t, sc.Shutdown())

	resp, err := http.Get(ts.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
