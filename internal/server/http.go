package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// HTTPServer serves the MCP API over streamable HTTP together with the OAuth
// callback endpoint and Kubernetes health probes.
type HTTPServer struct {
	mcpServer     *mcpserver.MCPServer
	serverContext *ServerContext
	healthChecker *HealthChecker
	httpServer    *http.Server
	baseURL       string
}

// NewHTTPServer creates an HTTP server for the given MCP server. baseURL is
// the externally visible URL of this server; it must be HTTPS unless it
// points at a loopback address.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, sc *ServerContext, baseURL string) (*HTTPServer, error) {
	if err := validateHTTPSRequirement(baseURL); err != nil {
		return nil, err
	}

	return &HTTPServer{
		mcpServer:     mcpServer,
		serverContext: sc,
		healthChecker: NewHealthChecker(sc),
		baseURL:       baseURL,
	}, nil
}

// Handler returns the full HTTP handler tree.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer,
		mcpserver.WithEndpointPath("/mcp"),
	)
	mux.Handle("/mcp", streamable)

	if flow := s.serverContext.AuthFlow(); flow != nil {
		mux.Handle("/oauth/callback", flow.CallbackHandler())
	}

	s.healthChecker.RegisterHealthEndpoints(mux)

	return mux
}

// HealthChecker returns the health checker so callers can flip readiness
// during startup and shutdown.
func (s *HTTPServer) HealthChecker() *HealthChecker {
	return s.healthChecker
}

// Start starts the HTTP server in a blocking manner.
func (s *HTTPServer) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.serverContext.Logger().Info("starting HTTP server", "addr", addr, "base_url", s.baseURL)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.healthChecker.SetReady(false)
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// validateHTTPSRequirement ensures the callback URL handed to Google is not
// plain HTTP. Allows HTTP only for loopback addresses (localhost, 127.0.0.1,
// ::1) used in development.
func validateHTTPSRequirement(baseURL string) error {
	if baseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	if u.Scheme == "http" {
		host := u.Hostname()
		if host != "localhost" && host != "127.0.0.1" && host != "::1" {
			return fmt.Errorf("HTTPS is required for non-loopback base URLs (got: %s)", baseURL)
		}
	} else if u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %s. Must be http (localhost only) or https", u.Scheme)
	}

	return nil
}
