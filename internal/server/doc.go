// Package server provides the MCP server context, the HTTP transport, and
// the operational endpoints of the agentdocs service.
//
// # Key Components
//
// ServerContext carries the injected dependencies of a running server: the
// per-agent credential store, the authenticated-operation gateway, the Google
// authorization flow, and optional instrumentation. Nothing in this package
// reaches for globals; tests construct their own contexts.
//
// HTTPServer serves the MCP API over streamable HTTP and hosts the OAuth
// redirect endpoint (/oauth/callback) that completes authorization grants.
// HTTPS is required for non-loopback base URLs.
//
// HealthChecker exposes /healthz and /readyz for Kubernetes probes, and
// MetricsServer serves Prometheus metrics on a dedicated listener.
package server
