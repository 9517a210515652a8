package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/teemow/agentdocs/internal/auth"
	"github.com/teemow/agentdocs/internal/google"
	"github.com/teemow/agentdocs/internal/instrumentation"
)

// ServerContext holds the shared dependencies of the MCP server. All
// dependencies are injected explicitly so tests can substitute their own
// stores and gateways.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	store    auth.Store
	gateway  *auth.Gateway
	authFlow *google.AuthFlow
	logger   *slog.Logger

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context around the given credential
// store and gateway.
func NewServerContext(ctx context.Context, store auth.Store, gateway *auth.Gateway, authFlow *google.AuthFlow, logger *slog.Logger) (*ServerContext, error) {
	if store == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		store:    store,
		gateway:  gateway,
		authFlow: authFlow,
		logger:   logger,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Store returns the credential store.
func (sc *ServerContext) Store() auth.Store {
	return sc.store
}

// Gateway returns the authenticated-operation gateway.
func (sc *ServerContext) Gateway() *auth.Gateway {
	return sc.gateway
}

// AuthFlow returns the Google authorization flow, or nil when the server runs
// without OAuth client credentials.
func (sc *ServerContext) AuthFlow() *google.AuthFlow {
	return sc.authFlow
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// SetInstrumentation attaches metrics and audit logging. Both may be nil.
func (sc *ServerContext) SetInstrumentation(metrics *instrumentation.Metrics, auditLogger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
	sc.auditLogger = auditLogger
}

// Metrics returns the metrics recorder, or nil if instrumentation is disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// AuditLogger returns the audit logger, or nil if audit logging is disabled.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
