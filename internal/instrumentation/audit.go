package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/teemow/agentdocs/internal/logging"
)

// ToolInvocation captures all information about a tool invocation for audit
// logging. This provides an audit trail for every MCP tool call, including
// calls that halted at the authorization gate.
type ToolInvocation struct {
	// Tool name
	Tool string

	// AgentID is the identity the tool ran on behalf of. Raw identifiers are
	// only written to audit logs when IncludeAgentID is enabled; otherwise an
	// anonymized hash is logged.
	AgentID string

	// Operation is the remote operation type (create, get, batch_update).
	Operation string

	// Execution details
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	// Tracing context
	TraceID string
	SpanID  string
}

// NewToolInvocation creates a new tool invocation record with the start time set.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{
		Tool:      tool,
		StartTime: time.Now(),
	}
}

// WithAgent sets the agent identity.
func (ti *ToolInvocation) WithAgent(agentID string) *ToolInvocation {
	ti.AgentID = agentID
	return ti
}

// WithOperation sets the remote operation type.
func (ti *ToolInvocation) WithOperation(operation string) *ToolInvocation {
	ti.Operation = operation
	return ti
}

// WithSpanContext extracts trace and span IDs from the context, if present.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		ti.TraceID = spanCtx.TraceID().String()
		ti.SpanID = spanCtx.SpanID().String()
	}
	return ti
}

// Complete marks the invocation finished and records duration and error state.
func (ti *ToolInvocation) Complete(success bool, err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// CompleteSuccess marks the invocation as successfully finished.
func (ti *ToolInvocation) CompleteSuccess() *ToolInvocation {
	return ti.Complete(true, nil)
}

// CompleteWithError marks the invocation as failed.
func (ti *ToolInvocation) CompleteWithError(err error) *ToolInvocation {
	return ti.Complete(false, err)
}

// Status returns "success" or "error" based on the Success field.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns slog attributes for the invocation. The agent identity is
// anonymized unless includeAgentID is set.
func (ti *ToolInvocation) LogAttrs(includeAgentID bool) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}

	if includeAgentID {
		attrs = append(attrs, slog.String("agent", ti.AgentID))
	} else if ti.AgentID != "" {
		attrs = append(attrs, logging.Agent(ti.AgentID))
	}
	if ti.Operation != "" {
		attrs = append(attrs, slog.String("operation", ti.Operation))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}

	return attrs
}

// AuditLogger emits structured audit log entries for tool invocations.
type AuditLogger struct {
	logger         *slog.Logger
	enabled        bool
	includeAgentID bool
}

// NewAuditLogger creates a new audit logger with default configuration.
// If logger is nil, slog.Default() is used.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return NewAuditLoggerWithConfig(logger, AuditLoggingConfig{Enabled: true})
}

// NewAuditLoggerWithConfig creates a new audit logger with the given configuration.
func NewAuditLoggerWithConfig(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:         logger,
		enabled:        config.Enabled,
		includeAgentID: config.IncludeAgentID,
	}
}

// LogToolInvocation writes an audit log entry for the invocation.
func (al *AuditLogger) LogToolInvocation(ti *ToolInvocation) {
	if al == nil || !al.enabled {
		return
	}
	al.logger.LogAttrs(context.Background(), slog.LevelInfo,
		"tool invocation", ti.LogAttrs(al.includeAgentID)...)
}

// TraceIDFromContext returns the current trace ID, or "" if no span is active.
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
