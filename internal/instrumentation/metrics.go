package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrStatus    = "status"
	attrOperation = "operation"
	attrResult    = "result"
	attrTool      = "tool"
	attrOutcome   = "outcome"
)

// Status values recorded on metrics.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Outcome values recorded on gated operation metrics.
const (
	OutcomeAuthRequired = "authorization_required"
	OutcomeSuccess      = "success"
	OutcomeFailure      = "failure"
)

// Metrics provides methods for recording observability metrics.
// The zero value is a no-op recorder.
type Metrics struct {
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	docsAPIOperationsTotal   metric.Int64Counter
	docsAPIOperationDuration metric.Float64Histogram

	gatedOutcomesTotal   metric.Int64Counter
	authChallengesTotal  metric.Int64Counter
	authCompletionsTotal metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	m.docsAPIOperationsTotal, err = meter.Int64Counter(
		"docs_api_operations_total",
		metric.WithDescription("Total number of Google Docs API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create docs_api_operations_total counter: %w", err)
	}

	m.docsAPIOperationDuration, err = meter.Float64Histogram(
		"docs_api_operation_duration_seconds",
		metric.WithDescription("Google Docs API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create docs_api_operation_duration_seconds histogram: %w", err)
	}

	m.gatedOutcomesTotal, err = meter.Int64Counter(
		"gated_operation_outcomes_total",
		metric.WithDescription("Outcomes of credential-gated operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gated_operation_outcomes_total counter: %w", err)
	}

	m.authChallengesTotal, err = meter.Int64Counter(
		"auth_challenges_total",
		metric.WithDescription("Total number of authorization challenges issued"),
		metric.WithUnit("{challenge}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth_challenges_total counter: %w", err)
	}

	m.authCompletionsTotal, err = meter.Int64Counter(
		"auth_completions_total",
		metric.WithDescription("Total number of completed authorization grants"),
		metric.WithUnit("{grant}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth_completions_total counter: %w", err)
	}

	return m, nil
}

// RecordToolInvocation records an MCP tool invocation.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordDocsAPIOperation records a Google Docs API operation.
func (m *Metrics) RecordDocsAPIOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m.docsAPIOperationsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.docsAPIOperationsTotal.Add(ctx, 1, attrs)
	m.docsAPIOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordGatedOutcome records the outcome of a credential-gated operation.
func (m *Metrics) RecordGatedOutcome(ctx context.Context, operation, outcome string) {
	if m.gatedOutcomesTotal == nil {
		return
	}
	m.gatedOutcomesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrOutcome, outcome),
	))
}

// RecordAuthChallenge records an issued (or failed) authorization challenge.
func (m *Metrics) RecordAuthChallenge(ctx context.Context, result string) {
	if m.authChallengesTotal == nil {
		return
	}
	m.authChallengesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrResult, result),
	))
}

// RecordAuthCompletion records a completed authorization grant.
func (m *Metrics) RecordAuthCompletion(ctx context.Context, result string) {
	if m.authCompletionsTotal == nil {
		return
	}
	m.authCompletionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrResult, result),
	))
}
