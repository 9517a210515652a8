// Package instrumentation provides OpenTelemetry metrics and tracing for the
// agentdocs MCP server, plus audit logging of tool invocations.
//
// The Provider owns the meter and tracer providers and their exporters
// (Prometheus, OTLP or stdout). Metrics records tool invocations, Google Docs
// API operations and authorization-flow events. AuditLogger emits a structured
// log line per tool invocation for operator visibility.
package instrumentation
