// Package common provides shared utilities for MCP tool implementations.
// It resolves the agent identity a request acts for and wraps tool handlers
// with metrics and audit logging.
package common
