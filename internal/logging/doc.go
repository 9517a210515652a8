// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the codebase and
// helpers for logging sensitive values (agent identifiers, OAuth tokens)
// without leaking them.
package logging
