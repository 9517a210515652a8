// Package cmd implements the command-line interface for agentdocs.
//
// This package provides the following commands:
//   - serve: Start the MCP server providing Google Docs editing tools
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
