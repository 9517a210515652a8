// Package docs_tools provides MCP tools for editing Google Docs on behalf of
// agents.
//
// This package registers tools that allow AI assistants to:
//   - Create documents and retrieve their content or metadata
//   - Insert and delete table structure (tables, rows, columns)
//   - Insert text, replace text across the document, and restyle ranges
//
// Every tool runs through the credential gateway: an agent without a stored
// Google credential receives an authorization URL instead of an error, and
// remote failures come back as short fixed summaries with the detail kept in
// the server logs.
package docs_tools
