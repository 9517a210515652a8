// Package auth implements the per-agent credential lifecycle and the gated
// execution of remote operations.
//
// A Store maps an agent identity to the OAuth token obtained from a completed
// delegated-access grant. The Gateway wraps every remote operation with a
// credential lookup: if no token is on file the caller receives an
// authorization challenge URL instead of an error, otherwise the operation is
// invoked exactly once with the token attached and its result classified into
// one of three outcomes (authorization required, success, failure). No error
// value ever escapes the Gateway.
package auth
