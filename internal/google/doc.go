// Package google implements the delegated-access grant flow against Google's
// OAuth2 endpoints.
//
// AuthFlow generates challenge URLs for agents without a credential and
// completes the grant when Google redirects back: the authorization code is
// exchanged for a token which lands in the credential store under the agent
// identity the flow was started for.
package google
