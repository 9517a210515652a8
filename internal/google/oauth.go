package google

import (
	"golang.org/x/oauth2"
	oauth2google "golang.org/x/oauth2/google"
	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
)

// ProviderName identifies Google as the delegation provider.
const ProviderName = "google"

// DefaultOAuthScopes are the scopes requested for a delegated-access grant.
var DefaultOAuthScopes = []string{
	docs.DocumentsScope,               // create and edit Google Docs
	drive.DriveMetadataReadonlyScope,  // file metadata lookups
	"email",
	"profile",
}

// Config holds the OAuth2 client configuration for the Google provider.
type Config struct {
	ClientID     string
	ClientSecret string

	// RedirectURL is where Google sends the user after consent, typically
	// <base-url>/oauth/callback.
	RedirectURL string

	// Scopes defaults to DefaultOAuthScopes when empty.
	Scopes []string

	// Endpoint defaults to Google's endpoints. Overridable for tests.
	Endpoint oauth2.Endpoint
}

// OAuth2 builds the oauth2 configuration for the authorization-code flow.
func (c Config) OAuth2() *oauth2.Config {
	scopes := c.Scopes
	if len(scopes) == 0 {
		scopes = DefaultOAuthScopes
	}
	endpoint := c.Endpoint
	if endpoint.AuthURL == "" && endpoint.TokenURL == "" {
		endpoint = oauth2google.Endpoint
	}
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Endpoint:     endpoint,
		Scopes:       scopes,
	}
}
