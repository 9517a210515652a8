package google

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/teemow/agentdocs/internal/auth"
	"github.com/teemow/agentdocs/internal/logging"
)

// DefaultGrantTTL is how long a challenge URL stays redeemable. Google's
// consent screen has no fixed deadline, but an unredeemed state parameter
// should not live forever.
const DefaultGrantTTL = 15 * time.Minute

// pendingGrant tracks a started authorization flow until the user returns
// from Google's consent screen.
type pendingGrant struct {
	agentID   string
	expiresAt time.Time
}

// AuthFlow generates authorization challenges and completes grants. It
// implements auth.ChallengeGenerator.
type AuthFlow struct {
	conf   *oauth2.Config
	store  auth.Store
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]pendingGrant // state parameter -> grant
	ttl     time.Duration
	now     func() time.Time
}

// NewAuthFlow creates an AuthFlow that stores completed grants in store.
func NewAuthFlow(cfg Config, store auth.Store, logger *slog.Logger) *AuthFlow {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthFlow{
		conf:    cfg.OAuth2(),
		store:   store,
		logger:  logger,
		pending: make(map[string]pendingGrant),
		ttl:     DefaultGrantTTL,
		now:     time.Now,
	}
}

// GenerateChallenge returns a consent URL for the agent, recording the state
// parameter so the callback can attribute the grant to the right identity.
func (f *AuthFlow) GenerateChallenge(_ context.Context, provider, agentID string) (string, error) {
	if provider != ProviderName {
		return "", fmt.Errorf("unsupported provider %q", provider)
	}
	if f.conf.ClientID == "" || f.conf.ClientSecret == "" {
		return "", fmt.Errorf("google OAuth client is not configured")
	}

	state, err := randomState()
	if err != nil {
		return "", fmt.Errorf("failed to generate state parameter: %w", err)
	}

	f.mu.Lock()
	f.prune()
	f.pending[state] = pendingGrant{
		agentID:   agentID,
		expiresAt: f.now().Add(f.ttl),
	}
	f.mu.Unlock()

	f.logger.Debug("issued authorization challenge", logging.Agent(agentID))

	// AccessTypeOffline asks Google for a refresh token; it is stored with the
	// credential but never consumed here.
	return f.conf.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// CompleteAuthorization redeems the state parameter, exchanges the code for a
// token and stores it under the agent identity the flow was started for.
// The state is consumed even on a failed exchange; codes are single-use.
func (f *AuthFlow) CompleteAuthorization(ctx context.Context, state, code string) (string, error) {
	f.mu.Lock()
	grant, ok := f.pending[state]
	delete(f.pending, state)
	f.mu.Unlock()

	if !ok {
		return "", fmt.Errorf("unknown or already used state parameter")
	}
	if f.now().After(grant.expiresAt) {
		return "", fmt.Errorf("authorization flow expired, request a new challenge")
	}

	token, err := f.conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange auth code: %w", err)
	}

	f.store.Put(ctx, grant.agentID, token)
	f.logger.Info("authorization completed", logging.Agent(grant.agentID))

	return grant.agentID, nil
}

// PendingGrants returns the number of unredeemed challenges.
func (f *AuthFlow) PendingGrants() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// prune drops expired pending grants. Caller must hold f.mu.
func (f *AuthFlow) prune() {
	now := f.now()
	for state, grant := range f.pending {
		if now.After(grant.expiresAt) {
			delete(f.pending, state)
		}
	}
}

// CallbackHandler returns the HTTP handler for the OAuth redirect endpoint.
func (f *AuthFlow) CallbackHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if errCode := q.Get("error"); errCode != "" {
			f.logger.Warn("authorization denied by provider", slog.String("oauth_error", errCode))
			http.Error(w, "Authorization was denied. You can close this window and retry from your agent.", http.StatusBadRequest)
			return
		}

		state := q.Get("state")
		code := q.Get("code")
		if state == "" || code == "" {
			http.Error(w, "Missing state or code parameter.", http.StatusBadRequest)
			return
		}

		if _, err := f.CompleteAuthorization(r.Context(), state, code); err != nil {
			f.logger.Error("failed to complete authorization", logging.Err(err))
			http.Error(w, "Authorization could not be completed. Request a new authorization URL from your agent.", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><h1>Authorization complete</h1><p>Access to Google Docs has been granted. You can close this window and return to your agent.</p></body></html>`))
	})
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
