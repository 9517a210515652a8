package auth

import (
	"context"
	"log/slog"

	"github.com/giantswarm/mcp-oauth/storage"
	"golang.org/x/oauth2"

	"github.com/teemow/agentdocs/internal/logging"
)

// LibraryStore adapts an mcp-oauth storage.TokenStore to the Store interface.
//
// It is used for the HTTP transport so credentials share the OAuth library's
// storage backend, which handles expired-entry cleanup on its own. Lookup
// failures of any kind map to absence, preserving the "missing is ordinary"
// contract.
type LibraryStore struct {
	store  storage.TokenStore
	logger *slog.Logger
}

// NewLibraryStore wraps the given token store.
func NewLibraryStore(store storage.TokenStore, logger *slog.Logger) *LibraryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &LibraryStore{
		store:  store,
		logger: logger,
	}
}

// Get returns the stored token for the agent, or false if none is on file.
func (s *LibraryStore) Get(ctx context.Context, agentID string) (*oauth2.Token, bool) {
	token, err := s.store.GetToken(ctx, agentID)
	if err != nil || token == nil {
		return nil, false
	}
	return token, true
}

// Put stores or replaces the token for the agent. A storage failure cannot be
// surfaced through the Store contract; it is logged and the entry stays absent,
// which the next gated call reports as authorization required.
func (s *LibraryStore) Put(ctx context.Context, agentID string, token *oauth2.Token) {
	if err := s.store.SaveToken(ctx, agentID, token); err != nil {
		s.logger.Error("failed to store credential", logging.Agent(agentID), logging.Err(err))
		return
	}
	s.logger.Debug("stored credential", logging.Agent(agentID))
}
