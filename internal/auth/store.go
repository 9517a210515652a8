package auth

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"

	"github.com/teemow/agentdocs/internal/logging"
)

// Store maps an agent identity to its most recently obtained OAuth token.
//
// A missing identity is ordinary, not exceptional: Get reports absence via
// the bool, never an error. Put replaces any prior token for the identity
// (last-write-wins) and accepts whatever the authorization callback hands in,
// without validation. Implementations must be safe for concurrent use and
// guarantee that a Put is visible to subsequent Gets from any goroutine.
type Store interface {
	Get(ctx context.Context, agentID string) (*oauth2.Token, bool)
	Put(ctx context.Context, agentID string, token *oauth2.Token)
}

// MemoryStore is an in-process Store backed by a map.
//
// Entries are never evicted; they accumulate for the process lifetime. This
// is acceptable for a long-running server with a bounded agent population.
// Deployments that need TTL eviction should use LibraryStore instead.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]*oauth2.Token
	logger *slog.Logger
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore(logger *slog.Logger) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStore{
		tokens: make(map[string]*oauth2.Token),
		logger: logger,
	}
}

// Get returns the stored token for the agent, or false if none is on file.
func (s *MemoryStore) Get(_ context.Context, agentID string) (*oauth2.Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[agentID]
	return token, ok
}

// Put stores or replaces the token for the agent. Entries for other agents
// are unaffected.
func (s *MemoryStore) Put(_ context.Context, agentID string, token *oauth2.Token) {
	s.mu.Lock()
	s.tokens[agentID] = token
	s.mu.Unlock()

	s.logger.Debug("stored credential", logging.Agent(agentID))
}

// Len returns the number of stored credentials.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
