package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/giantswarm/mcp-oauth/storage/memory"
)

func TestLibraryStore_RoundTrip(t *testing.T) {
	backend := memory.New()
	defer backend.Stop()

	store := NewLibraryStore(backend, nil)
	ctx := context.Background()

	_, ok := store.Get(ctx, "agent-1")
	assert.False(t, ok)

	token := &oauth2.Token{
		AccessToken:  "tok-123",
		RefreshToken: "refresh-456",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour),
	}
	store.Put(ctx, "agent-1", token)

	got, ok := store.Get(ctx, "agent-1")
	require.True(t, ok)
	assert.Equal(t, "tok-123", got.AccessToken)
	assert.Equal(t, "refresh-456", got.RefreshToken)
}

func TestLibraryStore_LastWriteWins(t *testing.T) {
	backend := memory.New()
	defer backend.Stop()

	store := NewLibraryStore(backend, nil)
	ctx := context.Background()

	store.Put(ctx, "agent-1", &oauth2.Token{AccessToken: "tok-1", Expiry: time.Now().Add(time.Hour)})
	store.Put(ctx, "agent-1", &oauth2.Token{AccessToken: "tok-2", Expiry: time.Now().Add(time.Hour)})

	got, ok := store.Get(ctx, "agent-1")
	require.True(t, ok)
	assert.Equal(t, "tok-2", got.AccessToken)
}

func TestLibraryStore_SatisfiesStore(t *testing.T) {
	backend := memory.New()
	defer backend.Stop()

	var _ Store = NewLibraryStore(backend, nil)
}
