package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestMemoryStore_GetUnknownAgent(t *testing.T) {
	store := NewMemoryStore(nil)

	token, ok := store.Get(context.Background(), "agent-1")
	assert.False(t, ok)
	assert.Nil(t, token)
}

func TestMemoryStore_PutThenGet(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	want := &oauth2.Token{
		AccessToken:  "tok-123",
		RefreshToken: "refresh-456",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour),
	}
	store.Put(ctx, "agent-1", want)

	got, ok := store.Get(ctx, "agent-1")
	require.True(t, ok)
	// The exact value, not a copy or a merge.
	assert.Same(t, want, got)
}

func TestMemoryStore_PutReplaces(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	first := &oauth2.Token{AccessToken: "tok-1", RefreshToken: "keep-me"}
	second := &oauth2.Token{AccessToken: "tok-2"}

	store.Put(ctx, "agent-1", first)
	store.Put(ctx, "agent-1", second)

	got, ok := store.Get(ctx, "agent-1")
	require.True(t, ok)
	assert.Same(t, second, got)
	// Replaced, never merged: the old refresh token must not survive.
	assert.Empty(t, got.RefreshToken)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_PutIdempotent(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	token := &oauth2.Token{AccessToken: "tok-123"}
	store.Put(ctx, "agent-1", token)
	store.Put(ctx, "agent-1", token)

	got, ok := store.Get(ctx, "agent-1")
	require.True(t, ok)
	assert.Same(t, token, got)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_IdentitiesAreIsolated(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	tok1 := &oauth2.Token{AccessToken: "tok-agent-1"}
	tok2 := &oauth2.Token{AccessToken: "tok-agent-2"}
	store.Put(ctx, "agent-1", tok1)
	store.Put(ctx, "agent-2", tok2)

	got1, ok := store.Get(ctx, "agent-1")
	require.True(t, ok)
	got2, ok := store.Get(ctx, "agent-2")
	require.True(t, ok)

	assert.Equal(t, "tok-agent-1", got1.AccessToken)
	assert.Equal(t, "tok-agent-2", got2.AccessToken)

	// Overwriting one identity leaves the other untouched.
	store.Put(ctx, "agent-1", &oauth2.Token{AccessToken: "tok-agent-1b"})
	got2, ok = store.Get(ctx, "agent-2")
	require.True(t, ok)
	assert.Equal(t, "tok-agent-2", got2.AccessToken)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			agent := fmt.Sprintf("agent-%d", i%4)
			for j := 0; j < 100; j++ {
				store.Put(ctx, agent, &oauth2.Token{AccessToken: agent})
				if tok, ok := store.Get(ctx, agent); ok {
					// A reader must never observe another identity's token.
					assert.Equal(t, agent, tok.AccessToken)
				}
			}
		}(i)
	}
	wg.Wait()
}
