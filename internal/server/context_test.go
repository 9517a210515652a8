package server

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/agentdocs/internal/auth"
)

type staticChallenges struct{}

func (staticChallenges) GenerateChallenge(context.Context, string, string) (string, error) {
	return "https://accounts.example.com/auth?state=x", nil
}

func newTestContext(t *testing.T) *ServerContext {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := auth.NewMemoryStore(logger)
	gateway := auth.NewGateway(store, staticChallenges{}, auth.WithLogger(logger))

	sc, err := NewServerContext(context.Background(), store, gateway, nil, logger)
	require.NoError(t, err)
	return sc
}

func TestNewServerContextRequiresStoreAndGateway(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := auth.NewMemoryStore(logger)
	gateway := auth.NewGateway(store, staticChallenges{})

	_, err := NewServerContext(context.Background(), nil, gateway, nil, logger)
	require.Error(t, err)

	_, err = NewServerContext(context.Background(), store, nil, nil, logger)
	require.Error(t, err)
}

func TestServerContextAccessors(t *testing.T) {
	sc := newTestContext(t)

	assert.NotNil(t, sc.Store())
	assert.NotNil(t, sc.Gateway())
	assert.NotNil(t, sc.Logger())
	assert.Nil(t, sc.AuthFlow())
	assert.Nil(t, sc.Metrics())
	assert.Nil(t, sc.AuditLogger())
}

func TestServerContextShutdown(t *testing.T) {
	sc := newTestContext(t)

	assert.False(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("context should be cancelled after shutdown")
	}

	// Second shutdown is a no-op.
	require.NoError(t, sc.Shutdown())
}
