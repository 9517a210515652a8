package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeChallengeGenerator struct {
	url      string
	err      error
	provider string
	agentID  string
	calls    int
}

func (f *fakeChallengeGenerator) GenerateChallenge(_ context.Context, provider, agentID string) (string, error) {
	f.calls++
	f.provider = provider
	f.agentID = agentID
	return f.url, f.err
}

func newTestGateway(store Store, gen ChallengeGenerator, opts ...GatewayOption) *Gateway {
	return NewGateway(store, gen, opts...)
}

func TestExecute_AuthorizationRequired(t *testing.T) {
	store := NewMemoryStore(nil)
	gen := &fakeChallengeGenerator{url: "https://accounts.google.com/o/oauth2/v2/auth?state=abc"}
	gw := newTestGateway(store, gen)

	invoked := false
	outcome := gw.Execute(context.Background(), "agent-1", Operation{
		Name:           "docs_create_document",
		FailureSummary: "Failed to create document",
		Call: func(ctx context.Context, token *oauth2.Token) (*Result, error) {
			invoked = true
			return &Result{}, nil
		},
	})

	assert.Equal(t, OutcomeAuthorizationRequired, outcome.Kind)
	assert.NotEmpty(t, outcome.ChallengeURL)
	assert.Equal(t, gen.url, outcome.ChallengeURL)
	assert.False(t, invoked, "action must not be invoked without a credential")
	assert.Equal(t, DefaultProvider, gen.provider)
	assert.Equal(t, "agent-1", gen.agentID)
}

func TestExecute_ChallengeGeneratorFailure(t *testing.T) {
	store := NewMemoryStore(nil)
	gen := &fakeChallengeGenerator{err: errors.New("provider not configured")}
	gw := newTestGateway(store, gen)

	outcome := gw.Execute(context.Background(), "agent-1", Operation{
		Name: "docs_get_document",
		Call: func(ctx context.Context, token *oauth2.Token) (*Result, error) {
			t.Fatal("action must not run when the generator fails")
			return nil, nil
		},
	})

	assert.Equal(t, OutcomeFailure, outcome.Kind)
	assert.Equal(t, "Failed to generate authentication URL", outcome.Summary)
	assert.Empty(t, outcome.ChallengeURL)
	// The raw generator error never reaches the caller.
	assert.NotContains(t, outcome.Summary, "provider not configured")
}

func TestExecute_Success(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()
	store.Put(ctx, "agent-1", &oauth2.Token{AccessToken: "tok-123"})

	gen := &fakeChallengeGenerator{url: "unused"}
	gw := newTestGateway(store, gen)

	payload := map[string]string{"documentId": "doc-42"}
	outcome := gw.Execute(ctx, "agent-1", Operation{
		Name:           "docs_get_document",
		FailureSummary: "Failed to retrieve document",
		Call: func(ctx context.Context, token *oauth2.Token) (*Result, error) {
			require.Equal(t, "tok-123", token.AccessToken)
			return &Result{Summary: "Retrieved document: doc-42", Payload: payload}, nil
		},
	})

	assert.Equal(t, OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "Retrieved document: doc-42", outcome.Summary)
	// Exactly the action's output, no reshaping.
	assert.Equal(t, payload, outcome.Payload)
	assert.Zero(t, gen.calls)
}

func TestExecute_FailureHidesError(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()
	store.Put(ctx, "agent-1", &oauth2.Token{AccessToken: "tok-123"})

	gw := newTestGateway(store, &fakeChallengeGenerator{})

	outcome := gw.Execute(ctx, "agent-1", Operation{
		Name:           "docs_get_document",
		FailureSummary: "Failed to retrieve document",
		Call: func(ctx context.Context, token *oauth2.Token) (*Result, error) {
			return nil, errors.New("googleapi: Error 503: service unavailable")
		},
	})

	assert.Equal(t, OutcomeFailure, outcome.Kind)
	assert.Equal(t, "Failed to retrieve document", outcome.Summary)
	assert.Nil(t, outcome.Payload)
	assert.NotContains(t, outcome.Summary, "503")
}

func TestExecute_ActionInvokedAtMostOnce(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()
	store.Put(ctx, "agent-1", &oauth2.Token{AccessToken: "tok-123"})

	gw := newTestGateway(store, &fakeChallengeGenerator{})

	calls := 0
	gw.Execute(ctx, "agent-1", Operation{
		Name:           "docs_insert_text",
		FailureSummary: "Failed to insert text",
		Call: func(ctx context.Context, token *oauth2.Token) (*Result, error) {
			calls++
			return nil, errors.New("transient")
		},
	})

	// No retry: every remote-call failure is terminal for the invocation.
	assert.Equal(t, 1, calls)
}

func TestExecute_CallTimeout(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()
	store.Put(ctx, "agent-1", &oauth2.Token{AccessToken: "tok-123"})

	gw := newTestGateway(store, &fakeChallengeGenerator{}, WithCallTimeout(10*time.Millisecond))

	outcome := gw.Execute(ctx, "agent-1", Operation{
		Name:           "docs_get_document",
		FailureSummary: "Failed to retrieve document",
		Call: func(ctx context.Context, token *oauth2.Token) (*Result, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
				return &Result{Summary: "too late"}, nil
			}
		},
	})

	assert.Equal(t, OutcomeFailure, outcome.Kind)
	assert.Equal(t, "Failed to retrieve document", outcome.Summary)
}

func TestExecute_PresenceOnlyNoExpiryCheck(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()
	// Expired long ago; the gate checks presence only.
	store.Put(ctx, "agent-1", &oauth2.Token{
		AccessToken: "tok-stale",
		Expiry:      time.Unix(1, 0),
	})

	gw := newTestGateway(store, &fakeChallengeGenerator{url: "unused"})

	outcome := gw.Execute(ctx, "agent-1", Operation{
		Name: "docs_get_document",
		Call: func(ctx context.Context, token *oauth2.Token) (*Result, error) {
			return &Result{Summary: "ok"}, nil
		},
	})

	assert.Equal(t, OutcomeSuccess, outcome.Kind)
}

func TestExecute_NilResultTreatedAsEmptySuccess(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()
	store.Put(ctx, "agent-1", &oauth2.Token{AccessToken: "tok"})

	gw := newTestGateway(store, &fakeChallengeGenerator{})

	outcome := gw.Execute(ctx, "agent-1", Operation{
		Name: "noop",
		Call: func(ctx context.Context, token *oauth2.Token) (*Result, error) {
			return nil, nil
		},
	})

	assert.Equal(t, OutcomeSuccess, outcome.Kind)
	assert.Empty(t, outcome.Summary)
}

func TestExecute_ConcurrentDistinctIdentities(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()
	store.Put(ctx, "agent-1", &oauth2.Token{AccessToken: "tok-agent-1"})
	store.Put(ctx, "agent-2", &oauth2.Token{AccessToken: "tok-agent-2"})

	gw := newTestGateway(store, &fakeChallengeGenerator{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for _, agent := range []string{"agent-1", "agent-2"} {
			wg.Add(1)
			go func(agent string) {
				defer wg.Done()
				outcome := gw.Execute(ctx, agent, Operation{
					Name: "docs_get_document",
					Call: func(ctx context.Context, token *oauth2.Token) (*Result, error) {
						// Each identity must only ever see its own credential.
						assert.Equal(t, "tok-"+agent, token.AccessToken)
						return &Result{Summary: agent}, nil
					},
				})
				assert.Equal(t, OutcomeSuccess, outcome.Kind)
				assert.Equal(t, agent, outcome.Summary)
			}(agent)
		}
	}
	wg.Wait()
}

func TestExecute_PutVisibleToSubsequentExecute(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()
	gen := &fakeChallengeGenerator{url: "https://example.com/auth"}
	gw := newTestGateway(store, gen)

	op := Operation{
		Name: "docs_get_document",
		Call: func(ctx context.Context, token *oauth2.Token) (*Result, error) {
			return &Result{Summary: token.AccessToken}, nil
		},
	}

	outcome := gw.Execute(ctx, "agent-1", op)
	require.Equal(t, OutcomeAuthorizationRequired, outcome.Kind)

	// An authorization flow completes; a call that halted at the gate is not
	// retried, but the next call sees the credential.
	store.Put(ctx, "agent-1", &oauth2.Token{AccessToken: "tok-123"})

	outcome = gw.Execute(ctx, "agent-1", op)
	assert.Equal(t, OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "tok-123", outcome.Summary)
}

func TestOutcomeKindString(t *testing.T) {
	assert.Equal(t, "authorization_required", OutcomeAuthorizationRequired.String())
	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "failure", OutcomeFailure.String())
	assert.Equal(t, "unknown", OutcomeKind(99).String())
}
