package auth

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/oauth2"

	"github.com/teemow/agentdocs/internal/logging"
)

// DefaultProvider is the single supported delegation provider.
const DefaultProvider = "google"

// DefaultCallTimeout bounds the remote call of a gated operation. A transport
// timeout becomes a Failure outcome instead of an indefinite suspension.
const DefaultCallTimeout = 30 * time.Second

// challengeFailureSummary is the fixed caller-facing summary when the
// challenge generator itself cannot produce a URL.
const challengeFailureSummary = "Failed to generate authentication URL"

// ChallengeGenerator produces a URL the end user visits to grant delegated
// access for the given agent identity. Implemented by google.AuthFlow.
type ChallengeGenerator interface {
	GenerateChallenge(ctx context.Context, provider, agentID string) (string, error)
}

// Result is the output of a successfully completed operation call.
type Result struct {
	// Summary is a short human-readable description of what happened.
	Summary string
	// Payload is an optional structured value for display.
	Payload any
}

// Operation is a single-shot remote-call procedure executed behind the
// credential gate. Call is invoked at most once per Execute; the Gateway
// never retries it.
type Operation struct {
	// Name identifies the operation in logs and metrics.
	Name string

	// FailureSummary is the fixed human-readable summary returned to the
	// caller when Call fails. The underlying error only reaches the logs.
	FailureSummary string

	// Call performs the remote call with the agent's credential attached.
	Call func(ctx context.Context, token *oauth2.Token) (*Result, error)
}

// OutcomeKind enumerates the three shapes a gated call can produce.
type OutcomeKind int

const (
	// OutcomeAuthorizationRequired means no credential is on file for the
	// calling agent; the Outcome carries a challenge URL to complete a grant.
	OutcomeAuthorizationRequired OutcomeKind = iota

	// OutcomeSuccess means the operation completed; the Outcome carries its
	// summary and payload.
	OutcomeSuccess

	// OutcomeFailure means the operation (or the challenge generator) failed;
	// the Outcome carries only a fixed summary.
	OutcomeFailure
)

// String returns the metric/log label for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAuthorizationRequired:
		return "authorization_required"
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is the uniform result of a gated call. Exactly one of the three
// kinds is set; the raw error from a failed call is never part of the value.
type Outcome struct {
	Kind         OutcomeKind
	ChallengeURL string // set for OutcomeAuthorizationRequired
	Summary      string // set for OutcomeSuccess and OutcomeFailure
	Payload      any    // set for OutcomeSuccess, may be nil
}

// MetricsRecorder receives gate events. Implemented by instrumentation.Metrics.
type MetricsRecorder interface {
	RecordGatedOutcome(ctx context.Context, operation, outcome string)
	RecordAuthChallenge(ctx context.Context, result string)
}

// Gateway gates every remote operation behind a credential-presence check.
//
// The Gateway holds no state across invocations beyond what the Store
// persists. Presence is the only check performed: expiry and revocation are
// not consulted, so a stale token surfaces as a remote-call Failure rather
// than a new challenge.
type Gateway struct {
	store      Store
	challenges ChallengeGenerator
	provider   string
	timeout    time.Duration
	logger     *slog.Logger
	metrics    MetricsRecorder
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithProvider overrides the delegation provider passed to the challenge
// generator.
func WithProvider(provider string) GatewayOption {
	return func(g *Gateway) { g.provider = provider }
}

// WithCallTimeout bounds each operation call. Zero disables the bound and
// the call inherits whatever timeout the transport applies.
func WithCallTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) { g.timeout = d }
}

// WithLogger sets the logger for operator-facing error detail.
func WithLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) { g.logger = logger }
}

// WithMetrics sets the metrics recorder for gate events.
func WithMetrics(m MetricsRecorder) GatewayOption {
	return func(g *Gateway) { g.metrics = m }
}

// NewGateway creates a Gateway over the given credential store and challenge
// generator.
func NewGateway(store Store, challenges ChallengeGenerator, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		store:      store,
		challenges: challenges,
		provider:   DefaultProvider,
		timeout:    DefaultCallTimeout,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Execute runs op on behalf of agentID.
//
// If no credential is on file, op.Call is never invoked and the returned
// Outcome carries a challenge URL (or, if the generator itself fails, a
// Failure — loss of the ability to authenticate must be visible, not
// swallowed). Otherwise op.Call runs exactly once with the stored token; any
// error it returns is logged with full detail and collapsed into a Failure
// carrying only op.FailureSummary.
func (g *Gateway) Execute(ctx context.Context, agentID string, op Operation) Outcome {
	token, ok := g.store.Get(ctx, agentID)
	if !ok {
		return g.challenge(ctx, agentID, op)
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	res, err := op.Call(callCtx, token)
	if err != nil {
		g.logger.Error("gated operation failed",
			logging.Operation(op.Name),
			logging.Agent(agentID),
			logging.Err(err),
		)
		return g.finish(ctx, op, Outcome{
			Kind:    OutcomeFailure,
			Summary: op.FailureSummary,
		})
	}
	if res == nil {
		res = &Result{}
	}

	return g.finish(ctx, op, Outcome{
		Kind:    OutcomeSuccess,
		Summary: res.Summary,
		Payload: res.Payload,
	})
}

func (g *Gateway) challenge(ctx context.Context, agentID string, op Operation) Outcome {
	url, err := g.challenges.GenerateChallenge(ctx, g.provider, agentID)
	if err != nil {
		g.logger.Error("failed to generate authorization challenge",
			logging.Operation(op.Name),
			logging.Agent(agentID),
			slog.String(logging.KeyProvider, g.provider),
			logging.Err(err),
		)
		if g.metrics != nil {
			g.metrics.RecordAuthChallenge(ctx, logging.StatusError)
		}
		return g.finish(ctx, op, Outcome{
			Kind:    OutcomeFailure,
			Summary: challengeFailureSummary,
		})
	}

	g.logger.Info("authorization required",
		logging.Operation(op.Name),
		logging.Agent(agentID),
		slog.String(logging.KeyProvider, g.provider),
	)
	if g.metrics != nil {
		g.metrics.RecordAuthChallenge(ctx, logging.StatusSuccess)
	}
	return g.finish(ctx, op, Outcome{
		Kind:         OutcomeAuthorizationRequired,
		ChallengeURL: url,
	})
}

func (g *Gateway) finish(ctx context.Context, op Operation, outcome Outcome) Outcome {
	if g.metrics != nil {
		g.metrics.RecordGatedOutcome(ctx, op.Name, outcome.Kind.String())
	}
	return outcome
}
