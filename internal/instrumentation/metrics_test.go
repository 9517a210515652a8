package instrumentation

import (
	"context"
	"testing"
	"time"
)

func newTestProvider(t *testing.T, ctx context.Context) *Provider {
	t.Helper()

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	return provider
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider := newTestProvider(t, ctx)
	defer func() { _ = provider.Shutdown(ctx) }()

	metrics := provider.Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil")
	}

	// Should not panic
	metrics.RecordToolInvocation(ctx, "docs_get_document", StatusSuccess, 100*time.Millisecond)
	metrics.RecordToolInvocation(ctx, "docs_insert_table", StatusError, 50*time.Millisecond)
}

func TestMetrics_RecordDocsAPIOperation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider := newTestProvider(t, ctx)
	defer func() { _ = provider.Shutdown(ctx) }()

	metrics := provider.Metrics()

	// Should not panic
	metrics.RecordDocsAPIOperation(ctx, "create_document", StatusSuccess, 200*time.Millisecond)
	metrics.RecordDocsAPIOperation(ctx, "batch_update", StatusError, 500*time.Millisecond)
}

func TestMetrics_RecordGatedOutcome(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider := newTestProvider(t, ctx)
	defer func() { _ = provider.Shutdown(ctx) }()

	metrics := provider.Metrics()

	// Should not panic
	metrics.RecordGatedOutcome(ctx, "get_document", OutcomeSuccess)
	metrics.RecordGatedOutcome(ctx, "get_document", OutcomeAuthRequired)
	metrics.RecordGatedOutcome(ctx, "insert_text", OutcomeFailure)
}

func TestMetrics_RecordAuth(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider := newTestProvider(t, ctx)
	defer func() { _ = provider.Shutdown(ctx) }()

	metrics := provider.Metrics()

	// Should not panic
	metrics.RecordAuthChallenge(ctx, StatusSuccess)
	metrics.RecordAuthChallenge(ctx, StatusError)
	metrics.RecordAuthCompletion(ctx, StatusSuccess)
}

func TestMetrics_ZeroValueIsNoOp(t *testing.T) {
	ctx := context.Background()

	var m Metrics

	// All recording methods must be safe on the zero value.
	m.RecordToolInvocation(ctx, "docs_get_document", StatusSuccess, time.Millisecond)
	m.RecordDocsAPIOperation(ctx, "get_document", StatusSuccess, time.Millisecond)
	m.RecordGatedOutcome(ctx, "get_document", OutcomeSuccess)
	m.RecordAuthChallenge(ctx, StatusSuccess)
	m.RecordAuthCompletion(ctx, StatusSuccess)
}
