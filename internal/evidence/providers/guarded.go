package providers

import (
	"context"
	"errors"
	"log/slog"

	"idverify/pkg/platform/circuit"
)

// ErrCircuitOpen is wrapped by lookups rejected while the breaker is open.
var ErrCircuitOpen = errors.New("provider circuit open")

// GuardedProvider fails lookups fast while its provider is in an outage.
// Only retryable failures (timeouts, outages, rate limits) trip the
// breaker; a record that does not match is a healthy answer.
type GuardedProvider struct {
	Provider
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuardedProvider(next Provider, breaker *circuit.Breaker, logger *slog.Logger) *GuardedProvider {
	return &GuardedProvider{Provider: next, breaker: breaker, logger: logger}
}

func (g *GuardedProvider) Lookup(ctx context.Context, req LookupRequest) (*LookupResult, error) {
	if !g.breaker.Allow() {
		return nil, NewProviderError(ErrorProviderOutage, g.ID(),
			"Verification service temporarily unavailable", ErrCircuitOpen)
	}

	result, err := g.Provider.Lookup(ctx, req)
	if err != nil && IsRetryable(err) {
		if _, change := g.breaker.RecordFailure(); change.Opened && g.logger != nil {
			g.logger.WarnContext(ctx, "provider circuit opened",
				"provider", g.ID(),
				"category", GetCategory(err),
			)
		}
		return nil, err
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed && g.logger != nil {
		g.logger.InfoContext(ctx, "provider circuit closed", "provider", g.ID())
	}
	return result, err
}

// Health reports the breaker state before asking the provider.
func (g *GuardedProvider) Health(ctx context.Context) error {
	if g.breaker.IsOpen() {
		return ErrCircuitOpen
	}
	return g.Provider.Health(ctx)
}
