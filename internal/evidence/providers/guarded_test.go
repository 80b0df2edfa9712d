package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idverify/pkg/platform/circuit"
)

type scriptedProvider struct {
	calls int
	errs  []error
}

func (p *scriptedProvider) ID() string                   { return "persona" }
func (p *scriptedProvider) Capabilities() Capabilities   { return Capabilities{Protocol: ProtocolHTTP} }
func (p *scriptedProvider) Health(context.Context) error { return nil }
func (p *scriptedProvider) Lookup(context.Context, LookupRequest) (*LookupResult, error) {
	var err error
	if p.calls < len(p.errs) {
		err = p.errs[p.calls]
	}
	p.calls++
	if err != nil {
		return nil, err
	}
	return &LookupResult{ProviderID: "persona", Passed: true}, nil
}

func TestGuardedProvider(t *testing.T) {
	ctx := context.Background()
	req := LookupRequest{Type: IDTypeNIN, IDNumber: "12345678901"}
	outage := NewProviderError(ErrorProviderOutage, "persona", "Network error during verification", nil)

	t.Run("opens after consecutive outages and fails fast", func(t *testing.T) {
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		inner := &scriptedProvider{errs: []error{outage, outage}}
		g := NewGuardedProvider(inner, circuit.New("persona",
			circuit.WithFailureThreshold(2),
			circuit.WithSuccessThreshold(1),
			circuit.WithCooldown(time.Minute),
			circuit.WithClock(func() time.Time { return now }),
		), nil)

		_, err := g.Lookup(ctx, req)
		require.Error(t, err)
		_, err = g.Lookup(ctx, req)
		require.Error(t, err)
		assert.Equal(t, 2, inner.calls)

		_, err = g.Lookup(ctx, req)
		require.ErrorIs(t, err, ErrCircuitOpen)
		assert.Equal(t, ErrorProviderOutage, GetCategory(err))
		assert.Equal(t, 2, inner.calls, "open circuit skips the provider")
		assert.ErrorIs(t, g.Health(ctx), ErrCircuitOpen)

		now = now.Add(time.Minute)
		res, err := g.Lookup(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.Passed)
		assert.NoError(t, g.Health(ctx), "successful probe closes the circuit")
	})

	t.Run("non-retryable failures do not trip", func(t *testing.T) {
		notFound := NewProviderError(ErrorNotFound, "persona", "No record found", nil)
		inner := &scriptedProvider{errs: []error{notFound, notFound, notFound}}
		g := NewGuardedProvider(inner, circuit.New("persona", circuit.WithFailureThreshold(1)), nil)

		for range 3 {
			_, err := g.Lookup(ctx, req)
			require.Error(t, err)
			assert.False(t, errors.Is(err, ErrCircuitOpen))
		}
		assert.Equal(t, 3, inner.calls)
	})
}
