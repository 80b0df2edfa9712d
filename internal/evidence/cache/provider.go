package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"idverify/internal/evidence/providers"
)

// CachingProvider decorates a Provider with a lookup cache. Only successful
// lookups are stored, and cache failures degrade to a provider call.
type CachingProvider struct {
	providers.Provider
	cache   Cache
	ttl     time.Duration
	logger  *slog.Logger
	metrics *Metrics
}

// NewCachingProvider wraps next. metrics may be nil.
func NewCachingProvider(next providers.Provider, cache Cache, ttl time.Duration, logger *slog.Logger, metrics *Metrics) *CachingProvider {
	return &CachingProvider{
		Provider: next,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
		metrics:  metrics,
	}
}

// Lookup serves from cache when possible.
func (p *CachingProvider) Lookup(ctx context.Context, req providers.LookupRequest) (*providers.LookupResult, error) {
	providerID := p.Provider.ID()
	key := Key(providerID, req)

	cached, err := p.cache.Get(ctx, key)
	switch {
	case err == nil:
		p.metrics.observe(providerID, "hit")
		return cached, nil
	case errors.Is(err, ErrMiss):
		p.metrics.observe(providerID, "miss")
	default:
		p.metrics.observe(providerID, "error")
		p.logger.WarnContext(ctx, "lookup cache read failed",
			"provider", providerID,
			"error", err,
		)
	}

	result, err := p.Provider.Lookup(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, result, p.ttl); err != nil {
		p.logger.WarnContext(ctx, "lookup cache write failed",
			"provider", providerID,
			"error", err,
		)
	}
	return result, nil
}
