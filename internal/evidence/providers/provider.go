package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"idverify/internal/identity"
)

// Protocol defines the supported communication protocols for identity providers
type Protocol string

const (
	ProtocolHTTP Protocol = "http"
)

// IDType names the kind of identifier a lookup is keyed on.
type IDType string

const (
	IDTypeNIN         IDType = "nin"
	IDTypeVNIN        IDType = "vnin"
	IDTypeBVN         IDType = "bvn"
	IDTypeCAC         IDType = "cac"
	IDTypePhone       IDType = "phone"
	IDTypeEmail       IDType = "email"
	IDTypeBankAccount IDType = "bank_account"
)

// DefaultCountryCode is used when a lookup does not name a country.
const DefaultCountryCode = "ng"

// Capabilities describes what a provider supports
type Capabilities struct {
	Protocol Protocol
	Version  string   // Provider API version
	IDTypes  []IDType // Identifier types the provider can resolve
}

// Supports reports whether the provider can resolve t.
func (c Capabilities) Supports(t IDType) bool {
	return slices.Contains(c.IDTypes, t)
}

// LookupRequest asks a provider to resolve one identifier.
type LookupRequest struct {
	Type        IDType
	IDNumber    string
	CountryCode string
	// Extra carries provider-specific attributes such as "company-name".
	Extra map[string]string
}

// LookupResult is the normalized output of any provider.
type LookupResult struct {
	ProviderID string                   `json:"provider_id"`
	Status     string                   `json:"status"`
	Passed     bool                     `json:"passed"`
	Identity   identity.ClaimedIdentity `json:"identity"`
	// CompanyName is set for CAC lookups.
	CompanyName string          `json:"company_name,omitempty"`
	ReferenceID string          `json:"reference_id,omitempty"`
	Raw         json.RawMessage `json:"raw,omitempty"`
	CheckedAt   time.Time       `json:"checked_at"`
}

// Provider is the universal interface all identity sources must implement
type Provider interface {
	// ID returns a unique identifier for this provider instance
	ID() string

	// Capabilities returns what this provider supports
	Capabilities() Capabilities

	// Lookup resolves an identifier into the identity on record
	Lookup(ctx context.Context, req LookupRequest) (*LookupResult, error)

	// Health checks if the provider is usable
	Health(ctx context.Context) error
}

// passedStatuses are the provider verdicts that count as a match.
var passedStatuses = []string{"passed", "verified", "success"}

// IsPassedStatus reports whether a provider status string is a pass.
func IsPassedStatus(status string) bool {
	return slices.Contains(passedStatuses, strings.ToLower(strings.TrimSpace(status)))
}

// ProviderRegistry maintains all registered providers
type ProviderRegistry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewProviderRegistry creates a new empty registry
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry
func (r *ProviderRegistry) Register(p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := p.ID()
	if _, exists := r.providers[id]; exists {
		return fmt.Errorf("provider %s already registered", id)
	}
	r.providers[id] = p
	return nil
}

// Get retrieves a provider by ID
func (r *ProviderRegistry) Get(id string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, id)
	}
	return p, nil
}

// ListByIDType returns every provider that can resolve t, sorted by ID.
func (r *ProviderRegistry) ListByIDType(t IDType) []Provider {
	var result []Provider
	for _, p := range r.All() {
		if p.Capabilities().Supports(t) {
			result = append(result, p)
		}
	}
	return result
}

// All returns all registered providers sorted by ID
func (r *ProviderRegistry) All() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Provider, 0, len(r.providers))
	for _, p := range r.providers {
		result = append(result, p)
	}
	slices.SortFunc(result, func(a, b Provider) int {
		return strings.Compare(a.ID(), b.ID())
	})
	return result
}
