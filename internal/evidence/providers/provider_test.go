package providers

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	id    string
	types []IDType
}

func (s stubProvider) ID() string { return s.id }
func (s stubProvider) Capabilities() Capabilities {
	return Capabilities{Protocol: ProtocolHTTP, Version: "test", IDTypes: s.types}
}
func (s stubProvider) Lookup(context.Context, LookupRequest) (*LookupResult, error) {
	return &LookupResult{ProviderID: s.id}, nil
}
func (s stubProvider) Health(context.Context) error { return nil }

func TestProviderRegistry(t *testing.T) {
	reg := NewProviderRegistry()
	require.NoError(t, reg.Register(stubProvider{id: "persona", types: []IDType{IDTypeNIN, IDTypeCAC}}))
	require.NoError(t, reg.Register(stubProvider{id: "kora", types: []IDType{IDTypeNIN, IDTypeVNIN}}))

	t.Run("duplicate id rejected", func(t *testing.T) {
		assert.Error(t, reg.Register(stubProvider{id: "kora"}))
	})

	t.Run("get", func(t *testing.T) {
		p, err := reg.Get("persona")
		require.NoError(t, err)
		assert.Equal(t, "persona", p.ID())

		_, err = reg.Get("acme")
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})

	t.Run("list by id type is sorted", func(t *testing.T) {
		var ids []string
		for _, p := range reg.ListByIDType(IDTypeNIN) {
			ids = append(ids, p.ID())
		}
		assert.Equal(t, []string{"kora", "persona"}, ids)
		assert.Len(t, reg.ListByIDType(IDTypeCAC), 1)
		assert.Empty(t, reg.ListByIDType(IDTypeEmail))
	})
}

func TestProviderRegistry_ConcurrentAccess(t *testing.T) {
	reg := NewProviderRegistry()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.Register(stubProvider{id: string(rune('a' + i))})
			_ = reg.All()
		}()
	}
	wg.Wait()
	assert.Len(t, reg.All(), 16)
}
