package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirasaad/currency-converter/pkg/domain"
)

type namedProvider struct {
	name string
}

func (p *namedProvider) Name() string { return p.name }

func (p *namedProvider) GetLatestRates(ctx context.Context, base string) (*domain.RatesSnapshot, error) {
	return nil, nil
}

func (p *namedProvider) GetRate(ctx context.Context, from, to string) (*domain.RatesSnapshot, error) {
	return nil, nil
}

func (p *namedProvider) GetHistoricalRates(ctx context.Context, base string, start, end time.Time) (*domain.HistoricalSeries, error) {
	return nil, nil
}

func TestRegistry_ResolveCaseInsensitive(t *testing.T) {
	frankfurter := &namedProvider{name: "Frankfurter"}
	registry := NewRegistry(frankfurter)

	for _, name := range []string{"frankfurter", "Frankfurter", "FRANKFURTER"} {
		p, err := registry.Resolve(name)
		require.NoError(t, err, name)
		assert.Same(t, frankfurter, p)
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	registry := NewRegistry(&namedProvider{name: "frankfurter"})

	tests := []string{"otherprovider", "", "frankfurter2"}
	for _, name := range tests {
		_, err := registry.Resolve(name)
		assert.ErrorIs(t, err, domain.ErrProviderNotFound, name)
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	first := &namedProvider{name: "stub"}
	second := &namedProvider{name: "STUB"}
	registry := NewRegistry(first)
	registry.Register(second)

	p, err := registry.Resolve("stub")
	require.NoError(t, err)
	assert.Same(t, second, p)
	assert.Len(t, registry.Names(), 1)
}
