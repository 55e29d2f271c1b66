package provider

import (
	"fmt"
	"strings"
	"sync"

	"github.com/amirasaad/currency-converter/pkg/domain"
)

// Registry resolves provider names to implementations. The set of providers
// is built at startup; Resolve is read-only afterwards and safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]ExchangeRateProvider
}

// NewRegistry creates a registry holding the given providers, keyed by
// their lowercased Name().
func NewRegistry(providers ...ExchangeRateProvider) *Registry {
	r := &Registry{providers: make(map[string]ExchangeRateProvider, len(providers))}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds or replaces a provider under its lowercased name.
func (r *Registry) Register(p ExchangeRateProvider) {
	r.mu.Lock()
	r.providers[strings.ToLower(p.Name())] = p
	r.mu.Unlock()
}

// Resolve returns the provider registered under name, matched
// case-insensitively. Unknown names fail hard with ErrProviderNotFound so a
// caller can never proceed with an absent provider.
func (r *Registry) Resolve(name string) (ExchangeRateProvider, error) {
	r.mu.RLock()
	p, ok := r.providers[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrProviderNotFound, name)
	}
	return p, nil
}

// Names returns the registered provider names, for diagnostics.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
