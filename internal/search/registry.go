package search

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/ports"
)

// DefaultProvider is the provider used when config names none.
const DefaultProvider = "google"

// ErrProviderNotRegistered is returned by Resolve for unknown names.
var ErrProviderNotRegistered = errors.New("search provider is not registered")

// Provider is a named search backend (Google CSE, fixtures, etc.).
type Provider interface {
	ports.SearchProvider
	Name() string
}

// Registry keeps a mapping from provider names to their implementations.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]Provider{}}
}

// Register adds or replaces a provider implementation.
func (r *Registry) Register(provider Provider) {
	if r.providers == nil {
		r.providers = map[string]Provider{}
	}
	r.providers[provider.Name()] = provider
}

// Resolve returns a provider by name. An empty name resolves DefaultProvider.
func (r *Registry) Resolve(name string) (Provider, error) {
	if name == "" {
		name = DefaultProvider
	}
	if provider, ok := r.providers[name]; ok {
		return provider, nil
	}
	return nil, fmt.Errorf("%s: %w", name, ErrProviderNotRegistered)
}

// Names lists registered providers in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Static serves fixed results, one slice per page start. It backs dry runs
// and tests that should not reach the network.
type Static struct {
	ProviderName string
	Pages        map[int][]domain.SourceRecord
}

var _ Provider = (*Static)(nil)

// Name implements Provider.
func (s *Static) Name() string {
	if s.ProviderName == "" {
		return "static"
	}
	return s.ProviderName
}

// Search returns the page registered for start, if any.
func (s *Static) Search(_ context.Context, _ string, start int) ([]domain.SourceRecord, error) {
	return s.Pages[start], nil
}
