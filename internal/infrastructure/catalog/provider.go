package catalog

import (
	"sync/atomic"

	"github.com/shelfcheck/backend/internal/domain"
	"github.com/shelfcheck/backend/internal/usecase"
)

// Provider hands out the current catalog index. A refresh builds a whole
// new index off the read path and swaps the pointer atomically: in-flight
// validations keep the snapshot they started with, new calls see the new
// one, and readers never take a lock.
type Provider struct {
	current atomic.Pointer[usecase.Index]
}

// NewProvider creates a provider serving the given initial index.
func NewProvider(initial *usecase.Index) *Provider {
	p := &Provider{}
	p.current.Store(initial)
	return p
}

// Index returns the current catalog index.
func (p *Provider) Index() domain.NeighbourSearcher {
	return p.current.Load()
}

// Swap atomically replaces the served index.
func (p *Provider) Swap(next *usecase.Index) {
	p.current.Store(next)
}
