package cart

import (
	"context"
	"errors"

	"github.com/go-ports/gomarketplace/internal/storage"
)

// ErrNoProvider is the usage error raised when the cart is accessed from a
// context no Provider has been attached to.
var ErrNoProvider = errors.New("cart.Use must be used within a cart.Provider")

type ctxKey struct{}

// Provider scopes one Store and hands it to consumers through a
// context.Context.
type Provider struct {
	store *Store
}

// NewProvider creates a provider for the cart stored under key in s. An empty
// key selects DefaultKey.
func NewProvider(s storage.Storage, key string) *Provider {
	return &Provider{store: newStore(s, key)}
}

// Start begins hydrating the cart in the background and accepting mutations.
// It returns immediately; Store().Loaded() reports when hydration finished.
func (p *Provider) Start(ctx context.Context) {
	p.store.start(ctx)
}

// Store returns the provider's store.
func (p *Provider) Store() *Store { return p.store }

// Context returns a child of parent through which Use and FromContext reach
// the provider's store.
func (p *Provider) Context(parent context.Context) context.Context {
	return context.WithValue(parent, ctxKey{}, p.store)
}

// Close stops the store. It does not close the underlying storage.
func (p *Provider) Close() error {
	p.store.close()
	return nil
}

// FromContext returns the store attached to ctx, or ErrNoProvider.
func FromContext(ctx context.Context) (*Store, error) {
	s, ok := ctx.Value(ctxKey{}).(*Store)
	if !ok || s == nil {
		return nil, ErrNoProvider
	}
	return s, nil
}

// Use returns the store attached to ctx and panics with ErrNoProvider when
// there is none.
func Use(ctx context.Context) *Store {
	s, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return s
}
