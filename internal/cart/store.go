// Package cart implements the cart state container: an ordered list of
// products hydrated from key-value storage, mutated through a single writer
// goroutine and written back after every change.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-ports/gomarketplace/internal/models"
	"github.com/go-ports/gomarketplace/internal/storage"
)

// DefaultKey is the storage key the cart blob lives under.
const DefaultKey = "@GoMarketPlace:products"

var (
	// ErrClosed is returned by mutations issued after the store stopped.
	ErrClosed = errors.New("cart: store closed")
	// ErrNotStarted is returned by mutations issued before Start.
	ErrNotStarted = errors.New("cart: store not started")
)

type job struct {
	ctx    context.Context
	op     string
	apply  func([]models.Product) []models.Product
	result chan error
}

// Store owns the in-memory product list. All mutations run on one goroutine
// in arrival order; the first job it runs is the load from storage.
type Store struct {
	storage storage.Storage
	key     string

	mu       sync.RWMutex
	products []models.Product

	jobs    chan job
	quit    chan struct{}
	done    chan struct{}
	loaded  chan struct{}
	started chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
}

func newStore(s storage.Storage, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		storage:  s,
		key:      key,
		products: make([]models.Product, 0),
		jobs:     make(chan job),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		loaded:   make(chan struct{}),
		started:  make(chan struct{}),
	}
}

// Key returns the storage key the store reads and writes.
func (s *Store) Key() string { return s.key }

// start launches the writer goroutine. ctx scopes the load and the lifetime
// of the writer.
func (s *Store) start(ctx context.Context) {
	s.startOnce.Do(func() {
		close(s.started)
		go s.run(ctx)
	})
}

// close stops the writer and waits for it to exit.
func (s *Store) close() {
	s.closeOnce.Do(func() {
		close(s.quit)
		select {
		case <-s.started:
			<-s.done
		default:
		}
	})
}

func (s *Store) run(ctx context.Context) {
	defer close(s.done)

	s.load(ctx)
	close(s.loaded)

	for {
		select {
		case <-s.quit:
			return
		case <-ctx.Done():
			return
		case j := <-s.jobs:
			j.result <- s.commit(j)
		}
	}
}

// load replaces the current list with the stored one. Missing blobs, storage
// errors and blobs that are not a JSON array leave the cart empty. Within the
// array, items that fail to decode or carry no quantity are skipped one by one.
func (s *Store) load(ctx context.Context) {
	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		slog.Warn("cart: load failed, starting empty", "key", s.key, "err", err)
		return
	}
	if !found || raw == "" {
		slog.Debug("cart: nothing stored", "key", s.key)
		return
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.Warn("cart: stored cart is not a JSON array, starting empty", "key", s.key, "err", err)
		return
	}

	products := make([]models.Product, 0, len(items))
	for i, item := range items {
		var p models.Product
		if err := json.Unmarshal(item, &p); err != nil {
			slog.Warn("cart: skipping unreadable stored item", "key", s.key, "index", i, "err", err)
			continue
		}
		if p.Quantity <= 0 {
			slog.Debug("cart: dropping stored item without quantity", "id", p.ID)
			continue
		}
		products = append(products, p)
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	slog.Debug("cart: loaded", "key", s.key, "items", len(products))
}

// commit applies j to the committed list and persists exactly the result.
func (s *Store) commit(j job) error {
	s.mu.RLock()
	prev := s.products
	s.mu.RUnlock()

	next := j.apply(prev)

	s.mu.Lock()
	s.products = next
	s.mu.Unlock()

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("cart: %s: marshal: %w", j.op, err)
	}
	if err := s.storage.Set(j.ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("cart: %s: %w", j.op, err)
	}
	return nil
}

func (s *Store) submit(ctx context.Context, op string, apply func([]models.Product) []models.Product) error {
	select {
	case <-s.started:
	default:
		return ErrNotStarted
	}

	j := job{ctx: ctx, op: op, apply: apply, result: make(chan error, 1)}
	select {
	case s.jobs <- j:
	case <-s.quit:
		return ErrClosed
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-j.result
}

// ---------------------------------------------------------------------------
// Consumer surface
// ---------------------------------------------------------------------------

// Products returns a copy of the current ordered list.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Loaded is closed once the initial load from storage has finished, whether
// or not anything was stored.
func (s *Store) Loaded() <-chan struct{} { return s.loaded }

// AddToCart adds one unit of item and persists the cart.
func (s *Store) AddToCart(ctx context.Context, item models.ProductInput) error {
	return s.submit(ctx, "addToCart", func(p []models.Product) []models.Product {
		return AddToCart(p, item)
	})
}

// Increment adds one unit to the line item id and persists the cart.
func (s *Store) Increment(ctx context.Context, id string) error {
	return s.submit(ctx, "increment", func(p []models.Product) []models.Product {
		return Increment(p, id)
	})
}

// Decrement removes one unit from the line item id, dropping it at zero, and
// persists the cart.
func (s *Store) Decrement(ctx context.Context, id string) error {
	return s.submit(ctx, "decrement", func(p []models.Product) []models.Product {
		return Decrement(p, id)
	})
}
