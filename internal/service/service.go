// Package service wires configuration, storage and the cart provider for one
// cart home directory.
package service

import (
	"context"
	"fmt"

	"github.com/go-ports/gomarketplace/internal/cart"
	"github.com/go-ports/gomarketplace/internal/config"
	"github.com/go-ports/gomarketplace/internal/models"
	"github.com/go-ports/gomarketplace/internal/storage"
)

// Service owns the storage and the cart provider rooted at a cart home.
type Service struct {
	CartHome string
	Config   *config.CartConfig

	storage  storage.Storage
	provider *cart.Provider
}

// New initialises a Service rooted at cartHome and starts hydrating the cart.
// An empty cartHome is resolved via config.ResolveHome.
func New(ctx context.Context, cartHome string) (*Service, error) {
	home := config.ResolveHome(cartHome)
	if err := home.Ensure(); err != nil {
		return nil, fmt.Errorf("service.New: %w", err)
	}

	cfg, err := home.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("service.New: load config: %w", err)
	}

	st, err := storage.Open(cfg.Storage.Backend, home.DBPath())
	if err != nil {
		return nil, fmt.Errorf("service.New: open storage: %w", err)
	}

	return NewWithStorage(ctx, home.Path, cfg, st), nil
}

// NewWithStorage builds a Service over an already opened storage. The service
// takes ownership of st and closes it in Close.
func NewWithStorage(ctx context.Context, cartHome string, cfg *config.CartConfig, st storage.Storage) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	p := cart.NewProvider(st, cfg.Storage.Key)
	p.Start(ctx)

	return &Service{
		CartHome: cartHome,
		Config:   cfg,
		storage:  st,
		provider: p,
	}
}

// Close stops the cart and releases the storage.
func (s *Service) Close() error {
	_ = s.provider.Close()
	return s.storage.Close()
}

// Context attaches the cart to parent so that cart.Use works beneath it.
func (s *Service) Context(parent context.Context) context.Context {
	return s.provider.Context(parent)
}

// Cart returns the cart store once it has been hydrated from storage.
func (s *Service) Cart(ctx context.Context) (*cart.Store, error) {
	st := s.provider.Store()
	select {
	case <-st.Loaded():
		return st, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Products returns the hydrated cart contents.
func (s *Service) Products(ctx context.Context) ([]models.Product, error) {
	st, err := s.Cart(ctx)
	if err != nil {
		return nil, err
	}
	return st.Products(), nil
}

// Reset removes the stored cart blob. The in-memory cart of this service is
// left as is; the next process starts empty.
func (s *Service) Reset(ctx context.Context) error {
	st, err := s.Cart(ctx)
	if err != nil {
		return err
	}
	if err := s.storage.Remove(ctx, st.Key()); err != nil {
		return fmt.Errorf("service.Reset: %w", err)
	}
	return nil
}
