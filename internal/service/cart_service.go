package service

import (
	"context"
	"errors"
	"fmt"

	"gvnatural/internal/backend"
	"gvnatural/internal/domain"
	"gvnatural/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
)

// CartService owns the session-scoped shopping cart. Mutations apply to an
// in-memory cart hydrated per request; persistence is best-effort and a
// failed save never fails the mutation.
type CartService interface {
	Get(ctx context.Context, sessionID string) *domain.Cart
	AddItem(ctx context.Context, sessionID, productID string, quantityKg int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantityKg int) *domain.Cart
	RemoveItem(ctx context.Context, sessionID, productID string) *domain.Cart
	Clear(ctx context.Context, sessionID string) *domain.Cart
}

type cartService struct {
	carts    repository.CartRepository
	products *backend.ProductsAPI
	logger   *zap.Logger
}

// NewCartService creates a new instance of CartService
func NewCartService(carts repository.CartRepository, products *backend.ProductsAPI, logger *zap.Logger) CartService {
	return &cartService{carts: carts, products: products, logger: logger}
}

// Get hydrates the session's cart. Missing or unreadable persisted state
// yields an empty cart, never an error.
func (s *cartService) Get(ctx context.Context, sessionID string) *domain.Cart {
	entries, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		s.logger.Warn("Failed to load persisted cart, starting empty",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return domain.NewCart()
	}
	return domain.RestoreCart(entries)
}

// AddItem snapshots the product from the backend and merges it into the
// cart. Inactive products cannot be added.
func (s *cartService) AddItem(ctx context.Context, sessionID, productID string, quantityKg int) (*domain.Cart, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if product.ID == "" {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductUnavailable
	}

	cart := s.Get(ctx, sessionID)
	cart.AddItem(*product, quantityKg)
	s.persist(ctx, sessionID, cart)
	return cart, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantityKg int) *domain.Cart {
	cart := s.Get(ctx, sessionID)
	cart.UpdateQuantity(productID, quantityKg)
	s.persist(ctx, sessionID, cart)
	return cart
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, productID string) *domain.Cart {
	cart := s.Get(ctx, sessionID)
	cart.RemoveItem(productID)
	s.persist(ctx, sessionID, cart)
	return cart
}

func (s *cartService) Clear(ctx context.Context, sessionID string) *domain.Cart {
	cart := domain.NewCart()
	s.persist(ctx, sessionID, cart)
	return cart
}

// persist writes the cart through best-effort. The in-memory cart is the
// source of truth for the session; a storage hiccup only costs durability.
func (s *cartService) persist(ctx context.Context, sessionID string, cart *domain.Cart) {
	if err := s.carts.Save(ctx, sessionID, cart.Entries()); err != nil {
		s.logger.Warn("Failed to persist cart",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
	}
}
