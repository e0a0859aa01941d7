package service

import (
	"context"
	"sync"

	"gvnatural/internal/domain"

	"golang.org/x/sync/singleflight"
)

// productSource is the slice of the backend client the catalog needs.
type productSource interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

// CatalogService reads the product catalog. Identical in-flight fetches are
// collapsed with singleflight, and the last-known snapshot is guarded by a
// per-resource sequence so a slow response can never clobber the result of
// a fetch issued after it.
type CatalogService struct {
	products productSource
	group    singleflight.Group

	mu      sync.Mutex
	seq     map[string]uint64
	applied map[string]uint64
	lists   map[string][]domain.Product
	items   map[string]*domain.Product
}

func NewCatalogService(products productSource) *CatalogService {
	return &CatalogService{
		products: products,
		seq:      make(map[string]uint64),
		applied:  make(map[string]uint64),
		lists:    make(map[string][]domain.Product),
		items:    make(map[string]*domain.Product),
	}
}

// begin stamps a new fetch for the resource key and returns its sequence.
func (s *CatalogService) begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[key]++
	return s.seq[key]
}

// applyList caches a fetched list unless a fetch issued later has already
// applied its result. Stale responses are dropped, not merged.
func (s *CatalogService) applyList(key string, id uint64, products []domain.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < s.applied[key] {
		return false
	}
	s.applied[key] = id
	s.lists[key] = products
	return true
}

func (s *CatalogService) applyItem(key string, id uint64, product *domain.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < s.applied[key] {
		return false
	}
	s.applied[key] = id
	s.items[key] = product
	return true
}

// ListProducts fetches the catalog. The returned slice also becomes the
// last-known snapshot unless a newer fetch has already landed.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const key = "products"
	id := s.begin(key)

	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.products.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	products := v.([]domain.Product)

	s.applyList(key, id, products)
	return products, nil
}

// GetProduct fetches one product by ID with the same dedup and staleness
// guarantees as ListProducts.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	key := "product:" + id
	seq := s.begin(key)

	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.products.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	product := v.(*domain.Product)

	s.applyItem(key, seq, product)
	return product, nil
}

// CachedProducts returns the last applied catalog snapshot, if any.
func (s *CatalogService) CachedProducts() ([]domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products, ok := s.lists["products"]
	return products, ok
}
