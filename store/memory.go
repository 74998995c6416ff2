// Package store provides storage implementations for the product catalog.
package store

import (
	"context"
	"fmt"
	"sync"

	"storefront/domain"
)

// InMemoryStore is a thread-safe in-memory domain.ProductStore
type InMemoryStore struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	nextID   int64
}

// NewInMemoryStore constructs a new InMemoryStore
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		products: make(map[int64]domain.Product),
		nextID:   1,
	}
}

// compile-time assertion that InMemoryStore implements domain.ProductStore
var _ domain.ProductStore = (*InMemoryStore)(nil)

func (s *InMemoryStore) Insert(ctx context.Context, product domain.Product) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	if err := domain.CheckProduct(product); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = s.nextID
	s.nextID++
	s.products[product.ID] = product
	return product.ID, nil
}

func (s *InMemoryStore) Get(ctx context.Context, id int64) (domain.Product, error) {
	select {
	case <-ctx.Done():
		return domain.Product{}, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}
	return p, nil
}

func (s *InMemoryStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

func (s *InMemoryStore) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	all := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		all = append(all, p)
	}
	s.mu.RUnlock()

	sortByID(all)
	return applyFilter(all, filter), nil
}

func (s *InMemoryStore) BulkImport(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, p := range products {
		if err := domain.CheckProduct(p); err != nil {
			return nil, fmt.Errorf("row=%d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		p.ID = s.nextID
		s.nextID++
		s.products[p.ID] = p
		out = append(out, p)
	}
	return out, nil
}
