package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"storefront/domain"
)

// FileStore is a JSON file-backed implementation of domain.ProductStore
type FileStore struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	nextID   int64
	path     string
}

// compile-time assertion
var _ domain.ProductStore = (*FileStore)(nil)

// NewFileStore constructs a FileStore at the given path. If the file exists it will be loaded.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		products: make(map[int64]domain.Product),
		nextID:   1,
		path:     path,
	}
	if err := s.loadFromFile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) loadFromFile() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// no file yet; that's fine
			return nil
		}
		return err
	}
	if len(b) == 0 {
		return nil
	}
	var list []domain.Product
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("load %s: %w", s.path, err)
	}
	for _, p := range list {
		s.products[p.ID] = p
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return nil
}

// saveToFile writes the catalog atomically. Callers hold s.mu.
func (s *FileStore) saveToFile() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s.snapshot(), "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) snapshot() []domain.Product {
	list := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p)
	}
	sortByID(list)
	return list
}

func (s *FileStore) Insert(ctx context.Context, product domain.Product) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := domain.CheckProduct(product); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = s.nextID
	s.products[product.ID] = product
	if err := s.saveToFile(); err != nil {
		delete(s.products, product.ID)
		return 0, err
	}
	s.nextID++
	return product.ID, nil
}

func (s *FileStore) Get(ctx context.Context, id int64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}
	return p, nil
}

func (s *FileStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return false, nil
	}
	delete(s.products, id)
	if err := s.saveToFile(); err != nil {
		s.products[id] = p
		return false, err
	}
	return true, nil
}

func (s *FileStore) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	all := s.snapshot()
	s.mu.RUnlock()
	return applyFilter(all, filter), nil
}

func (s *FileStore) BulkImport(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
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
	id := s.nextID
	for _, p := range products {
		p.ID = id
		id++
		s.products[p.ID] = p
		out = append(out, p)
	}
	if err := s.saveToFile(); err != nil {
		for _, p := range out {
			delete(s.products, p.ID)
		}
		return nil, err
	}
	s.nextID = id
	return out, nil
}
