// Package catalog ties product validation, storage and open carts together.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"storefront/cart"
	"storefront/domain"

	"golang.org/x/sync/errgroup"
)

// maxImportWorkers bounds concurrent validation during Import.
const maxImportWorkers = 10

// Service validates product submissions before writing them and keeps open
// carts consistent with the catalog.
type Service struct {
	store domain.ProductStore
	carts *cart.Registry

	// per-product locks serialise Delete against AddToCart on the same id;
	// entries are dropped once the id no longer names a product
	locks sync.Map // map[int64]*sync.Mutex
}

// New constructs a Service. carts may be nil when no carts are open.
func New(store domain.ProductStore, carts *cart.Registry) *Service {
	if carts == nil {
		carts = cart.NewRegistry()
	}
	return &Service{store: store, carts: carts}
}

// Carts returns the registry of open carts.
func (s *Service) Carts() *cart.Registry { return s.carts }

func (s *Service) lockProduct(id int64) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// ListAll returns every product in store order.
func (s *Service) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.store.List(ctx, domain.ListFilter{})
}

// List returns the products matching filter.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	return s.store.List(ctx, filter)
}

// Get returns the product with id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Product, error) {
	return s.store.Get(ctx, id)
}

// Save validates in and inserts it as a new product. Invalid input yields a
// *domain.ValidationFailedError and no write.
func (s *Service) Save(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	p, err := domain.ParseInput(in)
	if err != nil {
		return domain.Product{}, err
	}

	start := time.Now()
	id, err := s.store.Insert(ctx, p)
	if err != nil {
		slog.Error("save failed", "name", p.Name, "error", err)
		return domain.Product{}, fmt.Errorf("save product: %w", err)
	}
	p.ID = id
	slog.Info("product saved", "product_id", id, "duration_ms", time.Since(start).Milliseconds())
	return p, nil
}

// Import validates every input and, if all are valid, inserts them in order.
// Validation runs concurrently; the result does not depend on scheduling.
func (s *Service) Import(ctx context.Context, inputs []domain.ProductInput) ([]domain.Product, error) {
	products := make([]domain.Product, len(inputs))
	rowKeys := make([][]domain.ErrorKey, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxImportWorkers)
	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := domain.ParseInput(inputs[i])
			var vfe *domain.ValidationFailedError
			if errors.As(err, &vfe) {
				rowKeys[i] = vfe.Keys
				return nil
			}
			products[i] = p
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var failed []domain.RowError
	for i, keys := range rowKeys {
		if len(keys) > 0 {
			failed = append(failed, domain.RowError{Row: i, Keys: keys})
		}
	}
	if len(failed) > 0 {
		return nil, &domain.ImportFailedError{Rows: failed}
	}

	out, err := s.store.BulkImport(ctx, products)
	if err != nil {
		return nil, fmt.Errorf("import products: %w", err)
	}
	slog.Info("products imported", "count", len(out))
	return out, nil
}

// Delete removes the product and every cart line that references it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	unlock := s.lockProduct(id)
	defer unlock()

	ok, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		slog.Error("delete failed", "product_id", id, "error", err)
		return fmt.Errorf("delete product: %w", err)
	}
	if !ok {
		s.locks.Delete(id)
		return domain.NewProductNotFoundError(id)
	}
	s.locks.Delete(id)
	scrubbed := s.carts.Scrub(id)
	slog.Info("product deleted", "product_id", id, "carts_scrubbed", scrubbed)
	return nil
}

// AddToCart adds quantity units of the stored product to the session's cart.
func (s *Service) AddToCart(ctx context.Context, sessionID string, productID int64, quantity int) error {
	unlock := s.lockProduct(productID)
	defer unlock()

	p, err := s.store.Get(ctx, productID)
	if err != nil {
		if domain.IsProductNotFoundError(err) {
			s.locks.Delete(productID)
		}
		return err
	}
	return s.carts.Do(sessionID, func(c *cart.Cart) error {
		return c.AddItem(p, quantity)
	})
}

// RemoveFromCart removes the product's line from the session's cart.
func (s *Service) RemoveFromCart(sessionID string, productID int64) error {
	return s.carts.Do(sessionID, func(c *cart.Cart) error {
		c.RemoveProduct(productID)
		return nil
	})
}
