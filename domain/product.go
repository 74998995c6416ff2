// Package domain defines core business types and interfaces.
package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product represents a catalog product
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description,omitempty"`
	Details     string          `json:"details,omitempty"`
}

// ProductInput is the raw form submission for a product. Price and Stock are
// kept as text until they pass Validate.
type ProductInput struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Stock       string `json:"stock"`
	Description string `json:"description,omitempty"`
	Details     string `json:"details,omitempty"`
}

// ListFilter allows filtering and sorting results from List
type ListFilter struct {
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string // "name", "price", "quantity"; empty keeps id order
	Order    string // "asc" or "desc"
}

// ProductStore defines the storage interface for products
type ProductStore interface {
	// Insert stores p under a freshly assigned id and returns that id.
	// Any ID already set on p is ignored.
	Insert(ctx context.Context, product Product) (int64, error)
	Get(ctx context.Context, id int64) (Product, error)
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	// BulkImport inserts all products in order, or none of them.
	BulkImport(ctx context.Context, products []Product) ([]Product, error)
}

// CheckProduct guards stores against products that did not come through
// ParseInput.
func CheckProduct(p Product) error {
	if p.Name == "" {
		return NewInvalidProductError("name", "cannot be empty", p.Name)
	}
	if p.Price.IsNegative() {
		return NewInvalidProductError("price", "must be non-negative", p.Price)
	}
	if p.Quantity < 0 {
		return NewInvalidProductError("quantity", "must be non-negative", p.Quantity)
	}
	return nil
}
