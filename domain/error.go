// Package domain defines error types for the storefront.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ProductNotFoundError is returned when a product with the given ID is not found
type ProductNotFoundError struct {
	ProductID int64
}

// Error implements the error interface for ProductNotFoundError
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: id=%d", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// InvalidProductError is returned by stores for a product that breaks an entity invariant
type InvalidProductError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for InvalidProductError
func (e *InvalidProductError) Error() string {
	return fmt.Sprintf("invalid product: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidProductError) Is(target error) bool {
	_, ok := target.(*InvalidProductError)
	return ok
}

// ValidationFailedError carries the ordered keys produced by Validate.
type ValidationFailedError struct {
	Keys []ErrorKey
}

// Error implements the error interface for ValidationFailedError
func (e *ValidationFailedError) Error() string {
	parts := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		parts[i] = string(k)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, ", "))
}

// Is allows proper error type checking with errors.Is()
func (e *ValidationFailedError) Is(target error) bool {
	_, ok := target.(*ValidationFailedError)
	return ok
}

// RowError is the validation result of one row of a bulk import.
type RowError struct {
	Row  int
	Keys []ErrorKey
}

// ImportFailedError is returned when one or more rows of an import are invalid
type ImportFailedError struct {
	Rows []RowError
}

// Error implements the error interface for ImportFailedError
func (e *ImportFailedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "import failed: %d invalid row(s)", len(e.Rows))
	for _, r := range e.Rows {
		fmt.Fprintf(&b, "; row=%d %v", r.Row, r.Keys)
	}
	return b.String()
}

// Is allows proper error type checking with errors.Is()
func (e *ImportFailedError) Is(target error) bool {
	_, ok := target.(*ImportFailedError)
	return ok
}

// InvalidQuantityError is returned when a cart line would get a non-positive quantity
type InvalidQuantityError struct {
	ProductID int64
	Quantity  int
}

// Error implements the error interface for InvalidQuantityError
func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity: product_id=%d, quantity=%d must be positive", e.ProductID, e.Quantity)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidQuantityError) Is(target error) bool {
	_, ok := target.(*InvalidQuantityError)
	return ok
}

// CartNotFoundError is returned for an unknown or closed cart session
type CartNotFoundError struct {
	SessionID string
}

// Error implements the error interface for CartNotFoundError
func (e *CartNotFoundError) Error() string {
	return fmt.Sprintf("cart not found: session=%s", e.SessionID)
}

// Is allows proper error type checking with errors.Is()
func (e *CartNotFoundError) Is(target error) bool {
	_, ok := target.(*CartNotFoundError)
	return ok
}

// Helper functions for creating errors with context

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(productID int64) error {
	return &ProductNotFoundError{ProductID: productID}
}

// NewInvalidProductError creates a new InvalidProductError
func NewInvalidProductError(field, reason string, value interface{}) error {
	return &InvalidProductError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// NewValidationFailedError creates a new ValidationFailedError
func NewValidationFailedError(keys []ErrorKey) error {
	return &ValidationFailedError{Keys: keys}
}

// NewInvalidQuantityError creates a new InvalidQuantityError
func NewInvalidQuantityError(productID int64, quantity int) error {
	return &InvalidQuantityError{ProductID: productID, Quantity: quantity}
}

// NewCartNotFoundError creates a new CartNotFoundError
func NewCartNotFoundError(sessionID string) error {
	return &CartNotFoundError{SessionID: sessionID}
}

// Type assertion helpers for use with errors.As()

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}

// IsInvalidProductError checks if an error is an InvalidProductError
func IsInvalidProductError(err error) bool {
	var ipe *InvalidProductError
	return errors.As(err, &ipe)
}

// IsValidationFailedError checks if an error is a ValidationFailedError
func IsValidationFailedError(err error) bool {
	var vfe *ValidationFailedError
	return errors.As(err, &vfe)
}

// IsImportFailedError checks if an error is an ImportFailedError
func IsImportFailedError(err error) bool {
	var ife *ImportFailedError
	return errors.As(err, &ife)
}

// IsInvalidQuantityError checks if an error is an InvalidQuantityError
func IsInvalidQuantityError(err error) bool {
	var iqe *InvalidQuantityError
	return errors.As(err, &iqe)
}

// IsCartNotFoundError checks if an error is a CartNotFoundError
func IsCartNotFoundError(err error) bool {
	var cnf *CartNotFoundError
	return errors.As(err, &cnf)
}
