package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestProductNotFoundError(t *testing.T) {
	t.Run("Error message formatting", func(t *testing.T) {
		err := NewProductNotFoundError(123)
		expected := "product not found: id=123"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("errors.Is detection", func(t *testing.T) {
		err := NewProductNotFoundError(123)
		target := &ProductNotFoundError{}
		if !errors.Is(err, target) {
			t.Error("errors.Is should detect ProductNotFoundError")
		}
	})

	t.Run("errors.As conversion through wrapping", func(t *testing.T) {
		err := fmt.Errorf("delete: %w", NewProductNotFoundError(456))
		var pnf *ProductNotFoundError
		if !errors.As(err, &pnf) {
			t.Fatal("errors.As should convert to ProductNotFoundError")
		}
		if pnf.ProductID != 456 {
			t.Errorf("expected ProductID 456, got %d", pnf.ProductID)
		}
	})
}

func TestInvalidProductError(t *testing.T) {
	err := NewInvalidProductError("quantity", "must be non-negative", -5)
	expected := "invalid product: field=quantity, reason=must be non-negative, value=-5"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
	if !IsInvalidProductError(err) {
		t.Error("IsInvalidProductError should return true")
	}
}

func TestValidationFailedError(t *testing.T) {
	err := NewValidationFailedError([]ErrorKey{MissingName, PriceNotANumber})
	expected := "validation failed: MissingName, PriceNotANumber"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}

	var vfe *ValidationFailedError
	if !errors.As(err, &vfe) {
		t.Fatal("errors.As should convert to ValidationFailedError")
	}
	if len(vfe.Keys) != 2 || vfe.Keys[0] != MissingName {
		t.Errorf("keys not preserved: %v", vfe.Keys)
	}
}

func TestImportFailedError(t *testing.T) {
	err := &ImportFailedError{Rows: []RowError{{Row: 2, Keys: []ErrorKey{MissingStock}}}}
	expected := "import failed: 1 invalid row(s); row=2 [MissingStock]"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestCartErrors(t *testing.T) {
	t.Run("invalid quantity", func(t *testing.T) {
		err := NewInvalidQuantityError(7, 0)
		expected := "invalid quantity: product_id=7, quantity=0 must be positive"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("cart not found", func(t *testing.T) {
		err := NewCartNotFoundError("abc")
		if err.Error() != "cart not found: session=abc" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})
}

func TestErrorTypeDiscrimination(t *testing.T) {
	all := []struct {
		name string
		err  error
		is   func(error) bool
	}{
		{"not found", NewProductNotFoundError(1), IsProductNotFoundError},
		{"invalid product", NewInvalidProductError("price", "negative", -5), IsInvalidProductError},
		{"validation failed", NewValidationFailedError([]ErrorKey{MissingName}), IsValidationFailedError},
		{"import failed", &ImportFailedError{}, IsImportFailedError},
		{"invalid quantity", NewInvalidQuantityError(1, -1), IsInvalidQuantityError},
		{"cart not found", NewCartNotFoundError("s"), IsCartNotFoundError},
	}

	for i, a := range all {
		for j, b := range all {
			got := b.is(a.err)
			if i == j && !got {
				t.Errorf("%s: helper should identify its own error", a.name)
			}
			if i != j && got {
				t.Errorf("%s should not be detected as %s", a.name, b.name)
			}
		}
	}
}
