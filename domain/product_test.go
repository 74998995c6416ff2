package domain

import (
	"context"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func validInput() ProductInput {
	return ProductInput{ID: 2, Name: "Product 2", Price: "20.99", Stock: "20"}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input func(in *ProductInput)
		want  []ErrorKey
	}{
		{"valid product", func(in *ProductInput) {}, nil},
		{"missing name", func(in *ProductInput) { in.Name = "" }, []ErrorKey{MissingName}},
		{"whitespace name", func(in *ProductInput) { in.Name = "   " }, []ErrorKey{MissingName}},
		{"missing price", func(in *ProductInput) { in.Price = "" }, []ErrorKey{MissingPrice}},
		{"price not a number", func(in *ProductInput) { in.Price = "NotNumber" }, []ErrorKey{PriceNotANumber}},
		{"price three decimals", func(in *ProductInput) { in.Price = "1.999" }, []ErrorKey{PriceNotANumber}},
		{"price trailing dot", func(in *ProductInput) { in.Price = "10." }, []ErrorKey{PriceNotANumber}},
		{"price leading dot negative", func(in *ProductInput) { in.Price = "-.5" }, []ErrorKey{PriceNotANumber}},
		{"price negative", func(in *ProductInput) { in.Price = "-10" }, []ErrorKey{PriceNotGreaterThanZero}},
		{"price negative decimal", func(in *ProductInput) { in.Price = "-0.01" }, []ErrorKey{PriceNotGreaterThanZero}},
		{"price zero", func(in *ProductInput) { in.Price = "0" }, nil},
		{"price negative zero", func(in *ProductInput) { in.Price = "-0.00" }, nil},
		{"missing stock", func(in *ProductInput) { in.Stock = "" }, []ErrorKey{MissingStock}},
		{"stock not integer", func(in *ProductInput) { in.Stock = "1.5" }, []ErrorKey{StockNotAnInteger}},
		{"stock text", func(in *ProductInput) { in.Stock = "ten" }, []ErrorKey{StockNotAnInteger}},
		{"stock negative", func(in *ProductInput) { in.Stock = "-15" }, []ErrorKey{StockNotGreaterThanZero}},
		{"stock overflow", func(in *ProductInput) { in.Stock = "2147483648" }, []ErrorKey{StockNotGreaterThanZero}},
		{"stock max", func(in *ProductInput) { in.Stock = "2147483647" }, nil},
		{"stock zero", func(in *ProductInput) { in.Stock = "0" }, nil},
		{
			"every field fails in order",
			func(in *ProductInput) { in.Name, in.Price, in.Stock = "", "-3", "x" },
			[]ErrorKey{MissingName, PriceNotGreaterThanZero, StockNotAnInteger},
		},
		{
			"all missing",
			func(in *ProductInput) { *in = ProductInput{} },
			[]ErrorKey{MissingName, MissingPrice, MissingStock},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.input(&in)
			got := Validate(in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestValidate_MissingNameIndependentOfOtherFields(t *testing.T) {
	for _, price := range []string{"10.99", "abc", "-1", ""} {
		for _, stock := range []string{"50", "1.5", "-2", ""} {
			got := Validate(ProductInput{Price: price, Stock: stock})
			n := 0
			for _, k := range got {
				if k == MissingName {
					n++
				}
			}
			if n != 1 || got[0] != MissingName {
				t.Fatalf("price=%q stock=%q: expected MissingName first exactly once, got %v", price, stock, got)
			}
		}
	}
}

func TestValidate_IsDeterministic(t *testing.T) {
	in := ProductInput{Name: "", Price: "abc", Stock: "-1"}
	first := Validate(in)
	for i := 0; i < 10; i++ {
		if got := Validate(in); !reflect.DeepEqual(got, first) {
			t.Fatalf("call %d returned %v, first call returned %v", i, got, first)
		}
	}
}

func TestParseInput(t *testing.T) {
	t.Run("converts valid input", func(t *testing.T) {
		in := validInput()
		in.Name = "  Product 2 "
		in.Description = "desc"
		in.Details = "details"

		p, err := ParseInput(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != 0 {
			t.Fatalf("input id must not become the product id, got %d", p.ID)
		}
		if p.Name != "Product 2" {
			t.Fatalf("expected trimmed name, got %q", p.Name)
		}
		if !p.Price.Equal(decimal.RequireFromString("20.99")) {
			t.Fatalf("unexpected price %s", p.Price)
		}
		if p.Quantity != 20 || p.Description != "desc" || p.Details != "details" {
			t.Fatalf("unexpected product %+v", p)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := ParseInput(ProductInput{Name: "x", Price: "1", Stock: "-1"})
		if !IsValidationFailedError(err) {
			t.Fatalf("expected ValidationFailedError, got %v", err)
		}
	})
}

func TestCheckProduct(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		errField string
	}{
		{"valid", Product{Name: "Laptop", Price: decimal.NewFromInt(1000), Quantity: 5}, ""},
		{"empty name", Product{Price: decimal.NewFromInt(10), Quantity: 1}, "name"},
		{"negative price", Product{Name: "Book", Price: decimal.NewFromInt(-1), Quantity: 1}, "price"},
		{"negative quantity", Product{Name: "Pen", Price: decimal.NewFromInt(1), Quantity: -5}, "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckProduct(tt.product)
			if tt.errField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			ipe, ok := err.(*InvalidProductError)
			if !ok {
				t.Fatalf("expected InvalidProductError, got %T", err)
			}
			if ipe.Field != tt.errField {
				t.Fatalf("expected error field %q, got %q", tt.errField, ipe.Field)
			}
		})
	}
}

type upperResolver struct{}

func (upperResolver) Resolve(key ErrorKey) string { return "msg:" + string(key) }

func TestRenderErrors(t *testing.T) {
	got := RenderErrors(upperResolver{}, []ErrorKey{MissingName, MissingStock})
	want := []string{"msg:MissingName", "msg:MissingStock"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// ---- Interface compile-time test ----

// mockProductStore ensures ProductStore interface stays stable
type mockProductStore struct{}

func (m *mockProductStore) Insert(ctx context.Context, p Product) (int64, error) {
	return 0, nil
}

func (m *mockProductStore) Get(ctx context.Context, id int64) (Product, error) {
	return Product{}, nil
}

func (m *mockProductStore) List(ctx context.Context, f ListFilter) ([]Product, error) {
	return nil, nil
}

func (m *mockProductStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return false, nil
}

func (m *mockProductStore) BulkImport(ctx context.Context, p []Product) ([]Product, error) {
	return nil, nil
}

// compile-time assertion
var _ ProductStore = (*mockProductStore)(nil)
