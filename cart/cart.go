// Package cart tracks the products a shopper intends to buy.
package cart

import (
	"math"

	"storefront/domain"

	"github.com/shopspring/decimal"
)

// Line is a quantity of one product in a cart.
type Line struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Subtotal is the line's price times its quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line per product id, in insertion order.
// A Cart is not safe for concurrent use; Registry serialises access per session.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem merges quantity into the line for p, or appends a new line.
// A non-positive quantity, or one that would overflow the line, is rejected
// and leaves the cart unchanged.
func (c *Cart) AddItem(p domain.Product, quantity int) error {
	if quantity <= 0 {
		return domain.NewInvalidQuantityError(p.ID, quantity)
	}
	if i := c.index(p.ID); i >= 0 {
		if c.lines[i].Quantity > math.MaxInt-quantity {
			return domain.NewInvalidQuantityError(p.ID, quantity)
		}
		c.lines[i].Quantity += quantity
		return nil
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: quantity})
	return nil
}

// RemoveLine removes the whole line for p, if any.
func (c *Cart) RemoveLine(p domain.Product) {
	c.RemoveProduct(p.ID)
}

// RemoveProduct removes the line for the product id and reports whether one existed.
func (c *Cart) RemoveProduct(id int64) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Find returns the line for the product id.
func (c *Cart) Find(id int64) (Line, bool) {
	if i := c.index(id); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

// Len is the number of lines.
func (c *Cart) Len() int { return len(c.lines) }

// Clear empties the cart.
func (c *Cart) Clear() { c.lines = nil }

// TotalQuantity is the number of units across all lines.
func (c *Cart) TotalQuantity() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total is the sum of all line subtotals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Average is the mean unit price across all units, zero for an empty cart.
func (c *Cart) Average() decimal.Decimal {
	n := c.TotalQuantity()
	if n == 0 {
		return decimal.Zero
	}
	return c.Total().Div(decimal.NewFromInt(int64(n)))
}

func (c *Cart) index(id int64) int {
	for i, l := range c.lines {
		if l.Product.ID == id {
			return i
		}
	}
	return -1
}
