package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrorKey identifies a validation failure independently of display language.
type ErrorKey string

const (
	MissingName             ErrorKey = "MissingName"
	MissingPrice            ErrorKey = "MissingPrice"
	PriceNotANumber         ErrorKey = "PriceNotANumber"
	PriceNotGreaterThanZero ErrorKey = "PriceNotGreaterThanZero"
	MissingStock            ErrorKey = "MissingStock"
	StockNotAnInteger       ErrorKey = "StockNotAnInteger"
	StockNotGreaterThanZero ErrorKey = "StockNotGreaterThanZero"
)

// AllErrorKeys lists every key Validate can produce, in evaluation order.
var AllErrorKeys = []ErrorKey{
	MissingName,
	MissingPrice, PriceNotANumber, PriceNotGreaterThanZero,
	MissingStock, StockNotAnInteger, StockNotGreaterThanZero,
}

var (
	pricePattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]{1,2})?$`)
	stockPattern = regexp.MustCompile(`^-?[0-9]+$`)
)

// maxStock is the upper bound of the stock range check.
const maxStock = math.MaxInt32

// Validate checks in and returns the failed checks in order: name, price,
// stock. For each field a failed presence check skips the format check and a
// failed format check skips the range check. An empty result means valid.
func Validate(in ProductInput) []ErrorKey {
	var keys []ErrorKey

	if blank(in.Name) {
		keys = append(keys, MissingName)
	}

	if _, key, ok := parsePrice(in.Price); !ok {
		keys = append(keys, key)
	}

	if _, key, ok := parseStock(in.Stock); !ok {
		keys = append(keys, key)
	}

	return keys
}

// ParseInput converts a valid input into a Product. The returned product has
// no id; the store assigns one on insert.
func ParseInput(in ProductInput) (Product, error) {
	if keys := Validate(in); len(keys) > 0 {
		return Product{}, NewValidationFailedError(keys)
	}
	price, _, _ := parsePrice(in.Price)
	stock, _, _ := parseStock(in.Stock)
	return Product{
		Name:        strings.TrimSpace(in.Name),
		Price:       price,
		Quantity:    stock,
		Description: in.Description,
		Details:     in.Details,
	}, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func parsePrice(raw string) (decimal.Decimal, ErrorKey, bool) {
	if blank(raw) {
		return decimal.Zero, MissingPrice, false
	}
	if !pricePattern.MatchString(raw) {
		return decimal.Zero, PriceNotANumber, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, PriceNotANumber, false
	}
	if d.IsNegative() {
		return decimal.Zero, PriceNotGreaterThanZero, false
	}
	return d, "", true
}

func parseStock(raw string) (int, ErrorKey, bool) {
	if blank(raw) {
		return 0, MissingStock, false
	}
	if !stockPattern.MatchString(raw) {
		return 0, StockNotAnInteger, false
	}
	// the pattern guarantees digits, so a parse error can only be overflow
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 || n > maxStock {
		return 0, StockNotGreaterThanZero, false
	}
	return int(n), "", true
}
