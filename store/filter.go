package store

import (
	"sort"

	"storefront/domain"
)

// applyFilter filters and sorts products that are already in id order.
func applyFilter(in []domain.Product, filter domain.ListFilter) []domain.Product {
	out := make([]domain.Product, 0, len(in))
	for _, p := range in {
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	desc := filter.Order == "desc"
	switch filter.SortBy {
	case "name":
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].Name > out[j].Name
			}
			return out[i].Name < out[j].Name
		})
	case "price":
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].Price.GreaterThan(out[j].Price)
			}
			return out[i].Price.LessThan(out[j].Price)
		})
	case "quantity":
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].Quantity > out[j].Quantity
			}
			return out[i].Quantity < out[j].Quantity
		})
	}
	return out
}

func sortByID(products []domain.Product) {
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
}
