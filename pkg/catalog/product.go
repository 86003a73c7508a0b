// Package catalog is the simulated product backing store served through
// the cache-aside endpoints.
package catalog

import (
	"errors"
	"strconv"

	"github.com/arpan-rai/Redis-Caching-API/pkg/cache"
)

// ErrProductNotFound is returned when no product has the requested id.
var ErrProductNotFound = errors.New("product not found")

// Product is a catalog record.
type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// AllProductsKey is the cache key for the full listing.
const AllProductsKey = "all_products"

// ProductKey returns the cache key for a single product.
func ProductKey(id int) string {
	return cache.Key("product", strconv.Itoa(id))
}

// products is the fixed catalog. It is never mutated.
var products = []Product{
	{ID: 1, Name: "Laptop", Price: 999.99, Category: "Electronics"},
	{ID: 2, Name: "Mouse", Price: 29.99, Category: "Electronics"},
	{ID: 3, Name: "Keyboard", Price: 79.99, Category: "Electronics"},
	{ID: 4, Name: "Monitor", Price: 299.99, Category: "Electronics"},
	{ID: 5, Name: "Desk Chair", Price: 199.99, Category: "Furniture"},
}

// DefaultProducts returns a copy of the built-in catalog.
func DefaultProducts() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
