package testutil

import (
	"context"
	"sync"

	"github.com/arpan-rai/Redis-Caching-API/pkg/catalog"
)

// CountingSource wraps a catalog.Source and records how often the backing
// store was queried.
type CountingSource struct {
	next catalog.Source

	mu           sync.Mutex
	productCalls map[int]int
	listCalls    int
	err          error
}

// NewCountingSource wraps next. A nil next serves the default catalog
// without delay.
func NewCountingSource(next catalog.Source) *CountingSource {
	if next == nil {
		next = catalog.NewStatic(catalog.StaticConfig{})
	}
	return &CountingSource{
		next:         next,
		productCalls: make(map[int]int),
	}
}

// Fail makes every subsequent query return err.
func (c *CountingSource) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Product implements catalog.Source.
func (c *CountingSource) Product(ctx context.Context, id int) (catalog.Product, error) {
	c.mu.Lock()
	c.productCalls[id]++
	err := c.err
	c.mu.Unlock()

	if err != nil {
		return catalog.Product{}, err
	}
	return c.next.Product(ctx, id)
}

// Products implements catalog.Source.
func (c *CountingSource) Products(ctx context.Context) ([]catalog.Product, error) {
	c.mu.Lock()
	c.listCalls++
	err := c.err
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return c.next.Products(ctx)
}

// ProductCalls returns how many times product id was fetched.
func (c *CountingSource) ProductCalls(id int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.productCalls[id]
}

// ListCalls returns how many times the full listing was fetched.
func (c *CountingSource) ListCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listCalls
}
