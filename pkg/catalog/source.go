package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// fetchDuration tracks time spent in the backing store.
var fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "cacheapi_catalog_fetch_duration_seconds",
	Help:    "Backing store fetch duration in seconds by operation",
	Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5},
}, []string{"operation"})

// Source is the source of truth behind the product cache.
type Source interface {
	// Product returns the product with id, or ErrProductNotFound.
	Product(ctx context.Context, id int) (Product, error)
	// Products returns the full catalog.
	Products(ctx context.Context) ([]Product, error)
}

// StaticConfig configures a Static source.
type StaticConfig struct {
	// Products is the catalog content (default: DefaultProducts)
	Products []Product

	// ProductDelay simulates the latency of a single-product query
	ProductDelay time.Duration

	// ListDelay simulates the latency of a full listing query
	ListDelay time.Duration
}

// DefaultStaticConfig returns the simulated latencies of the demo backing
// store: 1 s per product, 2 s for the listing.
func DefaultStaticConfig() StaticConfig {
	return StaticConfig{
		Products:     DefaultProducts(),
		ProductDelay: 1 * time.Second,
		ListDelay:    2 * time.Second,
	}
}

// Static serves a fixed, read-only catalog with simulated latency.
// It is safe for concurrent use.
type Static struct {
	products     []Product
	byID         map[int]Product
	productDelay time.Duration
	listDelay    time.Duration
}

// NewStatic creates a static source. The catalog is copied and never
// modified afterwards.
func NewStatic(cfg StaticConfig) *Static {
	if cfg.Products == nil {
		cfg.Products = DefaultProducts()
	}

	s := &Static{
		products:     make([]Product, len(cfg.Products)),
		byID:         make(map[int]Product, len(cfg.Products)),
		productDelay: cfg.ProductDelay,
		listDelay:    cfg.ListDelay,
	}
	copy(s.products, cfg.Products)
	for _, p := range s.products {
		s.byID[p.ID] = p
	}
	return s
}

// Product looks up a single product after the simulated query delay.
func (s *Static) Product(ctx context.Context, id int) (Product, error) {
	start := time.Now()
	defer func() {
		fetchDuration.WithLabelValues("product").Observe(time.Since(start).Seconds())
	}()

	if err := sleep(ctx, s.productDelay); err != nil {
		return Product{}, err
	}

	p, ok := s.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	return p, nil
}

// Products returns a copy of the catalog after the simulated query delay.
func (s *Static) Products(ctx context.Context) ([]Product, error) {
	start := time.Now()
	defer func() {
		fetchDuration.WithLabelValues("list").Observe(time.Since(start).Seconds())
	}()

	if err := sleep(ctx, s.listDelay); err != nil {
		return nil, err
	}

	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("catalog query: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}
