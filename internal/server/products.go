package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/arpan-rai/Redis-Caching-API/pkg/catalog"
)

// Response sources for the cache-aside endpoints.
const (
	sourceCache    = "cache"
	sourceDatabase = "database"
)

type productResponse struct {
	Source  string          `json:"source"`
	Product catalog.Product `json:"product"`
}

type productsResponse struct {
	Source   string            `json:"source"`
	Products []catalog.Product `json:"products"`
	Count    int               `json:"count"`
}

// handleGetProduct serves GET /api/products/{id} with cache-aside reads.
// Concurrent misses for the same id each query the backing store.
func (s *server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	id, err := strconv.Atoi(pathParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Product id must be an integer"})
		return
	}

	key := catalog.ProductKey(id)

	var cached catalog.Product
	if s.deps.Cache.Get(ctx, key, &cached) {
		productLookups.WithLabelValues(sourceCache).Inc()
		logger.Info().Int("product_id", id).Str("source", sourceCache).Msg("Product retrieved from cache")
		writeJSON(w, http.StatusOK, productResponse{Source: sourceCache, Product: cached})
		return
	}

	product, err := s.deps.Catalog.Product(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse{
				Message: fmt.Sprintf("Product %d not found", id),
			})
			return
		}
		logger.Warn().Err(err).Int("product_id", id).Msg("Backing store query failed")
		writeJSON(w, http.StatusServiceUnavailable, messageResponse{Message: "Backing store unavailable"})
		return
	}

	s.populate(ctx, key, product, s.deps.ProductTTL)

	productLookups.WithLabelValues(sourceDatabase).Inc()
	logger.Info().Int("product_id", id).Str("source", sourceDatabase).Msg("Product retrieved from database and cached")
	writeJSON(w, http.StatusOK, productResponse{Source: sourceDatabase, Product: product})
}

// handleListProducts serves GET /api/products with cache-aside reads.
func (s *server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var cached []catalog.Product
	if s.deps.Cache.Get(ctx, catalog.AllProductsKey, &cached) {
		productLookups.WithLabelValues(sourceCache).Inc()
		logger.Info().Str("source", sourceCache).Msg("All products retrieved from cache")
		writeJSON(w, http.StatusOK, productsResponse{
			Source:   sourceCache,
			Products: cached,
			Count:    len(cached),
		})
		return
	}

	products, err := s.deps.Catalog.Products(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Backing store query failed")
		writeJSON(w, http.StatusServiceUnavailable, messageResponse{Message: "Backing store unavailable"})
		return
	}

	s.populate(ctx, catalog.AllProductsKey, products, s.deps.ListTTL)

	productLookups.WithLabelValues(sourceDatabase).Inc()
	logger.Info().Str("source", sourceDatabase).Msg("All products retrieved from database and cached")
	writeJSON(w, http.StatusOK, productsResponse{
		Source:   sourceDatabase,
		Products: products,
		Count:    len(products),
	})
}

// populate writes a freshly fetched value back to the cache before the
// response is sent. The write outlives a client disconnect but is bounded
// by CacheWriteTimeout.
func (s *server) populate(ctx context.Context, key string, value any, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.deps.CacheWriteTimeout)
	defer cancel()

	s.deps.Cache.Set(ctx, key, value, ttl)
}
