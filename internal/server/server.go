// Package server implements the HTTP transport for the cache API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/arpan-rai/Redis-Caching-API/pkg/catalog"
	"github.com/arpan-rai/Redis-Caching-API/pkg/metrics"
)

// CacheGateway is the best-effort cache used by the handlers.
// *cache.Gateway implements it.
type CacheGateway interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	Remove(ctx context.Context, key string)
	Exists(ctx context.Context, key string) bool
}

// ReadyChecker reports whether the system is ready to serve traffic.
type ReadyChecker func(ctx context.Context) error

// Deps holds all dependencies for the HTTP server.
type Deps struct {
	Cache      CacheGateway
	Catalog    catalog.Source
	ReadyCheck ReadyChecker   // nil = always ready
	Logger     zerolog.Logger // base logger for request logs

	ProductTTL        time.Duration    // cache-aside TTL for one product (default 10m)
	ListTTL           time.Duration    // cache-aside TTL for the listing (default 5m)
	CacheWriteTimeout time.Duration    // bound on the write after a miss (default 5s)
	Now               func() time.Time // nil = time.Now
}

const (
	defaultProductTTL        = 10 * time.Minute
	defaultListTTL           = 5 * time.Minute
	defaultCacheWriteTimeout = 5 * time.Second
)

// New creates an http.Handler with all routes and middleware wired.
func New(deps Deps) http.Handler {
	if deps.Cache == nil {
		panic("server: cache gateway cannot be nil")
	}
	if deps.Catalog == nil {
		panic("server: catalog source cannot be nil")
	}
	if deps.ProductTTL <= 0 {
		deps.ProductTTL = defaultProductTTL
	}
	if deps.ListTTL <= 0 {
		deps.ListTTL = defaultListTTL
	}
	if deps.CacheWriteTimeout <= 0 {
		deps.CacheWriteTimeout = defaultCacheWriteTimeout
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	s := &server{deps: deps}

	r := chi.NewRouter()

	// requestID runs first so the panic and access logs carry the ID.
	r.Use(s.requestID)
	r.Use(s.logging)
	r.Use(s.recovery)

	// Operational endpoints
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Generic cache API. Static segments win over {key} in chi.
	r.Get("/api/cache/health", s.handleCacheHealth)
	r.Get("/api/cache/exists/{key}", s.handleCacheExists)
	r.Get("/api/cache/{key}", s.handleCacheGet)
	r.Delete("/api/cache/{key}", s.handleCacheDelete)
	r.Post("/api/cache", s.handleCacheSet)

	// Cache-aside product API
	r.Get("/api/products", s.handleListProducts)
	r.Get("/api/products/{id}", s.handleGetProduct)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, messageResponse{Message: "Method not allowed"})
	})

	return r
}

type server struct {
	deps Deps
}
