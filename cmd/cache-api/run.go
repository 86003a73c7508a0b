package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/arpan-rai/Redis-Caching-API/internal/config"
	"github.com/arpan-rai/Redis-Caching-API/internal/server"
	"github.com/arpan-rai/Redis-Caching-API/pkg/cache"
	"github.com/arpan-rai/Redis-Caching-API/pkg/catalog"
	"github.com/arpan-rai/Redis-Caching-API/pkg/logging"
)

const connectTimeout = 5 * time.Second

func run(ctx context.Context, cfg *config.Config) error {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.LogLevel(cfg.Log.Level)
	logCfg.Pretty = cfg.Log.Pretty
	logger := logging.Setup(logCfg)

	logger.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr).
		Str("backend", cfg.Cache.Backend).
		Msg("Starting cache API")

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      buildHandler(cfg, store),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("Cache API ready")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().Msg("Cache API stopped")
	return nil
}

// buildStore opens the configured cache store. A Redis store must answer
// a ping before the server starts.
func buildStore(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case config.BackendMemory:
		store, err := cache.NewMemoryStore(cfg.Cache.MemoryMaxSize)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.BackendRedis:
		opts, err := cache.ParseConnectionString(cfg.Redis.ConnectionString)
		if err != nil {
			return nil, err
		}
		store := cache.NewRedisStore(redis.NewClient(opts), cfg.Redis.InstanceName)

		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			store.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// buildHandler wires the gateway, the catalog and the router. Loggers are
// derived from the global logger, so logging.Setup must run first.
func buildHandler(cfg *config.Config, store cache.Store) http.Handler {
	gateway := cache.NewGateway(store, logging.NewLogger("cache"), cfg.Cache.DefaultTTL)

	catalogCfg := catalog.DefaultStaticConfig()
	catalogCfg.ProductDelay = cfg.Catalog.ProductDelay
	catalogCfg.ListDelay = cfg.Catalog.ListDelay

	httpLogger := logging.NewLogger("http")
	httpLogger.Info().
		Dur("default_ttl", gateway.DefaultTTL()).
		Dur("product_ttl", cfg.Catalog.ProductTTL).
		Dur("list_ttl", cfg.Catalog.ListTTL).
		Int("products", len(catalogCfg.Products)).
		Msg("Cache API routes configured")

	return server.New(server.Deps{
		Cache:             gateway,
		Catalog:           catalog.NewStatic(catalogCfg),
		ReadyCheck:        gateway.Ping,
		Logger:            httpLogger,
		ProductTTL:        cfg.Catalog.ProductTTL,
		ListTTL:           cfg.Catalog.ListTTL,
		CacheWriteTimeout: cfg.Cache.WriteTimeout,
	})
}
