// Package config handles YAML configuration loading with environment
// variable expansion and overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/arpan-rai/Redis-Caching-API/pkg/cache"
	"github.com/arpan-rai/Redis-Caching-API/pkg/catalog"
	"github.com/arpan-rai/Redis-Caching-API/pkg/logging"
)

// Store backends.
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the top-level service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Redis   RedisConfig   `yaml:"redis"`
	Cache   CacheConfig   `yaml:"cache"`
	Catalog CatalogConfig `yaml:"catalog"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RedisConfig holds the connection to the cache store.
type RedisConfig struct {
	ConnectionString string `yaml:"connection_string"` // "host:port,password=..." or redis:// URL
	InstanceName     string `yaml:"instance_name"`     // key prefix
}

// CacheConfig holds gateway settings.
type CacheConfig struct {
	Backend       string        `yaml:"backend"` // "redis" or "memory"
	DefaultTTL    time.Duration `yaml:"default_ttl"`
	MemoryMaxSize int           `yaml:"memory_max_size"`
	WriteTimeout  time.Duration `yaml:"write_timeout"` // bound on cache-aside writes
}

// CatalogConfig holds the simulated backing store and cache-aside TTLs.
type CatalogConfig struct {
	ProductDelay time.Duration `yaml:"product_delay"`
	ListDelay    time.Duration `yaml:"list_delay"`
	ProductTTL   time.Duration `yaml:"product_ttl"`
	ListTTL      time.Duration `yaml:"list_ttl"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	demo := catalog.DefaultStaticConfig()
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Redis: RedisConfig{
			ConnectionString: "localhost:6379",
			InstanceName:     cache.DefaultInstanceName,
		},
		Cache: CacheConfig{
			Backend:       BackendRedis,
			DefaultTTL:    cache.DefaultTTL,
			MemoryMaxSize: 10_000,
			WriteTimeout:  5 * time.Second,
		},
		Catalog: CatalogConfig{
			ProductDelay: demo.ProductDelay,
			ListDelay:    demo.ListDelay,
			ProductTTL:   10 * time.Minute,
			ListTTL:      5 * time.Minute,
		},
		Log: LogConfig{
			Level: string(logging.LevelInfo),
		},
	}
}

var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnv replaces ${VAR} patterns with environment variable values.
func expandEnv(data []byte) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := string(match[2 : len(match)-1])
		if val, ok := os.LookupEnv(varName); ok {
			return []byte(val)
		}
		return match
	})
}

// Load reads a YAML config file over the defaults, expanding ${VAR}
// references. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	data = expandEnv(data)

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from well-known environment variables:
// REDIS_URL, REDIS_INSTANCE_NAME, PORT, CACHE_BACKEND and LOG_LEVEL.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup("REDIS_URL"); ok && v != "" {
		c.Redis.ConnectionString = v
	}
	if v, ok := lookup("REDIS_INSTANCE_NAME"); ok {
		c.Redis.InstanceName = v
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	if v, ok := lookup("CACHE_BACKEND"); ok && v != "" {
		c.Cache.Backend = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}

	switch c.Cache.Backend {
	case BackendRedis:
		if _, err := cache.ParseConnectionString(c.Redis.ConnectionString); err != nil {
			errs = append(errs, fmt.Errorf("redis.connection_string: %w", err))
		}
	case BackendMemory:
		if c.Cache.MemoryMaxSize <= 0 {
			errs = append(errs, errors.New("cache.memory_max_size must be positive"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.backend: unknown backend %q", c.Cache.Backend))
	}

	if c.Cache.DefaultTTL <= 0 {
		errs = append(errs, errors.New("cache.default_ttl must be positive"))
	}
	if c.Cache.WriteTimeout <= 0 {
		errs = append(errs, errors.New("cache.write_timeout must be positive"))
	}
	if c.Catalog.ProductTTL <= 0 {
		errs = append(errs, errors.New("catalog.product_ttl must be positive"))
	}
	if c.Catalog.ListTTL <= 0 {
		errs = append(errs, errors.New("catalog.list_ttl must be positive"))
	}
	if c.Catalog.ProductDelay < 0 || c.Catalog.ListDelay < 0 {
		errs = append(errs, errors.New("catalog delays must not be negative"))
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}
