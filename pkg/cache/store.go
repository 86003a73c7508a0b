package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by a Store when the key does not exist.
var ErrNotFound = errors.New("key not found")

// Store is the string-oriented key-value backend behind a Gateway.
// Expiry is enforced by the store.
type Store interface {
	// Get returns the raw value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
	// Close releases the store's resources.
	Close() error
}

// DefaultInstanceName is the key prefix applied by RedisStore when none is given.
const DefaultInstanceName = "RedisApi_"

// RedisStore implements Store on top of a go-redis client.
type RedisStore struct {
	redis  *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed store. Every key is prefixed with
// prefix so several applications can share one Redis database.
func NewRedisStore(redisClient *redis.Client, prefix string) *RedisStore {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &RedisStore{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

// Get retrieves the raw value for key.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.redis.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

// Set stores value with an absolute expiration of ttl from now.
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Ping checks connectivity to Redis.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

// Close closes the underlying client and its connection pool.
func (s *RedisStore) Close() error {
	return s.redis.Close()
}

const defaultRedisPort = "6379"

// ParseConnectionString builds redis.Options from either a redis:// URL or a
// comma-separated connection string of the form
//
//	host[:port][,password=secret][,user=name][,defaultDatabase=2][,ssl=true][,connectTimeout=5000][,syncTimeout=1000]
//
// Timeouts are in milliseconds.
func ParseConnectionString(s string) (*redis.Options, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty redis connection string")
	}

	if strings.HasPrefix(s, "redis://") || strings.HasPrefix(s, "rediss://") {
		opts, err := redis.ParseURL(s)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opts, nil
	}

	opts := &redis.Options{}
	useTLS := false

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, value, ok := strings.Cut(part, "=")
		if !ok {
			if opts.Addr != "" {
				return nil, fmt.Errorf("multiple endpoints are not supported: %q", part)
			}
			opts.Addr = part
			continue
		}

		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "password":
			opts.Password = value
		case "user":
			opts.Username = value
		case "defaultdatabase":
			db, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("parse defaultDatabase: %w", err)
			}
			opts.DB = db
		case "ssl":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("parse ssl: %w", err)
			}
			useTLS = enabled
		case "connecttimeout":
			d, err := parseMillis(value)
			if err != nil {
				return nil, fmt.Errorf("parse connectTimeout: %w", err)
			}
			opts.DialTimeout = d
		case "synctimeout":
			d, err := parseMillis(value)
			if err != nil {
				return nil, fmt.Errorf("parse syncTimeout: %w", err)
			}
			opts.ReadTimeout = d
			opts.WriteTimeout = d
		case "abortconnect", "allowadmin", "name":
			// accepted for compatibility, no go-redis equivalent
		default:
			return nil, fmt.Errorf("unsupported connection option %q", name)
		}
	}

	if opts.Addr == "" {
		return nil, errors.New("redis connection string has no endpoint")
	}
	if _, _, err := net.SplitHostPort(opts.Addr); err != nil {
		opts.Addr = net.JoinHostPort(opts.Addr, defaultRedisPort)
	}

	if useTLS {
		host, _, _ := net.SplitHostPort(opts.Addr)
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: host,
		}
	}

	return opts, nil
}

func parseMillis(v string) (time.Duration, error) {
	ms, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if ms < 0 {
		return 0, fmt.Errorf("negative timeout %d", ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
