// Package redis provides a Redis-backed cache for cleaning results,
// keyed by a digest of the request. The cache is an optimization only:
// every failure is surfaced as an error the caller treats as a miss.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabclean/pkg/constants"
	"github.com/inferloop/tabclean/pkg/errors"
	"github.com/inferloop/tabclean/pkg/models"
)

// Config holds configuration for the Redis result cache.
type Config struct {
	Addr         string        `json:"addr" yaml:"addr"`
	Password     string        `json:"password" yaml:"password"`
	DB           int           `json:"db" yaml:"db"`
	DialTimeout  time.Duration `json:"dial_timeout" yaml:"dial_timeout"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
	PoolSize     int           `json:"pool_size" yaml:"pool_size"`
	TTL          time.Duration `json:"ttl" yaml:"ttl"`
	KeyPrefix    string        `json:"key_prefix" yaml:"key_prefix"`
}

// ResultCache implements the result cache interface on Redis.
type ResultCache struct {
	config *Config
	client *redis.Client
	logger *logrus.Logger
	mu     sync.RWMutex
	closed bool
}

// NewResultCache creates a new Redis result cache.
func NewResultCache(config *Config, logger *logrus.Logger) (*ResultCache, error) {
	if config == nil {
		return nil, errors.NewStorageError("INVALID_CONFIG", "Redis config cannot be nil")
	}
	if config.Addr == "" {
		return nil, errors.NewStorageError("INVALID_CONFIG", "Redis address is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	if config.TTL == 0 {
		config.TTL = constants.DefaultCacheTTL
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = constants.DefaultCacheKeyPrefix
	}

	return &ResultCache{
		config: config,
		logger: logger,
	}, nil
}

// Connect establishes connection to Redis.
func (c *ResultCache) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         c.config.Addr,
		Password:     c.config.Password,
		DB:           c.config.DB,
		DialTimeout:  c.config.DialTimeout,
		ReadTimeout:  c.config.ReadTimeout,
		WriteTimeout: c.config.WriteTimeout,
		PoolSize:     c.config.PoolSize,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return errors.WrapError(err, errors.ErrorTypeStorage, errors.CodeConnectionFailed, "Failed to connect to Redis")
	}

	c.client = client
	c.logger.WithFields(logrus.Fields{
		"addr": c.config.Addr,
		"db":   c.config.DB,
	}).Info("Connected to Redis")

	return nil
}

// Close closes the Redis connection.
func (c *ResultCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.client == nil {
		c.closed = true
		return nil
	}
	c.closed = true
	return c.client.Close()
}

// Get returns the cached result for the key, or (nil, nil) on miss.
func (c *ResultCache) Get(ctx context.Context, key string) (*models.CleaningResult, error) {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()

	if client == nil {
		return nil, errors.NewStorageError("NOT_CONNECTED", "Redis cache is not connected")
	}

	data, err := client.Get(ctx, c.cacheKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeStorage, errors.CodeReadFailed, "Redis read failed")
	}

	var result models.CleaningResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeStorage, errors.CodeReadFailed, "Failed to decode cached result")
	}
	return &result, nil
}

// Put stores the result under the key with the configured TTL.
func (c *ResultCache) Put(ctx context.Context, key string, result *models.CleaningResult) error {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()

	if client == nil {
		return errors.NewStorageError("NOT_CONNECTED", "Redis cache is not connected")
	}

	data, err := json.Marshal(result)
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeStorage, errors.CodeWriteFailed, "Failed to encode result")
	}

	if err := client.Set(ctx, c.cacheKey(key), data, c.config.TTL).Err(); err != nil {
		return errors.WrapError(err, errors.ErrorTypeStorage, errors.CodeWriteFailed, "Redis write failed")
	}
	return nil
}

func (c *ResultCache) cacheKey(key string) string {
	return fmt.Sprintf("%s:result:%s", c.config.KeyPrefix, key)
}
