package redis

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewResultCacheValidation(t *testing.T) {
	_, err := NewResultCache(nil, nil)
	assert.Error(t, err)

	_, err = NewResultCache(&Config{}, nil)
	assert.Error(t, err)
}

func TestNewResultCacheDefaults(t *testing.T) {
	cache, err := NewResultCache(&Config{Addr: "localhost:6379"}, logrus.New())
	assert.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cache.config.TTL)
	assert.Equal(t, "tabclean", cache.config.KeyPrefix)
}

func TestCacheKey(t *testing.T) {
	cache, err := NewResultCache(&Config{Addr: "localhost:6379", KeyPrefix: "p"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "p:result:abc", cache.cacheKey("abc"))
}

func TestOperationsRequireConnection(t *testing.T) {
	cache, err := NewResultCache(&Config{Addr: "localhost:6379"}, nil)
	assert.NoError(t, err)

	_, err = cache.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, cache.Put(context.Background(), "k", nil))
	assert.NoError(t, cache.Close())
}
