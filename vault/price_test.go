package vault

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	setHits int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	value, ok := c.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setHits++
	if c.setErr != nil {
		return c.setErr
	}
	c.values[key] = value.(string)
	c.ttls[key] = expiration
	return nil
}

type countingSource struct {
	price decimal.Decimal
	err   error
	calls int
}

func (s *countingSource) Price(ctx context.Context) (decimal.Decimal, error) {
	s.calls++
	return s.price, s.err
}

func TestFixedPriceSource(t *testing.T) {
	price, err := NewFixedPriceSource(d("250000")).Price(context.Background())
	require.NoError(t, err)
	assertDecimal(t, "250000", price)

	_, err = NewFixedPriceSource(decimal.Zero).Price(context.Background())
	assert.ErrorIs(t, err, ErrPriceUnavailable)
}

func TestHTTPPriceSource(t *testing.T) {
	t.Run("Valid Response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"price":"251234.50"}`))
		}))
		defer server.Close()

		price, err := NewHTTPPriceSource(server.URL, time.Second).Price(context.Background())

		require.NoError(t, err)
		assertDecimal(t, "251234.5", price)
	})

	t.Run("Numeric Price", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"price":12.75}`))
		}))
		defer server.Close()

		price, err := NewHTTPPriceSource(server.URL, time.Second).Price(context.Background())

		require.NoError(t, err)
		assertDecimal(t, "12.75", price)
	})

	t.Run("Server Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewHTTPPriceSource(server.URL, time.Second).Price(context.Background())

		assert.ErrorIs(t, err, ErrPriceUnavailable)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		_, err := NewHTTPPriceSource(server.URL, time.Second).Price(context.Background())

		assert.ErrorIs(t, err, ErrPriceUnavailable)
	})

	t.Run("Zero Price", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"price":"0"}`))
		}))
		defer server.Close()

		_, err := NewHTTPPriceSource(server.URL, time.Second).Price(context.Background())

		assert.ErrorIs(t, err, ErrPriceUnavailable)
	})
}

func TestCachedPriceSource(t *testing.T) {
	ctx := context.Background()

	t.Run("Miss Reads Feed And Caches", func(t *testing.T) {
		cache := newMemoryCache()
		feed := &countingSource{price: d("250000")}
		x := NewCachedPriceSource(cache, feed, nil, time.Minute)

		price, err := x.Price(ctx)
		require.NoError(t, err)
		assertDecimal(t, "250000", price)

		price, err = x.Price(ctx)
		require.NoError(t, err)
		assertDecimal(t, "250000", price)

		assert.Equal(t, 1, feed.calls)
		assert.Equal(t, "250000", cache.values[priceCacheKey])
		assert.Equal(t, time.Minute, cache.ttls[priceCacheKey])
	})

	t.Run("Invalid Cached Value Is Ignored", func(t *testing.T) {
		cache := newMemoryCache()
		cache.values[priceCacheKey] = "garbage"
		feed := &countingSource{price: d("10")}

		price, err := NewCachedPriceSource(cache, feed, nil, time.Minute).Price(ctx)

		require.NoError(t, err)
		assertDecimal(t, "10", price)
		assert.Equal(t, 1, feed.calls)
	})

	t.Run("Cache Down Still Serves Feed", func(t *testing.T) {
		cache := newMemoryCache()
		cache.getErr = errors.New("connection refused")
		cache.setErr = errors.New("connection refused")
		feed := &countingSource{price: d("10")}

		price, err := NewCachedPriceSource(cache, feed, nil, time.Minute).Price(ctx)

		require.NoError(t, err)
		assertDecimal(t, "10", price)
		assert.Equal(t, 1, cache.setHits)
	})

	t.Run("Feed Down Falls Back", func(t *testing.T) {
		cache := newMemoryCache()
		feed := &countingSource{err: ErrPriceUnavailable}

		price, err := NewCachedPriceSource(cache, feed, NewFixedPriceSource(d("250000")), time.Minute).Price(ctx)

		require.NoError(t, err)
		assertDecimal(t, "250000", price)
		assert.Empty(t, cache.values)
	})

	t.Run("Nothing Configured", func(t *testing.T) {
		_, err := NewCachedPriceSource(nil, nil, nil, time.Minute).Price(ctx)

		assert.ErrorIs(t, err, ErrPriceUnavailable)
	})

	t.Run("Fixed Only", func(t *testing.T) {
		price, err := NewCachedPriceSource(nil, nil, NewFixedPriceSource(d("3")), time.Minute).Price(ctx)

		require.NoError(t, err)
		assertDecimal(t, "3", price)
	})
}
