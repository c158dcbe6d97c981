package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/app"
)

var ErrPriceUnavailable = errors.New("collateral price unavailable")

const priceCacheKey = "oruva:vault:collateral-price"

// PriceSource returns the fiat price of one unit of collateral.
type PriceSource interface {
	Price(ctx context.Context) (decimal.Decimal, error)
}

type FixedPriceSource struct {
	price decimal.Decimal
}

func NewFixedPriceSource(price decimal.Decimal) *FixedPriceSource {
	return &FixedPriceSource{price: price}
}

func (x *FixedPriceSource) Price(ctx context.Context) (decimal.Decimal, error) {
	if !x.price.IsPositive() {
		return decimal.Zero, ErrPriceUnavailable
	}
	return x.price, nil
}

// HTTPPriceSource reads {"price": "..."} from a feed url.
type HTTPPriceSource struct {
	url  string
	http *http.Client
}

func NewHTTPPriceSource(url string, timeout time.Duration) *HTTPPriceSource {
	return &HTTPPriceSource{url: url, http: &http.Client{Timeout: timeout}}
}

type priceResponse struct {
	Price decimal.Decimal `json:"price"`
}

func (x *HTTPPriceSource) Price(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, x.url, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := x.http.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: feed returned %d", ErrPriceUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	var body priceResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	if !body.Price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non positive price", ErrPriceUnavailable)
	}
	return body.Price, nil
}

// Cache is the subset of redis used for the price. Get returns redis.Nil on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr string, password string, db int) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

// CachedPriceSource serves the feed price through the cache and falls back when the feed is down.
type CachedPriceSource struct {
	cache    Cache
	feed     PriceSource
	fallback PriceSource
	ttl      time.Duration
}

func NewCachedPriceSource(cache Cache, feed PriceSource, fallback PriceSource, ttl time.Duration) *CachedPriceSource {
	return &CachedPriceSource{cache: cache, feed: feed, fallback: fallback, ttl: ttl}
}

func (x *CachedPriceSource) Price(ctx context.Context) (decimal.Decimal, error) {
	if x.cache != nil {
		cached, err := x.cache.Get(ctx, priceCacheKey)
		if err == nil {
			if price, parseErr := decimal.NewFromString(cached); parseErr == nil && price.IsPositive() {
				return price, nil
			}
			log.Warn("[VAULT] Ignoring invalid cached price: ", cached)
		} else if !errors.Is(err, redis.Nil) {
			log.Warn("[VAULT] Error reading cached price: ", err)
		}
	}

	if x.feed != nil {
		price, err := x.feed.Price(ctx)
		if err == nil {
			if x.cache != nil {
				if err := x.cache.Set(ctx, priceCacheKey, price.String(), x.ttl); err != nil {
					log.Warn("[VAULT] Error caching price: ", err)
				}
			}
			return price, nil
		}
		log.Warn("[VAULT] Price feed failed: ", err)
	}

	if x.fallback != nil {
		return x.fallback.Price(ctx)
	}
	return decimal.Zero, ErrPriceUnavailable
}

// NewPriceSource builds the configured price chain: feed, then redis cache, then the fixed price.
func NewPriceSource() PriceSource {
	config := app.Config.Vault

	var fallback PriceSource
	if config.CollateralPriceFiat != "" {
		fallback = NewFixedPriceSource(decimal.RequireFromString(config.CollateralPriceFiat))
	}

	var feed PriceSource
	if config.PriceFeedURL != "" {
		feed = NewHTTPPriceSource(config.PriceFeedURL, time.Duration(app.Config.PaymentGateway.TimeoutMillis)*time.Millisecond)
	}

	var cache Cache
	if app.Config.Redis.Addr != "" && feed != nil {
		cache = NewRedisCache(app.Config.Redis.Addr, app.Config.Redis.Password, app.Config.Redis.DB)
		log.Info("[VAULT] Caching collateral price in redis at ", app.Config.Redis.Addr)
	}

	return NewCachedPriceSource(cache, feed, fallback, time.Duration(config.PriceCacheSecs)*time.Second)
}
