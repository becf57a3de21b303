package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"DominanceSentinel/internal/model"
)

// DefaultCacheTTL matches how long upstream responses stay fresh.
const DefaultCacheTTL = 10 * time.Minute

// ErrCacheMiss is returned by a Cache when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores raw upstream responses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache implements Cache on a Redis server.
type RedisCache struct {
	Client *redis.Client
	Prefix string
}

// NewRedisCache connects to addr and verifies the connection with PING.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	log.Printf("[INFO] redis cache connected: %s", addr)
	return &RedisCache{Client: client, Prefix: "dominance:"}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.Client.Get(ctx, c.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.Client.Set(ctx, c.Prefix+key, value, ttl).Err()
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.Client.Close()
}

// CachedFetcher serves repeated requests from a Cache for TTL. Cache errors are logged
// and the inner fetcher is used instead.
type CachedFetcher struct {
	Inner Fetcher
	Cache Cache
	TTL   time.Duration
}

// NewCachedFetcher wraps inner with cache. A non-positive ttl means DefaultCacheTTL.
func NewCachedFetcher(inner Fetcher, cache Cache, ttl time.Duration) *CachedFetcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedFetcher{Inner: inner, Cache: cache, TTL: ttl}
}

func (f *CachedFetcher) Name() string { return f.Inner.Name() + "+cache" }

func (f *CachedFetcher) FetchDailyPrices(ctx context.Context, assetID string, days int) ([]model.PricePoint, error) {
	key := fmt.Sprintf("%s:prices:%s:%d", f.Inner.Name(), assetID, days)
	var pts []model.PricePoint
	if f.load(ctx, key, &pts) {
		return pts, nil
	}
	pts, err := f.Inner.FetchDailyPrices(ctx, assetID, days)
	if err != nil {
		return nil, err
	}
	f.store(ctx, key, pts)
	return pts, nil
}

func (f *CachedFetcher) FetchGlobal(ctx context.Context) (*model.GlobalSnapshot, error) {
	key := f.Inner.Name() + ":global"
	var snap model.GlobalSnapshot
	if f.load(ctx, key, &snap) {
		return &snap, nil
	}
	g, err := f.Inner.FetchGlobal(ctx)
	if err != nil {
		return nil, err
	}
	f.store(ctx, key, g)
	return g, nil
}

func (f *CachedFetcher) load(ctx context.Context, key string, out interface{}) bool {
	b, err := f.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("[WARN] cache get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		log.Printf("[WARN] cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (f *CachedFetcher) store(ctx context.Context, key string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARN] cache encode %s: %v", key, err)
		return
	}
	if err := f.Cache.Set(ctx, key, b, f.TTL); err != nil {
		log.Printf("[WARN] cache set %s: %v", key, err)
	}
}
