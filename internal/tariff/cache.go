package tariff

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sync"
	"time"

	"energy-measures/internal/idf"

	"github.com/sirupsen/logrus"
)

const defaultCacheTTL = time.Hour

type cacheEntry struct {
	objects   []*idf.Object
	expiresAt time.Time
}

// Cache keeps parsed definition files so a long-running server does not
// reparse a file on every request. A nil *Cache is valid and caches nothing.
type Cache struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{store: make(map[string]*cacheEntry), ttl: ttl}
}

// CacheFromEnv builds a cache with the TTL from TARIFF_CACHE_TTL. "0" or
// "off" disables caching and returns nil.
func CacheFromEnv() *Cache {
	ttl := defaultCacheTTL
	switch s := os.Getenv("TARIFF_CACHE_TTL"); s {
	case "":
	case "0", "off":
		return nil
	default:
		parsed, err := time.ParseDuration(s)
		if err != nil || parsed <= 0 {
			logrus.Warnf("ignoring TARIFF_CACHE_TTL=%q, using %s", s, defaultCacheTTL)
			break
		}
		ttl = parsed
	}
	return NewCache(ttl)
}

func (c *Cache) Get(key string) ([]*idf.Object, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.objects, true
}

func (c *Cache) Set(key string, objs []*idf.Object) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &cacheEntry{objects: objs, expiresAt: time.Now().Add(c.ttl)}
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*cacheEntry)
}

// Prune drops expired entries and returns how many were dropped.
func (c *Cache) Prune(now time.Time) int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
			n++
		}
	}
	return n
}

// RunCleanup prunes expired entries every interval until ctx is done.
func (c *Cache) RunCleanup(ctx context.Context, interval time.Duration) {
	if c == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.Prune(now)
		}
	}
}

// CacheKey identifies a file within a library source.
func CacheKey(source, file string) string {
	sum := sha256.Sum256([]byte(source + ":" + file))
	return hex.EncodeToString(sum[:])
}
