package storefront

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

type cacheEntry struct {
	data    json.RawMessage
	expires time.Time
}

// queryCache holds raw query results for a short time (CacheShort).
type queryCache struct {
	lru *lru.Cache
	ttl time.Duration
	now func() time.Time
}

func newQueryCache(size int, ttl time.Duration) (*queryCache, error) {
	if size <= 0 || ttl <= 0 {
		return nil, nil
	}
	l, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &queryCache{lru: l, ttl: ttl, now: time.Now}, nil
}

func (c *queryCache) get(key string) (json.RawMessage, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	e := v.(cacheEntry)
	if !c.now().Before(e.expires) {
		c.lru.Remove(key)
		return nil, false
	}
	return e.data, true
}

func (c *queryCache) put(key string, data json.RawMessage) {
	if c == nil {
		return
	}
	c.lru.Add(key, cacheEntry{data: data, expires: c.now().Add(c.ttl)})
}

func cacheKey(query string, vars Vars) string {
	h := sha256.New()
	h.Write([]byte(query))
	h.Write([]byte{0})
	// encoding/json sorts map keys, so equal variable sets hash equally.
	b, _ := json.Marshal(vars)
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil))
}
