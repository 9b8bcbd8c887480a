package cache

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes computation results keyed by operation parameters,
// each entry carrying its own TTL. The clock is injectable so that
// expiry is testable without real delays. A per-key singleflight guard
// ensures at most one concurrent computation per key; late arrivals
// wait for the first computation's result.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
	group   singleflight.Group
}

type entry struct {
	value     any
	createdAt time.Time
	ttl       time.Duration
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key joins an operation name and its ordered parameters into a cache
// key.
func Key(op string, params ...string) string {
	if len(params) == 0 {
		return op
	}
	return op + ":" + strings.Join(params, ":")
}

// GetOrCompute returns the live cached value for key, or invokes
// compute, stores its result and returns it. Compute failures propagate
// uncached and are retried on the next call.
func (c *Cache) GetOrCompute(key string, ttl time.Duration, compute func() (any, error)) (any, error) {
	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		// A concurrent caller may have stored the value while this one
		// waited on the flight group.
		if value, ok := c.lookup(key); ok {
			return value, nil
		}
		value, err := compute()
		if err != nil {
			return nil, err
		}
		c.store(key, ttl, value)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (c *Cache) lookup(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.createdAt) > e.ttl {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(key string, ttl time.Duration, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		value:     value,
		createdAt: c.now(),
		ttl:       ttl,
	}
}

// GetOrCompute is the typed variant of Cache.GetOrCompute.
func GetOrCompute[T any](c *Cache, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	value, err := c.GetOrCompute(key, ttl, func() (any, error) {
		return compute()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}
