package client

import (
	"context"
	"sync"
	"time"

	"github.com/hectorherrerafullstack/astroApi/client/internal/types"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultFreshness is how long a cached horoscope is served without
	// contacting the service.
	DefaultFreshness = 6 * time.Hour

	// DefaultRetention is the age past which ClearOldCache drops an entry.
	// An entry between the two windows is stale (never served) but retained.
	DefaultRetention = 24 * time.Hour
)

// HoroscopeFetcher fetches a daily horoscope. *Client and *HoroscopeCache
// both satisfy it.
type HoroscopeFetcher interface {
	GetDailyHoroscope(ctx context.Context, chart *NatalChart, targetDate, timezone string) (*DailyHoroscope, error)
}

type cacheEntry struct {
	horoscope  *DailyHoroscope
	capturedAt time.Time
}

// HoroscopeCache memoises GetDailyHoroscope per (date, timezone). The chart
// is not part of the key: a cache serves a single natal chart.
//
// There is no request coalescing. Concurrent lookups that miss on the same
// key each call the fetcher and the last one to finish wins the slot. The
// mutex only protects the map itself and is never held across a fetch.
//
// Returned horoscopes are shared between callers and must not be mutated.
type HoroscopeCache struct {
	fetcher   HoroscopeFetcher
	freshness time.Duration
	retention time.Duration
	now       func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// CacheOption configures a HoroscopeCache.
type CacheOption func(*HoroscopeCache)

// WithFreshness overrides DefaultFreshness. Non-positive values are ignored.
func WithFreshness(d time.Duration) CacheOption {
	return func(c *HoroscopeCache) {
		if d > 0 {
			c.freshness = d
		}
	}
}

// WithRetention overrides DefaultRetention. Non-positive values are ignored.
func WithRetention(d time.Duration) CacheOption {
	return func(c *HoroscopeCache) {
		if d > 0 {
			c.retention = d
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *HoroscopeCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewHoroscopeCache wraps fetcher with a time-bounded in-memory cache.
func NewHoroscopeCache(fetcher HoroscopeFetcher, opts ...CacheOption) *HoroscopeCache {
	c := &HoroscopeCache{
		fetcher:   fetcher,
		freshness: DefaultFreshness,
		retention: DefaultRetention,
		now:       time.Now,
		entries:   make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CacheKey joins a date (or today's UTC date when empty) and a timezone
// (UTC when empty), e.g. "2024-05-01-UTC".
func CacheKey(date, timezone string, now time.Time) string {
	if date == "" {
		date = now.UTC().Format(DateLayout)
	}
	return date + "-" + types.TimezoneOrDefault(timezone)
}

// GetDailyHoroscope serves a cached horoscope younger than the freshness
// window, otherwise fetches one and stores it under the same key with the
// current time. Failed fetches are not cached.
func (c *HoroscopeCache) GetDailyHoroscope(ctx context.Context, chart *NatalChart, targetDate, timezone string) (*DailyHoroscope, error) {
	key := CacheKey(targetDate, timezone, c.now())

	c.mu.Lock()
	entry, found := c.entries[key]
	c.mu.Unlock()

	if found {
		age := c.now().Sub(entry.capturedAt)
		if age < c.freshness {
			cacheLookupsTotal.WithLabelValues("hit").Inc()
			log.Debug().Str("key", key).Dur("age", age).Msg("horoscope served from cache")
			return entry.horoscope, nil
		}
		cacheLookupsTotal.WithLabelValues("stale").Inc()
		log.Debug().Str("key", key).Dur("age", age).Msg("cached horoscope is stale")
	} else {
		cacheLookupsTotal.WithLabelValues("miss").Inc()
	}

	h, err := c.fetcher.GetDailyHoroscope(ctx, chart, targetDate, timezone)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{horoscope: h, capturedAt: c.now()}
	c.mu.Unlock()
	return h, nil
}

// Reset drops every entry. Call it when the natal chart behind the cache
// changes.
func (c *HoroscopeCache) Reset() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
	log.Debug().Int("removed", n).Msg("horoscope cache reset")
}

// ClearOldCache removes every entry older than the retention window, fresh
// or not, and returns how many were removed. Nothing calls it automatically.
func (c *HoroscopeCache) ClearOldCache() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if now.Sub(e.capturedAt) > c.retention {
			delete(c.entries, key)
			removed++
		}
	}
	if removed > 0 {
		cachePurgedTotal.Add(float64(removed))
		log.Debug().Int("removed", removed).Int("remaining", len(c.entries)).Msg("purged old horoscope cache entries")
	}
	return removed
}

// Len reports how many entries are held, stale ones included.
func (c *HoroscopeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
