package client

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// countingFetcher returns a fresh horoscope per call and counts calls.
type countingFetcher struct {
	calls atomic.Int32
	err   error
	gate  chan struct{} // when set, each call blocks until closed
}

func (f *countingFetcher) GetDailyHoroscope(_ context.Context, _ *NatalChart, date, tz string) (*DailyHoroscope, error) {
	n := f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return &DailyHoroscope{Date: date, NatalAscendant: tz, TopAspects: make([]Aspect, n)}, nil
}

// fakeClock is a settable clock safe for concurrent reads.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestCache(f HoroscopeFetcher) (*HoroscopeCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	return NewHoroscopeCache(f, WithClock(clock.Now)), clock
}

func TestCache_ServesWithinFreshnessWindow(t *testing.T) {
	f := &countingFetcher{}
	cache, clock := newTestCache(f)
	ctx := context.Background()

	first, err := cache.GetDailyHoroscope(ctx, nil, "2024-05-01", "UTC")
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	clock.Advance(5*time.Hour + 59*time.Minute)
	second, err := cache.GetDailyHoroscope(ctx, nil, "2024-05-01", "UTC")
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if f.calls.Load() != 1 {
		t.Fatalf("expected one gateway call, got %d", f.calls.Load())
	}
	if first != second {
		t.Fatalf("expected identical data from cache")
	}

	clock.Advance(time.Minute) // exactly 6h old: no longer fresh
	third, err := cache.GetDailyHoroscope(ctx, nil, "2024-05-01", "UTC")
	if err != nil {
		t.Fatalf("third lookup: %v", err)
	}
	if f.calls.Load() != 2 {
		t.Fatalf("expected a second gateway call after freshness window, got %d", f.calls.Load())
	}
	if third == first {
		t.Fatalf("expected refreshed data")
	}

	// The refreshed entry restarts the window.
	clock.Advance(time.Hour)
	if again, _ := cache.GetDailyHoroscope(ctx, nil, "2024-05-01", "UTC"); again != third {
		t.Fatalf("expected refreshed entry to be served")
	}
	if f.calls.Load() != 2 || cache.Len() != 1 {
		t.Fatalf("calls=%d len=%d", f.calls.Load(), cache.Len())
	}
}

func TestCache_KeysByDateAndTimezone(t *testing.T) {
	f := &countingFetcher{}
	cache, _ := newTestCache(f)
	ctx := context.Background()

	_, _ = cache.GetDailyHoroscope(ctx, nil, "2024-05-01", "UTC")
	_, _ = cache.GetDailyHoroscope(ctx, nil, "2024-05-01", "America/Tegucigalpa")
	_, _ = cache.GetDailyHoroscope(ctx, nil, "2024-05-02", "UTC")
	_, _ = cache.GetDailyHoroscope(ctx, nil, "2024-05-01", "") // "" is UTC

	if f.calls.Load() != 3 || cache.Len() != 3 {
		t.Fatalf("calls=%d len=%d", f.calls.Load(), cache.Len())
	}
}

func TestCache_TodayKeyUsesClockDate(t *testing.T) {
	f := &countingFetcher{}
	cache, _ := newTestCache(f)
	ctx := context.Background()

	_, _ = cache.GetDailyHoroscope(ctx, nil, "", "UTC")
	_, _ = cache.GetDailyHoroscope(ctx, nil, "2024-05-01", "UTC") // same key as "today"
	if f.calls.Load() != 1 {
		t.Fatalf("expected today and explicit date to share a key, got %d calls", f.calls.Load())
	}
}

func TestCacheKey(t *testing.T) {
	now := time.Date(2024, 5, 1, 23, 30, 0, 0, time.FixedZone("UTC-6", -6*3600))
	if got := CacheKey("", "", now); got != "2024-05-02-UTC" {
		t.Fatalf("CacheKey today = %q", got)
	}
	if got := CacheKey("2024-01-31", "Europe/Madrid", now); got != "2024-01-31-Europe/Madrid" {
		t.Fatalf("CacheKey explicit = %q", got)
	}
}

func TestCache_FailuresAreNotCached(t *testing.T) {
	f := &countingFetcher{err: &RequestFailure{StatusCode: 503, Status: "Service Unavailable", Category: ServiceError}}
	cache, _ := newTestCache(f)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cache.GetDailyHoroscope(ctx, nil, "2024-05-01", "UTC"); !IsServiceError(err) {
			t.Fatalf("expected service error, got %v", err)
		}
	}
	if f.calls.Load() != 2 || cache.Len() != 0 {
		t.Fatalf("calls=%d len=%d", f.calls.Load(), cache.Len())
	}
}

func TestCache_ClearOldCacheUsesRetentionWindow(t *testing.T) {
	f := &countingFetcher{}
	cache, clock := newTestCache(f)
	ctx := context.Background()

	_, _ = cache.GetDailyHoroscope(ctx, nil, "2024-05-01", "UTC")
	clock.Advance(2 * time.Hour)
	_, _ = cache.GetDailyHoroscope(ctx, nil, "2024-05-02", "UTC")
	clock.Advance(23 * time.Hour) // entries are now 25h and 23h old

	before := testutil.ToFloat64(cachePurgedTotal)
	if removed := cache.ClearOldCache(); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if cache.Len() != 1 {
		t.Fatalf("len = %d", cache.Len())
	}
	if testutil.ToFloat64(cachePurgedTotal)-before != 1 {
		t.Fatalf("purge counter not incremented")
	}

	// The 23h entry is stale but retained; a lookup refetches it.
	if _, err := cache.GetDailyHoroscope(ctx, nil, "2024-05-02", "UTC"); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if f.calls.Load() != 3 {
		t.Fatalf("expected stale entry to be refetched, calls=%d", f.calls.Load())
	}
}

func TestCache_ClearOldCacheKeepsStaleButRetained(t *testing.T) {
	f := &countingFetcher{}
	cache, clock := newTestCache(f)

	_, _ = cache.GetDailyHoroscope(context.Background(), nil, "2024-05-01", "UTC")
	clock.Advance(12 * time.Hour)
	if removed := cache.ClearOldCache(); removed != 0 || cache.Len() != 1 {
		t.Fatalf("removed=%d len=%d", removed, cache.Len())
	}
}

func TestCache_CustomWindows(t *testing.T) {
	f := &countingFetcher{}
	clock := &fakeClock{t: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewHoroscopeCache(f, WithClock(clock.Now), WithFreshness(time.Minute), WithRetention(time.Hour), WithFreshness(-1))

	_, _ = cache.GetDailyHoroscope(context.Background(), nil, "2024-05-01", "UTC")
	clock.Advance(2 * time.Minute)
	_, _ = cache.GetDailyHoroscope(context.Background(), nil, "2024-05-01", "UTC")
	if f.calls.Load() != 2 {
		t.Fatalf("expected custom freshness to expire entry, calls=%d", f.calls.Load())
	}
	clock.Advance(2 * time.Hour)
	if removed := cache.ClearOldCache(); removed != 1 {
		t.Fatalf("expected custom retention to purge, removed=%d", removed)
	}
}

func TestCache_ConcurrentMissesAreNotCoalesced(t *testing.T) {
	f := &countingFetcher{gate: make(chan struct{})}
	cache, _ := newTestCache(f)

	const n = 4
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = cache.GetDailyHoroscope(context.Background(), nil, "2024-05-01", "UTC")
		}()
	}
	// Wait until every goroutine has missed and entered the fetcher.
	deadline := time.Now().Add(5 * time.Second)
	for f.calls.Load() < n && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	close(f.gate)
	wg.Wait()

	if f.calls.Load() != n {
		t.Fatalf("expected %d independent gateway calls, got %d", n, f.calls.Load())
	}
	if cache.Len() != 1 {
		t.Fatalf("expected one entry, got %d", cache.Len())
	}
}

func TestCache_WrapsClient(t *testing.T) {
	srv, _ := fakeService(t)
	c := MustNew(srv.URL + "/api")
	cache := NewHoroscopeCache(c)

	var _ HoroscopeFetcher = cache
	h1, err := cache.GetDailyHoroscope(context.Background(), testChart(t), "2024-05-01", "UTC")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	h2, _ := cache.GetDailyHoroscope(context.Background(), testChart(t), "2024-05-01", "UTC")
	if h1 != h2 {
		t.Fatalf("expected cached pointer")
	}
}

func TestCache_ResetDropsEntries(t *testing.T) {
	f := &countingFetcher{}
	cache, _ := newTestCache(f)
	ctx := context.Background()

	_, _ = cache.GetDailyHoroscope(ctx, nil, "2024-05-01", "UTC")
	_, _ = cache.GetDailyHoroscope(ctx, nil, "2024-05-02", "UTC")
	cache.Reset()
	if cache.Len() != 0 {
		t.Fatalf("len after reset = %d", cache.Len())
	}
	_, _ = cache.GetDailyHoroscope(ctx, nil, "2024-05-01", "UTC")
	if f.calls.Load() != 3 {
		t.Fatalf("expected a fresh fetch after reset, calls=%d", f.calls.Load())
	}
}
