package api

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/asachs01/lectio-api/internal/calendar"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lectio_year_cache_hits_total",
		Help: "Liturgical years served from the in-memory cache",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lectio_year_cache_misses_total",
		Help: "Liturgical years computed on demand",
	})
)

// Stats is a snapshot of cache effectiveness.
type Stats struct {
	Requests int `json:"requests"`
	Hits     int `json:"hits"`
	Misses   int `json:"misses"`
	Entries  int `json:"entries"`
}

type internalStats struct {
	mu sync.Mutex
	Stats
	hits   prometheus.Counter
	misses prometheus.Counter
}

func (s *internalStats) hit() {
	s.hits.Inc()
	s.mu.Lock()
	s.Requests++
	s.Hits++
	s.mu.Unlock()
}

func (s *internalStats) miss() {
	s.misses.Inc()
	s.mu.Lock()
	s.Requests++
	s.Misses++
	s.mu.Unlock()
}

func (s *internalStats) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Stats
}

// BuildFunc computes a liturgical year for a tradition expression.
type BuildFunc func(adventYear int, tradition string) (*calendar.LiturgicalYearInfo, error)

type yearKey struct {
	adventYear int
	tradition  string
}

// YearCache memoizes computed liturgical years. A year never changes
// once computed, so entries live for the process lifetime. Cached years
// are shared between requests and must be treated as read-only.
type YearCache struct {
	stats internalStats
	build BuildFunc
	years map[yearKey]*calendar.LiturgicalYearInfo
	lock  sync.RWMutex
}

// NewYearCache creates a cache that fills misses with build.
func NewYearCache(build BuildFunc) *YearCache {
	return &YearCache{
		build: build,
		years: make(map[yearKey]*calendar.LiturgicalYearInfo),
		stats: internalStats{
			hits:   cacheHits,
			misses: cacheMisses,
		},
	}
}

// Get returns the cached year for the tradition expression, computing
// and storing it on first use. Build failures are not cached.
func (c *YearCache) Get(adventYear int, tradition string) (*calendar.LiturgicalYearInfo, error) {
	key := yearKey{adventYear: adventYear, tradition: tradition}

	c.lock.RLock()
	info, ok := c.years[key]
	c.lock.RUnlock()
	if ok {
		c.stats.hit()
		return info, nil
	}

	c.stats.miss()
	info, err := c.build(adventYear, tradition)
	if err != nil {
		return nil, err
	}

	c.lock.Lock()
	c.years[key] = info
	c.lock.Unlock()
	return info, nil
}

// DumpStats returns a snapshot of the cache counters.
func (c *YearCache) DumpStats() Stats {
	stats := c.stats.snapshot()
	c.lock.RLock()
	stats.Entries = len(c.years)
	c.lock.RUnlock()
	return stats
}
