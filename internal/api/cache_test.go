package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asachs01/lectio-api/internal/calendar"
)

func TestYearCacheGet(t *testing.T) {
	builds := 0
	c := NewYearCache(func(adventYear int, tradition string) (*calendar.LiturgicalYearInfo, error) {
		builds++
		return calendar.Build(adventYear)
	})

	first, err := c.Get(2024, "")
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	second, err := c.Get(2024, "")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}

	assert.Equal(t, 1, builds, "second lookup must come from the cache")
	assert.Same(t, first, second)

	stats := c.DumpStats()
	assert.Equal(t, 2, stats.Requests)
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestYearCacheKeyedByTradition(t *testing.T) {
	builds := 0
	c := NewYearCache(func(adventYear int, tradition string) (*calendar.LiturgicalYearInfo, error) {
		builds++
		return buildYear(adventYear, tradition)
	})

	if _, err := c.Get(2024, ""); err != nil {
		t.Fatalf("base get: %v", err)
	}
	if _, err := c.Get(2024, "lutheran"); err != nil {
		t.Fatalf("lutheran get: %v", err)
	}
	if _, err := c.Get(2025, "lutheran"); err != nil {
		t.Fatalf("lutheran 2025 get: %v", err)
	}

	assert.Equal(t, 3, builds)
	assert.Equal(t, 3, c.DumpStats().Entries)
}

func TestYearCacheBuildErrorNotCached(t *testing.T) {
	builds := 0
	boom := errors.New("boom")
	c := NewYearCache(func(adventYear int, tradition string) (*calendar.LiturgicalYearInfo, error) {
		builds++
		return nil, boom
	})

	_, err := c.Get(2024, "")
	assert.ErrorIs(t, err, boom)

	_, err = c.Get(2024, "")
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, 2, builds, "failures must not be cached")
	assert.Equal(t, 0, c.DumpStats().Entries)
}

func TestBuildYearBlend(t *testing.T) {
	info, err := buildYear(2024, "lutheran,catholic")
	if err != nil {
		t.Fatalf("blend build: %v", err)
	}

	names := make(map[string]bool)
	for _, d := range info.SpecialDays {
		names[d.Name] = true
	}
	assert.True(t, names["Reformation Day"], "blend missing lutheran feast")
	assert.True(t, names["Immaculate Conception"], "blend missing catholic feast")

	_, err = buildYear(2024, "orthodox")
	assert.ErrorIs(t, err, calendar.ErrUnknownTradition)
}
