package coach

import (
	"testing"
	"time"

	"github.com/wayfinderhq/wayfinder-coach/internal/assess"
)

// TestReportCache verifies freshness, expiry, and invalidation.
func TestReportCache(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	report := &assess.Report{OverallSkill: 0.5}

	var cache reportCache
	if _, ok := cache.get(now); ok {
		t.Fatal("empty cache must miss")
	}

	cache.set(report, now)
	if cached, ok := cache.get(now); !ok || cached != report {
		t.Fatal("fresh cache must hit")
	}
	if cached, ok := cache.get(now.Add(reportCacheTTL - time.Second)); !ok || cached != report {
		t.Fatal("cache must hit just before expiry")
	}
	if _, ok := cache.get(now.Add(reportCacheTTL)); ok {
		t.Fatal("cache must miss at expiry")
	}

	cache.set(report, now)
	cache.invalidate()
	if _, ok := cache.get(now); ok {
		t.Fatal("invalidated cache must miss")
	}
}
