package coach

import (
	"time"

	"github.com/wayfinderhq/wayfinder-coach/internal/assess"
)

// reportCacheTTL is how long a computed skill report stays fresh.
const reportCacheTTL = 5 * time.Minute

// reportCache holds one skill report together with its expiry time.
// The zero value is an empty, expired cache.
type reportCache struct {
	report    *assess.Report
	expiresAt time.Time
}

// get returns the cached report when still fresh at now.
func (c *reportCache) get(now time.Time) (*assess.Report, bool) {
	if c.report == nil || !now.Before(c.expiresAt) {
		return nil, false
	}
	return c.report, true
}

// set stores a freshly computed report, fresh until now + TTL.
func (c *reportCache) set(report *assess.Report, now time.Time) {
	c.report = report
	c.expiresAt = now.Add(reportCacheTTL)
}

// invalidate drops the cached report so the next read recomputes.
func (c *reportCache) invalidate() {
	c.report = nil
	c.expiresAt = time.Time{}
}
