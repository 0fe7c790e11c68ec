package recommender

import (
	"sync"
	"time"
)

// Metrics collects pipeline counters across requests. Safe for
// concurrent use.
type Metrics struct {
	mu sync.Mutex

	generated   int64
	cacheHits   int64
	cacheMisses int64
	avgTime     time.Duration
}

// Snapshot is a point-in-time copy of the collected metrics.
type Snapshot struct {
	Generated   int64
	CacheHits   int64
	CacheMisses int64
	AvgTime     time.Duration
	HitRate     float64
}

func (m *Metrics) recordGenerated(elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generated++
	m.avgTime += (elapsed - m.avgTime) / time.Duration(m.generated)
}

func (m *Metrics) recordCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cacheHits++
}

func (m *Metrics) recordCacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cacheMisses++
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		Generated:   m.generated,
		CacheHits:   m.cacheHits,
		CacheMisses: m.cacheMisses,
		AvgTime:     m.avgTime,
	}

	if probes := m.cacheHits + m.cacheMisses; probes > 0 {
		s.HitRate = float64(m.cacheHits) / float64(probes)
	}

	return s
}
