package authcore

import "sync/atomic"

// MetricID identifies a counter in the in-process metrics system.
type MetricID uint16

const (
	// MetricTokenIssued counts successfully issued access tokens.
	MetricTokenIssued MetricID = iota
	// MetricTokenIssueFailure counts failed access-token issuance attempts.
	MetricTokenIssueFailure
	// MetricRefreshIssued counts issued refresh tokens (hash persisted).
	MetricRefreshIssued
	// MetricRefreshSuccess counts refresh verifications that matched the
	// stored hash.
	MetricRefreshSuccess
	// MetricRefreshMismatch counts refresh verifications that failed:
	// wrong secret, superseded token, or no stored hash.
	MetricRefreshMismatch
	// MetricRevoke counts refresh-token revocations.
	MetricRevoke
	// MetricEscalationFailure counts scope escalations that failed because
	// the account no longer exists.
	MetricEscalationFailure

	metricIDCount
)

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds atomic counters, padded to avoid false sharing on the
// issue/refresh hot paths. A nil or disabled Metrics is a no-op.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

// NewMetrics creates a Metrics instance. When cfg.Enabled is false, all
// operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc increments a counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot returns a deep copy of the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricIDCount)}
	if m == nil || !m.enabled {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return snap
}
