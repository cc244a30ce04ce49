package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetrics summarizes one finished search.
type SearchMetrics struct {
	StartTime   time.Time
	Duration    time.Duration
	Simulations int64
	Failures    int64
	NodesUsed   int
}

type metricsCollector struct {
	startTime   time.Time
	simulations atomic.Int64
	failures    atomic.Int64
}

func newMetricsCollector() *metricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
}

func (m *metricsCollector) AddSimulation() {
	m.simulations.Add(1)
}

func (m *metricsCollector) AddFailure() {
	m.failures.Add(1)
}

func (m *metricsCollector) Complete(nodesUsed int) SearchMetrics {
	return SearchMetrics{
		StartTime:   m.startTime,
		Duration:    time.Since(m.startTime),
		Simulations: m.simulations.Load(),
		Failures:    m.failures.Load(),
		NodesUsed:   nodesUsed,
	}
}
