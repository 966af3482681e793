package engine

import "sync"

// perfMetrics keeps the last recorded sample per metric name. Counters
// that need accumulation record their running total as the sample.
type perfMetrics struct {
	mu      sync.RWMutex
	samples map[string]float64
}

func newPerfMetrics() *perfMetrics {
	return &perfMetrics{samples: make(map[string]float64)}
}

func (m *perfMetrics) record(name string, value float64) {
	m.mu.Lock()
	m.samples[name] = value
	m.mu.Unlock()
}

// increment bumps a counter-style metric by one and records the total.
func (m *perfMetrics) increment(name string) {
	m.mu.Lock()
	m.samples[name]++
	m.mu.Unlock()
}

func (m *perfMetrics) snapshot() map[string]float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]float64, len(m.samples))
	for k, v := range m.samples {
		out[k] = v
	}
	return out
}

func (m *perfMetrics) clear() {
	m.mu.Lock()
	m.samples = make(map[string]float64)
	m.mu.Unlock()
}
