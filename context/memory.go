// Copyright 2026 The JazzPetri Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package context

import "sync"

// MemoryMetrics is an in-process MetricsCollector. It keeps counters and
// gauges by name and every observed histogram value. Safe for concurrent use.
type MemoryMetrics struct {
	mu           sync.RWMutex
	counters     map[string]float64
	gauges       map[string]float64
	observations map[string][]float64
}

// NewMemoryMetrics creates an empty collector.
func NewMemoryMetrics() *MemoryMetrics {
	return &MemoryMetrics{
		counters:     make(map[string]float64),
		gauges:       make(map[string]float64),
		observations: make(map[string][]float64),
	}
}

// Inc increments counter name by one.
func (m *MemoryMetrics) Inc(name string) {
	m.Add(name, 1)
}

// Add adds value to counter name.
func (m *MemoryMetrics) Add(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += value
}

// Observe appends value to histogram name.
func (m *MemoryMetrics) Observe(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observations[name] = append(m.observations[name], value)
}

// Set stores gauge name.
func (m *MemoryMetrics) Set(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

// Counter returns the current value of counter name, or 0.
func (m *MemoryMetrics) Counter(name string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[name]
}

// Gauge returns the last value set for gauge name and whether it was ever set.
func (m *MemoryMetrics) Gauge(name string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.gauges[name]
	return v, ok
}

// Observations returns a copy of the values recorded for histogram name.
func (m *MemoryMetrics) Observations(name string) []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]float64(nil), m.observations[name]...)
}

// Reset clears everything.
func (m *MemoryMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = make(map[string]float64)
	m.gauges = make(map[string]float64)
	m.observations = make(map[string][]float64)
}
