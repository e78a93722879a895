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

package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jazzpetri/tween/clock"
	"github.com/jazzpetri/tween/event"
	"github.com/jazzpetri/tween/registry"
	"github.com/jazzpetri/tween/tween"
)

// ErrAlreadyAttached is returned by Attach when the log already follows a
// registry.
var ErrAlreadyAttached = errors.New("event log already attached")

// Entry is one recorded registry notification.
type Entry struct {
	// ID is unique per entry.
	ID string

	// Seq increases by one per recorded entry and survives eviction.
	Seq uint64

	Kind      event.Kind
	Handle    tween.Handle
	Timestamp time.Time
}

// MemoryEventLog records registry notifications in memory.
//
// When MaxEntries is > 0 the log keeps at most that many entries and drops
// the oldest first. When it is 0 the log grows unbounded.
//
// All operations are safe for concurrent use.
type MemoryEventLog struct {
	mu         sync.RWMutex
	clock      clock.Clock
	entries    []Entry
	index      map[string]int
	seq        uint64
	MaxEntries int

	bus   *event.Bus
	subID string
}

// NewMemoryEventLog creates an empty log stamped by clk (real time when nil).
// An optional maxEntries bounds the log.
func NewMemoryEventLog(clk clock.Clock, maxEntries ...int) *MemoryEventLog {
	if clk == nil {
		clk = clock.NewRealTimeClock()
	}
	max := 0
	if len(maxEntries) > 0 {
		max = maxEntries[0]
	}
	return &MemoryEventLog{
		clock:      clk,
		index:      make(map[string]int),
		MaxEntries: max,
	}
}

// Attach subscribes the log to every notification of reg.
func (m *MemoryEventLog) Attach(reg *registry.Registry) error {
	if reg == nil {
		return ErrNilRegistry
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bus != nil {
		return ErrAlreadyAttached
	}

	bus := reg.Bus()
	id, err := bus.Subscribe(event.All, m.record)
	if err != nil {
		return fmt.Errorf("failed to attach event log: %w", err)
	}
	m.bus, m.subID = bus, id
	return nil
}

// Detach stops recording. It is a no-op when the log is not attached.
func (m *MemoryEventLog) Detach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bus == nil {
		return
	}
	_ = m.bus.Unsubscribe(m.subID)
	m.bus, m.subID = nil, ""
}

func (m *MemoryEventLog) record(e event.Event) {
	m.Append(e.Kind, e.Handle)
}

// Append records an entry directly.
func (m *MemoryEventLog) Append(kind event.Kind, h tween.Handle) Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	entry := Entry{
		ID:        uuid.NewString(),
		Seq:       m.seq,
		Kind:      kind,
		Handle:    h,
		Timestamp: m.clock.Now(),
	}

	if m.MaxEntries > 0 && len(m.entries) >= m.MaxEntries {
		drop := len(m.entries) - m.MaxEntries + 1
		m.entries = append([]Entry(nil), m.entries[drop:]...)
		m.reindex()
	}
	m.entries = append(m.entries, entry)
	m.index[entry.ID] = len(m.entries) - 1
	return entry
}

// reindex must be called with the write lock held.
func (m *MemoryEventLog) reindex() {
	m.index = make(map[string]int, len(m.entries))
	for i, e := range m.entries {
		m.index[e.ID] = i
	}
}

// Get returns the entry with the given ID.
func (m *MemoryEventLog) Get(id string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[id]
	if !ok {
		return Entry{}, fmt.Errorf("entry %s not found", id)
	}
	return m.entries[i], nil
}

// All returns a copy of every entry in record order.
func (m *MemoryEventLog) All() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Entry(nil), m.entries...)
}

// ByHandle returns the entries for h in record order.
func (m *MemoryEventLog) ByHandle(h tween.Handle) []Entry {
	return m.filter(func(e Entry) bool { return e.Handle == h })
}

// ByKind returns the entries of kind in record order.
func (m *MemoryEventLog) ByKind(kind event.Kind) []Entry {
	return m.filter(func(e Entry) bool { return e.Kind == kind })
}

// Since returns the entries stamped strictly after ts.
func (m *MemoryEventLog) Since(ts time.Time) []Entry {
	return m.filter(func(e Entry) bool { return e.Timestamp.After(ts) })
}

func (m *MemoryEventLog) filter(keep func(Entry) bool) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Entry
	for _, e := range m.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of entries held.
func (m *MemoryEventLog) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Clear drops every entry. Sequence numbers keep increasing.
func (m *MemoryEventLog) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	m.index = make(map[string]int)
}
