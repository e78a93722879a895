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

package clock

import (
	"math"
	"sync"
	"time"
)

// DefaultMaxDelta caps a single frame's delta so that a long hitch (a
// debugger break, a window drag) does not fling every tween to its end.
const DefaultMaxDelta = 250 * time.Millisecond

// FrameTimer converts successive clock readings into per-frame deltas in
// seconds. It is safe for concurrent use, so a UI goroutine may pause or
// rescale time while the frame loop reads it.
type FrameTimer struct {
	clock Clock

	mu        sync.Mutex
	last      time.Time
	started   bool
	timeScale float64
	paused    bool
	maxDelta  time.Duration
}

// NewFrameTimer creates a timer reading clk with a time scale of 1 and
// DefaultMaxDelta.
func NewFrameTimer(clk Clock) *FrameTimer {
	return &FrameTimer{
		clock:     clk,
		timeScale: 1,
		maxDelta:  DefaultMaxDelta,
	}
}

// Frame returns the scaled and unscaled seconds since the previous call.
// The first call returns zero for both.
func (f *FrameTimer) Frame() (scaled, unscaled float64) {
	now := f.clock.Now()

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.started {
		f.started = true
		f.last = now
		return 0, 0
	}
	d := now.Sub(f.last)
	f.last = now
	if d < 0 {
		d = 0
	}
	if f.maxDelta > 0 && d > f.maxDelta {
		d = f.maxDelta
	}

	unscaled = d.Seconds()
	if f.paused {
		return 0, unscaled
	}
	return unscaled * f.timeScale, unscaled
}

// Reset makes the next Frame call behave like the first one.
func (f *FrameTimer) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = false
}

// SetTimeScale sets the multiplier applied to scaled deltas. Negative and
// NaN values are treated as 0.
func (f *FrameTimer) SetTimeScale(s float64) {
	if !(s > 0) || math.IsNaN(s) {
		s = 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timeScale = s
}

// TimeScale returns the multiplier applied to scaled deltas.
func (f *FrameTimer) TimeScale() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.timeScale
}

// SetMaxDelta changes the per-frame cap. Zero disables it.
func (f *FrameTimer) SetMaxDelta(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maxDelta = d
}

// Pause zeroes scaled deltas until Resume. Unscaled deltas are unaffected.
func (f *FrameTimer) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = true
}

// Resume undoes Pause.
func (f *FrameTimer) Resume() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = false
}

// Paused reports whether scaled deltas are frozen at 0.
func (f *FrameTimer) Paused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused
}
