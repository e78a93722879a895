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

package tween

import (
	"fmt"
	"math"

	"github.com/jazzpetri/tween/curve"
)

// Callback is invoked with the task it is attached to.
type Callback func(t *Task)

// Task is one in-flight interpolation.
//
// The start and end values given at construction are only used by Value;
// most owners pass their own end points to Float or Evaluate each frame.
type Task struct {
	handle Handle

	start    float64
	end      float64
	elapsed  float64
	duration float64

	active    bool
	reverse   bool
	completed bool

	timeScale TimeScale
	curve     curve.Config
	policy    Policy

	onUpdate   Callback
	onComplete Callback
}

// New creates an unregistered task. It panics if duration is not a positive
// finite number.
func New(start, end, duration float64) *Task {
	if !(duration > 0) || math.IsInf(duration, 1) {
		panic(fmt.Sprintf("tween: duration must be > 0, got %v", duration))
	}
	return &Task{
		start:    start,
		end:      end,
		duration: duration,
		active:   true,
	}
}

// NewFromSettings creates an unregistered task over [0, 1] configured from s.
// It panics if s is invalid.
func NewFromSettings(s Settings) *Task {
	if err := s.Validate(); err != nil {
		panic(fmt.Sprintf("tween: %v", err))
	}
	return New(0, 1, s.Duration).
		WithCurve(s.Curve).
		WithPolicy(s.Policy).
		WithTimeScale(s.TimeScale)
}

// OnUpdate sets the callback run after every advance.
func (t *Task) OnUpdate(cb Callback) *Task {
	t.onUpdate = cb
	return t
}

// OnComplete sets the callback run when the boundary is first crossed.
func (t *Task) OnComplete(cb Callback) *Task {
	t.onComplete = cb
	return t
}

// WithCurve sets the curve. It panics on a Custom family without a curve.
func (t *Task) WithCurve(c curve.Config) *Task {
	t.curve = c.MustValidate()
	return t
}

// WithTimeScale selects which frame delta advances the task.
func (t *Task) WithTimeScale(s TimeScale) *Task {
	t.timeScale = s
	return t
}

// WithReverse makes elapsed time run backwards when r is true.
func (t *Task) WithReverse(r bool) *Task {
	t.reverse = r
	return t
}

// WithPolicy sets what the registry does once the boundary is crossed.
func (t *Task) WithPolicy(p Policy) *Task {
	t.policy = p
	return t
}

// Handle returns the handle assigned at registration, or None.
func (t *Task) Handle() Handle {
	return t.handle
}

// BindHandle records the handle a registry assigned to t. A task keeps its
// handle for life; binding a different one panics.
func (t *Task) BindHandle(h Handle) {
	if t.handle != None && t.handle != h {
		panic(fmt.Sprintf("tween: task already bound to %s, cannot bind %s", t.handle, h))
	}
	t.handle = h
}

// Elapsed returns the elapsed time in seconds. It may lie outside
// [0, duration] right after a boundary crossing.
func (t *Task) Elapsed() float64 {
	return t.elapsed
}

// SetElapsed moves the task to elapsed time e. Moving back inside the
// boundary re-arms completion.
func (t *Task) SetElapsed(e float64) {
	t.elapsed = e
	if !t.pastBoundary() {
		t.completed = false
	}
}

// Duration returns the length of one pass in seconds.
func (t *Task) Duration() float64 {
	return t.duration
}

// Active reports whether the registry advances the task.
func (t *Task) Active() bool {
	return t.active
}

// SetActive freezes (false) or resumes (true) the task. Inactive tasks stay
// registered but are neither advanced nor evaluated by the registry.
func (t *Task) SetActive(active bool) {
	t.active = active
}

// Reverse reports whether elapsed time runs backwards.
func (t *Task) Reverse() bool {
	return t.reverse
}

// TimeScale returns the frame delta the task follows.
func (t *Task) TimeScale() TimeScale {
	return t.timeScale
}

// Curve returns the curve configuration.
func (t *Task) Curve() curve.Config {
	return t.curve
}

// Policy returns the completion policy.
func (t *Task) Policy() Policy {
	return t.policy
}

// Start and End return the values given to New.
func (t *Task) Start() float64 { return t.start }
func (t *Task) End() float64   { return t.end }

// Completed reports whether the boundary has been crossed since the task
// was last armed.
func (t *Task) Completed() bool {
	return t.completed
}

// Rearm clears the completion latch so the next boundary crossing is
// reported again.
func (t *Task) Rearm() {
	t.completed = false
}

// Progress returns elapsed/duration clamped to [0, 1]. A NaN elapsed time
// reads as 0.
func (t *Task) Progress() float64 {
	if math.IsNaN(t.elapsed) {
		return 0
	}
	return math.Max(0, math.Min(1, t.elapsed/t.duration))
}

// Weight returns the curve evaluated at Progress. It may lie outside [0, 1]
// for overshooting curves.
func (t *Task) Weight() float64 {
	return t.curve.Eval(t.Progress())
}

// Float interpolates between a and b.
func (t *Task) Float(a, b float64) float64 {
	return float64(Evaluate(t, Scalar(a), Scalar(b)))
}

// Value interpolates between the start and end given to New.
func (t *Task) Value() float64 {
	return t.Float(t.start, t.end)
}

// Tick advances the task by delta and runs the update callback. It reports
// true only on the call where elapsed time first crosses the boundary
// (elapsed >= duration going forward, elapsed <= 0 going backward).
// Inactive tasks are left untouched and report false.
//
// Tick is driven by the registry; owners should not call it directly.
func (t *Task) Tick(delta float64) bool {
	if !t.active {
		return false
	}
	if t.reverse {
		t.elapsed -= delta
	} else {
		t.elapsed += delta
	}
	if t.onUpdate != nil {
		t.onUpdate(t)
	}
	if t.completed || !t.pastBoundary() {
		return false
	}
	t.completed = true
	return true
}

// Complete runs the completion callback, if any.
func (t *Task) Complete() {
	if t.onComplete != nil {
		t.onComplete(t)
	}
}

func (t *Task) pastBoundary() bool {
	if t.reverse {
		return t.elapsed <= 0
	}
	return t.elapsed >= t.duration
}

// Wrap moves an elapsed time that has run past the boundary back into range
// for the Loop policy, keeping the overshoot.
func (t *Task) Wrap() {
	e := math.Mod(t.elapsed, t.duration)
	if e < 0 {
		e += t.duration
	}
	// Landing exactly on the boundary would complete again immediately.
	if t.reverse && e == 0 {
		e = t.duration
	}
	t.elapsed = e
	t.completed = false
}

// Bounce reflects an elapsed time that has run past the boundary and flips
// direction for the PingPong policy.
func (t *Task) Bounce() {
	if t.reverse {
		t.elapsed = -t.elapsed
	} else {
		t.elapsed = 2*t.duration - t.elapsed
	}
	t.elapsed = math.Max(0, math.Min(t.duration, t.elapsed))
	t.reverse = !t.reverse
	t.completed = false
}

func (t *Task) String() string {
	return fmt.Sprintf("%s[%.3f/%.3f %s %s]", t.handle, t.elapsed, t.duration, t.curve.Family, t.policy)
}
