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

// Package registry provides the Registry: the single owner of every live
// tween task, advanced once per host frame.
//
// Owners keep only the tween.Handle returned by Register. All lookups by
// handle are total: a stale handle yields false, never a panic.
//
// Removal is deferred while a Tick is in progress. A task's completion
// callback may register or remove other tasks; those changes only affect
// the next tick's iteration set, and "removed" notifications fire after the
// whole advancement pass.
//
// Example usage:
//
//	reg := registry.New(ctx)
//	reg.OnRemoved(func(h tween.Handle) {
//	    if h == door.fade {
//	        door.fade = tween.None
//	    }
//	})
//	door.fade = reg.Register(tween.New(0, 1, 0.3))
//
//	// once per frame
//	reg.Tick(scaledDelta, unscaledDelta)
package registry

import (
	"fmt"

	"github.com/jazzpetri/tween/context"
	"github.com/jazzpetri/tween/event"
	"github.com/jazzpetri/tween/tween"
)

// Registry stores tasks by handle and advances them in registration order.
//
// A Registry is not safe for concurrent use. It expects a single logical
// thread of control; see engine.Engine.Do for cross-goroutine access.
type Registry struct {
	ctx *context.ExecutionContext
	bus *event.Bus

	tasks map[tween.Handle]*tween.Task
	order []tween.Handle
	last  tween.Handle

	// doomed holds handles queued for end-of-tick removal. hidden is the
	// subset removed explicitly during the tick: no longer visible to
	// lookups even though still stored.
	queue  []tween.Handle
	doomed map[tween.Handle]bool
	hidden map[tween.Handle]bool

	ticking bool
}

// New creates an empty registry. A nil ctx uses NoOp observability.
func New(ctx *context.ExecutionContext) *Registry {
	return &Registry{
		ctx:    ctx.Normalize(),
		bus:    event.NewBus(),
		tasks:  make(map[tween.Handle]*tween.Task),
		doomed: make(map[tween.Handle]bool),
		hidden: make(map[tween.Handle]bool),
	}
}

// Bus returns the bus every registry notification is published on.
func (r *Registry) Bus() *event.Bus {
	return r.bus
}

// Register stores t and returns its handle. The first registration
// allocates the next handle and binds it to t; a task registered again
// after removal keeps its original handle. Registering a task that is
// already registered returns its handle without notifying anyone.
// It panics if t is nil.
func (r *Registry) Register(t *tween.Task) tween.Handle {
	if t == nil {
		panic("registry: cannot register nil task")
	}

	h := t.Handle()
	if h.Valid() {
		if cur, ok := r.tasks[h]; ok {
			if cur != t {
				panic(fmt.Sprintf("registry: %s is held by another task", h))
			}
			r.cancelRemoval(h)
			return h
		}
	} else {
		h = r.last + 1
		t.BindHandle(h)
	}

	r.insert(h, t)
	r.ctx.Logger.Debug("tween registered", map[string]interface{}{
		"handle":    uint64(h),
		"operation": "register",
		"duration":  t.Duration(),
		"curve":     t.Curve().Family.String(),
		"policy":    t.Policy().String(),
	})
	return h
}

// Add constructs a task with tween.New and registers it.
func (r *Registry) Add(start, end, duration float64) *tween.Task {
	t := tween.New(start, end, duration)
	r.Register(t)
	return t
}

// AddFromSettings constructs a task with tween.NewFromSettings and
// registers it.
func (r *Registry) AddFromSettings(s tween.Settings) *tween.Task {
	t := tween.NewFromSettings(s)
	r.Register(t)
	return t
}

// insert stores t under h and publishes TaskAdded.
func (r *Registry) insert(h tween.Handle, t *tween.Task) {
	r.tasks[h] = t
	r.order = append(r.order, h)
	if h > r.last {
		r.last = h
	}

	r.ctx.Metrics.Inc("tween_registered_total")
	r.ctx.Metrics.Set("tween_active", float64(r.Len()))
	r.bus.Publish(event.Event{Kind: event.TaskAdded, Handle: h})
}

// Tick advances every registered active task by one frame. Scaled tasks
// receive scaled, Unscaled tasks receive unscaled.
//
// Tasks are visited in registration order over the set captured when Tick
// starts. When a task crosses its boundary its completion callback runs,
// TaskCompleted is published, and then its policy is applied. Tasks queued
// for removal are dropped after the pass, in queue order.
//
// Calling Tick from inside a callback panics.
func (r *Registry) Tick(scaled, unscaled float64) {
	if r.ticking {
		panic("registry: Tick called re-entrantly from a callback")
	}
	r.ticking = true
	defer func() { r.ticking = false }()

	span := r.ctx.Tracer.StartSpan("registry.tick")
	defer span.End()

	pass := append([]tween.Handle(nil), r.order...)
	completed := 0
	for _, h := range pass {
		t, ok := r.tasks[h]
		if !ok || r.hidden[h] || !t.Active() {
			continue
		}

		delta := scaled
		if t.TimeScale() == tween.Unscaled {
			delta = unscaled
		}
		if !t.Tick(delta) {
			continue
		}

		completed++
		t.Complete()
		r.ctx.Metrics.Inc("tween_completed_total")
		r.bus.Publish(event.Event{Kind: event.TaskCompleted, Handle: h})

		// A callback may have removed, replaced or restored the task.
		if r.tasks[h] != t || r.hidden[h] || !t.Completed() {
			continue
		}
		r.applyPolicy(h, t)
	}

	removed := r.drain()

	span.SetAttribute("tasks", len(pass))
	span.SetAttribute("completed", completed)
	span.SetAttribute("removed", removed)
	r.ctx.Metrics.Inc("tween_ticks_total")
}

func (r *Registry) applyPolicy(h tween.Handle, t *tween.Task) {
	switch t.Policy() {
	case tween.Remove:
		r.enqueue(h)
	case tween.Deactivate:
		t.SetActive(false)
	case tween.Loop:
		t.Wrap()
	case tween.PingPong:
		t.Bounce()
	}
}

func (r *Registry) enqueue(h tween.Handle) {
	if r.doomed[h] {
		return
	}
	r.doomed[h] = true
	r.queue = append(r.queue, h)
}

func (r *Registry) cancelRemoval(h tween.Handle) {
	delete(r.doomed, h)
	delete(r.hidden, h)
}

// drain removes every handle still queued. Handlers notified here may
// queue more removals; those are drained in the same call.
func (r *Registry) drain() int {
	n := 0
	for i := 0; i < len(r.queue); i++ {
		h := r.queue[i]
		if !r.doomed[h] {
			continue
		}
		r.cancelRemoval(h)
		if r.removeNow(h, "tick") {
			n++
		}
	}
	r.queue = r.queue[:0]
	return n
}

// removeNow deletes h from storage and publishes TaskRemoved.
func (r *Registry) removeNow(h tween.Handle, operation string) bool {
	if _, ok := r.tasks[h]; !ok {
		return false
	}
	delete(r.tasks, h)
	for i, oh := range r.order {
		if oh == h {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.ctx.Logger.Debug("tween removed", map[string]interface{}{
		"handle":    uint64(h),
		"operation": operation,
	})
	r.ctx.Metrics.Inc("tween_removed_total")
	r.ctx.Metrics.Set("tween_active", float64(r.Len()))
	r.bus.Publish(event.Event{Kind: event.TaskRemoved, Handle: h})
	return true
}

// Remove cancels the task registered under h. Outside a tick the task is
// removed at once. During a tick it disappears from lookups immediately,
// is not advanced again, and is dropped when the pass ends.
// Remove reports false if h is not registered.
func (r *Registry) Remove(h tween.Handle) bool {
	if !r.Has(h) {
		return false
	}
	if r.ticking {
		r.hidden[h] = true
		r.enqueue(h)
		return true
	}
	return r.removeNow(h, "remove")
}

// TryRemove removes the task *h refers to and resets *h to tween.None on
// success. A nil pointer or a None handle is a no-op.
func (r *Registry) TryRemove(h *tween.Handle) bool {
	if h == nil || !h.Valid() {
		return false
	}
	if !r.Remove(*h) {
		return false
	}
	*h = tween.None
	return true
}

// Get returns the task registered under h.
func (r *Registry) Get(h tween.Handle) (*tween.Task, bool) {
	if r.hidden[h] {
		return nil, false
	}
	t, ok := r.tasks[h]
	return t, ok
}

// Has reports whether h refers to a registered task.
func (r *Registry) Has(h tween.Handle) bool {
	_, ok := r.Get(h)
	return ok
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.tasks) - len(r.hidden)
}

// Handles returns the registered handles in registration order.
func (r *Registry) Handles() []tween.Handle {
	out := make([]tween.Handle, 0, r.Len())
	for _, h := range r.order {
		if !r.hidden[h] {
			out = append(out, h)
		}
	}
	return out
}

// Clear removes every task, notifying each removal.
func (r *Registry) Clear() {
	for _, h := range r.Handles() {
		r.Remove(h)
	}
}

// Ticking reports whether a Tick is in progress.
func (r *Registry) Ticking() bool {
	return r.ticking
}

// OnAdded calls fn with the handle of every task registered or restored.
// The returned id can be passed to Unsubscribe.
func (r *Registry) OnAdded(fn func(tween.Handle)) string {
	return r.subscribe(event.TaskAdded, fn)
}

// OnRemoved calls fn with the handle of every task that leaves the registry.
func (r *Registry) OnRemoved(fn func(tween.Handle)) string {
	return r.subscribe(event.TaskRemoved, fn)
}

// OnCompleted calls fn each time a task crosses its boundary.
func (r *Registry) OnCompleted(fn func(tween.Handle)) string {
	return r.subscribe(event.TaskCompleted, fn)
}

func (r *Registry) subscribe(kind event.Kind, fn func(tween.Handle)) string {
	if fn == nil {
		panic("registry: nil " + string(kind) + " callback")
	}
	id, err := r.bus.Subscribe(kind, func(e event.Event) { fn(e.Handle) })
	if err != nil {
		panic(fmt.Sprintf("registry: failed to subscribe to %s: %v", kind, err))
	}
	return id
}

// Unsubscribe removes a subscription made with OnAdded, OnRemoved or
// OnCompleted. It reports false for an unknown id.
func (r *Registry) Unsubscribe(id string) bool {
	return r.bus.Unsubscribe(id) == nil
}
