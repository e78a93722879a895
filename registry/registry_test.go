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

package registry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazzpetri/tween/context"
	"github.com/jazzpetri/tween/curve"
	"github.com/jazzpetri/tween/tween"
)

// recorder collects registry notifications in delivery order.
type recorder struct {
	events []string
}

func (rec *recorder) attach(r *Registry) {
	r.OnAdded(func(h tween.Handle) { rec.events = append(rec.events, "added "+h.String()) })
	r.OnCompleted(func(h tween.Handle) { rec.events = append(rec.events, "completed "+h.String()) })
	r.OnRemoved(func(h tween.Handle) { rec.events = append(rec.events, "removed "+h.String()) })
}

func newTestRegistry() (*Registry, *context.MemoryMetrics) {
	metrics := context.NewMemoryMetrics()
	return New(context.Background().WithMetrics(metrics)), metrics
}

func TestNew_NilContext(t *testing.T) {
	r := New(nil)
	require.NotNil(t, r)

	h := r.Register(tween.New(0, 1, 1))
	r.Tick(0.5, 0.5)
	assert.True(t, r.Has(h))
}

func TestRegister(t *testing.T) {
	r, metrics := newTestRegistry()
	rec := &recorder{}
	rec.attach(r)

	a, b := tween.New(0, 1, 1), tween.New(0, 1, 1)
	ha := r.Register(a)
	hb := r.Register(b)

	assert.Equal(t, tween.Handle(1), ha)
	assert.Equal(t, tween.Handle(2), hb)
	assert.Equal(t, ha, a.Handle())
	assert.Equal(t, []tween.Handle{ha, hb}, r.Handles())
	assert.Equal(t, []string{"added tween#1", "added tween#2"}, rec.events)
	assert.Equal(t, float64(2), metrics.Counter("tween_registered_total"))

	gauge, ok := metrics.Gauge("tween_active")
	require.True(t, ok)
	assert.Equal(t, float64(2), gauge)
}

func TestRegister_Idempotent(t *testing.T) {
	r, _ := newTestRegistry()
	rec := &recorder{}
	rec.attach(r)

	task := tween.New(0, 1, 1)
	h1 := r.Register(task)
	h2 := r.Register(task)

	assert.Equal(t, h1, h2)
	assert.Equal(t, 1, r.Len())
	assert.Len(t, rec.events, 1, "re-registration must not notify")
}

func TestRegister_AfterRemovalKeepsHandle(t *testing.T) {
	r, _ := newTestRegistry()

	task := tween.New(0, 1, 1)
	h := r.Register(task)
	require.True(t, r.Remove(h))

	r.Register(tween.New(0, 1, 1))
	assert.Equal(t, h, r.Register(task))
	assert.True(t, r.Has(h))
}

func TestRegister_NilPanics(t *testing.T) {
	r, _ := newTestRegistry()
	assert.Panics(t, func() { r.Register(nil) })
}

func TestAddHelpers(t *testing.T) {
	r, _ := newTestRegistry()

	task := r.Add(0, 10, 2)
	assert.True(t, r.Has(task.Handle()))

	s := tween.Settings{
		Duration:  0.5,
		Curve:     curve.Of(curve.SineOut),
		Policy:    tween.Deactivate,
		TimeScale: tween.Unscaled,
	}
	fromSettings := r.AddFromSettings(s)
	assert.True(t, r.Has(fromSettings.Handle()))
	assert.Equal(t, tween.Deactivate, fromSettings.Policy())
	assert.Equal(t, tween.Unscaled, fromSettings.TimeScale())
}

func TestTick_ConcreteScenario(t *testing.T) {
	r, metrics := newTestRegistry()

	completions := 0
	task := tween.New(0, 10, 2.0).OnComplete(func(*tween.Task) { completions++ })
	h := r.Register(task)

	r.Tick(1.0, 1.0)
	assert.Equal(t, 5.0, task.Float(0, 10))
	assert.Equal(t, 0, completions)

	r.Tick(1.0, 1.0)
	assert.Equal(t, 1, completions)
	assert.False(t, r.Has(h), "Remove policy drops the task at the end of the tick")
	assert.Equal(t, float64(1), metrics.Counter("tween_completed_total"))
	assert.Equal(t, float64(1), metrics.Counter("tween_removed_total"))
	assert.Equal(t, float64(2), metrics.Counter("tween_ticks_total"))
}

func TestTick_TimeScaleSelection(t *testing.T) {
	r, _ := newTestRegistry()

	scaled := r.Add(0, 1, 10)
	unscaled := r.Add(0, 1, 10).WithTimeScale(tween.Unscaled)

	r.Tick(0, 0.5)

	assert.Equal(t, 0.0, scaled.Elapsed())
	assert.Equal(t, 0.5, unscaled.Elapsed())
}

func TestTick_InactiveTasksFrozen(t *testing.T) {
	r, _ := newTestRegistry()

	task := r.Add(0, 1, 1)
	task.SetActive(false)
	r.Tick(5, 5)

	assert.Equal(t, 0.0, task.Elapsed())
	assert.True(t, r.Has(task.Handle()))
}

func TestTick_RegisteredDuringTickNotAdvanced(t *testing.T) {
	r, _ := newTestRegistry()

	var spawned *tween.Task
	first := tween.New(0, 1, 1).OnComplete(func(*tween.Task) {
		spawned = r.Add(0, 1, 1)
	})
	r.Register(first)
	second := r.Add(0, 1, 4)

	r.Tick(1, 1)

	require.NotNil(t, spawned)
	assert.True(t, r.Has(spawned.Handle()))
	assert.Equal(t, 0.0, spawned.Elapsed(), "task registered mid-tick must wait for the next tick")
	assert.Equal(t, 1.0, second.Elapsed(), "tasks after the completing one are still advanced")
	assert.False(t, r.Has(first.Handle()))

	r.Tick(0.25, 0.25)
	assert.Equal(t, 0.25, spawned.Elapsed())
}

func TestTick_RemovedNotificationsAfterPass(t *testing.T) {
	r, _ := newTestRegistry()
	var log []string

	a := tween.New(0, 1, 1).OnUpdate(func(*tween.Task) { log = append(log, "update a") })
	b := tween.New(0, 1, 1).OnUpdate(func(*tween.Task) { log = append(log, "update b") })
	r.Register(a)
	r.Register(b)
	r.OnRemoved(func(h tween.Handle) { log = append(log, "removed "+h.String()) })

	r.Tick(1, 1)

	assert.Equal(t, []string{
		"update a",
		"update b",
		"removed tween#1",
		"removed tween#2",
	}, log)
}

func TestTick_RemoveDuringTick(t *testing.T) {
	r, _ := newTestRegistry()
	rec := &recorder{}

	victim := tween.New(0, 1, 10)
	var sawVictim bool
	killer := tween.New(0, 1, 10).OnUpdate(func(*tween.Task) {
		assert.True(t, r.Remove(victim.Handle()))
		assert.False(t, r.Remove(victim.Handle()), "second Remove during tick reports false")
		sawVictim = r.Has(victim.Handle())
	})
	r.Register(killer)
	r.Register(victim)
	rec.attach(r)

	r.Tick(1, 1)

	assert.False(t, sawVictim, "Has must stop reporting the handle at once")
	assert.Equal(t, 0.0, victim.Elapsed(), "removed task must not be advanced")
	assert.Equal(t, []string{"removed tween#2"}, rec.events)
	assert.Equal(t, []tween.Handle{killer.Handle()}, r.Handles())
}

func TestTick_ReentrantPanics(t *testing.T) {
	r, _ := newTestRegistry()

	r.Register(tween.New(0, 1, 1).OnUpdate(func(*tween.Task) {
		r.Tick(1, 1)
	}))

	assert.PanicsWithValue(t, "registry: Tick called re-entrantly from a callback", func() {
		r.Tick(0.1, 0.1)
	})
	assert.False(t, r.Ticking())
}

func TestTick_Policies(t *testing.T) {
	t.Run("deactivate", func(t *testing.T) {
		r, _ := newTestRegistry()
		task := r.Add(0, 1, 1).WithPolicy(tween.Deactivate)

		r.Tick(1.5, 1.5)
		assert.True(t, r.Has(task.Handle()))
		assert.False(t, task.Active())

		r.Tick(1, 1)
		assert.Equal(t, 1.5, task.Elapsed())
		assert.Equal(t, 1.0, task.Weight())
	})

	t.Run("loop", func(t *testing.T) {
		r, _ := newTestRegistry()
		cycles := 0
		task := r.Add(0, 1, 1).
			WithPolicy(tween.Loop).
			OnComplete(func(*tween.Task) { cycles++ })

		r.Tick(0.75, 0.75)
		r.Tick(0.75, 0.75)
		assert.Equal(t, 1, cycles)
		assert.Equal(t, 0.5, task.Elapsed())

		r.Tick(0.75, 0.75)
		assert.Equal(t, 2, cycles)
		assert.Equal(t, 0.25, task.Elapsed())
		assert.True(t, r.Has(task.Handle()))
	})

	t.Run("ping-pong", func(t *testing.T) {
		r, _ := newTestRegistry()
		task := r.Add(0, 1, 1).WithPolicy(tween.PingPong)

		r.Tick(0.75, 0.75)
		r.Tick(0.75, 0.75)
		assert.True(t, task.Reverse())
		assert.Equal(t, 0.5, task.Elapsed())

		r.Tick(0.75, 0.75)
		assert.False(t, task.Reverse())
		assert.Equal(t, 0.25, task.Elapsed())
	})
}

func TestRemove_Idempotent(t *testing.T) {
	r, _ := newTestRegistry()
	rec := &recorder{}
	rec.attach(r)

	h := r.Register(tween.New(0, 1, 1))

	assert.True(t, r.Remove(h))
	assert.False(t, r.Remove(h))
	assert.False(t, r.Remove(tween.Handle(999)))
	assert.False(t, r.Remove(tween.None))
	assert.Equal(t, []string{"added tween#1", "removed tween#1"}, rec.events)
}

func TestTryRemove(t *testing.T) {
	r, _ := newTestRegistry()

	assert.False(t, r.TryRemove(nil))

	empty := tween.None
	assert.False(t, r.TryRemove(&empty))

	h := r.Register(tween.New(0, 1, 1))
	cached := h
	assert.True(t, r.TryRemove(&cached))
	assert.Equal(t, tween.None, cached)

	stale := h
	assert.False(t, r.TryRemove(&stale))
	assert.Equal(t, h, stale, "a failed TryRemove leaves the handle alone")
}

func TestGet(t *testing.T) {
	r, _ := newTestRegistry()

	task := tween.New(0, 1, 1)
	h := r.Register(task)

	got, ok := r.Get(h)
	require.True(t, ok)
	assert.Same(t, task, got)

	_, ok = r.Get(tween.Handle(42))
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	r, _ := newTestRegistry()
	r.Add(0, 1, 1)
	r.Add(0, 1, 1)

	var removed []tween.Handle
	r.OnRemoved(func(h tween.Handle) { removed = append(removed, h) })
	r.Clear()

	assert.Equal(t, 0, r.Len())
	assert.Equal(t, []tween.Handle{1, 2}, removed)
}

func TestUnsubscribe(t *testing.T) {
	r, _ := newTestRegistry()

	calls := 0
	id := r.OnAdded(func(tween.Handle) { calls++ })
	r.Add(0, 1, 1)
	assert.True(t, r.Unsubscribe(id))
	assert.False(t, r.Unsubscribe(id))
	r.Add(0, 1, 1)

	assert.Equal(t, 1, calls)
}

func TestOwnerClearsCachedHandle(t *testing.T) {
	r, _ := newTestRegistry()

	type door struct{ fade tween.Handle }
	d := &door{}
	r.OnRemoved(func(h tween.Handle) {
		if h == d.fade {
			d.fade = tween.None
		}
	})

	d.fade = r.Add(0, 1, 0.5).Handle()
	r.Tick(0.5, 0.5)

	assert.Equal(t, tween.None, d.fade)
}

func TestTick_NaNDeltaWithCustomCurves(t *testing.T) {
	r, _ := newTestRegistry()

	curves := []curve.Curve{
		curve.MustKeyframes(curve.Key{Time: 0, Value: 0}, curve.Key{Time: 1, Value: 1}),
		curve.NewSpring(curve.DefaultSpringFrequency, curve.DefaultSpringDamping),
		curve.NewBezier(0.42, 0, 0.58, 1),
	}
	var weights []float64
	for _, c := range curves {
		r.Register(tween.New(0, 1, 1).
			WithCurve(curve.Config{Family: curve.Custom, Custom: c}).
			OnUpdate(func(t *tween.Task) { weights = append(weights, t.Weight()) }))
	}

	require.NotPanics(t, func() { r.Tick(math.NaN(), 0) })
	assert.Equal(t, []float64{0, 0, 0}, weights)
	assert.Equal(t, 3, r.Len())
}

func TestTick_SineCompletesAtExactlyOne(t *testing.T) {
	r, _ := newTestRegistry()

	var got float64
	r.Register(tween.New(0, 1, 1).
		WithCurve(curve.Of(curve.SineIn)).
		OnComplete(func(t *tween.Task) { got = t.Value() }))
	r.Tick(1, 1)

	assert.Equal(t, 1.0, got)
}
