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
	"github.com/jazzpetri/tween/tween"
)

// Snapshot captures a task's position in time together with a live
// reference to the task itself. Callbacks are not data, so restoring a
// snapshot re-registers the same object rather than rebuilding one.
type Snapshot struct {
	Handle  tween.Handle
	Elapsed float64
	Active  bool
	Reverse bool
	Task    *tween.Task
}

func snapshotOf(h tween.Handle, t *tween.Task) Snapshot {
	return Snapshot{
		Handle:  h,
		Elapsed: t.Elapsed(),
		Active:  t.Active(),
		Reverse: t.Reverse(),
		Task:    t,
	}
}

// SaveAll captures every registered task in registration order.
// It does not modify the registry.
func (r *Registry) SaveAll() []Snapshot {
	handles := r.Handles()
	out := make([]Snapshot, 0, len(handles))
	for _, h := range handles {
		out = append(out, snapshotOf(h, r.tasks[h]))
	}
	return out
}

// Save captures the given handles in argument order. Handles that are not
// registered are skipped.
func (r *Registry) Save(handles ...tween.Handle) []Snapshot {
	out := make([]Snapshot, 0, len(handles))
	for _, h := range handles {
		if t, ok := r.Get(h); ok {
			out = append(out, snapshotOf(h, t))
		}
	}
	return out
}

// RestoreAll puts every captured task back at its captured time.
//
// For each snapshot, a different task registered under the same handle is
// removed first. The captured task is then registered under its handle if
// it is not already, its elapsed time, active flag and direction are reset,
// and its completion latch is re-armed. Callbacks are left untouched.
//
// Restore is additive: tasks not named by any snapshot are kept. It may be
// called from a completion callback; a pending removal of a restored task
// is cancelled.
func (r *Registry) RestoreAll(snapshots []Snapshot) {
	restored := 0
	for _, s := range snapshots {
		if s.Task == nil || !s.Handle.Valid() {
			r.ctx.Logger.Warn("skipping invalid snapshot", map[string]interface{}{
				"handle":    uint64(s.Handle),
				"operation": "restore",
			})
			continue
		}
		r.restore(s)
		restored++
	}

	r.ctx.Logger.Info("registry restored", map[string]interface{}{
		"count":     restored,
		"operation": "restore",
	})
	r.ctx.Metrics.Add("tween_restored_total", float64(restored))
}

func (r *Registry) restore(s Snapshot) {
	h, t := s.Handle, s.Task
	t.BindHandle(h)

	if cur, ok := r.tasks[h]; ok && cur != t {
		r.cancelRemoval(h)
		r.removeNow(h, "restore")
	}

	t.WithReverse(s.Reverse)
	t.SetElapsed(s.Elapsed)
	t.SetActive(s.Active)
	t.Rearm()

	if _, ok := r.tasks[h]; ok {
		r.cancelRemoval(h)
		return
	}
	r.insert(h, t)
}
