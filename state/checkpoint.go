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

// Package state provides checkpoints and an audit log over a tween registry.
//
// A Checkpoint is the "checkpoint collaborator" of a registry: it decides
// which subset of the live tasks is worth capturing and can later put those
// tasks back at exactly the captured time. Checkpoints live in memory only;
// they hold references to live tasks and are not serializable.
//
// Example usage:
//
//	cp := state.Capture(reg, clk, "room-4", func(t *tween.Task) bool {
//	    return t.Policy() != tween.Remove
//	})
//	...
//	if err := state.Restore(reg, cp); err != nil {
//	    return err
//	}
package state

import (
	"errors"
	"time"

	"github.com/jazzpetri/tween/clock"
	"github.com/jazzpetri/tween/registry"
	"github.com/jazzpetri/tween/tween"
)

var (
	// ErrNilCheckpoint is returned by Restore when no checkpoint is given.
	ErrNilCheckpoint = errors.New("checkpoint is nil")

	// ErrNilRegistry is returned by Restore when no registry is given.
	ErrNilRegistry = errors.New("registry is nil")
)

// Selector picks the tasks a checkpoint captures.
type Selector func(t *tween.Task) bool

// Checkpoint is a labelled set of registry snapshots.
type Checkpoint struct {
	// Label names the checkpoint, e.g. a room or save-point id.
	Label string

	// Timestamp is when the checkpoint was captured.
	Timestamp time.Time

	// Snapshots are in registration order.
	Snapshots []registry.Snapshot
}

// Capture snapshots every task in reg accepted by selector. A nil selector
// accepts all tasks and a nil clk stamps the checkpoint with real time.
func Capture(reg *registry.Registry, clk clock.Clock, label string, selector Selector) *Checkpoint {
	if clk == nil {
		clk = clock.NewRealTimeClock()
	}

	var snaps []registry.Snapshot
	for _, s := range reg.SaveAll() {
		if selector == nil || selector(s.Task) {
			snaps = append(snaps, s)
		}
	}

	return &Checkpoint{
		Label:     label,
		Timestamp: clk.Now(),
		Snapshots: snaps,
	}
}

// Restore puts the checkpoint's tasks back into reg at their captured time.
// Tasks created after the checkpoint are left alone.
func Restore(reg *registry.Registry, cp *Checkpoint) error {
	if cp == nil {
		return ErrNilCheckpoint
	}
	if reg == nil {
		return ErrNilRegistry
	}
	reg.RestoreAll(cp.Snapshots)
	return nil
}

// Len returns the number of captured tasks.
func (c *Checkpoint) Len() int {
	return len(c.Snapshots)
}

// Handles returns the captured handles in capture order.
func (c *Checkpoint) Handles() []tween.Handle {
	out := make([]tween.Handle, len(c.Snapshots))
	for i, s := range c.Snapshots {
		out[i] = s.Handle
	}
	return out
}

// Contains reports whether h was captured.
func (c *Checkpoint) Contains(h tween.Handle) bool {
	for _, s := range c.Snapshots {
		if s.Handle == h {
			return true
		}
	}
	return false
}

// Clone returns a copy with its own snapshot slice. The snapshots still
// refer to the same live tasks.
func (c *Checkpoint) Clone() *Checkpoint {
	clone := *c
	clone.Snapshots = append([]registry.Snapshot(nil), c.Snapshots...)
	return &clone
}
