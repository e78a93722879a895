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

package engine

import (
	"fmt"

	"github.com/jazzpetri/tween/registry"
	"github.com/jazzpetri/tween/state"
)

// Checkpoint captures the registry's tasks accepted by selector (all when
// nil), stamped with the engine clock.
//
// Like every direct registry access it must run on the goroutine that steps
// the engine: from the host loop, a task callback, or a Do function.
func (e *Engine) Checkpoint(label string, selector state.Selector) *state.Checkpoint {
	cp := state.Capture(e.reg, e.ctx.Clock, label, selector)

	e.ctx.Logger.Info("checkpoint created", map[string]interface{}{
		"label":     label,
		"tasks":     cp.Len(),
		"operation": "checkpoint",
	})
	e.ctx.Metrics.Inc("engine_checkpoints_total")
	return cp
}

// Rewind restores cp into the registry. Tasks created after the checkpoint
// keep running. The same goroutine rule as Checkpoint applies; use
// RewindAsync from other goroutines while the loop runs.
func (e *Engine) Rewind(cp *state.Checkpoint) error {
	if err := state.Restore(e.reg, cp); err != nil {
		return fmt.Errorf("failed to rewind: %w", err)
	}

	e.ctx.Logger.Info("engine state restored", map[string]interface{}{
		"label":     cp.Label,
		"timestamp": cp.Timestamp,
		"tasks":     cp.Len(),
		"operation": "restore",
	})
	return nil
}

// RewindAsync queues Rewind for the next frame. A nil checkpoint is
// rejected immediately.
func (e *Engine) RewindAsync(cp *state.Checkpoint) error {
	if cp == nil {
		return fmt.Errorf("failed to rewind: %w", state.ErrNilCheckpoint)
	}
	e.Do(func(*registry.Registry) {
		if err := e.Rewind(cp); err != nil {
			e.ctx.Logger.Error("rewind failed", map[string]interface{}{
				"label":     cp.Label,
				"error":     err.Error(),
				"operation": "restore",
			})
		}
	})
	return nil
}
