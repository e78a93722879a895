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

import "time"

// HealthStatus represents the current health status of the engine.
type HealthStatus struct {
	// State is "healthy", "paused" or "stopped".
	State string `json:"state"`

	// EngineState is the EngineState string.
	EngineState string `json:"engine_state"`

	// Uptime is how long the frame loop has been running in total.
	Uptime time.Duration `json:"uptime_ms"`

	// LastFrame is when the last frame was stepped.
	LastFrame time.Time `json:"last_frame"`

	// Frames is the total number of frames stepped.
	Frames int64 `json:"frames"`

	// ActiveTasks is the number of registered tasks.
	ActiveTasks int `json:"active_tasks"`

	// PendingWork is the number of queued Do functions.
	PendingWork int `json:"pending_work"`

	// Config contains configuration information.
	Config map[string]interface{} `json:"config,omitempty"`
}

// HealthCheck returns the current health status of the engine.
//
// ActiveTasks reads the registry, so call HealthCheck from the goroutine
// that steps the engine (a Do function while the loop runs).
func (e *Engine) HealthCheck() *HealthStatus {
	stats := e.GetStatistics()
	engineState := e.GetState()

	e.workMu.Lock()
	pending := len(e.work)
	e.workMu.Unlock()

	status := &HealthStatus{
		EngineState: engineState.String(),
		Uptime:      stats.ExecutionTime,
		LastFrame:   stats.LastFrameTime,
		Frames:      stats.Frames,
		ActiveTasks: e.reg.Len(),
		PendingWork: pending,
		Config: map[string]interface{}{
			"frame_interval_ms": e.config.FrameInterval.Milliseconds(),
			"max_delta_ms":      e.config.MaxDelta.Milliseconds(),
			"time_scale":        e.timer.TimeScale(),
		},
	}

	switch {
	case engineState == EngineStopped:
		status.State = "stopped"
	case e.IsPaused():
		status.State = "paused"
	default:
		status.State = "healthy"
	}
	return status
}
