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

// Package engine provides the frame engine that drives a tween registry.
//
// The engine owns a clock.FrameTimer and calls Registry.Tick exactly once per
// frame with the scaled and unscaled deltas. It can be driven two ways:
//
// Host-driven: the host's own update loop calls Step once per frame.
//
// Self-driven: Start (or Run) ticks on a time.Ticker every FrameInterval
// until Stop is called or the ExecutionContext's Context is cancelled.
//
// The registry is single-threaded. While the engine runs, other goroutines
// reach it through Do, which queues work to execute on the loop goroutine
// before the next tick.
//
// # Usage Example
//
//	reg := registry.New(ctx)
//	eng := engine.NewEngine(reg, ctx, engine.DefaultConfig())
//	eng.Start()
//	defer eng.Stop()
//
//	eng.Do(func(r *registry.Registry) {
//	    r.Register(tween.New(0, 1, 0.5).OnUpdate(setAlpha))
//	})
package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jazzpetri/tween/clock"
	"github.com/jazzpetri/tween/context"
	"github.com/jazzpetri/tween/registry"
	"github.com/jazzpetri/tween/tween"
)

// ErrRunning is returned by Step while the frame loop owns the registry.
var ErrRunning = errors.New("engine running: use Do to reach the registry")

// EngineState represents the current state of the frame engine.
type EngineState int

const (
	// EngineStopped indicates the frame loop is not running.
	EngineStopped EngineState = iota

	// EngineRunning indicates the frame loop is ticking the registry.
	EngineRunning

	// EnginePaused indicates the loop runs with scaled time frozen.
	// Unscaled tasks keep animating.
	EnginePaused
)

// String returns a string representation of the engine state.
func (s EngineState) String() string {
	switch s {
	case EngineStopped:
		return "Stopped"
	case EngineRunning:
		return "Running"
	case EnginePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// ExecutionStatistics tracks frame engine activity.
type ExecutionStatistics struct {
	// Frames is the number of registry ticks performed.
	Frames int64

	// TasksAdded, TasksCompleted and TasksRemoved count registry
	// notifications seen since the engine was created.
	TasksAdded     int64
	TasksCompleted int64
	TasksRemoved   int64

	// LastScaledDelta and LastUnscaledDelta are the most recent frame deltas
	// in seconds.
	LastScaledDelta   float64
	LastUnscaledDelta float64

	// ExecutionTime is the total time the frame loop has been running.
	ExecutionTime time.Duration

	// StartTime is when the frame loop was last started.
	StartTime time.Time

	// LastFrameTime is when the last frame was stepped.
	LastFrameTime time.Time
}

// Engine steps a tween registry from a frame timer.
//
// Step, Do, Pause, Resume, SetTimeScale and GetStatistics are safe for
// concurrent use. The registry itself must only be touched from the
// goroutine that steps it.
type Engine struct {
	// reg is the registry being driven
	reg *registry.Registry

	// ctx is the execution context with observability
	ctx *context.ExecutionContext

	// config holds the engine configuration
	config Config

	// timer produces the scaled and unscaled frame deltas
	timer *clock.FrameTimer

	// Execution state
	state   EngineState
	mu      sync.RWMutex
	stepMu  sync.Mutex
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool

	// work holds functions queued by Do
	work   []func(*registry.Registry)
	workMu sync.Mutex

	// Statistics tracking
	stats   ExecutionStatistics
	statsMu sync.RWMutex
}

// NewEngine creates a new frame engine for reg.
//
// Configuration Validation:
// Invalid FrameInterval, MaxDelta or TimeScale values are replaced with
// their defaults and a warning is logged.
//
// The engine is created stopped. Call Step from the host loop, or Start to
// run a loop of its own.
func NewEngine(reg *registry.Registry, ctx *context.ExecutionContext, config Config) *Engine {
	ctx = ctx.Normalize()
	if reg == nil {
		reg = registry.New(ctx)
	}

	if config.FrameInterval <= 0 {
		ctx.Logger.Warn("invalid frame interval, using default", map[string]interface{}{
			"frame_interval": config.FrameInterval.String(),
			"default":        DefaultFrameInterval.String(),
			"operation":      "engine_init",
		})
		config.FrameInterval = DefaultFrameInterval
	}
	if config.MaxDelta < 0 {
		ctx.Logger.Warn("invalid max delta, using default", map[string]interface{}{
			"max_delta": config.MaxDelta.String(),
			"default":   DefaultMaxDelta.String(),
			"operation": "engine_init",
		})
		config.MaxDelta = DefaultMaxDelta
	}
	if config.Validate() != nil {
		ctx.Logger.Warn("invalid time scale, using default", map[string]interface{}{
			"time_scale": config.TimeScale,
			"default":    DefaultTimeScale,
			"operation":  "engine_init",
		})
		config.TimeScale = DefaultTimeScale
	}

	timer := clock.NewFrameTimer(ctx.Clock)
	timer.SetMaxDelta(config.MaxDelta)
	timer.SetTimeScale(config.TimeScale)

	e := &Engine{
		reg:    reg,
		ctx:    ctx,
		config: config,
		timer:  timer,
		state:  EngineStopped,
		work:   make([]func(*registry.Registry), 0, DefaultWorkQueueSize),
	}
	if config.StartPaused {
		timer.Pause()
	}

	reg.OnAdded(func(tween.Handle) { e.count(&e.stats.TasksAdded) })
	reg.OnCompleted(func(tween.Handle) { e.count(&e.stats.TasksCompleted) })
	reg.OnRemoved(func(tween.Handle) { e.count(&e.stats.TasksRemoved) })

	return e
}

func (e *Engine) count(n *int64) {
	e.statsMu.Lock()
	*n++
	e.statsMu.Unlock()
}

// Registry returns the registry driven by this engine.
func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

// ExecutionContext returns the execution context used by this engine.
func (e *Engine) ExecutionContext() *context.ExecutionContext {
	return e.ctx
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Do queues fn to run with the registry before the next tick, on the
// goroutine that steps the engine. Queued functions run in call order.
func (e *Engine) Do(fn func(*registry.Registry)) {
	if fn == nil {
		return
	}
	e.workMu.Lock()
	e.work = append(e.work, fn)
	e.workMu.Unlock()
}

func (e *Engine) drainWork() int {
	e.workMu.Lock()
	work := e.work
	e.work = make([]func(*registry.Registry), 0, DefaultWorkQueueSize)
	e.workMu.Unlock()

	for _, fn := range work {
		fn(e.reg)
	}
	return len(work)
}

// Step performs one host frame: it runs queued Do work, reads the frame
// deltas and ticks the registry once.
//
// Returns ErrRunning if the engine's own loop is running.
func (e *Engine) Step() error {
	e.mu.RLock()
	running := e.running
	e.mu.RUnlock()
	if running {
		return ErrRunning
	}
	e.step()
	return nil
}

func (e *Engine) step() {
	e.stepMu.Lock()
	defer e.stepMu.Unlock()

	e.drainWork()

	scaled, unscaled := e.timer.Frame()
	e.reg.Tick(scaled, unscaled)

	e.statsMu.Lock()
	e.stats.Frames++
	e.stats.LastScaledDelta = scaled
	e.stats.LastUnscaledDelta = unscaled
	e.stats.LastFrameTime = e.ctx.Clock.Now()
	e.statsMu.Unlock()

	e.ctx.Metrics.Inc("engine_frames_total")
	e.ctx.Metrics.Observe("engine_frame_delta_seconds", unscaled)
}

// Start begins the frame loop in a background goroutine.
//
// Calling Start while the engine is running has no effect.
func (e *Engine) Start() error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil
	}
	e.begin()
	stopCh, doneCh := e.stopCh, e.doneCh
	e.mu.Unlock()

	go e.loop(stopCh, doneCh)
	return nil
}

// Run runs the frame loop on the calling goroutine until Stop is called or
// the context is cancelled. It returns the context's error on cancellation
// and nil after Stop.
func (e *Engine) Run() error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return fmt.Errorf("engine already running")
	}
	e.begin()
	stopCh, doneCh := e.stopCh, e.doneCh
	e.mu.Unlock()

	return e.loop(stopCh, doneCh)
}

// begin must be called with mu held.
func (e *Engine) begin() {
	e.running = true
	e.state = EngineRunning
	if e.timer.Paused() {
		e.state = EnginePaused
	}
	e.stopCh = make(chan struct{})
	e.doneCh = make(chan struct{})

	e.statsMu.Lock()
	e.stats.StartTime = e.ctx.Clock.Now()
	e.statsMu.Unlock()

	e.ctx.Logger.Info("engine started", map[string]interface{}{
		"frame_interval": e.config.FrameInterval.String(),
		"time_scale":     e.timer.TimeScale(),
		"operation":      "start",
	})
}

// loop is the frame loop. It ticks every FrameInterval.
func (e *Engine) loop(stopCh, doneCh chan struct{}) error {
	defer close(doneCh)
	defer e.finish()

	span := e.ctx.Tracer.StartSpan("engine.run")
	defer span.End()

	// The first frame after a (re)start reports zero.
	e.timer.Reset()

	ticker := time.NewTicker(e.config.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			e.ctx.Logger.Info("engine stopped", map[string]interface{}{
				"state":     "stopping",
				"operation": "stop",
			})
			return nil

		case <-e.ctx.Context.Done():
			err := e.ctx.Context.Err()
			span.RecordError(err)
			e.ctx.Logger.Info("engine stopped due to context cancellation", map[string]interface{}{
				"error":     err.Error(),
				"operation": "cancel",
			})
			return err

		case <-ticker.C:
			e.step()
		}
	}
}

func (e *Engine) finish() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = false
	e.state = EngineStopped

	e.statsMu.Lock()
	if !e.stats.StartTime.IsZero() {
		e.stats.ExecutionTime += e.ctx.Clock.Now().Sub(e.stats.StartTime)
		e.stats.StartTime = time.Time{}
	}
	e.statsMu.Unlock()
}

// Stop stops the frame loop and waits for it to exit.
//
// Calling Stop on a stopped engine is safe and has no effect. Stop must not
// be called from the loop goroutine (a Do function or a task callback while
// the loop runs): the wait would never end. Use StopAsync there.
func (e *Engine) Stop() error {
	doneCh := e.requestStop()
	if doneCh != nil {
		<-doneCh
	}
	return nil
}

// StopAsync asks the frame loop to exit after the current frame and returns
// without waiting. It is safe to call from the loop goroutine.
func (e *Engine) StopAsync() {
	e.requestStop()
}

// requestStop closes stopCh once and returns the loop's done channel, or nil
// if the loop is not running.
func (e *Engine) requestStop() chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return nil
	}
	select {
	case <-e.stopCh:
	default:
		close(e.stopCh)
	}
	return e.doneCh
}

// IsRunning returns true if the frame loop is running (paused or not).
func (e *Engine) IsRunning() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

// GetState returns the current state of the engine.
func (e *Engine) GetState() EngineState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// IsPaused returns true if scaled time is frozen.
func (e *Engine) IsPaused() bool {
	return e.timer.Paused()
}

// Pause freezes scaled time. Unscaled tasks keep animating, which is what
// pause menus and scene fades rely on. Pausing twice is a no-op.
func (e *Engine) Pause() {
	if e.timer.Paused() {
		return
	}
	e.timer.Pause()

	e.mu.Lock()
	if e.running {
		e.state = EnginePaused
	}
	e.mu.Unlock()

	e.ctx.Logger.Info("engine paused", map[string]interface{}{
		"state":     e.GetState().String(),
		"operation": "pause",
	})
}

// Resume unfreezes scaled time.
func (e *Engine) Resume() {
	if !e.timer.Paused() {
		return
	}
	e.timer.Resume()

	e.mu.Lock()
	if e.running {
		e.state = EngineRunning
	}
	e.mu.Unlock()

	e.ctx.Logger.Info("engine resumed", map[string]interface{}{
		"state":     e.GetState().String(),
		"operation": "resume",
	})
}

// SetTimeScale sets the multiplier applied to scaled deltas. Negative
// values are treated as 0.
func (e *Engine) SetTimeScale(scale float64) {
	e.timer.SetTimeScale(scale)
	e.ctx.Metrics.Set("engine_time_scale", e.timer.TimeScale())
}

// TimeScale returns the current scaled-delta multiplier.
func (e *Engine) TimeScale() float64 {
	return e.timer.TimeScale()
}

// GetStatistics returns a snapshot of the execution statistics.
func (e *Engine) GetStatistics() *ExecutionStatistics {
	e.statsMu.RLock()
	defer e.statsMu.RUnlock()

	statsCopy := e.stats
	if !e.stats.StartTime.IsZero() {
		statsCopy.ExecutionTime += e.ctx.Clock.Now().Sub(e.stats.StartTime)
	}
	return &statsCopy
}
