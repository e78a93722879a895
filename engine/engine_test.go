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
	stdcontext "context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazzpetri/tween/clock"
	"github.com/jazzpetri/tween/context"
	"github.com/jazzpetri/tween/registry"
	"github.com/jazzpetri/tween/tween"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type logEntry struct {
	level string
	msg   string
}

type captureLogger struct {
	entries []logEntry
}

func (c *captureLogger) Debug(msg string, fields map[string]interface{}) {
	c.entries = append(c.entries, logEntry{"debug", msg})
}

func (c *captureLogger) Info(msg string, fields map[string]interface{}) {
	c.entries = append(c.entries, logEntry{"info", msg})
}

func (c *captureLogger) Warn(msg string, fields map[string]interface{}) {
	c.entries = append(c.entries, logEntry{"warn", msg})
}

func (c *captureLogger) Error(msg string, fields map[string]interface{}) {
	c.entries = append(c.entries, logEntry{"error", msg})
}

func (c *captureLogger) count(level string) int {
	n := 0
	for _, e := range c.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

// newTestEngine returns an engine on a virtual clock, already primed so the
// next Step reports whatever the clock is advanced by.
func newTestEngine(t *testing.T, config Config) (*Engine, *clock.VirtualClock) {
	t.Helper()
	vc := clock.NewVirtualClock(epoch)
	ctx := context.NewExecutionContext(stdcontext.Background(), vc)
	eng := NewEngine(registry.New(ctx), ctx, config)
	require.NoError(t, eng.Step())
	return eng, vc
}

func frame(t *testing.T, eng *Engine, vc *clock.VirtualClock, d time.Duration) {
	t.Helper()
	vc.AdvanceBy(d)
	require.NoError(t, eng.Step())
}

func TestNewEngine_ConfigDefaults(t *testing.T) {
	logger := &captureLogger{}
	ctx := context.Background().WithLogger(logger)

	eng := NewEngine(nil, ctx, Config{FrameInterval: -1, MaxDelta: -1, TimeScale: -2})

	cfg := eng.Config()
	assert.Equal(t, DefaultFrameInterval, cfg.FrameInterval)
	assert.Equal(t, DefaultMaxDelta, cfg.MaxDelta)
	assert.Equal(t, DefaultTimeScale, cfg.TimeScale)
	assert.Equal(t, 3, logger.count("warn"))
	assert.NotNil(t, eng.Registry(), "nil registry is replaced")
	assert.Same(t, ctx, eng.ExecutionContext())
}

func TestStep_FirstFrameIsZero(t *testing.T) {
	vc := clock.NewVirtualClock(epoch)
	ctx := context.NewExecutionContext(stdcontext.Background(), vc)
	eng := NewEngine(nil, ctx, DefaultConfig())
	task := eng.Registry().Add(0, 1, 1)

	vc.AdvanceBy(time.Second)
	require.NoError(t, eng.Step())

	assert.Equal(t, 0.0, task.Elapsed())
}

func TestStep_AdvancesTasks(t *testing.T) {
	eng, vc := newTestEngine(t, DefaultConfig())
	task := eng.Registry().Add(0, 10, 1)

	frame(t, eng, vc, 100*time.Millisecond)

	assert.InDelta(t, 0.1, task.Elapsed(), 1e-9)
	assert.InDelta(t, 1.0, task.Value(), 1e-9)

	stats := eng.GetStatistics()
	assert.Equal(t, int64(2), stats.Frames)
	assert.InDelta(t, 0.1, stats.LastScaledDelta, 1e-9)
	assert.True(t, stats.LastFrameTime.Equal(epoch.Add(100*time.Millisecond)))
}

func TestStep_PauseFreezesScaledOnly(t *testing.T) {
	eng, vc := newTestEngine(t, DefaultConfig())
	world := eng.Registry().Add(0, 1, 10)
	menu := eng.Registry().Add(0, 1, 10).WithTimeScale(tween.Unscaled)

	eng.Pause()
	assert.True(t, eng.IsPaused())
	frame(t, eng, vc, 200*time.Millisecond)

	assert.Equal(t, 0.0, world.Elapsed())
	assert.InDelta(t, 0.2, menu.Elapsed(), 1e-9)

	eng.Resume()
	assert.False(t, eng.IsPaused())
	frame(t, eng, vc, 200*time.Millisecond)

	assert.InDelta(t, 0.2, world.Elapsed(), 1e-9)
	assert.InDelta(t, 0.4, menu.Elapsed(), 1e-9)
}

func TestStep_TimeScale(t *testing.T) {
	eng, vc := newTestEngine(t, DefaultConfig())
	world := eng.Registry().Add(0, 1, 10)
	ui := eng.Registry().Add(0, 1, 10).WithTimeScale(tween.Unscaled)

	eng.SetTimeScale(0.5)
	assert.Equal(t, 0.5, eng.TimeScale())
	frame(t, eng, vc, 200*time.Millisecond)

	assert.InDelta(t, 0.1, world.Elapsed(), 1e-9)
	assert.InDelta(t, 0.2, ui.Elapsed(), 1e-9)
}

func TestStep_MaxDelta(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDelta = 100 * time.Millisecond
	eng, vc := newTestEngine(t, cfg)
	task := eng.Registry().Add(0, 1, 10)

	frame(t, eng, vc, 3*time.Second)

	assert.InDelta(t, 0.1, task.Elapsed(), 1e-9)
}

func TestStartPaused(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartPaused = true
	eng, vc := newTestEngine(t, cfg)
	task := eng.Registry().Add(0, 1, 10)

	frame(t, eng, vc, time.Second/4)

	assert.True(t, eng.IsPaused())
	assert.Equal(t, 0.0, task.Elapsed())
}

func TestDo_RunsBeforeTickInOrder(t *testing.T) {
	eng, vc := newTestEngine(t, DefaultConfig())
	var order []string
	var task *tween.Task

	eng.Do(func(r *registry.Registry) {
		order = append(order, "first")
		task = r.Add(0, 1, 1)
	})
	eng.Do(func(r *registry.Registry) {
		order = append(order, "second")
	})
	eng.Do(nil)

	frame(t, eng, vc, 250*time.Millisecond)

	assert.Equal(t, []string{"first", "second"}, order)
	require.NotNil(t, task)
	assert.InDelta(t, 0.25, task.Elapsed(), 1e-9, "work queued with Do is ticked in the same frame")
}

func TestStatistics_CountsNotifications(t *testing.T) {
	eng, vc := newTestEngine(t, DefaultConfig())
	eng.Registry().Add(0, 1, 0.1)
	eng.Registry().Add(0, 1, 10).WithPolicy(tween.Loop)

	frame(t, eng, vc, 200*time.Millisecond)

	stats := eng.GetStatistics()
	assert.Equal(t, int64(2), stats.TasksAdded)
	assert.Equal(t, int64(1), stats.TasksCompleted)
	assert.Equal(t, int64(1), stats.TasksRemoved)
}

func TestStartStop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameInterval = time.Millisecond
	eng := NewEngine(nil, context.Background(), cfg)

	require.NoError(t, eng.Start())
	require.NoError(t, eng.Start(), "Start is idempotent")
	assert.True(t, eng.IsRunning())
	assert.Equal(t, EngineRunning, eng.GetState())
	assert.ErrorIs(t, eng.Step(), ErrRunning)

	ran := make(chan struct{})
	eng.Do(func(*registry.Registry) { close(ran) })

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("queued work did not run on the frame loop")
	}

	require.NoError(t, eng.Stop())
	require.NoError(t, eng.Stop(), "Stop is idempotent")
	assert.False(t, eng.IsRunning())
	assert.Equal(t, EngineStopped, eng.GetState())
	assert.Positive(t, eng.GetStatistics().Frames)
}

func TestStopAsync_FromLoopGoroutine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameInterval = time.Millisecond
	eng := NewEngine(nil, context.Background(), cfg)

	done := make(chan error, 1)
	go func() { done <- eng.Run() }()

	require.Eventually(t, eng.IsRunning, 2*time.Second, time.Millisecond)
	eng.Do(func(r *registry.Registry) {
		r.Register(tween.New(0, 1, 0.001).OnComplete(func(*tween.Task) {
			eng.StopAsync()
		}))
	})

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after StopAsync from a task callback")
	}
	assert.False(t, eng.IsRunning())

	eng.StopAsync()
	require.NoError(t, eng.Stop(), "stopping a stopped engine is a no-op")
}

func TestRun_ContextCancellation(t *testing.T) {
	goCtx, cancel := stdcontext.WithCancel(stdcontext.Background())
	cfg := DefaultConfig()
	cfg.FrameInterval = time.Millisecond
	eng := NewEngine(nil, context.Background().WithContext(goCtx), cfg)

	done := make(chan error, 1)
	go func() { done <- eng.Run() }()

	eng.Do(func(*registry.Registry) { cancel() })

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, stdcontext.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.False(t, eng.IsRunning())
}

func TestPauseState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameInterval = time.Millisecond
	eng := NewEngine(nil, context.Background(), cfg)

	require.NoError(t, eng.Start())
	defer eng.Stop()

	eng.Pause()
	eng.Pause()
	assert.Equal(t, EnginePaused, eng.GetState())
	assert.True(t, eng.IsPaused())

	eng.Resume()
	assert.Equal(t, EngineRunning, eng.GetState())
}

func TestEngineState_String(t *testing.T) {
	tests := []struct {
		state EngineState
		want  string
	}{
		{EngineStopped, "Stopped"},
		{EngineRunning, "Running"},
		{EnginePaused, "Paused"},
		{EngineState(99), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}
