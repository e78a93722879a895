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

// Package context provides the ExecutionContext shared by the tween registry
// and the frame engine.
//
// ExecutionContext carries the capabilities a running animation system needs:
//   - Standard Go context for cancellation of the frame loop
//   - Clock for measuring frame deltas
//   - Observability tools (Tracer, Metrics, Logger)
//
// All observability components default to NoOp implementations, so a registry
// built with a nil or bare context costs nothing extra per tick.
//
// Example usage:
//
//	ctx := context.NewExecutionContext(goCtx, clock.NewRealTimeClock())
//	ctx = ctx.WithLogger(context.NewSlogLogger(slog.Default()))
//	reg := registry.New(ctx)
package context

import (
	"context"

	"github.com/jazzpetri/tween/clock"
)

// ExecutionContext carries clock, cancellation and observability through the
// registry and engine.
type ExecutionContext struct {
	// Context is the standard Go context. Cancelling it stops Engine.Run.
	Context context.Context

	// Clock provides time for frame deltas and checkpoint timestamps.
	// Use VirtualClock for testing or RealTimeClock for production.
	Clock clock.Clock

	// Tracer handles span tracing.
	// Defaults to NoOpTracer which has zero overhead.
	Tracer Tracer

	// Metrics handles counters, gauges and histograms.
	// Defaults to NoOpMetrics which has zero overhead.
	Metrics MetricsCollector

	// Logger handles structured logging.
	// Defaults to NoOpLogger which has zero overhead.
	Logger Logger
}

// NewExecutionContext creates a new execution context with NoOp observability.
// A nil ctx becomes context.Background() and a nil clk a RealTimeClock.
func NewExecutionContext(ctx context.Context, clk clock.Clock) *ExecutionContext {
	ec := &ExecutionContext{
		Context: ctx,
		Clock:   clk,
		Tracer:  &NoOpTracer{},
		Metrics: &NoOpMetrics{},
		Logger:  &NoOpLogger{},
	}
	ec.ensureObservability()
	return ec
}

// Background returns an execution context on context.Background() and the
// real-time clock with every observability component disabled.
func Background() *ExecutionContext {
	return NewExecutionContext(context.Background(), clock.NewRealTimeClock())
}

// ensureObservability replaces any nil component with its default.
// It is safe to call on a context built as a struct literal.
func (e *ExecutionContext) ensureObservability() {
	if e.Context == nil {
		e.Context = context.Background()
	}
	if e.Clock == nil {
		e.Clock = clock.NewRealTimeClock()
	}
	if e.Logger == nil {
		e.Logger = &NoOpLogger{}
	}
	if e.Metrics == nil {
		e.Metrics = &NoOpMetrics{}
	}
	if e.Tracer == nil {
		e.Tracer = &NoOpTracer{}
	}
}

// Normalize fills nil components in place and returns e.
// A nil receiver yields Background().
func (e *ExecutionContext) Normalize() *ExecutionContext {
	if e == nil {
		return Background()
	}
	e.ensureObservability()
	return e
}

// GetLogger returns the logger, ensuring it's never nil.
func (e *ExecutionContext) GetLogger() Logger {
	if e.Logger == nil {
		e.Logger = &NoOpLogger{}
	}
	return e.Logger
}

// GetMetrics returns the metrics collector, ensuring it's never nil.
func (e *ExecutionContext) GetMetrics() MetricsCollector {
	if e.Metrics == nil {
		e.Metrics = &NoOpMetrics{}
	}
	return e.Metrics
}

// GetTracer returns the tracer, ensuring it's never nil.
func (e *ExecutionContext) GetTracer() Tracer {
	if e.Tracer == nil {
		e.Tracer = &NoOpTracer{}
	}
	return e.Tracer
}

// WithTracer returns a new context with the specified tracer.
func (e *ExecutionContext) WithTracer(tracer Tracer) *ExecutionContext {
	newCtx := *e
	newCtx.Tracer = tracer
	newCtx.ensureObservability()
	return &newCtx
}

// WithMetrics returns a new context with the specified metrics collector.
func (e *ExecutionContext) WithMetrics(metrics MetricsCollector) *ExecutionContext {
	newCtx := *e
	newCtx.Metrics = metrics
	newCtx.ensureObservability()
	return &newCtx
}

// WithLogger returns a new context with the specified logger.
func (e *ExecutionContext) WithLogger(logger Logger) *ExecutionContext {
	newCtx := *e
	newCtx.Logger = logger
	newCtx.ensureObservability()
	return &newCtx
}

// WithClock returns a new context driven by clk.
func (e *ExecutionContext) WithClock(clk clock.Clock) *ExecutionContext {
	newCtx := *e
	newCtx.Clock = clk
	newCtx.ensureObservability()
	return &newCtx
}

// WithContext returns a new context with the specified Go context.
// This is how an engine gets a cancellable lifetime of its own.
func (e *ExecutionContext) WithContext(ctx context.Context) *ExecutionContext {
	newCtx := *e
	newCtx.Context = ctx
	newCtx.ensureObservability()
	return &newCtx
}

// Clone returns a builder seeded with this context's components.
func (e *ExecutionContext) Clone() *ExecutionContextBuilder {
	return &ExecutionContextBuilder{
		ctx:     e.Context,
		clock:   e.Clock,
		logger:  e.Logger,
		metrics: e.Metrics,
		tracer:  e.Tracer,
	}
}
