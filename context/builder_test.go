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

package context

import (
	"context"
	"testing"
	"time"

	"github.com/jazzpetri/tween/clock"
)

func TestExecutionContextBuilder(t *testing.T) {
	vc := clock.NewVirtualClock(time.Unix(0, 0))
	logger := &mockLogger{}
	metrics := NewMemoryMetrics()
	tracer := &mockTracer{}

	ctx := NewExecutionContextBuilder().
		WithContext(context.Background()).
		WithClock(vc).
		WithLogger(logger).
		WithMetrics(metrics).
		WithTracer(tracer).
		Build()

	if ctx.Clock != vc {
		t.Error("Builder should set Clock")
	}
	if ctx.Logger != logger {
		t.Error("Builder should set Logger")
	}
	if ctx.Metrics != metrics {
		t.Error("Builder should set Metrics")
	}
	if ctx.Tracer != tracer {
		t.Error("Builder should set Tracer")
	}
}

func TestExecutionContextBuilder_Defaults(t *testing.T) {
	ctx := NewExecutionContextBuilder().Build()

	if ctx.Context == nil || ctx.Clock == nil {
		t.Error("Builder should default Context and Clock")
	}
	if _, ok := ctx.Logger.(*NoOpLogger); !ok {
		t.Errorf("default Logger = %T, expected *NoOpLogger", ctx.Logger)
	}
}

func TestExecutionContextBuilder_NilOverrides(t *testing.T) {
	ctx := NewExecutionContextBuilder().
		WithLogger(nil).
		WithMetrics(nil).
		WithTracer(nil).
		WithClock(nil).
		Build()

	if ctx.Logger == nil || ctx.Metrics == nil || ctx.Tracer == nil || ctx.Clock == nil {
		t.Error("Build() should replace nil components with defaults")
	}
}

func TestClone(t *testing.T) {
	logger := &mockLogger{}
	vc := clock.NewVirtualClock(time.Unix(0, 0))
	original := Background().WithLogger(logger).WithClock(vc)

	metrics := NewMemoryMetrics()
	cloned := original.Clone().WithMetrics(metrics).Build()

	if cloned.Logger != logger || cloned.Clock != vc {
		t.Error("Clone() should carry over existing components")
	}
	if cloned.Metrics != metrics {
		t.Error("Clone() builder should apply overrides")
	}
	if original.Metrics == metrics {
		t.Error("Clone() should not modify the original")
	}
}
