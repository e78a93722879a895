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

// Tracer handles span tracing using OpenTelemetry or similar systems.
// Implementations should be thread-safe for concurrent use.
//
// Use NoOpTracer when tracing is disabled for zero overhead.
type Tracer interface {
	// StartSpan creates a new trace span with the given name.
	// The span should be ended by calling End() when the operation completes.
	//
	// Example:
	//   span := tracer.StartSpan("registry.tick")
	//   defer span.End()
	StartSpan(name string) Span
}

// Span represents a single trace span.
// Implementations must be safe for concurrent use.
type Span interface {
	// End marks the span as complete.
	// This should be called when the operation finishes, typically via defer.
	End()

	// SetAttribute adds a key-value attribute to the span.
	// Attributes provide additional context about the operation.
	//
	// Common attribute types:
	//   - string: textual information
	//   - int/int64: numeric values
	//   - bool: flags
	//   - float64: measurements
	SetAttribute(key string, value interface{})

	// RecordError records an error that occurred during the span.
	// This is separate from ending the span and can be called multiple times.
	RecordError(err error)
}

// MetricsCollector handles metrics collection using Prometheus or similar systems.
// Implementations should be thread-safe for concurrent use.
//
// The MetricsCollector provides methods for common metric types:
//   - Counters: monotonically increasing values (e.g., requests processed)
//   - Histograms: distributions of values (e.g., latencies)
//   - Gauges: values that can go up and down (e.g., queue size)
//
// Use NoOpMetrics when metrics are disabled for zero overhead.
type MetricsCollector interface {
	// Inc increments a counter metric by 1.
	// Counters are used for monotonically increasing values.
	//
	// Example:
	//   metrics.Inc("tween_completed_total")
	Inc(name string)

	// Add adds a value to a counter or gauge metric.
	// For counters, the value should be positive.
	// For gauges, the value can be positive or negative.
	//
	// Example:
	//   metrics.Add("tween_registered_total", 5)
	Add(name string, value float64)

	// Observe records a value in a histogram metric.
	// Histograms are used for tracking distributions (e.g., latencies).
	//
	// Example:
	//   metrics.Observe("engine_frame_delta_seconds", 0.016)
	Observe(name string, value float64)

	// Set sets a gauge metric to a specific value.
	// Gauges represent values that can go up and down.
	//
	// Example:
	//   metrics.Set("tween_active", 42)
	Set(name string, value float64)
}

// Logger handles structured logging with contextual fields.
// Implementations should be thread-safe for concurrent use.
//
// The Logger interface provides leveled logging methods that accept
// structured fields for rich context. Use map[string]interface{} for fields.
//
// Use NoOpLogger when logging is disabled for zero overhead.
type Logger interface {
	// Debug logs a debug-level message with optional fields.
	// Debug logs are typically used for detailed troubleshooting information.
	//
	// Example:
	//   logger.Debug("tween registered", map[string]interface{}{
	//       "handle": uint64(h),
	//       "operation": "register",
	//   })
	Debug(msg string, fields map[string]interface{})

	// Info logs an info-level message with optional fields.
	// Info logs are used for general informational messages.
	//
	// Example:
	//   logger.Info("registry restored", map[string]interface{}{
	//       "count": 3,
	//   })
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning-level message with optional fields.
	// Warnings indicate potentially problematic situations.
	//
	// Example:
	//   logger.Warn("frame delta capped", map[string]interface{}{
	//       "delta_seconds": 1.5,
	//   })
	Warn(msg string, fields map[string]interface{})

	// Error logs an error-level message with optional fields.
	// Errors indicate failure conditions that should be investigated.
	//
	// Example:
	//   logger.Error("preset load failed", map[string]interface{}{
	//       "path": path,
	//       "error": err.Error(),
	//   })
	Error(msg string, fields map[string]interface{})
}
