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
	"log/slog"
	"sort"
)

// SlogLogger adapts a *slog.Logger to the Logger interface.
// Fields are emitted as attributes in key order so output is stable.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps l. A nil l uses slog.Default().
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{logger: l}
}

// Slog returns the wrapped logger.
func (s *SlogLogger) Slog() *slog.Logger {
	return s.logger
}

// Debug logs at slog.LevelDebug.
func (s *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	s.log(slog.LevelDebug, msg, fields)
}

// Info logs at slog.LevelInfo.
func (s *SlogLogger) Info(msg string, fields map[string]interface{}) {
	s.log(slog.LevelInfo, msg, fields)
}

// Warn logs at slog.LevelWarn.
func (s *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	s.log(slog.LevelWarn, msg, fields)
}

// Error logs at slog.LevelError.
func (s *SlogLogger) Error(msg string, fields map[string]interface{}) {
	s.log(slog.LevelError, msg, fields)
}

func (s *SlogLogger) log(level slog.Level, msg string, fields map[string]interface{}) {
	ctx := context.Background()
	if !s.logger.Enabled(ctx, level) {
		return
	}
	s.logger.LogAttrs(ctx, level, msg, attrs(fields)...)
}

func attrs(fields map[string]interface{}) []slog.Attr {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, fields[k]))
	}
	return out
}
