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

package tween

import (
	"fmt"
	"math"

	"github.com/jazzpetri/tween/curve"
)

// Settings bundles everything needed to construct tasks uniformly.
type Settings struct {
	Duration  float64
	Curve     curve.Config
	Policy    Policy
	TimeScale TimeScale
}

// DefaultSettings returns a one second linear tween that is removed on
// completion and follows scaled time.
func DefaultSettings() Settings {
	return Settings{Duration: 1}
}

// Validate reports whether tasks can be built from s.
func (s Settings) Validate() error {
	if !(s.Duration > 0) || math.IsInf(s.Duration, 1) {
		return fmt.Errorf("duration must be > 0, got %v", s.Duration)
	}
	if err := s.Curve.Validate(); err != nil {
		return err
	}
	return nil
}

// New builds a task from s; shorthand for NewFromSettings(s).
func (s Settings) New() *Task {
	return NewFromSettings(s)
}
