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

package curve

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	// DefaultSpringSamples is the number of simulation steps taken over the
	// normalized duration of a Spring curve.
	DefaultSpringSamples = 240

	DefaultSpringFrequency = 8.0
	DefaultSpringDamping   = 0.5
)

// Spring is a damped-spring response moving from 0 to 1 over normalized
// time. It is simulated once at construction and sampled afterwards.
//
// Frequency is the angular frequency in radians per normalized time unit and
// Damping is the damping ratio (< 1 oscillates, 1 is critical, > 1 is
// overdamped).
type Spring struct {
	Frequency float64
	Damping   float64

	samples []float64
}

var _ Curve = (*Spring)(nil)

// NewSpring simulates a spring with the given parameters. Non-positive
// frequency falls back to DefaultSpringFrequency and negative damping to 0.
func NewSpring(frequency, damping float64) *Spring {
	if !(frequency > 0) {
		frequency = DefaultSpringFrequency
	}
	damping = math.Max(0, damping)

	n := DefaultSpringSamples
	s := harmonica.NewSpring(1/float64(n), frequency, damping)
	samples := make([]float64, n+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= n; i++ {
		pos, vel = s.Update(pos, vel, 1)
		samples[i] = pos
	}

	// The simulation is not guaranteed to have settled by t = 1; spread the
	// residual linearly so the curve ends exactly at 1.
	residual := 1 - samples[n]
	for i := 1; i <= n; i++ {
		samples[i] += residual * float64(i) / float64(n)
	}
	samples[n] = 1

	return &Spring{Frequency: frequency, Damping: damping, samples: samples}
}

// Eval linearly interpolates the simulated samples. x is clamped to [0, 1];
// NaN is returned unchanged.
func (s *Spring) Eval(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	n := len(s.samples) - 1
	f := x * float64(n)
	i := int(f)
	frac := f - float64(i)
	return s.samples[i] + (s.samples[i+1]-s.samples[i])*frac
}
