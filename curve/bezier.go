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

	bez "honnef.co/go/curve"
)

// bezierEpsilon is the tolerance for accepting a cubic root as lying in [0, 1].
const bezierEpsilon = 1e-9

// Bezier is a timing curve in the style of CSS cubic-bezier(x1, y1, x2, y2).
// The end points are fixed at (0, 0) and (1, 1).
type Bezier struct {
	c bez.CubicBez
}

var _ Curve = Bezier{}

// NewBezier returns the timing curve with control points (x1, y1) and
// (x2, y2). The x coordinates are clamped to [0, 1] so that x(t) stays
// monotonic; the y coordinates may overshoot.
func NewBezier(x1, y1, x2, y2 float64) Bezier {
	return Bezier{c: bez.CubicBez{
		P0: bez.Pt(0, 0),
		P1: bez.Pt(clamp01(x1), y1),
		P2: bez.Pt(clamp01(x2), y2),
		P3: bez.Pt(1, 1),
	}}
}

// Cubic returns the underlying Bézier segment.
func (b Bezier) Cubic() bez.CubicBez {
	return b.c
}

// Eval returns y for the point of the curve whose x coordinate is x.
// x is clamped to [0, 1]; NaN is returned unchanged.
func (b Bezier) Eval(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return b.c.Eval(b.solve(x)).Y
}

// solve finds the curve parameter t with x(t) = x.
func (b Bezier) solve(x float64) float64 {
	x1, x2 := b.c.P1.X, b.c.P2.X
	// x(t) = c1 t + c2 t² + c3 t³
	c1 := 3 * x1
	c2 := 3*x2 - 6*x1
	c3 := 1 + 3*x1 - 3*x2

	roots, n := bez.SolveCubic(-x, c1, c2, c3)
	for _, t := range roots[:n] {
		if t >= -bezierEpsilon && t <= 1+bezierEpsilon {
			return clamp01(t)
		}
	}

	// The closed form can miss a root near a double root; x(t) is
	// monotonic so bisection always converges.
	lo, hi := 0.0, 1.0
	for range 64 {
		mid := (lo + hi) / 2
		if b.c.Eval(mid).X < x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
