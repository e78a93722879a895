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

import "math"

// Value is a type that can be linearly interpolated by a weight.
type Value[T any] interface {
	Lerp(to T, w float64) T
}

// Evaluate interpolates from a to b by the task's current weight.
func Evaluate[T Value[T]](t *Task, a, b T) T {
	return a.Lerp(b, t.Weight())
}

func lerp(a, b, w float64) float64 {
	return a + (b-a)*w
}

// Scalar is a single interpolated number.
type Scalar float64

// Lerp returns s + (to-s)*w.
func (s Scalar) Lerp(to Scalar, w float64) Scalar {
	return Scalar(lerp(float64(s), float64(to), w))
}

// Vec2 is a 2D point or offset, interpolated per component.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Lerp(to Vec2, w float64) Vec2 {
	return Vec2{lerp(v.X, to.X, w), lerp(v.Y, to.Y, w)}
}

// Vec3 is a 3D point or offset, interpolated per component.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Lerp(to Vec3, w float64) Vec3 {
	return Vec3{lerp(v.X, to.X, w), lerp(v.Y, to.Y, w), lerp(v.Z, to.Z, w)}
}

// Quat is a quaternion. Lerp is component-wise; callers using it for
// rotation should Normalize the result.
type Quat struct {
	X, Y, Z, W float64
}

// IdentityQuat is the rotation that does nothing.
var IdentityQuat = Quat{W: 1}

func (q Quat) Lerp(to Quat, w float64) Quat {
	return Quat{lerp(q.X, to.X, w), lerp(q.Y, to.Y, w), lerp(q.Z, to.Z, w), lerp(q.W, to.W, w)}
}

// Normalize returns q scaled to unit length. The zero quaternion is returned
// as the identity.
func (q Quat) Normalize() Quat {
	n := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if n == 0 {
		return IdentityQuat
	}
	return Quat{q.X / n, q.Y / n, q.Z / n, q.W / n}
}

// Color is a straight-alpha RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Lerp interpolates each channel and clamps it to [0, 1], since overshooting
// curves would otherwise produce colors outside the gamut.
func (c Color) Lerp(to Color, w float64) Color {
	return Color{
		R: clampUnit(lerp(c.R, to.R, w)),
		G: clampUnit(lerp(c.G, to.G, w)),
		B: clampUnit(lerp(c.B, to.B, w)),
		A: clampUnit(lerp(c.A, to.A, w)),
	}
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
