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
	"fmt"
	"math"
	"sort"

	bez "honnef.co/go/curve"
)

// Key is one keyframe of a Keyframes curve.
type Key struct {
	Time  float64
	Value float64

	// InTangent and OutTangent are slopes (value per unit time) on either
	// side of the key.
	InTangent  float64
	OutTangent float64
}

// Keyframes is a piecewise cubic Hermite spline through a set of keys.
// Each span is stored as a Bézier segment whose x coordinates are spaced
// evenly, so the curve parameter is linear in time.
type Keyframes struct {
	keys     []Key
	segments []bez.CubicBez
}

var _ Curve = (*Keyframes)(nil)

// NewKeyframes builds a spline from keys. Keys must be given in strictly
// increasing time order; at least one key is required.
func NewKeyframes(keys ...Key) (*Keyframes, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("keyframes: at least one key is required")
	}
	for i := 1; i < len(keys); i++ {
		if !(keys[i].Time > keys[i-1].Time) {
			return nil, fmt.Errorf("keyframes: key %d at time %g does not follow %g", i, keys[i].Time, keys[i-1].Time)
		}
	}

	k := &Keyframes{
		keys:     append([]Key(nil), keys...),
		segments: make([]bez.CubicBez, 0, len(keys)-1),
	}
	for i := 0; i+1 < len(keys); i++ {
		a, b := keys[i], keys[i+1]
		third := (b.Time - a.Time) / 3
		k.segments = append(k.segments, bez.CubicBez{
			P0: bez.Pt(a.Time, a.Value),
			P1: bez.Pt(a.Time+third, a.Value+a.OutTangent*third),
			P2: bez.Pt(b.Time-third, b.Value-b.InTangent*third),
			P3: bez.Pt(b.Time, b.Value),
		})
	}
	return k, nil
}

// MustKeyframes is like NewKeyframes but panics on invalid keys.
func MustKeyframes(keys ...Key) *Keyframes {
	k, err := NewKeyframes(keys...)
	if err != nil {
		panic(err)
	}
	return k
}

// Keys returns a copy of the keys.
func (k *Keyframes) Keys() []Key {
	return append([]Key(nil), k.keys...)
}

// Extent returns the time of the first and last key.
func (k *Keyframes) Extent() (start, end float64) {
	return k.keys[0].Time, k.keys[len(k.keys)-1].Time
}

// Eval returns the spline value at x, clamping x to the key extent. NaN
// yields the first key's value.
func (k *Keyframes) Eval(x float64) float64 {
	first, last := k.keys[0], k.keys[len(k.keys)-1]
	if len(k.segments) == 0 || math.IsNaN(x) || x <= first.Time {
		return first.Value
	}
	if x >= last.Time {
		return last.Value
	}

	// First segment that ends at or after x.
	i := sort.Search(len(k.segments), func(i int) bool {
		return k.segments[i].P3.X >= x
	})
	seg := k.segments[i]
	t := (x - seg.P0.X) / (seg.P3.X - seg.P0.X)
	return seg.Eval(t).Y
}
