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

// Package curve provides the interpolation curves used by tweens.
//
// A curve maps normalized time x (conceptually in [0, 1]) to an interpolation
// weight. Most families return exactly 0 at x = 0 and exactly 1 at x = 1, but
// may overshoot in between (back, elastic). Callers are allowed to pass x
// outside [0, 1]; the formulas are not clamped.
//
// Curves are selected through a Config, which bundles the Family, a shape
// parameter (Rate) used by the ease and elastic families, and an optional
// user-supplied Curve for the Custom family:
//
//	cfg := curve.Config{Family: curve.BackOut}
//	w := cfg.Eval(0.5)
//
//	door := curve.Config{Family: curve.Custom, Custom: curve.NewBezier(0.25, 0.1, 0.25, 1)}
package curve

import "fmt"

// Family identifies a curve shape.
type Family int

const (
	// Linear is the identity curve and the zero value.
	Linear Family = iota

	EaseIn
	EaseOut
	EaseInOut

	ElasticIn
	ElasticOut
	ElasticInOut

	BounceIn
	BounceOut
	BounceInOut

	ExponentialIn
	ExponentialOut
	ExponentialInOut

	SineIn
	SineOut
	SineInOut

	BackIn
	BackOut
	BackInOut

	// Custom delegates to Config.Custom.
	Custom
)

var familyNames = [...]string{
	Linear:           "linear",
	EaseIn:           "easeIn",
	EaseOut:          "easeOut",
	EaseInOut:        "easeInOut",
	ElasticIn:        "elasticIn",
	ElasticOut:       "elasticOut",
	ElasticInOut:     "elasticInOut",
	BounceIn:         "bounceIn",
	BounceOut:        "bounceOut",
	BounceInOut:      "bounceInOut",
	ExponentialIn:    "exponentialIn",
	ExponentialOut:   "exponentialOut",
	ExponentialInOut: "exponentialInOut",
	SineIn:           "sineIn",
	SineOut:          "sineOut",
	SineInOut:        "sineInOut",
	BackIn:           "backIn",
	BackOut:          "backOut",
	BackInOut:        "backInOut",
	Custom:           "custom",
}

// Families returns every family except Custom, in declaration order.
func Families() []Family {
	out := make([]Family, 0, int(Custom))
	for f := Linear; f < Custom; f++ {
		out = append(out, f)
	}
	return out
}

// String returns the lower camel case name used in presets.
func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return familyNames[f]
}

// ParseFamily converts a name produced by Family.String back to a Family.
// The empty string and "none" map to Linear.
func ParseFamily(name string) (Family, error) {
	switch name {
	case "", "none":
		return Linear, nil
	}
	for i, n := range familyNames {
		if n == name {
			return Family(i), nil
		}
	}
	return Linear, fmt.Errorf("unknown curve family %q", name)
}

// Curve is a user-supplied curve for the Custom family.
// Implementations are responsible for clamping x to their own extent.
type Curve interface {
	Eval(x float64) float64
}

// CurveFunc adapts a plain function to the Curve interface.
type CurveFunc func(x float64) float64

// Eval calls f(x).
func (f CurveFunc) Eval(x float64) float64 {
	return f(x)
}
