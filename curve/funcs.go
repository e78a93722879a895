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

import "math"

// DefaultRate is the shape parameter used when a Config leaves Rate at zero.
const DefaultRate = 2.0

const (
	bounceN1 = 7.5625
	bounceD1 = 2.75

	backC1 = 1.70158
	backC2 = backC1 * 1.525
	backC3 = backC1 + 1

	elasticC4 = 2 * math.Pi / 3
	elasticC5 = 2 * math.Pi / 4.5
)

// linear returns x.
func linear(x float64) float64 {
	return x
}

// easeIn returns x^p.
func easeIn(x, p float64) float64 {
	return math.Pow(x, p)
}

// easeOut returns 1 - (1-x)^p.
func easeOut(x, p float64) float64 {
	return 1 - math.Pow(1-x, p)
}

// easeInOut mirrors easeIn around the midpoint: the first half is easeIn
// compressed into [0, 0.5] and the second half is its point reflection.
func easeInOut(x, p float64) float64 {
	if x < 0.5 {
		return math.Pow(2*x, p) / 2
	}
	return 1 - math.Pow(2*(1-x), p)/2
}

// elasticOut is a rate-blended elastic curve.
//
// With k = rate/2 the oscillation is weighted by 1-k (clamped to [0, 1]) and
// the remaining weight goes to a plain exponential approach. Once k exceeds 1
// the decay exponent is scaled by k as well, so high rates produce a steeper
// exponential. The curve overshoots 1 only while the wave weight exceeds
// one half, that is for rate < 1. Between rate 1 and about 1.5 it stays
// below 1 with a damped ripple; from about 1.5 up it is monotonic.
func elasticOut(x, rate float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	w, decay := elasticShape(rate)
	wave := math.Sin((x*10 - 0.75) * elasticC4)
	return 1 + math.Pow(2, -decay*x)*(w*wave-(1-w))
}

// elasticIn is elasticOut reflected through (0.5, 0.5).
func elasticIn(x, rate float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return 1 - elasticOut(1-x, rate)
}

// elasticInOut uses the longer 2π/4.5 period; both halves meet at 0.5.
func elasticInOut(x, rate float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	w, decay := elasticShape(rate)
	wave := math.Sin((20*x - 11.125) * elasticC5)
	mix := w*wave - (1 - w)
	if x < 0.5 {
		return -math.Pow(2, decay*(2*x-1)) * mix / 2
	}
	return math.Pow(2, -decay*(2*x-1))*mix/2 + 1
}

func elasticShape(rate float64) (wave, decay float64) {
	k := rate / 2
	wave = math.Max(0, math.Min(1, 1-k))
	decay = 10 * math.Max(1, k)
	return wave, decay
}

// bounceOut approximates a ball bouncing to rest with four parabolic arcs.
func bounceOut(x float64) float64 {
	switch {
	case x == 1:
		return 1
	case x < 1/bounceD1:
		return bounceN1 * x * x
	case x < 2/bounceD1:
		x -= 1.5 / bounceD1
		return bounceN1*x*x + 0.75
	case x < 2.5/bounceD1:
		x -= 2.25 / bounceD1
		return bounceN1*x*x + 0.9375
	default:
		x -= 2.625 / bounceD1
		return bounceN1*x*x + 0.984375
	}
}

// bounceIn returns 1 - bounceOut(1-x).
func bounceIn(x float64) float64 {
	if x == 0 {
		return 0
	}
	return 1 - bounceOut(1-x)
}

// bounceInOut joins bounceIn and bounceOut at the midpoint.
func bounceInOut(x float64) float64 {
	if x == 0 || x == 1 {
		return x
	}
	if x < 0.5 {
		return (1 - bounceOut(1-2*x)) / 2
	}
	return (1 + bounceOut(2*x-1)) / 2
}

// exponentialIn returns 2^(10x-10), with x == 0 mapped to exactly 0.
func exponentialIn(x float64) float64 {
	if x == 0 {
		return 0
	}
	return math.Pow(2, 10*x-10)
}

// exponentialOut returns 1 - 2^(-10x), with x == 1 mapped to exactly 1.
func exponentialOut(x float64) float64 {
	if x == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*x)
}

// exponentialInOut joins the two exponential halves at the midpoint.
func exponentialInOut(x float64) float64 {
	switch {
	case x == 0:
		return 0
	case x == 1:
		return 1
	case x < 0.5:
		return math.Pow(2, 20*x-10) / 2
	default:
		return (2 - math.Pow(2, -20*x+10)) / 2
	}
}

// sineIn returns 1 - cos(xπ/2).
func sineIn(x float64) float64 {
	if x == 1 {
		return 1
	}
	return 1 - math.Cos(x*math.Pi/2)
}

// sineOut returns sin(xπ/2).
func sineOut(x float64) float64 {
	if x == 1 {
		return 1
	}
	return math.Sin(x * math.Pi / 2)
}

// sineInOut is a half cosine wave shifted into [0, 1].
func sineInOut(x float64) float64 {
	if x == 0 || x == 1 {
		return x
	}
	return -(math.Cos(math.Pi*x) - 1) / 2
}

// backIn pulls back below 0 before accelerating towards 1.
func backIn(x float64) float64 {
	if x == 1 {
		return 1
	}
	return backC3*x*x*x - backC1*x*x
}

// backOut overshoots 1 before settling.
func backOut(x float64) float64 {
	if x == 0 {
		return 0
	}
	x--
	return 1 + backC3*x*x*x + backC1*x*x
}

// backInOut pulls back below 0, then overshoots 1, using the stronger
// backC2 constant.
func backInOut(x float64) float64 {
	if x == 0 || x == 1 {
		return x
	}
	if x < 0.5 {
		y := 2 * x
		return y * y * ((backC2+1)*y - backC2) / 2
	}
	y := 2*x - 2
	return (y*y*((backC2+1)*y+backC2) + 2) / 2
}
