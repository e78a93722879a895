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

import "errors"

// ErrMissingCustomCurve is returned by Validate when the Custom family is
// selected without a curve.
var ErrMissingCustomCurve = errors.New("curve: custom family requires a curve")

// Config selects and parameterizes a curve.
//
// The zero value is a valid linear curve.
type Config struct {
	// Family selects the curve shape.
	Family Family

	// Rate shapes the ease and elastic families. Zero means DefaultRate.
	// The meaningful range is roughly 0.1 to 4; values outside it are
	// accepted and simply produce extreme shapes.
	Rate float64

	// Custom is evaluated when Family is Custom.
	Custom Curve
}

// Of returns a Config for the given family with the default rate.
func Of(f Family) Config {
	return Config{Family: f}
}

// WithRate returns a copy of c using rate r.
func (c Config) WithRate(r float64) Config {
	c.Rate = r
	return c
}

// Validate reports whether c can be evaluated as configured.
func (c Config) Validate() error {
	if c.Family == Custom && c.Custom == nil {
		return ErrMissingCustomCurve
	}
	return nil
}

// MustValidate panics if Validate fails.
func (c Config) MustValidate() Config {
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return c
}

// EffectiveRate returns Rate, or DefaultRate if Rate is zero.
func (c Config) EffectiveRate() float64 {
	if c.Rate == 0 {
		return DefaultRate
	}
	return c.Rate
}

// Eval maps x to a weight. Unknown families, and Custom without a curve,
// fall back to the identity.
func (c Config) Eval(x float64) float64 {
	p := c.EffectiveRate()
	switch c.Family {
	case Linear:
		return linear(x)
	case EaseIn:
		return easeIn(x, p)
	case EaseOut:
		return easeOut(x, p)
	case EaseInOut:
		return easeInOut(x, p)
	case ElasticIn:
		return elasticIn(x, p)
	case ElasticOut:
		return elasticOut(x, p)
	case ElasticInOut:
		return elasticInOut(x, p)
	case BounceIn:
		return bounceIn(x)
	case BounceOut:
		return bounceOut(x)
	case BounceInOut:
		return bounceInOut(x)
	case ExponentialIn:
		return exponentialIn(x)
	case ExponentialOut:
		return exponentialOut(x)
	case ExponentialInOut:
		return exponentialInOut(x)
	case SineIn:
		return sineIn(x)
	case SineOut:
		return sineOut(x)
	case SineInOut:
		return sineInOut(x)
	case BackIn:
		return backIn(x)
	case BackOut:
		return backOut(x)
	case BackInOut:
		return backInOut(x)
	case Custom:
		if c.Custom != nil {
			return c.Custom.Eval(x)
		}
	}
	return x
}
