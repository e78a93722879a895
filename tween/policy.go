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

import "fmt"

// TimeScale selects which frame delta advances a Task.
type TimeScale int

const (
	// Scaled tasks advance with the host's pausable, scaled frame delta.
	Scaled TimeScale = iota

	// Unscaled tasks advance with the raw frame delta and keep running
	// while the host is paused (scene fades, pause menus).
	Unscaled
)

func (s TimeScale) String() string {
	switch s {
	case Scaled:
		return "scaled"
	case Unscaled:
		return "unscaled"
	default:
		return fmt.Sprintf("TimeScale(%d)", int(s))
	}
}

// ParseTimeScale converts "scaled" or "unscaled" to a TimeScale.
// The empty string maps to Scaled.
func ParseTimeScale(s string) (TimeScale, error) {
	switch s {
	case "", "scaled":
		return Scaled, nil
	case "unscaled":
		return Unscaled, nil
	default:
		return Scaled, fmt.Errorf("unknown time scale %q", s)
	}
}

// Policy decides what the registry does with a Task once its elapsed time
// crosses the [0, duration] boundary.
type Policy int

const (
	// Remove drops the task from the registry at the end of the tick.
	Remove Policy = iota

	// Deactivate keeps the task registered but stops advancing it.
	Deactivate

	// Loop wraps elapsed time back into range and keeps going.
	Loop

	// PingPong reverses direction at each boundary.
	PingPong
)

func (p Policy) String() string {
	switch p {
	case Remove:
		return "remove"
	case Deactivate:
		return "deactivate"
	case Loop:
		return "loop"
	case PingPong:
		return "pingPong"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a name produced by Policy.String back to a Policy.
// The empty string maps to Remove.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "remove":
		return Remove, nil
	case "deactivate":
		return Deactivate, nil
	case "loop":
		return Loop, nil
	case "pingPong":
		return PingPong, nil
	default:
		return Remove, fmt.Errorf("unknown completion policy %q", s)
	}
}
