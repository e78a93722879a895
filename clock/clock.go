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

// Package clock provides the time sources that drive the tween engine.
//
// The host frame loop reads a Clock once per frame through a FrameTimer,
// which turns wall-clock readings into the two deltas the registry needs:
//
//   - scaled: multiplied by the global time scale and zero while paused
//   - unscaled: the raw elapsed time, immune to pause
//
// RealTimeClock is used in production. VirtualClock only moves when told to,
// which makes frame timing deterministic in tests:
//
//	vc := clock.NewVirtualClock(start)
//	ft := clock.NewFrameTimer(vc)
//	ft.Frame()                         // first frame: 0, 0
//	vc.AdvanceBy(16 * time.Millisecond)
//	scaled, unscaled := ft.Frame()     // 0.016, 0.016
package clock

import "time"

// Clock abstracts the current time.
// Implementations must be safe for concurrent use by multiple goroutines.
type Clock interface {
	// Now returns the current time according to this clock.
	Now() time.Time
}
