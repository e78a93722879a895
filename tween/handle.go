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

// Package tween defines the tween task: a short-lived, time-driven
// interpolation that converts elapsed time into a curve weight every frame.
//
// A Task is created by its owner, configured with builder-style mutators and
// then handed to a registry, which advances it once per frame:
//
//	t := tween.New(0, 1, 0.5).
//	    WithCurve(curve.Of(curve.SineInOut)).
//	    WithTimeScale(tween.Unscaled).
//	    OnUpdate(func(t *tween.Task) {
//	        overlay.Alpha = t.Float(0, 1)
//	    })
//	h := reg.Register(t)
//
// Tasks are not safe for concurrent use; the engine runs on a single logical
// thread driven by the host frame loop.
package tween

import "strconv"

// Handle identifies a registered Task. Handles increase monotonically and are
// never reused within a process.
type Handle uint64

// None is the zero Handle; it never identifies a task.
const None Handle = 0

// Valid reports whether h is not None.
func (h Handle) Valid() bool {
	return h != None
}

func (h Handle) String() string {
	if h == None {
		return "none"
	}
	return "tween#" + strconv.FormatUint(uint64(h), 10)
}
