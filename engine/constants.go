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

package engine

import (
	"time"

	"github.com/jazzpetri/tween/clock"
)

// DefaultFrameInterval is the default period of the Run loop ticker.
//
// This value (1/60 s) matches a 60 Hz display. Hosts that drive Step from
// their own render loop never use it.
//
// Set to a custom value in Config to override this default.
const DefaultFrameInterval = time.Second / 60

// DefaultMaxDelta is the default cap on a single frame delta.
//
// After a hitch (debugger pause, window drag, GC stall) the raw delta can be
// seconds long; capping it keeps tasks from skipping their whole animation
// in one frame. A zero MaxDelta in Config disables the cap.
const DefaultMaxDelta = clock.DefaultMaxDelta

// DefaultTimeScale is the default multiplier applied to scaled deltas.
const DefaultTimeScale = 1.0

// DefaultWorkQueueSize is the initial capacity of the Do queue.
const DefaultWorkQueueSize = 16
