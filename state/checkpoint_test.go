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

package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazzpetri/tween/clock"
	"github.com/jazzpetri/tween/registry"
	"github.com/jazzpetri/tween/tween"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestCapture_All(t *testing.T) {
	reg := registry.New(nil)
	vc := clock.NewVirtualClock(epoch)
	a := reg.Add(0, 1, 2)
	b := reg.Add(0, 1, 2)

	cp := Capture(reg, vc, "start", nil)

	assert.Equal(t, "start", cp.Label)
	assert.True(t, cp.Timestamp.Equal(epoch))
	assert.Equal(t, 2, cp.Len())
	assert.Equal(t, []tween.Handle{a.Handle(), b.Handle()}, cp.Handles())
}

func TestCapture_Selector(t *testing.T) {
	reg := registry.New(nil)
	border := reg.Add(0, 1, 2).WithPolicy(tween.Deactivate)
	shake := reg.Add(0, 1, 2)

	cp := Capture(reg, nil, "room", func(t *tween.Task) bool {
		return t.Policy() == tween.Deactivate
	})

	assert.True(t, cp.Contains(border.Handle()))
	assert.False(t, cp.Contains(shake.Handle()))
}

func TestRestore_Rewind(t *testing.T) {
	reg := registry.New(nil)
	border := reg.Add(0, 100, 4)
	reg.Tick(1, 1)

	cp := Capture(reg, nil, "checkpoint", nil)

	reg.Tick(2, 2)
	later := reg.Add(0, 1, 10)

	require.NoError(t, Restore(reg, cp))
	assert.Equal(t, 1.0, border.Elapsed())
	assert.True(t, reg.Has(later.Handle()), "restore is additive")
}

func TestRestore_RecreatesFinishedTask(t *testing.T) {
	reg := registry.New(nil)
	fade := reg.Add(0, 1, 1)
	reg.Tick(0.5, 0.5)
	cp := Capture(reg, nil, "mid-fade", nil)

	reg.Tick(1, 1)
	require.False(t, reg.Has(fade.Handle()))

	require.NoError(t, Restore(reg, cp))
	assert.True(t, reg.Has(fade.Handle()))
	assert.Equal(t, 0.5, fade.Elapsed())
}

func TestRestore_Errors(t *testing.T) {
	reg := registry.New(nil)

	assert.ErrorIs(t, Restore(reg, nil), ErrNilCheckpoint)
	assert.ErrorIs(t, Restore(nil, &Checkpoint{}), ErrNilRegistry)
}

func TestCheckpoint_Clone(t *testing.T) {
	reg := registry.New(nil)
	reg.Add(0, 1, 1)
	cp := Capture(reg, nil, "a", nil)

	clone := cp.Clone()
	clone.Snapshots = clone.Snapshots[:0]
	clone.Label = "b"

	assert.Equal(t, 1, cp.Len())
	assert.Equal(t, "a", cp.Label)
}
