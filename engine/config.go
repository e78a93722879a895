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
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines the configuration for the frame engine.
type Config struct {
	// FrameInterval is the Run loop period.
	FrameInterval time.Duration `yaml:"frame_interval"`

	// MaxDelta caps each frame delta. Zero disables the cap.
	MaxDelta time.Duration `yaml:"max_delta"`

	// TimeScale multiplies scaled deltas. Must be > 0.
	TimeScale float64 `yaml:"time_scale"`

	// StartPaused starts the engine with scaled time frozen.
	StartPaused bool `yaml:"start_paused"`
}

// DefaultConfig returns a sensible default configuration.
// Uses the defined constants for consistent default values across the codebase.
func DefaultConfig() Config {
	return Config{
		FrameInterval: DefaultFrameInterval,
		MaxDelta:      DefaultMaxDelta,
		TimeScale:     DefaultTimeScale,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.FrameInterval <= 0 {
		return fmt.Errorf("frame_interval must be > 0, got %v", c.FrameInterval)
	}
	if c.MaxDelta < 0 {
		return fmt.Errorf("max_delta must be >= 0, got %v", c.MaxDelta)
	}
	if !(c.TimeScale > 0) || math.IsInf(c.TimeScale, 1) {
		return fmt.Errorf("time_scale must be > 0, got %v", c.TimeScale)
	}
	return nil
}

// LoadConfig reads a YAML document on top of DefaultConfig. Durations use
// Go syntax ("16ms", "250ms"). Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode engine config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid engine config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile is LoadConfig over the file at path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open engine config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}
