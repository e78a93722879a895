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

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/jazzpetri/tween/curve"
)

// Presets maps names to tween settings loaded from configuration.
type Presets map[string]Settings

// Get returns the named preset.
func (p Presets) Get(name string) (Settings, bool) {
	s, ok := p[name]
	return s, ok
}

// Names returns the preset names in sorted order.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds a task from the named preset. It panics if the preset does
// not exist.
func (p Presets) New(name string) *Task {
	s, ok := p[name]
	if !ok {
		panic(fmt.Sprintf("tween: unknown preset %q", name))
	}
	return NewFromSettings(s)
}

type presetDocument struct {
	Presets map[string]presetSpec `yaml:"presets"`
}

type presetSpec struct {
	Duration  float64   `yaml:"duration"`
	Curve     curveSpec `yaml:"curve"`
	Policy    string    `yaml:"policy"`
	TimeScale string    `yaml:"timeScale"`
}

type curveSpec struct {
	Family string      `yaml:"family"`
	Rate   float64     `yaml:"rate"`
	Bezier []float64   `yaml:"bezier"`
	Spring *springSpec `yaml:"spring"`
	Keys   []keySpec   `yaml:"keys"`
}

type springSpec struct {
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
}

type keySpec struct {
	Time  float64 `yaml:"time"`
	Value float64 `yaml:"value"`
	In    float64 `yaml:"in"`
	Out   float64 `yaml:"out"`
}

// LoadPresets decodes a YAML document of the form
//
//	presets:
//	  fade:
//	    duration: 0.5
//	    curve: { family: sineInOut }
//	    timeScale: unscaled
//	  door:
//	    duration: 0.8
//	    curve: { family: custom, bezier: [0.25, 0.1, 0.25, 1] }
//
// Custom curves are described by exactly one of bezier, spring or keys.
// Unknown fields are rejected.
func LoadPresets(r io.Reader) (Presets, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc presetDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Presets{}, nil
		}
		return nil, fmt.Errorf("failed to decode presets: %w", err)
	}

	presets := make(Presets, len(doc.Presets))
	for name, spec := range doc.Presets {
		s, err := spec.settings()
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		presets[name] = s
	}
	return presets, nil
}

// LoadPresetsFile reads presets from a YAML file.
func LoadPresetsFile(path string) (Presets, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open presets: %w", err)
	}
	defer f.Close()
	return LoadPresets(f)
}

func (p presetSpec) settings() (Settings, error) {
	cfg, err := p.Curve.config()
	if err != nil {
		return Settings{}, err
	}
	policy, err := ParsePolicy(p.Policy)
	if err != nil {
		return Settings{}, err
	}
	scale, err := ParseTimeScale(p.TimeScale)
	if err != nil {
		return Settings{}, err
	}
	s := Settings{
		Duration:  p.Duration,
		Curve:     cfg,
		Policy:    policy,
		TimeScale: scale,
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (c curveSpec) config() (curve.Config, error) {
	family, err := curve.ParseFamily(c.Family)
	if err != nil {
		return curve.Config{}, err
	}
	cfg := curve.Config{Family: family, Rate: c.Rate}

	sources := 0
	if c.Bezier != nil {
		sources++
	}
	if c.Spring != nil {
		sources++
	}
	if c.Keys != nil {
		sources++
	}
	if family != curve.Custom {
		if sources > 0 {
			return curve.Config{}, fmt.Errorf("curve family %s does not take a custom curve", family)
		}
		return cfg, nil
	}
	if sources != 1 {
		return curve.Config{}, fmt.Errorf("custom curve needs exactly one of bezier, spring or keys")
	}

	switch {
	case c.Bezier != nil:
		if len(c.Bezier) != 4 {
			return curve.Config{}, fmt.Errorf("bezier needs 4 values, got %d", len(c.Bezier))
		}
		cfg.Custom = curve.NewBezier(c.Bezier[0], c.Bezier[1], c.Bezier[2], c.Bezier[3])
	case c.Spring != nil:
		cfg.Custom = curve.NewSpring(c.Spring.Frequency, c.Spring.Damping)
	default:
		keys := make([]curve.Key, len(c.Keys))
		for i, k := range c.Keys {
			keys[i] = curve.Key{Time: k.Time, Value: k.Value, InTangent: k.In, OutTangent: k.Out}
		}
		kf, err := curve.NewKeyframes(keys...)
		if err != nil {
			return curve.Config{}, err
		}
		cfg.Custom = kf
	}
	return cfg, nil
}
