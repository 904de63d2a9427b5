// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package schedule maintains the learner's per-word memory model and picks
// the next word and exercise to drill.
package schedule

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// initialStrength is the memory strength assigned on first encounter and
// after every failed review.
const initialStrength = 5 * time.Second

// Memory is the spaced-repetition state of one word: when it is next due
// and how strongly it is held. Strength never decreases except through Fail.
type Memory struct {
	TargetDate time.Time
	Strength   time.Duration
}

func newMemory(now time.Time) *Memory {
	return &Memory{TargetDate: now, Strength: initialStrength}
}

// Success records a correct answer at the given time. A review before the
// target date is a light reinforcement (+2%); a review at or past it is a
// true spaced recall and multiplies the strength by five.
func (m *Memory) Success(now time.Time) {
	if m.TargetDate.After(now) {
		m.Strength += m.Strength / 50
	} else {
		m.Strength += m.Strength * 4
	}
	m.TargetDate = now.Add(m.Strength)
}

// Fail records a wrong answer: strength resets to the initial value and the
// word comes due almost immediately.
func (m *Memory) Fail(now time.Time) {
	m.Strength = initialStrength
	m.TargetDate = now.Add(m.Strength)
}

// Due reports whether the word is due for review at the given time.
func (m *Memory) Due(now time.Time) bool {
	return !m.TargetDate.After(now)
}

// memoryYAML is the persisted form of a Memory.
type memoryYAML struct {
	TargetDate time.Time `yaml:"target_date"`
	Strength   string    `yaml:"memory_strength"`
}

// MarshalYAML implements yaml.Marshaler.
func (m Memory) MarshalYAML() (any, error) {
	return memoryYAML{TargetDate: m.TargetDate, Strength: m.Strength.String()}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Memory) UnmarshalYAML(value *yaml.Node) error {
	var raw memoryYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	strength, err := time.ParseDuration(raw.Strength)
	if err != nil {
		return fmt.Errorf("schedule: invalid memory strength %q: %w", raw.Strength, err)
	}
	m.TargetDate = raw.TargetDate
	m.Strength = strength
	return nil
}
