// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package exercise

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode reads a YAML list of exercises.
func Decode(r io.Reader) ([]Exercise, error) {
	var exercises []Exercise
	if err := yaml.NewDecoder(r).Decode(&exercises); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}
	return exercises, nil
}

// Encode writes exercises as a YAML list.
func Encode(w io.Writer, exercises []Exercise) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(exercises); err != nil {
		return fmt.Errorf("encode exercises: %w", err)
	}
	return enc.Close()
}

// ReadFile loads exercises from a YAML file.
func ReadFile(path string) ([]Exercise, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open exercise file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile writes exercises to a YAML file.
func WriteFile(path string, exercises []Exercise) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create exercise file: %w", err)
	}
	if err := Encode(f, exercises); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
