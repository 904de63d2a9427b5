// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package exercise defines the drill record produced from bilingual
// transcripts: a Chinese sentence split into aligned segments plus its
// English translation, and the alignment engine that produces it.
package exercise

import "strings"

// Segment is one aligned unit of an exercise: a dictionary word with its
// diacritic pinyin, or a run of unaligned characters with empty pinyin
// (punctuation, digits, foreign words).
type Segment struct {
	Chinese string `yaml:"chinese" json:"chinese"`
	Pinyin  string `yaml:"pinyin" json:"pinyin"`
}

// Exercise is a segmented Chinese sentence paired with its translation,
// the unit presented to the learner.
type Exercise struct {
	Segments []Segment `yaml:"segments" json:"segments"`
	English  string    `yaml:"english" json:"english"`
}

// FullText returns the concatenation of all segment texts, which equals the
// original Chinese input with interior whitespace removed.
func (e Exercise) FullText() string {
	var b strings.Builder
	for _, s := range e.Segments {
		b.WriteString(s.Chinese)
	}
	return b.String()
}

// FullReading returns the space-joined readings of the aligned segments.
func (e Exercise) FullReading() string {
	parts := make([]string, 0, len(e.Segments))
	for _, s := range e.Segments {
		if s.Pinyin != "" {
			parts = append(parts, s.Pinyin)
		}
	}
	return strings.Join(parts, " ")
}

// Words returns the distinct dictionary words of the exercise in first
// occurrence order. Unaligned runs are never words.
func (e Exercise) Words() []string {
	var words []string
	seen := make(map[string]bool, len(e.Segments))
	for _, s := range e.Segments {
		if s.Pinyin == "" || seen[s.Chinese] {
			continue
		}
		seen[s.Chinese] = true
		words = append(words, s.Chinese)
	}
	return words
}

// Contains reports whether word appears as a dictionary word in the exercise.
func (e Exercise) Contains(word string) bool {
	for _, s := range e.Segments {
		if s.Pinyin != "" && s.Chinese == word {
			return true
		}
	}
	return false
}

// Key returns a stable identity string for the exercise, equal exactly when
// two exercises have the same segment sequence and translation. It is used
// as the map key for presentation history.
func (e Exercise) Key() string {
	var b strings.Builder
	for _, s := range e.Segments {
		b.WriteString(s.Chinese)
		b.WriteByte(0x1f)
		b.WriteString(s.Pinyin)
		b.WriteByte(0x1e)
	}
	b.WriteString(e.English)
	return b.String()
}
