// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package exercise

import (
	"errors"
	"fmt"
)

// Sentinel errors for the exercise package.
// Use errors.Is to check: errors.Is(err, exercise.ErrAlignmentFailed)
var (
	ErrMalformedRecord       = errors.New("exercise: malformed transcript record")
	ErrSegmentationAmbiguous = errors.New("exercise: ambiguous segmentation")
	ErrAlignmentFailed       = errors.New("exercise: alignment failed")
)

// ParseError reports a transcript block that is missing or misordering one
// of the Chinese/Pinyin/English fields. Remainder is the unparsed input
// starting at the offending block.
type ParseError struct {
	Remainder string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed transcript record at: %.80q", e.Remainder)
}

func (e *ParseError) Unwrap() error { return ErrMalformedRecord }

// AmbiguityError reports a strict-mode failure: a dictionary match ended
// inside a longer romanized word rather than at a word boundary.
type AmbiguityError struct {
	Matched   string // the compact reading that matched
	Remainder string // the romanized cursor at the failure point
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("segmentation ambiguous: %q matched mid-word at %q", e.Matched, e.Remainder)
}

func (e *AmbiguityError) Unwrap() error { return ErrSegmentationAmbiguous }

// AlignmentError reports that no dictionary candidate's reading matched the
// remaining transcription. It carries both original inputs and the
// unresolved remainder for diagnosis.
type AlignmentError struct {
	Chinese   string
	Pinyin    string
	Remainder string
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("failed to align %q with %q at %q", e.Chinese, e.Pinyin, e.Remainder)
}

func (e *AlignmentError) Unwrap() error { return ErrAlignmentFailed }
