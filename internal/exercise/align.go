// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package exercise

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mtreilly/shuoci/internal/dict"
)

// Options controls how strictly the aligner matches readings.
type Options struct {
	// Strict fails the alignment when a dictionary match ends inside a
	// longer romanized word instead of at a word boundary. It catches a
	// shorter dictionary word shadowing the intended longer one.
	Strict bool

	// LooseTones allows tone-insensitive matching, but only for the unique
	// longest candidate at a position, so missing tone marks in the input
	// are tolerated where they cannot introduce ambiguity.
	LooseTones bool
}

// Aligner splits a Chinese sentence and its romanized transcription into
// corresponding segments using a dictionary. It is stateless and safe for
// concurrent use.
type Aligner struct {
	dict dict.Dictionary
	opts Options
}

// NewAligner creates an Aligner over the given dictionary.
func NewAligner(d dict.Dictionary, opts Options) *Aligner {
	return &Aligner{dict: d, opts: opts}
}

// Align splits chinese and its romanized transcription pinyin into matching
// segments. Both cursors advance monotonically left to right; a committed
// segment is never revisited. Unknown characters become empty-reading
// segments, each consuming one character of transcription.
func (a *Aligner) Align(chinese, pinyin string) ([]Segment, error) {
	py := strings.ToLower(pinyin)
	py = strings.ReplaceAll(py, "'", "")
	py = strings.ReplaceAll(py, "’", "")
	cn := stripSpaces(chinese)

	var segments []Segment
outer:
	for cn != "" {
		py = strings.TrimLeftFunc(py, unicode.IsSpace)

		candidates := a.dict.LookupEntries(cn)
		if len(candidates) == 0 {
			c, rest := popRune(cn)
			if n := len(segments); n > 0 && segments[n-1].Pinyin == "" {
				segments[n-1].Chinese += string(c)
			} else {
				segments = append(segments, Segment{Chinese: string(c)})
			}
			cn = rest
			_, py = popRune(py)
			continue
		}

		// Longest candidate first, most permissive comparison first.
		sort.SliceStable(candidates, func(i, j int) bool {
			return utf8.RuneCountInString(candidates[i].Simplified) > utf8.RuneCountInString(candidates[j].Simplified)
		})
		longest := utf8.RuneCountInString(candidates[0].Simplified)
		distinct := distinctLongestReadings(candidates, longest)

		for nth, cand := range candidates {
			pretty := dict.Prettify(cand.Pinyin)
			compact := strings.ToLower(strings.ReplaceAll(pretty, " ", ""))

			var rest string
			var ok bool
			if a.opts.LooseTones && longest >= 2 && distinct == 1 && nth == 0 {
				rest, ok = dict.TrimPrefixIgnoreTones(py, compact)
			} else {
				rest, ok = strings.CutPrefix(py, compact)
			}
			if !ok {
				continue
			}

			if a.opts.Strict {
				if r, _ := utf8.DecodeRuneInString(rest); unicode.IsLetter(r) {
					return nil, &AmbiguityError{Matched: compact, Remainder: py}
				}
			}

			segments = append(segments, Segment{Chinese: cand.Simplified, Pinyin: pretty})
			cn = strings.TrimPrefix(cn, cand.Simplified)
			py = rest
			continue outer
		}

		return nil, &AlignmentError{Chinese: chinese, Pinyin: pinyin, Remainder: py}
	}

	return segments, nil
}

// Convert parses a whole transcript and aligns each record, returning the
// resulting exercises. The first malformed record or failed alignment stops
// the batch; records are never silently skipped.
func (a *Aligner) Convert(input string) ([]Exercise, error) {
	var exercises []Exercise
	rest := input
	for strings.TrimSpace(rest) != "" {
		t, tail, err := ParseTranscript(rest)
		if err != nil {
			return exercises, err
		}
		segments, err := a.Align(t.Chinese, t.Pinyin)
		if err != nil {
			return exercises, err
		}
		exercises = append(exercises, Exercise{Segments: segments, English: t.English})
		rest = tail
	}
	return exercises, nil
}

// distinctLongestReadings counts the distinct readings among candidates of
// the given length.
func distinctLongestReadings(candidates []dict.Entry, length int) int {
	readings := make(map[string]bool)
	for _, c := range candidates {
		if utf8.RuneCountInString(c.Simplified) == length {
			readings[c.Pinyin] = true
		}
	}
	return len(readings)
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func popRune(s string) (rune, string) {
	for _, c := range s {
		return c, s[len(string(c)):]
	}
	return 0, ""
}
