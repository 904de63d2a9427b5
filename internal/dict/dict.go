// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package dict provides the dictionary used to segment Chinese text and
// match pinyin readings: entry lookup by prefix, a greedy segmenter, and
// word frequency queries, plus pinyin rendering helpers.
package dict

// Entry is one dictionary word.
type Entry struct {
	Traditional string
	Simplified  string
	Pinyin      string // numbered form, e.g. "da2 an4"
	Definitions []string
	Frequency   float64
}

// Token is one unit of segmented text: either a dictionary entry or a raw
// run of characters the dictionary does not know.
type Token struct {
	Entry *Entry
	Raw   string
}

// Dictionary is the lookup interface the alignment and planning code depends
// on. Implementations must be safe for concurrent reads.
type Dictionary interface {
	// LookupEntries returns all entries whose simplified form is a prefix
	// of text, ordered by ascending length.
	LookupEntries(text string) []Entry

	// Segment splits text into known-word and raw-run tokens using greedy
	// longest-match.
	Segment(text string) []Token

	// Frequency returns the usage frequency of word, or 0 if unknown.
	Frequency(word string) float64
}
