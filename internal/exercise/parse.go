// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package exercise

import "strings"

// Transcript is one raw record of a bilingual transcript file: three
// consecutive lines keyed Chinese, Pinyin and English, in that order,
// separated from the next record by blank lines.
type Transcript struct {
	Chinese string
	Pinyin  string
	English string
}

var transcriptKeys = [3]string{"Chinese", "Pinyin", "English"}

// ParseTranscript reads one transcript record from the front of input and
// returns it with the unparsed remainder. Records with missing or
// misordered keys return a *ParseError wrapping ErrMalformedRecord.
func ParseTranscript(input string) (Transcript, string, error) {
	record := strings.TrimSpace(input)
	rest := record

	var values [3]string
	for i, want := range transcriptKeys {
		line, tail, _ := strings.Cut(rest, "\n")
		key, value, ok := strings.Cut(line, ":")
		if !ok || key != want {
			return Transcript{}, "", &ParseError{Remainder: record}
		}
		values[i] = strings.TrimSpace(value)
		rest = tail
	}

	return Transcript{
		Chinese: values[0],
		Pinyin:  values[1],
		English: values[2],
	}, rest, nil
}
