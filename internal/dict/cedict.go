// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package dict

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// CEDict is a Dictionary backed by a CC-CEDICT format word list with an
// optional word frequency table.
type CEDict struct {
	byFirst map[rune][]*Entry // entries indexed by first rune, ascending length
	freq    map[string]float64
}

// NewCEDict parses dictionary entries in CC-CEDICT format:
//
//	傳統 传统 [chuan2 tong3] /tradition/convention/
//
// Lines starting with '#' and blank lines are skipped.
func NewCEDict(r io.Reader) (*CEDict, error) {
	d := &CEDict{
		byFirst: make(map[rune][]*Entry),
		freq:    make(map[string]float64),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		e, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("dict: line %d: %w", lineno, err)
		}
		first, _ := utf8.DecodeRuneInString(e.Simplified)
		d.byFirst[first] = append(d.byFirst[first], e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dict: read: %w", err)
	}

	for _, entries := range d.byFirst {
		sort.SliceStable(entries, func(i, j int) bool {
			return utf8.RuneCountInString(entries[i].Simplified) < utf8.RuneCountInString(entries[j].Simplified)
		})
	}
	return d, nil
}

// OpenCEDict loads a dictionary file, optionally merging a frequency table
// (freqPath may be empty).
func OpenCEDict(path, freqPath string) (*CEDict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dict: open %s: %w", path, err)
	}
	defer f.Close()

	d, err := NewCEDict(f)
	if err != nil {
		return nil, err
	}

	if freqPath != "" {
		ff, err := os.Open(freqPath)
		if err != nil {
			return nil, fmt.Errorf("dict: open frequency table %s: %w", freqPath, err)
		}
		defer ff.Close()
		if err := d.LoadFrequencies(ff); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func parseLine(line string) (*Entry, error) {
	trad, rest, ok := strings.Cut(line, " ")
	if !ok {
		return nil, fmt.Errorf("missing simplified form in %q", line)
	}
	simp, rest, ok := strings.Cut(rest, " ")
	if !ok {
		return nil, fmt.Errorf("missing reading in %q", line)
	}
	if !strings.HasPrefix(rest, "[") {
		return nil, fmt.Errorf("missing reading bracket in %q", line)
	}
	pinyin, rest, ok := strings.Cut(rest[1:], "]")
	if !ok {
		return nil, fmt.Errorf("unterminated reading in %q", line)
	}

	var defs []string
	for _, def := range strings.Split(strings.Trim(strings.TrimSpace(rest), "/"), "/") {
		if def != "" {
			defs = append(defs, def)
		}
	}

	return &Entry{
		Traditional: trad,
		Simplified:  simp,
		Pinyin:      strings.TrimSpace(pinyin),
		Definitions: defs,
	}, nil
}

// LoadFrequencies reads a word frequency table, one "word<TAB>count" (or
// space-separated) pair per line, and attaches counts to matching entries.
func (d *CEDict) LoadFrequencies(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		count, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		d.freq[fields[0]] = count
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("dict: read frequency table: %w", err)
	}

	for _, entries := range d.byFirst {
		for _, e := range entries {
			if count, ok := d.freq[e.Simplified]; ok {
				e.Frequency = count
			}
		}
	}
	return nil
}

// LookupEntries returns all entries whose simplified form is a prefix of
// text, ordered by ascending length.
func (d *CEDict) LookupEntries(text string) []Entry {
	first, size := utf8.DecodeRuneInString(text)
	if size == 0 {
		return nil
	}
	var out []Entry
	for _, e := range d.byFirst[first] {
		if strings.HasPrefix(text, e.Simplified) {
			out = append(out, *e)
		}
	}
	return out
}

// Segment splits text into tokens using greedy longest-match. Consecutive
// unknown characters are merged into a single raw token.
func (d *CEDict) Segment(text string) []Token {
	var tokens []Token
	for text != "" {
		cands := d.LookupEntries(text)
		if len(cands) == 0 {
			c, rest := popRune(text)
			if n := len(tokens); n > 0 && tokens[n-1].Entry == nil {
				tokens[n-1].Raw += string(c)
			} else {
				tokens = append(tokens, Token{Raw: string(c)})
			}
			text = rest
			continue
		}
		best := cands[len(cands)-1]
		tokens = append(tokens, Token{Entry: &best})
		text = strings.TrimPrefix(text, best.Simplified)
	}
	return tokens
}

// Frequency returns the usage frequency of word, or 0 if unknown.
func (d *CEDict) Frequency(word string) float64 {
	return d.freq[word]
}
