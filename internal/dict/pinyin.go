// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package dict

import (
	"strings"
	"unicode"
)

// toneMarks maps a base vowel to its diacritic forms for tones 1-4.
var toneMarks = map[rune][4]rune{
	'a': {'ā', 'á', 'ǎ', 'à'},
	'e': {'ē', 'é', 'ě', 'è'},
	'i': {'ī', 'í', 'ǐ', 'ì'},
	'o': {'ō', 'ó', 'ǒ', 'ò'},
	'u': {'ū', 'ú', 'ǔ', 'ù'},
	'ü': {'ǖ', 'ǘ', 'ǚ', 'ǜ'},
}

// toneBase maps every tone-marked vowel back to its unmarked form.
var toneBase = map[rune]rune{
	'ā': 'a', 'á': 'a', 'ǎ': 'a', 'à': 'a',
	'ē': 'e', 'é': 'e', 'ě': 'e', 'è': 'e',
	'ī': 'i', 'í': 'i', 'ǐ': 'i', 'ì': 'i',
	'ō': 'o', 'ó': 'o', 'ǒ': 'o', 'ò': 'o',
	'ū': 'u', 'ú': 'u', 'ǔ': 'u', 'ù': 'u',
	'ǖ': 'ü', 'ǘ': 'ü', 'ǚ': 'ü', 'ǜ': 'ü',
	'Ā': 'A', 'Á': 'A', 'Ǎ': 'A', 'À': 'A',
	'Ē': 'E', 'É': 'E', 'Ě': 'E', 'È': 'E',
	'Ī': 'I', 'Í': 'I', 'Ǐ': 'I', 'Ì': 'I',
	'Ō': 'O', 'Ó': 'O', 'Ǒ': 'O', 'Ò': 'O',
	'Ū': 'U', 'Ú': 'U', 'Ǔ': 'U', 'Ù': 'U',
	'Ǖ': 'U', 'Ǘ': 'U', 'Ǚ': 'U', 'Ǜ': 'U',
}

// StripTone returns the unmarked form of a tone-marked pinyin vowel,
// or the rune unchanged if it carries no tone mark.
func StripTone(c rune) rune {
	if base, ok := toneBase[c]; ok {
		return base
	}
	return c
}

// HasToneMark reports whether s contains any tone-marked vowel.
func HasToneMark(s string) bool {
	for _, c := range s {
		if _, ok := toneBase[c]; ok {
			return true
		}
	}
	return false
}

// Prettify converts numbered pinyin ("xue2 sheng5") to diacritic pinyin
// ("xué sheng"). Syllables without a trailing tone digit pass through
// unchanged; whitespace is preserved.
func Prettify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	rest := s
	for rest != "" {
		i := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsSpace(r) })
		if i < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:i])
		rest = rest[i:]
		j := strings.IndexFunc(rest, unicode.IsSpace)
		if j < 0 {
			j = len(rest)
		}
		b.WriteString(prettifySyllable(rest[:j]))
		rest = rest[j:]
	}
	return b.String()
}

// prettifySyllable renders a single numbered syllable with its tone mark.
// Tone placement follows the standard rules: mark 'a' or 'e' when present,
// the 'o' of "ou", otherwise the last vowel. Tone 5 is the neutral tone and
// clears any existing mark. "u:" and "v" both denote ü.
func prettifySyllable(syl string) string {
	runes := []rune(syl)
	n := len(runes)
	if n < 2 {
		return syl
	}
	last := runes[n-1]
	if last < '1' || last > '5' {
		return syl
	}
	tone := int(last - '0')

	base := strings.ReplaceAll(string(runes[:n-1]), "u:", "ü")
	base = strings.ReplaceAll(base, "v", "ü")

	out := []rune(base)
	if tone == 5 {
		for i, c := range out {
			out[i] = StripTone(c)
		}
		return string(out)
	}

	mark := indexRune(out, 'a')
	if mark < 0 {
		mark = indexRune(out, 'e')
	}
	if mark < 0 {
		for i := 0; i+1 < len(out); i++ {
			if out[i] == 'o' && out[i+1] == 'u' {
				mark = i
				break
			}
		}
	}
	if mark < 0 {
		for i, c := range out {
			switch c {
			case 'i', 'o', 'u', 'ü':
				mark = i
			}
		}
	}
	if mark < 0 {
		return base
	}
	out[mark] = toneMarks[out[mark]][tone-1]
	return string(out)
}

// TrimPrefixIgnoreTones removes prefix from the front of input comparing
// rune by rune with tone marks stripped from both sides. The whole prefix
// must be consumed; on success the remaining input is returned.
func TrimPrefixIgnoreTones(input, prefix string) (string, bool) {
	in := input
	for _, p := range prefix {
		if in == "" {
			return "", false
		}
		c, rest := popRune(in)
		if StripTone(c) != StripTone(p) {
			return "", false
		}
		in = rest
	}
	return in, true
}

func popRune(s string) (rune, string) {
	for _, c := range s {
		return c, s[len(string(c)):]
	}
	return 0, ""
}

func indexRune(rs []rune, want rune) int {
	for i, c := range rs {
		if c == want {
			return i
		}
	}
	return -1
}

// ApplyTones converts typed pinyin with a trailing tone digit into diacritic
// form. Tones 1-4 attach to the first syllable without an existing mark;
// tone 5 neutralizes the last syllable that has one. "xuesheng2" becomes
// "xuésheng", "xuéshēng5" becomes "xuésheng".
func ApplyTones(pinyin string) string {
	runes := []rune(pinyin)
	digit := rune(0)
	for i := len(runes) - 1; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			continue
		}
		if runes[i] >= '1' && runes[i] <= '5' {
			digit = runes[i]
			runes = append(runes[:i], runes[i+1:]...)
		}
		break
	}
	base := string(runes)

	if digit == 0 {
		return Prettify(base)
	}

	chunks := SplitSyllables(base)
	if digit == '5' {
		for i := len(chunks) - 1; i >= 0; i-- {
			if HasToneMark(chunks[i]) {
				chunks[i] += "5"
				break
			}
		}
	} else {
		placed := false
		for i, c := range chunks {
			if !HasToneMark(c) {
				chunks[i] += string(digit)
				placed = true
				break
			}
		}
		if !placed && len(chunks) > 0 {
			chunks[len(chunks)-1] += string(digit)
		}
	}

	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(Prettify(c))
	}
	return b.String()
}

// SplitSyllables splits a pinyin run into syllable chunks on a best-effort
// basis; explicit spaces always split and are preserved at the start of the
// following chunk. SplitSyllables("xuesheng") yields ["xue", "sheng"].
func SplitSyllables(pinyin string) []string {
	isVowel := func(c rune) bool {
		switch StripTone(c) {
		case 'a', 'e', 'i', 'o', 'u', 'ü', 'A', 'E', 'I', 'O', 'U':
			return true
		}
		return false
	}

	chars := []rune(pinyin)
	var parts []string
	var current []rune
	seenVowel := false

	flush := func() {
		parts = append(parts, string(current))
		current = current[:0]
		seenVowel = false
	}

	i := 0
	for i < len(chars) {
		c := chars[i]

		if unicode.IsSpace(c) {
			if len(current) > 0 {
				flush()
			}
			// Whitespace opens the next chunk so spacing survives a rejoin.
			current = append(current, c)
			i++
			for i < len(chars) && unicode.IsSpace(chars[i]) {
				current = append(current, chars[i])
				i++
			}
			continue
		}

		current = append(current, c)
		if isVowel(c) {
			seenVowel = true
		}

		if i+1 >= len(chars) {
			flush()
			break
		}

		if seenVowel {
			n := chars[i+1]
			if unicode.IsSpace(n) {
				flush()
			} else {
				nLower := unicode.ToLower(n)
				apostrophe := n == '\'' || n == '’'
				consonantOnset := !isVowel(n) && unicode.IsLetter(n)
				// Keep the nasal coda "ng" attached to the current syllable.
				codaNG := unicode.ToLower(c) == 'n' && nLower == 'g'
				if !apostrophe && consonantOnset && nLower != 'n' && !codaNG {
					flush()
				}
			}
		}

		i++
	}

	if len(current) > 0 {
		parts = append(parts, string(current))
	}
	return parts
}
