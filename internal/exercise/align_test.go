// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package exercise

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/mtreilly/shuoci/internal/dict"
)

const alignDict = `他 他 [ta1] /he/
也 也 [ye3] /also/
不 不 [bu4] /not/
知 知 [zhi1] /to know/
道 道 [dao4] /road/
知道 知道 [zhi1 dao4] /to know/
答案 答案 [da2 an4] /answer/
我 我 [wo3] /I/
是 是 [shi4] /to be/
學生 学生 [xue2 sheng5] /student/
你好 你好 [ni3 hao3] /hello/
`

func alignFixture(t *testing.T, lines string) *dict.CEDict {
	t.Helper()
	d, err := dict.NewCEDict(strings.NewReader(lines))
	if err != nil {
		t.Fatalf("NewCEDict: %v", err)
	}
	return d
}

func defaultAligner(t *testing.T) *Aligner {
	return NewAligner(alignFixture(t, alignDict), Options{Strict: true, LooseTones: true})
}

func TestAlign(t *testing.T) {
	a := defaultAligner(t)

	segments, err := a.Align("他也不知道答案。", "Tā yě bù zhīdào dá'àn.")
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	want := []Segment{
		{Chinese: "他", Pinyin: "tā"},
		{Chinese: "也", Pinyin: "yě"},
		{Chinese: "不", Pinyin: "bù"},
		{Chinese: "知道", Pinyin: "zhī dào"},
		{Chinese: "答案", Pinyin: "dá àn"},
		{Chinese: "。"},
	}
	if !reflect.DeepEqual(segments, want) {
		t.Errorf("segments = %+v, want %+v", segments, want)
	}
}

func TestAlignPrefersLongestWord(t *testing.T) {
	a := defaultAligner(t)

	segments, err := a.Align("知道", "zhīdào")
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(segments) != 1 || segments[0].Chinese != "知道" {
		t.Errorf("segments = %+v, want single 知道", segments)
	}
}

func TestAlignLooseTones(t *testing.T) {
	a := defaultAligner(t)

	// Multi-character words may be written without tone marks; single
	// characters always need exact tones.
	segments, err := a.Align("他也不知道答案。", "Tā yě bù zhidao daan.")
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if segments[3].Pinyin != "zhī dào" || segments[4].Pinyin != "dá àn" {
		t.Errorf("segments = %+v", segments)
	}

	strict := NewAligner(alignFixture(t, alignDict), Options{Strict: true, LooseTones: false})
	if _, err := strict.Align("知道", "zhidao"); !errors.Is(err, ErrAlignmentFailed) {
		t.Errorf("err = %v, want ErrAlignmentFailed without loose tones", err)
	}
}

func TestAlignStrictRejectsMidWordMatch(t *testing.T) {
	// Without the compound entry, 知 matches but ends inside "zhīdào".
	lines := "知 知 [zhi1] /to know/\n道 道 [dao4] /road/\n"

	strict := NewAligner(alignFixture(t, lines), Options{Strict: true, LooseTones: true})
	_, err := strict.Align("知道", "zhīdào")
	if !errors.Is(err, ErrSegmentationAmbiguous) {
		t.Fatalf("err = %v, want ErrSegmentationAmbiguous", err)
	}
	var ambErr *AmbiguityError
	if !errors.As(err, &ambErr) {
		t.Fatalf("err = %T, want *AmbiguityError", err)
	}
	if ambErr.Matched != "zhī" {
		t.Errorf("matched = %q, want zhī", ambErr.Matched)
	}

	lax := NewAligner(alignFixture(t, lines), Options{Strict: false, LooseTones: true})
	segments, err := lax.Align("知道", "zhīdào")
	if err != nil {
		t.Fatalf("lax Align: %v", err)
	}
	if len(segments) != 2 || segments[0].Chinese != "知" || segments[1].Chinese != "道" {
		t.Errorf("segments = %+v", segments)
	}
}

func TestAlignUnknownRunsMerge(t *testing.T) {
	a := defaultAligner(t)

	segments, err := a.Align("ABC我", "abc wǒ")
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	want := []Segment{
		{Chinese: "ABC"},
		{Chinese: "我", Pinyin: "wǒ"},
	}
	if !reflect.DeepEqual(segments, want) {
		t.Errorf("segments = %+v, want %+v", segments, want)
	}
}

func TestAlignFailureIsDeterministic(t *testing.T) {
	a := defaultAligner(t)

	first := func() *AlignmentError {
		_, err := a.Align("我", "ni.")
		var alignErr *AlignmentError
		if !errors.As(err, &alignErr) {
			t.Fatalf("err = %v, want *AlignmentError", err)
		}
		return alignErr
	}
	e1, e2 := first(), first()
	if e1.Remainder != e2.Remainder || e1.Remainder != "ni." {
		t.Errorf("remainders = %q, %q, want both ni.", e1.Remainder, e2.Remainder)
	}
	if e1.Chinese != "我" || e1.Pinyin != "ni." {
		t.Errorf("error inputs = %q, %q", e1.Chinese, e1.Pinyin)
	}
}

func TestAlignIgnoresSpacing(t *testing.T) {
	a := defaultAligner(t)

	spaced, err := a.Align("你好 。", "nǐhǎo.")
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	compact, err := a.Align("你好。", "nǐhǎo.")
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if !reflect.DeepEqual(spaced, compact) {
		t.Errorf("spacing changed alignment: %+v vs %+v", spaced, compact)
	}
}

func TestConvert(t *testing.T) {
	a := defaultAligner(t)

	input := `Chinese: 我是学生。
Pinyin: Wǒ shì xuésheng.
English: I am a student.

Chinese: 你好。
Pinyin: Nǐhǎo.
English: Hello.
`
	exercises, err := a.Convert(input)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(exercises) != 2 {
		t.Fatalf("got %d exercises, want 2", len(exercises))
	}
	if exercises[0].English != "I am a student." || exercises[0].FullText() != "我是学生。" {
		t.Errorf("first exercise = %+v", exercises[0])
	}
	if exercises[1].FullReading() != "nǐ hǎo" {
		t.Errorf("second reading = %q", exercises[1].FullReading())
	}
}

func TestConvertStopsAtFirstError(t *testing.T) {
	a := defaultAligner(t)

	input := `Chinese: 你好。
Pinyin: Nǐhǎo.
English: Hello.

Pinyin: out of order
Chinese: 你好。
English: Hello.
`
	exercises, err := a.Convert(input)
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("err = %v, want ErrMalformedRecord", err)
	}
	if len(exercises) != 1 {
		t.Errorf("got %d exercises before the error, want 1", len(exercises))
	}
}
