// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package exercise

import (
	"bytes"
	"reflect"
	"testing"
)

func sampleExercise() Exercise {
	return Exercise{
		Segments: []Segment{
			{Chinese: "我", Pinyin: "wǒ"},
			{Chinese: "知道", Pinyin: "zhī dào"},
			{Chinese: "我", Pinyin: "wǒ"},
			{Chinese: "。", Pinyin: ""},
		},
		English: "I know me.",
	}
}

func TestFullTextAndReading(t *testing.T) {
	ex := sampleExercise()
	if got := ex.FullText(); got != "我知道我。" {
		t.Errorf("FullText = %q", got)
	}
	// Unaligned segments contribute no reading.
	if got := ex.FullReading(); got != "wǒ zhī dào wǒ" {
		t.Errorf("FullReading = %q", got)
	}
}

func TestWordsDeduplicates(t *testing.T) {
	ex := sampleExercise()
	want := []string{"我", "知道"}
	if got := ex.Words(); !reflect.DeepEqual(got, want) {
		t.Errorf("Words = %v, want %v", got, want)
	}
}

func TestWordsDeduplicatesNonAdjacent(t *testing.T) {
	ex := Exercise{Segments: []Segment{
		{Chinese: "好", Pinyin: "hǎo"},
		{Chinese: "不", Pinyin: "bù"},
		{Chinese: "好", Pinyin: "hǎo"},
	}}
	want := []string{"好", "不"}
	if got := ex.Words(); !reflect.DeepEqual(got, want) {
		t.Errorf("Words = %v, want %v", got, want)
	}
}

func TestContains(t *testing.T) {
	ex := sampleExercise()
	if !ex.Contains("知道") {
		t.Error("Contains(知道) = false")
	}
	if ex.Contains("知") {
		t.Error("Contains(知) = true, segments should not match partially")
	}
	if ex.Contains("。") {
		t.Error("Contains(。) = true, unaligned runs are not words")
	}
}

func TestKeyDistinguishesSegmentations(t *testing.T) {
	a := Exercise{Segments: []Segment{{Chinese: "知道", Pinyin: "zhī dào"}}}
	b := Exercise{Segments: []Segment{
		{Chinese: "知", Pinyin: "zhī"},
		{Chinese: "道", Pinyin: "dào"},
	}}
	if a.Key() == b.Key() {
		t.Error("different segmentations must have different keys")
	}
	if a.Key() != a.Key() {
		t.Error("key must be deterministic")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	exercises := []Exercise{sampleExercise()}

	var buf bytes.Buffer
	if err := Encode(&buf, exercises); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, exercises) {
		t.Errorf("round trip = %+v, want %+v", got, exercises)
	}
}
