// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package export

import (
	"archive/zip"
	"bytes"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mtreilly/shuoci/internal/exercise"
)

func sampleExercises() []exercise.Exercise {
	return []exercise.Exercise{
		{
			Segments: []exercise.Segment{
				{Chinese: "我", Pinyin: "wǒ"},
				{Chinese: "知道", Pinyin: "zhī dào"},
				{Chinese: "。"},
			},
			English: "I know.",
		},
		{
			Segments: []exercise.Segment{
				{Chinese: "你好", Pinyin: "nǐ hǎo"},
				{Chinese: "。"},
			},
			English: "Hello.",
		},
	}
}

func TestExportExercisesPackageLayout(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewAnkiExporter("test-deck")
	if err := exporter.ExportExercises(sampleExercises(), &buf); err != nil {
		t.Fatalf("ExportExercises: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"collection.anki2", "media"} {
		if !names[want] {
			t.Errorf("package missing %q, has %v", want, names)
		}
	}
}

func TestExportExercisesNotes(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewAnkiExporter("")
	if err := exporter.ExportExercises(sampleExercises(), &buf); err != nil {
		t.Fatalf("ExportExercises: %v", err)
	}

	dbPath := extractCollection(t, buf.Bytes())
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open collection: %v", err)
	}
	defer db.Close()

	var noteCount, cardCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&noteCount); err != nil {
		t.Fatalf("count notes: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&cardCount); err != nil {
		t.Fatalf("count cards: %v", err)
	}
	if noteCount != 2 || cardCount != 2 {
		t.Errorf("notes = %d, cards = %d, want 2 each", noteCount, cardCount)
	}

	var fields string
	if err := db.QueryRow("SELECT sflds FROM notes ORDER BY id LIMIT 1").Scan(&fields); err != nil {
		t.Fatalf("read note fields: %v", err)
	}
	parts := strings.Split(fields, "\x1f")
	if len(parts) != 2 {
		t.Fatalf("note has %d fields, want 2", len(parts))
	}
	if parts[0] != "我知道。" {
		t.Errorf("front = %q, want 我知道。", parts[0])
	}
	if !strings.Contains(parts[1], "zhī dào") || !strings.Contains(parts[1], "I know.") {
		t.Errorf("back = %q, want reading and translation", parts[1])
	}

	var decks string
	if err := db.QueryRow("SELECT decks FROM col").Scan(&decks); err != nil {
		t.Fatalf("read decks: %v", err)
	}
	if !strings.Contains(decks, `"shuoci"`) {
		t.Errorf("decks = %q, want default deck name shuoci", decks)
	}
}

func extractCollection(t *testing.T, pkg []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "collection.anki2" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open collection entry: %v", err)
		}
		defer rc.Close()
		path := filepath.Join(t.TempDir(), "collection.anki2")
		out, err := os.Create(path)
		if err != nil {
			t.Fatalf("create temp collection: %v", err)
		}
		defer out.Close()
		if _, err := io.Copy(out, rc); err != nil {
			t.Fatalf("extract collection: %v", err)
		}
		return path
	}
	t.Fatal("collection.anki2 not in package")
	return ""
}
