// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package store

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mtreilly/shuoci/internal/schedule"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	sqlStore, err := OpenSQLStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLStore: %v", err)
	}
	t.Cleanup(func() { sqlStore.Close() })
	return map[string]Store{
		"file":   NewFileStore(t.TempDir()),
		"sqlite": sqlStore,
	}
}

func TestLoadStateEmpty(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			learner, err := st.LoadState()
			if err != nil {
				t.Fatalf("LoadState: %v", err)
			}
			if learner == nil || len(learner.SeenWords) != 0 {
				t.Errorf("fresh state = %+v, want empty learner", learner)
			}
		})
	}
}

func TestStateRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			learner := schedule.NewLearner()
			m := learner.WithMemory("你好", now)
			m.Success(now)

			if err := st.SaveState(learner); err != nil {
				t.Fatalf("SaveState: %v", err)
			}
			got, err := st.LoadState()
			if err != nil {
				t.Fatalf("LoadState: %v", err)
			}
			gm, ok := got.SeenWords["你好"]
			if !ok {
				t.Fatal("你好 missing after round trip")
			}
			if gm.Strength != m.Strength || !gm.TargetDate.Equal(m.TargetDate) {
				t.Errorf("memory = %+v, want %+v", gm, m)
			}

			// Saving again replaces, not appends.
			m.Fail(now.Add(time.Minute))
			if err := st.SaveState(learner); err != nil {
				t.Fatalf("second SaveState: %v", err)
			}
			got, err = st.LoadState()
			if err != nil {
				t.Fatalf("second LoadState: %v", err)
			}
			if got.SeenWords["你好"].Strength != m.Strength {
				t.Errorf("strength = %v, want %v", got.SeenWords["你好"].Strength, m.Strength)
			}
		})
	}
}

func TestAppendReviewFillsID(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ev := ReviewEvent{
				SessionID: "session-1",
				Word:      "你好",
				Outcome:   ReviewSuccess,
				At:        time.Now(),
			}
			if err := st.AppendReview(ev); err != nil {
				t.Fatalf("AppendReview: %v", err)
			}
			if err := st.AppendReview(ReviewEvent{SessionID: "session-1", Word: "谢谢", Outcome: ReviewFail, At: time.Now()}); err != nil {
				t.Fatalf("second AppendReview: %v", err)
			}
		})
	}
}

func TestFileStoreReviewLogIsJSONLines(t *testing.T) {
	dir := t.TempDir()
	st := NewFileStore(dir)

	for i := 0; i < 3; i++ {
		if err := st.AppendReview(ReviewEvent{Word: "你好", Outcome: ReviewSuccess, At: time.Now()}); err != nil {
			t.Fatalf("AppendReview: %v", err)
		}
	}

	f, err := os.Open(filepath.Join(dir, reviewFileName))
	if err != nil {
		t.Fatalf("open review log: %v", err)
	}
	defer f.Close()

	lines := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines++
	}
	if lines != 3 {
		t.Errorf("review log has %d lines, want 3", lines)
	}
}

func TestSQLStoreReviews(t *testing.T) {
	st, err := OpenSQLStore(filepath.Join(t.TempDir(), "reviews.db"))
	if err != nil {
		t.Fatalf("OpenSQLStore: %v", err)
	}
	defer st.Close()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	outcomes := []ReviewOutcome{ReviewSuccess, ReviewFail, ReviewSuccess}
	for i, o := range outcomes {
		ev := ReviewEvent{SessionID: "s", Word: "你好", Outcome: o, At: base.Add(time.Duration(i) * time.Minute)}
		if err := st.AppendReview(ev); err != nil {
			t.Fatalf("AppendReview: %v", err)
		}
	}
	if err := st.AppendReview(ReviewEvent{SessionID: "s", Word: "谢谢", Outcome: ReviewFail, At: base}); err != nil {
		t.Fatalf("AppendReview: %v", err)
	}

	events, err := st.Reviews("你好")
	if err != nil {
		t.Fatalf("Reviews: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i, ev := range events {
		if ev.Outcome != outcomes[i] {
			t.Errorf("event %d outcome = %q, want %q", i, ev.Outcome, outcomes[i])
		}
		if ev.ID == "" {
			t.Errorf("event %d has empty ID", i)
		}
	}
}
