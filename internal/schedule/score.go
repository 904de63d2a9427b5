// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package schedule

import "time"

// ExerciseScore ranks how well an exercise fits the learner right now.
// Scores order lexicographically on the fields in declaration order;
// smaller is better on every field.
type ExerciseScore struct {
	// Words due or unseen that are outside the target word list.
	WordsNotInList int
	// Words due or unseen that are in the target word list.
	WordsInList int
	// Words with no memory record at all.
	WordsNotSeen int
	// When the exercise was last presented; nil (never shown) orders first.
	LastSeen *time.Time
	// Words already known with a review scheduled in the future.
	FutureWords int
}

// Less reports whether s is a strictly better score than o.
func (s ExerciseScore) Less(o ExerciseScore) bool {
	if s.WordsNotInList != o.WordsNotInList {
		return s.WordsNotInList < o.WordsNotInList
	}
	if s.WordsInList != o.WordsInList {
		return s.WordsInList < o.WordsInList
	}
	if s.WordsNotSeen != o.WordsNotSeen {
		return s.WordsNotSeen < o.WordsNotSeen
	}
	if c := compareLastSeen(s.LastSeen, o.LastSeen); c != 0 {
		return c < 0
	}
	return s.FutureWords < o.FutureWords
}

// compareLastSeen orders nil (never presented) before any timestamp, then
// earlier timestamps first.
func compareLastSeen(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case a.Before(*b):
		return -1
	case b.Before(*a):
		return 1
	default:
		return 0
	}
}

// WordListStatus summarizes learner progress against a target word list.
type WordListStatus struct {
	// Number of words in the target list.
	TotalWords int
	// Words in the list with a review scheduled in the future.
	KnownWords int
	// Words in the list due for review.
	WordsToReview int
	// Exercises containing a list word whose every word has been seen,
	// and that the learner has already been shown.
	SeenExercises int
	// Exercises containing a list word whose every word has been seen.
	UnlockedExercises int
}
