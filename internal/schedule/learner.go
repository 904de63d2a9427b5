// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package schedule

import (
	"errors"
	"time"

	"github.com/mtreilly/shuoci/internal/exercise"
)

// ErrEmptyWordList is returned by NextWord when called with no words.
var ErrEmptyWordList = errors.New("schedule: empty word list")

// Learner holds one learner's memory model: per-word spaced-repetition
// state and when each exercise was last presented. It is mutated in place
// by review events; callers persist it after every mutation.
type Learner struct {
	SeenWords     map[string]*Memory   `yaml:"seen_words"`
	SeenExercises map[string]time.Time `yaml:"seen_exercises"`
}

// NewLearner creates an empty learner state.
func NewLearner() *Learner {
	return &Learner{
		SeenWords:     make(map[string]*Memory),
		SeenExercises: make(map[string]time.Time),
	}
}

// WithMemory returns the memory record for word, creating one (first
// encounter at now, initial strength) if the word has never been seen.
// The returned record may be mutated by the caller.
func (l *Learner) WithMemory(word string, now time.Time) *Memory {
	if m, ok := l.SeenWords[word]; ok {
		return m
	}
	m := newMemory(now)
	l.SeenWords[word] = m
	return m
}

// Seen reports whether the learner has any memory record for word.
func (l *Learner) Seen(word string) bool {
	_, ok := l.SeenWords[word]
	return ok
}

// MarkSeen records that the exercise was presented at the given time.
func (l *Learner) MarkSeen(ex exercise.Exercise, now time.Time) {
	l.SeenExercises[ex.Key()] = now
}

// wordRank orders candidate words: due words first (most recently due
// wins), then unseen words in curriculum order, then future words by
// soonest review.
type wordRank struct {
	tier int // 0 due, 1 unseen, 2 future
	gap  time.Duration
	idx  int
}

func (r wordRank) less(o wordRank) bool {
	if r.tier != o.tier {
		return r.tier < o.tier
	}
	if r.tier == 1 {
		return r.idx < o.idx
	}
	return r.gap < o.gap
}

// NextWord picks the next word to drill from the target word list: a due
// word if any (the one that became due most recently), otherwise the first
// unseen word in list order, otherwise the word due soonest.
func (l *Learner) NextWord(now time.Time, wordList []string) (string, error) {
	if len(wordList) == 0 {
		return "", ErrEmptyWordList
	}

	rank := func(idx int, word string) wordRank {
		m, ok := l.SeenWords[word]
		if !ok {
			return wordRank{tier: 1, idx: idx}
		}
		diff := m.TargetDate.Sub(now)
		if diff <= 0 {
			return wordRank{tier: 0, gap: -diff}
		}
		return wordRank{tier: 2, gap: diff}
	}

	best := 0
	bestRank := rank(0, wordList[0])
	for i := 1; i < len(wordList); i++ {
		if r := rank(i, wordList[i]); r.less(bestRank) {
			best, bestRank = i, r
		}
	}
	return wordList[best], nil
}

// ScoreExercise rates how well an exercise fits the learner against the
// target word list at the given time. Lower scores are better; see
// ExerciseScore for the priority order.
func (l *Learner) ScoreExercise(now time.Time, ex exercise.Exercise, wordList []string) ExerciseScore {
	words := ex.Words()
	inList := toSet(wordList)

	future := make(map[string]bool, len(words))
	for _, w := range words {
		if m, ok := l.SeenWords[w]; ok && m.TargetDate.After(now) {
			future[w] = true
		}
	}

	var score ExerciseScore
	score.FutureWords = len(future)
	for _, w := range words {
		if !l.Seen(w) {
			score.WordsNotSeen++
		}
		if future[w] {
			continue
		}
		if inList[w] {
			score.WordsInList++
		} else {
			score.WordsNotInList++
		}
	}

	if at, ok := l.SeenExercises[ex.Key()]; ok {
		score.LastSeen = &at
	}
	return score
}

// NextExercise picks the best-fitting exercise containing targetWord, by
// minimum ScoreExercise with ties broken by pool order. The second return
// is false when no exercise contains the target word; that is a normal
// outcome, not an error.
func (l *Learner) NextExercise(now time.Time, exercises []exercise.Exercise, wordList []string, targetWord string) (exercise.Exercise, bool) {
	var best exercise.Exercise
	var bestScore ExerciseScore
	found := false
	for _, ex := range exercises {
		if !ex.Contains(targetWord) {
			continue
		}
		score := l.ScoreExercise(now, ex, wordList)
		if !found || score.Less(bestScore) {
			best, bestScore = ex, score
			found = true
		}
	}
	return best, found
}

// Status summarizes progress over the word list and exercise pool.
func (l *Learner) Status(exercises []exercise.Exercise, wordList []string, now time.Time) WordListStatus {
	inList := toSet(wordList)

	status := WordListStatus{TotalWords: len(wordList)}
	for word, m := range l.SeenWords {
		if !inList[word] {
			continue
		}
		if m.TargetDate.After(now) {
			status.KnownWords++
		} else {
			status.WordsToReview++
		}
	}

	unlocked := make(map[string]bool)
	seen := make(map[string]bool)
	for _, ex := range exercises {
		words := ex.Words()
		touchesList := false
		allSeen := true
		for _, w := range words {
			if inList[w] {
				touchesList = true
			}
			if !l.Seen(w) {
				allSeen = false
			}
		}
		if !touchesList || !allSeen {
			continue
		}
		key := ex.Key()
		unlocked[key] = true
		if _, ok := l.SeenExercises[key]; ok {
			seen[key] = true
		}
	}
	status.UnlockedExercises = len(unlocked)
	status.SeenExercises = len(seen)
	return status
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
