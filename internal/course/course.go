// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package course plans a study course: for each word in a curriculum it
// finds the cheapest exercise to introduce it, given the exercises already
// placed in the course.
package course

import (
	"unicode/utf8"

	"github.com/mtreilly/shuoci/internal/exercise"
)

// ExerciseCost rates how expensive an exercise is to place next in the
// course. Costs order lexicographically on the fields in declaration
// order; smaller is better.
type ExerciseCost struct {
	// Words not yet covered by the course and outside the word list.
	NovelWords int
	// Words not yet covered but in the word list (they will come later).
	FutureWords int
	// Words already covered that are outside the word list.
	ExtraneousWords int
	// Length of the exercise in characters.
	TotalChars int
}

// Less reports whether c is a strictly cheaper cost than o.
func (c ExerciseCost) Less(o ExerciseCost) bool {
	if c.NovelWords != o.NovelWords {
		return c.NovelWords < o.NovelWords
	}
	if c.FutureWords != o.FutureWords {
		return c.FutureWords < o.FutureWords
	}
	if c.ExtraneousWords != o.ExtraneousWords {
		return c.ExtraneousWords < o.ExtraneousWords
	}
	return c.TotalChars < o.TotalChars
}

// Free reports whether placing the exercise introduces no words from
// outside the curriculum.
func (c ExerciseCost) Free() bool { return c.NovelWords == 0 }

// Planner accumulates a course: a word list defining the curriculum and the
// exercises placed so far. Placed exercises mark their words as covered.
type Planner struct {
	wordList map[string]bool
	covered  map[string]bool
}

// NewPlanner creates a planner over the given curriculum word list.
func NewPlanner(wordList []string) *Planner {
	p := &Planner{
		wordList: make(map[string]bool, len(wordList)),
		covered:  make(map[string]bool),
	}
	for _, w := range wordList {
		p.wordList[w] = true
	}
	return p
}

// Push places an exercise into the course, marking its words covered.
func (p *Planner) Push(ex exercise.Exercise) {
	for _, w := range ex.Words() {
		p.covered[w] = true
	}
}

// Cost rates an exercise against the current course state.
func (p *Planner) Cost(ex exercise.Exercise) ExerciseCost {
	var cost ExerciseCost
	for _, w := range ex.Words() {
		switch {
		case !p.covered[w] && !p.wordList[w]:
			cost.NovelWords++
		case !p.covered[w]:
			cost.FutureWords++
		case !p.wordList[w]:
			cost.ExtraneousWords++
		}
	}
	cost.TotalChars = utf8.RuneCountInString(ex.FullText())
	return cost
}

// Scored pairs an exercise with its cost.
type Scored struct {
	Exercise exercise.Exercise
	Cost     ExerciseCost
}

// Rank returns the exercises containing word, cheapest first. Pool order
// breaks ties.
func (p *Planner) Rank(exercises []exercise.Exercise, word string) []Scored {
	var scored []Scored
	for _, ex := range exercises {
		if !ex.Contains(word) {
			continue
		}
		scored = append(scored, Scored{Exercise: ex, Cost: p.Cost(ex)})
	}
	// Insertion sort keeps pool order among equal costs.
	for i := 1; i < len(scored); i++ {
		for j := i; j > 0 && scored[j].Cost.Less(scored[j-1].Cost); j-- {
			scored[j-1], scored[j] = scored[j], scored[j-1]
		}
	}
	return scored
}
