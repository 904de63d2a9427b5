// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package store persists learner state and the review log.
// Implementations may use flat files or SQLite.
package store

import (
	"time"

	"github.com/mtreilly/shuoci/internal/schedule"
)

// ReviewOutcome is the result of answering one word.
type ReviewOutcome string

const (
	ReviewSuccess ReviewOutcome = "success"
	ReviewFail    ReviewOutcome = "fail"
)

// ReviewEvent is one answered word in a training session.
type ReviewEvent struct {
	ID        string        `json:"id"`
	SessionID string        `json:"session_id"`
	Word      string        `json:"word"`
	Outcome   ReviewOutcome `json:"outcome"`
	At        time.Time     `json:"at"`
}

// Store is the interface for persisting learner state. State is saved
// eagerly after every mutating review event, so a crash loses at most the
// in-flight answer.
type Store interface {
	// LoadState returns the persisted learner state, or a fresh empty
	// state when none has been saved yet.
	LoadState() (*schedule.Learner, error)

	// SaveState persists the learner state, replacing any previous one.
	SaveState(*schedule.Learner) error

	// AppendReview appends one review event to the log. An empty event ID
	// is filled in by the store.
	AppendReview(ReviewEvent) error

	Close() error
}
