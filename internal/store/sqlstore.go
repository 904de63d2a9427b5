// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/mtreilly/shuoci/internal/schedule"
)

// learnerStateKey namespaces the learner state blob in the kv table.
const learnerStateKey = "shuoci:learner:state"

// SQLStore persists learner state and the review log in a SQLite database.
// The state is kept as a single YAML blob in a kv table; reviews get their
// own append-only table.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLStore opens (or creates) the database at path and initializes the
// schema.
func OpenSQLStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &SQLStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *SQLStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS review_log (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		word TEXT NOT NULL,
		outcome TEXT NOT NULL,
		reviewed_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_review_log_word ON review_log(word);
	CREATE INDEX IF NOT EXISTS idx_review_log_session ON review_log(session_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// LoadState returns the persisted learner state, or a fresh empty state when
// none has been saved yet.
func (s *SQLStore) LoadState() (*schedule.Learner, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, learnerStateKey).Scan(&blob)
	if err == sql.ErrNoRows {
		return schedule.NewLearner(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("query learner state: %w", err)
	}

	learner := schedule.NewLearner()
	if err := yaml.Unmarshal(blob, learner); err != nil {
		return nil, fmt.Errorf("decode learner state: %w", err)
	}
	return learner, nil
}

// SaveState replaces the persisted learner state.
func (s *SQLStore) SaveState(learner *schedule.Learner) error {
	blob, err := yaml.Marshal(learner)
	if err != nil {
		return fmt.Errorf("encode learner state: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		learnerStateKey, blob, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save learner state: %w", err)
	}
	return nil
}

// AppendReview inserts one review event into the log.
func (s *SQLStore) AppendReview(ev ReviewEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO review_log (id, session_id, word, outcome, reviewed_at)
		VALUES (?, ?, ?, ?, ?)`,
		ev.ID, ev.SessionID, ev.Word, string(ev.Outcome), ev.At.UTC())
	if err != nil {
		return fmt.Errorf("insert review event: %w", err)
	}
	return nil
}

// Reviews returns all logged review events for a word, oldest first.
func (s *SQLStore) Reviews(word string) ([]ReviewEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, word, outcome, reviewed_at
		FROM review_log WHERE word = ? ORDER BY reviewed_at`, word)
	if err != nil {
		return nil, fmt.Errorf("query review log: %w", err)
	}
	defer rows.Close()

	var events []ReviewEvent
	for rows.Next() {
		var ev ReviewEvent
		var outcome string
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.Word, &outcome, &ev.At); err != nil {
			return nil, fmt.Errorf("scan review event: %w", err)
		}
		ev.Outcome = ReviewOutcome(outcome)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Close closes the underlying database.
func (s *SQLStore) Close() error { return s.db.Close() }
