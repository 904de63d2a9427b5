// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mtreilly/shuoci/internal/schedule"
)

const (
	stateFileName  = "learner.yaml"
	reviewFileName = "reviews.jsonl"
)

// FileStore keeps learner state as a YAML file and the review log as JSON
// lines in a data directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on
// first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// LoadState reads the learner state file; a missing file yields a fresh
// empty state.
func (s *FileStore) LoadState() (*schedule.Learner, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, stateFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return schedule.NewLearner(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read learner state: %w", err)
	}

	learner := schedule.NewLearner()
	if err := yaml.Unmarshal(data, learner); err != nil {
		return nil, fmt.Errorf("decode learner state: %w", err)
	}
	return learner, nil
}

// SaveState writes the learner state file, creating the data directory if
// needed.
func (s *FileStore) SaveState(learner *schedule.Learner) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := yaml.Marshal(learner)
	if err != nil {
		return fmt.Errorf("encode learner state: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, stateFileName), data, 0o644); err != nil {
		return fmt.Errorf("write learner state: %w", err)
	}
	return nil
}

// AppendReview appends one JSON line to the review log.
func (s *FileStore) AppendReview(ev ReviewEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(s.dir, reviewFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open review log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode review event: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append review event: %w", err)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error { return nil }
