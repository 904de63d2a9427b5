// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mtreilly/shuoci/internal/config"
	"github.com/mtreilly/shuoci/internal/dict"
	"github.com/mtreilly/shuoci/internal/exercise"
	"github.com/mtreilly/shuoci/internal/store"
)

// NewRootCmd creates the root command for shuoci.
func NewRootCmd(cfg *config.Config, st store.Store) *cobra.Command {

	root := &cobra.Command{
		Use:   "shuoci",
		Short: "Drill Mandarin vocabulary from bilingual transcripts",
		Long: `Turn bilingual transcripts into pinyin drills and review them on a
spaced-repetition schedule.

shuoci provides tools to:
- Convert Chinese/Pinyin/English transcripts into exercise files
- Train target vocabulary with per-word scheduling
- Plan which exercises introduce a word list most cheaply
- Show progress against a word list`,
	}

	root.AddCommand(newConvertCmd(cfg))
	root.AddCommand(newTrainCmd(cfg, st))
	root.AddCommand(newTileCmd(cfg))
	root.AddCommand(newStatusCmd(cfg, st))
	root.AddCommand(newWordsCmd(cfg))
	root.AddCommand(newExportCmd(cfg))

	return root
}

// openDictionary loads the configured CC-CEDICT dictionary, with the
// frequency table when one is configured.
func openDictionary(cfg *config.Config) (*dict.CEDict, error) {
	return dict.OpenCEDict(cfg.Dictionary.Path, cfg.Dictionary.FrequencyPath)
}

// loadWordList segments a text file into dictionary words. Characters the
// dictionary does not know are dropped, so a word list file may be plain
// running text.
func loadWordList(d dict.Dictionary, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	var words []string
	for _, tok := range d.Segment(string(data)) {
		if tok.Entry != nil {
			words = append(words, tok.Entry.Simplified)
		}
	}
	return words, nil
}

// loadExercises reads and concatenates one or more exercise files.
func loadExercises(paths []string) ([]exercise.Exercise, error) {
	var all []exercise.Exercise
	for _, path := range paths {
		exercises, err := exercise.ReadFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, exercises...)
	}
	return all, nil
}
