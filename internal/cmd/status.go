// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mtreilly/shuoci/internal/config"
	"github.com/mtreilly/shuoci/internal/store"
)

func newStatusCmd(cfg *config.Config, st store.Store) *cobra.Command {
	var wordsFile string

	cmd := &cobra.Command{
		Use:   "status --words <file> <exercise-file>...",
		Short: "Show learning progress against a word list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDictionary(cfg)
			if err != nil {
				return err
			}
			words, err := loadWordList(d, wordsFile)
			if err != nil {
				return err
			}
			exercises, err := loadExercises(args)
			if err != nil {
				return err
			}
			learner, err := st.LoadState()
			if err != nil {
				return err
			}

			now := time.Now()
			status := learner.Status(exercises, words, now)

			fmt.Printf("Words:     %d total, %d known, %d to review\n",
				status.TotalWords, status.KnownWords, status.WordsToReview)
			fmt.Printf("Exercises: %d unlocked, %d seen\n",
				status.UnlockedExercises, status.SeenExercises)

			type due struct {
				word string
				at   time.Time
			}
			var dues []due
			seenInList := make(map[string]bool)
			for _, w := range words {
				if seenInList[w] {
					continue
				}
				seenInList[w] = true
				if m, ok := learner.SeenWords[w]; ok && !m.TargetDate.After(now) {
					dues = append(dues, due{word: w, at: m.TargetDate})
				}
			}
			sort.Slice(dues, func(i, j int) bool { return dues[i].at.Before(dues[j].at) })

			if len(dues) > 0 {
				fmt.Println("\nDue for review:")
				for _, d := range dues {
					fmt.Printf("  %s  (due %s)\n", d.word, humanize.Time(d.at))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&wordsFile, "words", "", "Target word list file (required)")
	cmd.MarkFlagRequired("words")

	return cmd
}
