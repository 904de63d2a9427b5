// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mtreilly/shuoci/internal/config"
	"github.com/mtreilly/shuoci/internal/course"
	"github.com/mtreilly/shuoci/internal/exercise"
)

func newTileCmd(cfg *config.Config) *cobra.Command {
	var (
		wordsFile     string
		assumedFile   string
		format        string
		frequencySort bool
	)

	cmd := &cobra.Command{
		Use:   "tile --words <file> <exercise-file>...",
		Short: "Plan which exercises introduce a word list most cheaply",
		Long: `For each word in the list, find the cheapest exercise that introduces it
given the exercises already placed. An exercise is "free" when it brings in
no words from outside the curriculum.

The csv and yaml formats emit only free picks and place each one, so later
words are costed against the growing course. The human format reports the
cheapest candidates per word without placing anything.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDictionary(cfg)
			if err != nil {
				return err
			}
			words, err := loadWordList(d, wordsFile)
			if err != nil {
				return err
			}
			if frequencySort {
				sort.SliceStable(words, func(i, j int) bool {
					return d.Frequency(words[i]) > d.Frequency(words[j])
				})
			}
			curriculum := words
			if assumedFile != "" {
				assumed, err := loadWordList(d, assumedFile)
				if err != nil {
					return err
				}
				curriculum = append(append([]string{}, words...), assumed...)
			}
			exercises, err := loadExercises(args)
			if err != nil {
				return err
			}

			planner := course.NewPlanner(curriculum)
			for _, word := range words {
				ranked := planner.Rank(exercises, word)
				switch format {
				case "human":
					printRanked(word, ranked)
				case "csv":
					if len(ranked) == 0 || !ranked[0].Cost.Free() {
						continue
					}
					pick := ranked[0]
					fmt.Printf("%d/%d/%d\t%s\t%s\t%s\n",
						pick.Cost.NovelWords, pick.Cost.FutureWords, pick.Cost.ExtraneousWords,
						word, pick.Exercise.English, pick.Exercise.FullText())
					planner.Push(pick.Exercise)
				case "yaml":
					if len(ranked) == 0 || !ranked[0].Cost.Free() {
						continue
					}
					if err := exercise.Encode(os.Stdout, []exercise.Exercise{ranked[0].Exercise}); err != nil {
						return err
					}
					planner.Push(ranked[0].Exercise)
				default:
					return fmt.Errorf("unsupported format: %s (choose human, csv, yaml)", format)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&wordsFile, "words", "", "Target word list file (required)")
	cmd.Flags().StringVar(&assumedFile, "assumed", "", "Words assumed known; free to use, never planned for")
	cmd.Flags().StringVarP(&format, "format", "f", "human", "Output format: human, csv, yaml")
	cmd.Flags().BoolVar(&frequencySort, "frequency-sort", false, "Plan the most frequent words first")
	cmd.MarkFlagRequired("words")

	return cmd
}

func printRanked(word string, ranked []course.Scored) {
	fmt.Println(word)
	switch {
	case len(ranked) == 0:
		fmt.Println("  No exercises.")
	case ranked[0].Cost.Free():
		fmt.Printf("  Free: %s\n", ranked[0].Exercise.English)
	default:
		fmt.Println("  Costly")
		for i, pick := range ranked {
			if i >= 5 {
				break
			}
			fmt.Printf("  %s %+v\n", pick.Exercise.English, pick.Cost)
		}
	}
}
