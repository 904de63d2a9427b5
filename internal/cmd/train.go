// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mtreilly/shuoci/internal/config"
	"github.com/mtreilly/shuoci/internal/dict"
	"github.com/mtreilly/shuoci/internal/exercise"
	"github.com/mtreilly/shuoci/internal/schedule"
	"github.com/mtreilly/shuoci/internal/store"
)

func newTrainCmd(cfg *config.Config, st store.Store) *cobra.Command {
	var (
		wordsFile   string
		assumedFile string
	)

	cmd := &cobra.Command{
		Use:   "train --words <file> <exercise-file>...",
		Short: "Drill target words with spaced repetition",
		Long: `Review exercises word by word. For each target word the scheduler picks
the best-fitting exercise, then prompts for the pinyin of every word in it.

Tone marks are entered as trailing digits: "wo3" becomes "wǒ", "hao3"
becomes "hǎo". Enter "?" to reveal the answer; a revealed word is recorded
as a failure and rescheduled. Progress is saved after every answer; exit
any time with ctrl-d.`,
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
			scoringList := words
			if assumedFile != "" {
				assumed, err := loadWordList(d, assumedFile)
				if err != nil {
					return err
				}
				scoringList = append(append([]string{}, words...), assumed...)
			}
			exercises, err := loadExercises(args)
			if err != nil {
				return err
			}
			learner, err := st.LoadState()
			if err != nil {
				return err
			}

			session := &trainSession{
				store:       st,
				learner:     learner,
				exercises:   exercises,
				words:       words,
				scoringList: scoringList,
				sessionID:   uuid.NewString(),
				in:          bufio.NewScanner(cmd.InOrStdin()),
				skipped:     make(map[string]bool),
			}
			return session.run()
		},
	}

	cmd.Flags().StringVar(&wordsFile, "words", "", "Target word list file (required)")
	cmd.Flags().StringVar(&assumedFile, "assumed", "", "Words assumed known; scored but never drilled")
	cmd.MarkFlagRequired("words")

	return cmd
}

// trainSession is one interactive review run. Learner state is saved after
// every answer so interrupting the session loses nothing.
type trainSession struct {
	store       store.Store
	learner     *schedule.Learner
	exercises   []exercise.Exercise
	words       []string
	scoringList []string
	sessionID   string
	in          *bufio.Scanner
	// Words with no exercise in the pool, skipped for the rest of the run.
	skipped map[string]bool
}

func (s *trainSession) run() error {
	for {
		candidates := make([]string, 0, len(s.words))
		for _, w := range s.words {
			if !s.skipped[w] {
				candidates = append(candidates, w)
			}
		}
		target, err := s.learner.NextWord(time.Now(), candidates)
		if errors.Is(err, schedule.ErrEmptyWordList) {
			fmt.Println("No drillable words left.")
			return nil
		}
		if err != nil {
			return err
		}

		ex, ok := s.learner.NextExercise(time.Now(), s.exercises, s.scoringList, target)
		if !ok {
			logrus.WithField("word", target).Warn("no exercise contains word, skipping")
			s.skipped[target] = true
			continue
		}

		status := s.learner.Status(s.exercises, s.scoringList, time.Now())
		fmt.Printf("\nTarget word: %s, known: %d, to review: %d, total: %d, exercises: %d/%d\n",
			target, status.KnownWords, status.WordsToReview, status.TotalWords,
			status.SeenExercises, status.UnlockedExercises)
		fmt.Printf("Chinese: %s\n", ex.FullText())

		done, err := s.drill(ex)
		if err != nil {
			return err
		}
		if !done {
			// Input closed mid-exercise.
			return nil
		}

		s.learner.MarkSeen(ex, time.Now())
		if err := s.store.SaveState(s.learner); err != nil {
			return err
		}
		fmt.Printf("Pinyin:  %s\n", ex.FullReading())
		fmt.Printf("English: %s\n", ex.English)
	}
}

// drill prompts for each word of the exercise in order. It returns false
// when input is exhausted before the exercise is finished.
func (s *trainSession) drill(ex exercise.Exercise) (bool, error) {
	for _, seg := range ex.Segments {
		if seg.Pinyin == "" {
			continue
		}
		want := normalizePinyin(seg.Pinyin)
		revealed := false
		for {
			fmt.Printf("%s? ", seg.Chinese)
			if !s.in.Scan() {
				if err := s.in.Err(); err != nil {
					return false, err
				}
				fmt.Println()
				return false, nil
			}
			answer := strings.TrimSpace(s.in.Text())
			if answer == "?" {
				fmt.Printf("Answer: %s\n", seg.Pinyin)
				revealed = true
				continue
			}
			if normalizePinyin(applyTones(answer)) == want {
				break
			}
		}

		now := time.Now()
		m := s.learner.WithMemory(seg.Chinese, now)
		outcome := store.ReviewSuccess
		if revealed {
			m.Fail(now)
			outcome = store.ReviewFail
		} else {
			m.Success(now)
		}
		if err := s.store.SaveState(s.learner); err != nil {
			return false, err
		}
		if err := s.store.AppendReview(store.ReviewEvent{
			SessionID: s.sessionID,
			Word:      seg.Chinese,
			Outcome:   outcome,
			At:        now,
		}); err != nil {
			return false, err
		}
	}
	return true, nil
}

// applyTones converts trailing tone digits to diacritics one digit at a
// time, so "zhi1dao4" resolves the same way it would if each digit were
// applied as it was typed.
func applyTones(input string) string {
	var cur strings.Builder
	for _, r := range input {
		cur.WriteRune(r)
		if r >= '1' && r <= '5' {
			converted := dict.ApplyTones(cur.String())
			cur.Reset()
			cur.WriteString(converted)
		}
	}
	return dict.ApplyTones(cur.String())
}

// normalizePinyin lowercases and removes all whitespace so answers compare
// independent of spacing.
func normalizePinyin(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
