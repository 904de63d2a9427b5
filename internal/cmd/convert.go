// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mtreilly/shuoci/internal/config"
	"github.com/mtreilly/shuoci/internal/exercise"
)

func newConvertCmd(cfg *config.Config) *cobra.Command {
	var (
		laxSegmentation bool
		strictPinyin    bool
		output          string
	)

	cmd := &cobra.Command{
		Use:   "convert <transcript-file>",
		Short: "Convert a bilingual transcript into an exercise file",
		Long: `Parse a transcript of Chinese/Pinyin/English triples and align each
sentence against the dictionary, producing a YAML exercise file.

Segmentation is strict by default: a dictionary word that ends in the
middle of a romanized word aborts the record. Pinyin matching is loose by
default: missing tone marks are tolerated where they cannot introduce
ambiguity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read transcript: %w", err)
			}

			d, err := openDictionary(cfg)
			if err != nil {
				return err
			}

			aligner := exercise.NewAligner(d, exercise.Options{
				Strict:     !laxSegmentation,
				LooseTones: !strictPinyin,
			})

			exercises, convErr := aligner.Convert(string(data))
			if convErr != nil {
				logConvertError(convErr)
			}
			if len(exercises) == 0 {
				if convErr != nil {
					return convErr
				}
				return errors.New("transcript is empty")
			}

			if output == "" || output == "-" {
				if err := exercise.Encode(os.Stdout, exercises); err != nil {
					return err
				}
			} else if err := exercise.WriteFile(output, exercises); err != nil {
				return err
			}
			return convErr
		},
	}

	cmd.Flags().BoolVar(&laxSegmentation, "lax-segmentation", false, "Allow dictionary matches that end mid-word")
	cmd.Flags().BoolVar(&strictPinyin, "strict-pinyin", false, "Require exact tone marks in the transcription")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file (default: stdout)")

	return cmd
}

// logConvertError reports where the conversion stopped, with the diagnostic
// context the error carries.
func logConvertError(err error) {
	var parseErr *exercise.ParseError
	var ambErr *exercise.AmbiguityError
	var alignErr *exercise.AlignmentError
	switch {
	case errors.As(err, &parseErr):
		logrus.WithField("remainder", snippet(parseErr.Remainder)).Error("malformed transcript record")
	case errors.As(err, &ambErr):
		logrus.WithFields(logrus.Fields{
			"matched":   ambErr.Matched,
			"remainder": snippet(ambErr.Remainder),
		}).Error("segmentation ambiguity")
	case errors.As(err, &alignErr):
		logrus.WithFields(logrus.Fields{
			"chinese":   alignErr.Chinese,
			"remainder": snippet(alignErr.Remainder),
		}).Error("alignment failed")
	default:
		logrus.WithError(err).Error("conversion failed")
	}
}

func snippet(s string) string {
	const max = 60
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
