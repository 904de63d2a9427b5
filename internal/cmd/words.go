// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mtreilly/shuoci/internal/config"
)

func newWordsCmd(cfg *config.Config) *cobra.Command {
	var unique bool

	cmd := &cobra.Command{
		Use:   "words <text-file>",
		Short: "Segment text into dictionary words",
		Long: `Split a Chinese text into dictionary words, one per line. Characters the
dictionary does not know are dropped. Useful for turning running text into
a word list file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDictionary(cfg)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read text: %w", err)
			}

			seen := make(map[string]bool)
			for _, tok := range d.Segment(string(data)) {
				if tok.Entry == nil {
					continue
				}
				word := tok.Entry.Simplified
				if unique {
					if seen[word] {
						continue
					}
					seen[word] = true
				}
				fmt.Println(word)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&unique, "unique", "u", false, "Print each word only once")

	return cmd
}
