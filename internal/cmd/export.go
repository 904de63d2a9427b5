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
	"github.com/mtreilly/shuoci/internal/export"
)

func newExportCmd(cfg *config.Config) *cobra.Command {
	var (
		deckName string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "export <exercise-file>...",
		Short: "Export exercises as an Anki deck",
		Long: `Write exercises to an .apkg package that Anki can import. Each
exercise becomes one card with the Chinese sentence on the front and the
pinyin reading plus translation on the back.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exercises, err := loadExercises(args)
			if err != nil {
				return err
			}
			if len(exercises) == 0 {
				return errors.New("no exercises to export")
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}

			exporter := export.NewAnkiExporter(deckName)
			if err := exporter.ExportExercises(exercises, f); err != nil {
				f.Close()
				os.Remove(output)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"cards": len(exercises),
				"file":  output,
			}).Info("exported deck")
			return nil
		},
	}

	cmd.Flags().StringVar(&deckName, "deck", "shuoci", "Name of the Anki deck")
	cmd.Flags().StringVarP(&output, "output", "o", "shuoci.apkg", "Output .apkg file")

	return cmd
}
