// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mtreilly/shuoci/internal/cmd"
	"github.com/mtreilly/shuoci/internal/config"
	"github.com/mtreilly/shuoci/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "shuoci: failed to load config: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg)

	var st store.Store

	switch cfg.Storage {
	case "sqlite":
		// If SQLite fails (missing directory, permissions, corruption), fall
		// back to the file store so the tool stays usable.
		sqlStore, err := store.OpenSQLStore(cfg.DatabasePath())
		if err != nil {
			logrus.WithError(err).Warn("cannot open SQLite database, falling back to file store")
			st = store.NewFileStore(cfg.DataDir)
			break
		}
		st = sqlStore

	case "file":
		st = store.NewFileStore(cfg.DataDir)

	default:
		fmt.Fprintf(os.Stderr, "shuoci: unknown storage backend %q (choose file or sqlite)\n", cfg.Storage)
		os.Exit(1)
	}
	defer st.Close()

	root := cmd.NewRootCmd(cfg, st)
	if err := root.Execute(); err != nil {
		st.Close()
		os.Exit(1)
	}
}

func setupLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetOutput(os.Stderr)
}
