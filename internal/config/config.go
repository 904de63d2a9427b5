// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package config loads application configuration from a YAML file and
// SHUOCI_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// DataDir is where learner state and the review log live.
	DataDir string `mapstructure:"data_dir"`
	// Storage selects the persistence backend: "file" or "sqlite".
	Storage    string           `mapstructure:"storage"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Log        LogConfig        `mapstructure:"log"`
}

// DictionaryConfig locates the CC-CEDICT dictionary and the optional word
// frequency list.
type DictionaryConfig struct {
	Path          string `mapstructure:"path"`
	FrequencyPath string `mapstructure:"frequency_path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from shuoci.yaml and environment variables. A
// missing config file is not an error; defaults and env vars apply.
func Load() (*Config, error) {
	viper.SetConfigName("shuoci")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "shuoci"))
	}

	setDefaults()

	viper.SetEnvPrefix("SHUOCI")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("data_dir", defaultDataDir())
	viper.SetDefault("storage", "file")

	viper.SetDefault("dictionary.path", "cedict_ts.u8")
	viper.SetDefault("dictionary.frequency_path", "")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

// DatabasePath returns the SQLite database path inside the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "shuoci.db")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shuoci"
	}
	return filepath.Join(home, ".local", "share", "shuoci")
}
