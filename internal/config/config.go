// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the engine configuration from an optional
// TOML file. Missing file or fields fall back to defaults.
package config

import (
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Settings holds the engine configuration.
type Settings struct {
	// HashSizeMB is the transposition table size in megabytes.
	HashSizeMB int `toml:"hash_mb"`
	// Workers is the number of parallel search workers.
	Workers int `toml:"workers"`
	// Depth is the default depth limit.
	Depth int `toml:"depth"`
	// MoveTimeMs is the default time budget per search, 0 for none.
	MoveTimeMs int `toml:"move_time_ms"`
	// NNUEPath points at a network file for the neural evaluator.
	NNUEPath string `toml:"nnue_path"`
	// LogLevel is a go-logging level name (DEBUG, INFO, ...).
	LogLevel string `toml:"log_level"`
}

// Defaults returns the built-in configuration.
func Defaults() Settings {
	return Settings{
		HashSizeMB: 64,
		Workers:    runtime.NumCPU(),
		Depth:      64,
		MoveTimeMs: 0,
		LogLevel:   "INFO",
	}
}

// Load reads path on top of the defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return s, err
	}
	return s, nil
}
