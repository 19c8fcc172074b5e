// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging configures the go-logging backend shared by all
// lumina packages. Each package obtains its logger with GetLog().
package logging

import (
	"os"
	"sync"

	"github.com/op/go-logging"
)

var (
	once sync.Once
	log  *logging.Logger

	format = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortpkg:-8s} %{level:-7s} %{message}`,
	)
)

// GetLog returns the process-wide logger, initializing the backend on
// first use. Output goes to stderr so it never interleaves with the
// engine protocol on stdout.
func GetLog() *logging.Logger {
	once.Do(func() {
		log = logging.MustGetLogger("lumina")
		backend := logging.NewLogBackend(os.Stderr, "", 0)
		formatted := logging.NewBackendFormatter(backend, format)
		leveled := logging.AddModuleLevel(formatted)
		leveled.SetLevel(logging.INFO, "")
		logging.SetBackend(leveled)
	})
	return log
}

// SetLevel adjusts the global log level by name. Unknown names are
// ignored and the current level kept.
func SetLevel(name string) {
	level, err := logging.LogLevel(name)
	if err != nil {
		return
	}
	logging.SetLevel(level, "")
}
