// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"errors"
	"fmt"
)

// Error kinds surfaced at the engine boundary. The search inner loop
// never returns errors; it unwinds through the stop flag and sentinel
// scores instead.
var (
	// ErrInvalidFEN is returned when a FEN string cannot be parsed.
	ErrInvalidFEN = errors.New("invalid FEN")
	// ErrInvalidMove is returned when a move string cannot be parsed
	// or the move is not legal in the current position.
	ErrInvalidMove = errors.New("invalid move")
	// ErrTableAllocation is returned when the requested transposition
	// table size cannot be allocated.
	ErrTableAllocation = errors.New("cannot allocate transposition table")
	// ErrSearchCancelled is returned when the stop flag was observed
	// before any depth completed.
	ErrSearchCancelled = errors.New("search cancelled")
	// ErrDeadlineExceeded is returned when the time budget ran out
	// before any depth completed.
	ErrDeadlineExceeded = errors.New("search deadline exceeded")
)

func errInvalidMove(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidMove}, args...)...)
}

