// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// time_control.go bounds a search by depth and wall clock. There is
// deliberately no time management beyond honoring the caller's
// deadline; allocating time across a game is the caller's business.

package engine

import (
	"sync/atomic"
	"time"
)

// TimeControl stops a search on a depth limit, a deadline, or an
// external stop request. It is shared by all workers of one search;
// all methods are safe for concurrent use.
type TimeControl struct {
	depth       int32
	deadline    time.Time
	hasDeadline bool
	stopped     atomic.Bool
}

// NewFixedDepthTimeControl limits the search to depth plies.
func NewFixedDepthTimeControl(depth int32) *TimeControl {
	if depth < 1 {
		depth = 1
	}
	if depth >= maxPly {
		depth = maxPly - 1
	}
	return &TimeControl{depth: depth}
}

// NewDeadlineTimeControl limits the search to budget wall time.
func NewDeadlineTimeControl(budget time.Duration) *TimeControl {
	tc := &TimeControl{depth: maxPly - 1}
	tc.setDeadline(budget)
	return tc
}

// NewTimeControl limits the search by both depth and time.
// A zero or negative budget means no time limit.
func NewTimeControl(depth int32, budget time.Duration) *TimeControl {
	tc := NewFixedDepthTimeControl(depth)
	if budget > 0 {
		tc.setDeadline(budget)
	}
	return tc
}

func (tc *TimeControl) setDeadline(budget time.Duration) {
	// time.Now carries a monotonic reading, so the deadline
	// comparison is immune to wall clock adjustments.
	tc.deadline = time.Now().Add(budget)
	tc.hasDeadline = true
}

// Depth returns the depth limit.
func (tc *TimeControl) Depth() int32 {
	return tc.depth
}

// NextDepth returns true if iterative deepening may start an
// iteration at depth. The first two depths always run so the search
// can return a move.
func (tc *TimeControl) NextDepth(depth int32) bool {
	return depth <= tc.depth && (depth <= 2 || !tc.Stopped())
}

// Stop requests the search to stop. Cooperative: workers observe the
// flag at their next checkpoint.
func (tc *TimeControl) Stop() {
	tc.stopped.Store(true)
}

// Stopped returns true if the search should stop.
func (tc *TimeControl) Stopped() bool {
	if tc.stopped.Load() {
		return true
	}
	if tc.hasDeadline && time.Now().After(tc.deadline) {
		tc.stopped.Store(true)
		return true
	}
	return false
}
