// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// nnue.go declares the contract of the pluggable neural evaluator.
// The evaluator itself, its training and its weight format live
// outside the core; when one is installed the static evaluation
// delegates to it.

package engine

// Evaluator is an efficiently updatable neural network evaluator.
//
// Implementations keep per-position accumulators that are updated
// incrementally around each make through UpdateBeforeMove and
// UpdateAfterMove. The engine rebuilds them with RefreshAccumulator
// after every unmake.
// Accumulator buffers must be aligned to the SIMD width the
// implementation dispatches to.
type Evaluator interface {
	// LoadNetwork loads weights from path, reporting success.
	LoadNetwork(path string) bool
	// Evaluate scores pos in centipawns, side to move relative.
	Evaluate(pos *Position) int32
	// RefreshAccumulator rebuilds internal state from pos.
	RefreshAccumulator(pos *Position)
	// UpdateBeforeMove is called before m is made on pos.
	UpdateBeforeMove(pos *Position, m Move)
	// UpdateAfterMove is called after m was made on pos.
	UpdateAfterMove(pos *Position, m Move)
}
