// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package perft implements the move generation verification count.
// https://www.chessprogramming.org/Perft
package perft

import (
	"github.com/luminachess/lumina/engine"
)

// Perft returns the number of legal leaf positions reachable from
// pos in exactly depth plies.
func Perft(pos *engine.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	var moves []engine.Move
	pos.GenerateMoves(engine.All, &moves)
	us := pos.Us()

	var nodes uint64
	for _, m := range moves {
		pos.DoMove(m)
		if !pos.IsChecked(us) {
			if depth == 1 {
				nodes++
			} else {
				nodes += Perft(pos, depth-1)
			}
		}
		pos.UndoMove()
	}
	return nodes
}

// Divide returns the perft count per root move, the classic tool for
// locating move generation bugs.
func Divide(pos *engine.Position, depth int) map[string]uint64 {
	counts := make(map[string]uint64)
	var moves []engine.Move
	pos.GenerateLegalMoves(&moves)
	for _, m := range moves {
		pos.DoMove(m)
		counts[m.String()] = Perft(pos, depth-1)
		pos.UndoMove()
	}
	return counts
}
