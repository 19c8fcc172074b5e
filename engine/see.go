// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// see.go implements static exchange evaluation.
//
// https://www.chessprogramming.org/Static_Exchange_Evaluation
// https://www.chessprogramming.org/SEE_-_The_Swap_Algorithm

package engine

// see returns the static exchange evaluation for m, which must be
// valid for the current position (not yet executed).
//
// Attackers are swapped off from least to most valuable on each side
// using a mutable occupancy, revealing x-ray attackers as pieces are
// removed from the exchange square.
func see(pos *Position, m Move) int32 {
	from, to := m.From(), m.To()
	us := pos.Us()

	target := pos.Get(from).Figure()
	captured := pos.Get(to).Figure()

	occ := pos.all &^ from.Bitboard()
	if target == Pawn && to == pos.curr.enpassant && captured == NoFigure {
		captured = Pawn
		occ &^= RankFile(from.Rank(), to.File()).Bitboard()
	}

	var gain [32]int32
	d := 0
	gain[0] = figureBonus[captured]
	if promo := m.Promotion(); promo != NoFigure {
		gain[0] += figureBonus[promo] - figureBonus[Pawn]
		target = promo
	}

	attackers := pos.attackersTo(to, occ) & occ
	side := us.Opposite()

	for {
		ours := attackers & pos.byColor[side]
		if ours == 0 {
			break
		}

		// Pop the cheapest attacker.
		var fig Figure
		var bb Bitboard
		for fig = Pawn; fig <= King; fig++ {
			if bb = ours & pos.byPiece[side][fig]; bb != 0 {
				break
			}
		}

		d++
		gain[d] = figureBonus[target] - gain[d-1]
		if max(-gain[d-1], gain[d]) < 0 {
			// Neither continuing nor stopping helps this side.
			break
		}

		occ &^= bb.LSB()
		// Removing a piece may reveal a slider behind it.
		if fig == Pawn || fig == Bishop || fig == Queen {
			attackers |= BishopAttacks(to, occ) & (pos.ByFigure(Bishop) | pos.ByFigure(Queen))
		}
		if fig == Rook || fig == Queen {
			attackers |= RookAttacks(to, occ) & (pos.ByFigure(Rook) | pos.ByFigure(Queen))
		}
		attackers &= occ

		target = fig
		side = side.Opposite()
	}

	for ; d > 0; d-- {
		gain[d-1] = -max(-gain[d-1], gain[d])
	}
	return gain[0]
}

// seeSign returns true if see(m) < 0, i.e. m loses material.
// The early exit covers captures of an equal or more valuable piece.
func seeSign(pos *Position, m Move) bool {
	if pi := pos.Get(m.From()); pi.Figure() <= pos.Get(m.To()).Figure() {
		// Even if the mover is captured back, the exchange is not losing.
		return false
	}
	return see(pos, m) < 0
}

// seeAbove returns true if the exchange started by m wins at least
// threshold centipawns. Used by ProbCut.
func seeAbove(pos *Position, m Move, threshold int32) bool {
	return see(pos, m) >= threshold
}
