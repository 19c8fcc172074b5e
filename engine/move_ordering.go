// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// move_ordering.go ranks candidate moves before search. A good first
// move cuts most of the tree, so ranking precision matters more here
// than ranking speed.

package engine

// Score bands, highest first. History scores fill the signed band
// below promotionScore.
const (
	hashMoveScore     int32 = 10000000
	captureScore      int32 = 1000000
	firstKillerScore  int32 = 950000
	secondKillerScore int32 = 940000
	counterMoveScore  int32 = 850000
	promotionScore    int32 = 800000
)

// moveList is the per-ply scored move buffer. The backing arrays are
// reused across nodes of the same ply to avoid allocations.
type moveList struct {
	moves []Move
	order []int32
}

func (ml *moveList) clear() {
	ml.moves = ml.moves[:0]
	ml.order = ml.order[:0]
}

// mvvlva computes Most Valuable Victim / Least Valuable Aggressor
// for a capture: victim value times 100 minus attacker value.
func mvvlva(victim, attacker Figure) int32 {
	return figureBonus[victim]*100 - figureBonus[attacker]
}

// scoreMoves assigns an ordering score to every generated move.
// hash is the transposition table move, prev the opponent's last move.
func (eng *Engine) scoreMoves(ml *moveList, hash Move, prev prevMoveKey, ply int32) {
	pos := eng.Position
	us := pos.Us()
	h := eng.heur

	for _, m := range ml.moves {
		var score int32
		switch {
		case m == hash:
			score = hashMoveScore
		default:
			pi := pos.Get(m.From())
			victim := pos.Get(m.To()).Figure()
			if victim == NoFigure && pi.Figure() == Pawn && m.To() == pos.EnpassantSquare() {
				victim = Pawn
			}

			if victim != NoFigure {
				score = captureScore + mvvlva(victim, pi.Figure())
				if promo := m.Promotion(); promo != NoFigure {
					score += promotionScore + figureBonus[promo]
				}
			} else if promo := m.Promotion(); promo != NoFigure {
				score = promotionScore + figureBonus[promo]
			} else if ks := h.killerScore(ply, m); ks != 0 {
				score = ks
			} else if h.isCounter(us, prev, m) {
				score = counterMoveScore
			} else {
				score = h.historyScore(us, prev, pi, m)
			}
		}
		ml.order = append(ml.order, score)
	}
	ml.sort()
}

// scoreViolentMoves ranks captures and promotions for quiescence by
// MVV-LVA plus the exchange outcome.
func (eng *Engine) scoreViolentMoves(ml *moveList) {
	pos := eng.Position
	for _, m := range ml.moves {
		pi := pos.Get(m.From())
		victim := pos.Get(m.To()).Figure()
		if victim == NoFigure && pi.Figure() == Pawn && m.To() == pos.EnpassantSquare() {
			victim = Pawn
		}
		score := mvvlva(victim, pi.Figure()) + see(pos, m)
		if promo := m.Promotion(); promo != NoFigure {
			score += promotionScore + figureBonus[promo]
		}
		ml.order = append(ml.order, score)
	}
	ml.sort()
}

// Gaps from Best Increments for the Average Case of Shellsort,
// Marcin Ciura.
var shellSortGaps = [...]int{132, 57, 23, 10, 4, 1}

// sort orders the list ascending so popBack yields best moves first.
func (ml *moveList) sort() {
	for _, gap := range shellSortGaps {
		for i := gap; i < len(ml.order); i++ {
			j := i
			to, tm := ml.order[j], ml.moves[j]
			for ; j >= gap && ml.order[j-gap] > to; j -= gap {
				ml.order[j] = ml.order[j-gap]
				ml.moves[j] = ml.moves[j-gap]
			}
			ml.order[j], ml.moves[j] = to, tm
		}
	}
}

// popBack pops the highest scored remaining move.
// Returns NullMove when the list is exhausted.
func (ml *moveList) popBack() (Move, int32) {
	if len(ml.moves) == 0 {
		return NullMove, 0
	}
	last := len(ml.moves) - 1
	m, s := ml.moves[last], ml.order[last]
	ml.moves = ml.moves[:last]
	ml.order = ml.order[:last]
	return m, s
}
