// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// history.go keeps the per-search move ordering heuristics: killer
// moves, from-to history, butterfly history, counter moves and
// counter-move history. All tables are worker-local and live for a
// single iterative deepening search; Engine ages them between
// searches. Do not conflate these with the transposition table.

package engine

const (
	// maxPly bounds the search stack depth.
	maxPly = 128

	// historyMax clamps the history counters. When a counter reaches
	// the ceiling the whole table is halved to keep the signal current.
	historyMax int32 = 8192
)

type heuristics struct {
	killer      [maxPly][2]Move
	history     [ColorArraySize][SquareArraySize][SquareArraySize]int32
	butterfly   [ColorArraySize][SquareArraySize][SquareArraySize]int32
	counterMove [ColorArraySize][SquareArraySize]Move
	counterHist [FigureArraySize][SquareArraySize][FigureArraySize][SquareArraySize]int32
}

func newHeuristics() *heuristics {
	return &heuristics{}
}

// clear wipes all tables, as for a fresh search.
func (h *heuristics) clear() {
	*h = heuristics{}
}

// age halves all history counters between searches so stale signal
// decays instead of being discarded outright.
func (h *heuristics) age() {
	h.killer = [maxPly][2]Move{}
	h.counterMove = [ColorArraySize][SquareArraySize]Move{}
	for c := 0; c < ColorArraySize; c++ {
		for f := 0; f < SquareArraySize; f++ {
			for t := 0; t < SquareArraySize; t++ {
				h.history[c][f][t] /= 2
				h.butterfly[c][f][t] /= 2
			}
		}
	}
	for p := 0; p < FigureArraySize; p++ {
		for f := 0; f < SquareArraySize; f++ {
			for q := 0; q < FigureArraySize; q++ {
				for t := 0; t < SquareArraySize; t++ {
					h.counterHist[p][f][q][t] /= 2
				}
			}
		}
	}
}

// saveKiller records a quiet move that caused a beta cutoff at ply.
// The first slot shifts into the second.
func (h *heuristics) saveKiller(ply int32, m Move) {
	if ply >= maxPly {
		return
	}
	if h.killer[ply][0] != m {
		h.killer[ply][1] = h.killer[ply][0]
		h.killer[ply][0] = m
	}
}

// killerScore returns the ordering bonus if m is a killer at ply.
func (h *heuristics) killerScore(ply int32, m Move) int32 {
	if ply >= maxPly {
		return 0
	}
	if h.killer[ply][0] == m {
		return firstKillerScore
	}
	if h.killer[ply][1] == m {
		return secondKillerScore
	}
	return 0
}

func (h *heuristics) isKiller(ply int32, m Move) bool {
	return ply < maxPly && (h.killer[ply][0] == m || h.killer[ply][1] == m)
}

// prevMoveKey describes the opponent's previous move for the counter
// move tables.
type prevMoveKey struct {
	move  Move
	piece Piece
}

// isCounter returns true if m is the recorded counter to prev.
func (h *heuristics) isCounter(us Color, prev prevMoveKey, m Move) bool {
	return prev.move != NullMove && h.counterMove[us][prev.move.To()] == m
}

// historyScore returns the signed history and counter-move-history sum.
func (h *heuristics) historyScore(us Color, prev prevMoveKey, pi Piece, m Move) int32 {
	score := h.history[us][m.From()][m.To()]
	if prev.move != NullMove && prev.piece != NoPiece {
		score += h.counterHist[pi.Figure()][m.From()][prev.piece.Figure()][prev.move.To()]
	}
	return score
}

// goodQuiet rewards a quiet move that caused a beta cutoff:
// killers shift, history and counter-move history gain depth², and
// the counter-move slot for the previous destination is set.
func (h *heuristics) goodQuiet(us Color, prev prevMoveKey, pi Piece, m Move, depth, ply int32) {
	h.saveKiller(ply, m)
	bonus := depth * depth
	h.bumpHistory(&h.history[us][m.From()][m.To()], bonus)
	h.bumpHistory(&h.butterfly[us][m.From()][m.To()], bonus)
	if prev.move != NullMove {
		h.counterMove[us][prev.move.To()] = m
		if prev.piece != NoPiece {
			h.bumpHistory(&h.counterHist[pi.Figure()][m.From()][prev.piece.Figure()][prev.move.To()], bonus)
		}
	}
}

// badQuiet penalizes a quiet move whose search score fell well below
// alpha.
func (h *heuristics) badQuiet(us Color, prev prevMoveKey, pi Piece, m Move, depth int32) {
	bonus := depth * depth
	h.bumpHistory(&h.history[us][m.From()][m.To()], -bonus)
	if prev.move != NullMove && prev.piece != NoPiece {
		h.bumpHistory(&h.counterHist[pi.Figure()][m.From()][prev.piece.Figure()][prev.move.To()], -bonus)
	}
}

// bumpHistory adds delta to a counter, halving the whole table when
// the counter reaches the ceiling.
func (h *heuristics) bumpHistory(counter *int32, delta int32) {
	*counter += delta
	if *counter > historyMax || *counter < -historyMax {
		h.halveHistories()
	}
}

func (h *heuristics) halveHistories() {
	for c := 0; c < ColorArraySize; c++ {
		for f := 0; f < SquareArraySize; f++ {
			for t := 0; t < SquareArraySize; t++ {
				h.history[c][f][t] /= 2
				h.butterfly[c][f][t] /= 2
			}
		}
	}
	for p := 0; p < FigureArraySize; p++ {
		for f := 0; f < SquareArraySize; f++ {
			for q := 0; q < FigureArraySize; q++ {
				for t := 0; t < SquareArraySize; t++ {
					h.counterHist[p][f][q][t] /= 2
				}
			}
		}
	}
}
