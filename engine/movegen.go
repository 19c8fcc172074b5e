// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// movegen.go generates pseudo-legal moves and filters them for legality.

package engine

const (
	// Quiet selects moves with no capture, castling or promotion.
	Quiet int = 1 << iota
	// Tactical selects castling and underpromotions.
	Tactical
	// Violent selects captures and queen promotions.
	// This is the set quiescence search explores.
	Violent
	// All selects all moves.
	All = Quiet | Tactical | Violent
)

// GenerateMoves appends to moves all pseudo-legal moves of kind.
// Pseudo-legal moves can leave the own king in check; use
// GenerateLegalMoves or filter with IsChecked after DoMove.
func (pos *Position) GenerateMoves(kind int, moves *[]Move) {
	pos.genPawnAdvanceMoves(kind, moves)
	pos.genPawnDoubleAdvanceMoves(kind, moves)
	pos.genPawnAttackMoves(kind, moves)
	pos.genPawnPromotions(kind, moves)
	pos.genKnightMoves(kind, moves)
	pos.genSliderMoves(Bishop, kind, moves)
	pos.genSliderMoves(Rook, kind, moves)
	pos.genSliderMoves(Queen, kind, moves)
	pos.genKingMovesNear(kind, moves)
	pos.genKingCastles(kind, moves)
}

// GenerateFigureMoves appends the pseudo-legal moves of one figure.
func (pos *Position) GenerateFigureMoves(fig Figure, kind int, moves *[]Move) {
	switch fig {
	case Pawn:
		pos.genPawnAdvanceMoves(kind, moves)
		pos.genPawnDoubleAdvanceMoves(kind, moves)
		pos.genPawnAttackMoves(kind, moves)
		pos.genPawnPromotions(kind, moves)
	case Knight:
		pos.genKnightMoves(kind, moves)
	case Bishop, Rook, Queen:
		pos.genSliderMoves(fig, kind, moves)
	case King:
		pos.genKingMovesNear(kind, moves)
		pos.genKingCastles(kind, moves)
	}
}

// GenerateLegalMoves appends all strictly legal moves.
// A move is legal iff the mover's king is not attacked after making it.
func (pos *Position) GenerateLegalMoves(moves *[]Move) {
	var pseudo []Move
	pos.GenerateMoves(All, &pseudo)
	us := pos.Us()
	for _, m := range pseudo {
		pos.DoMove(m)
		if !pos.IsChecked(us) {
			*moves = append(*moves, m)
		}
		pos.UndoMove()
	}
}

// HasLegalMoves returns true if the side to move has at least one
// legal move. Faster than generating all of them when only mate or
// stalemate needs to be decided.
func (pos *Position) HasLegalMoves() bool {
	var pseudo []Move
	pos.GenerateMoves(All, &pseudo)
	us := pos.Us()
	for _, m := range pseudo {
		pos.DoMove(m)
		legal := !pos.IsChecked(us)
		pos.UndoMove()
		if legal {
			return true
		}
	}
	return false
}

// getMask returns the destination mask for kind.
func (pos *Position) getMask(kind int) Bitboard {
	mask := Bitboard(0)
	if kind&Violent != 0 {
		mask |= pos.byColor[pos.Them()]
	}
	if kind&Quiet != 0 {
		mask |= ^pos.all
	}
	return mask
}

func (pos *Position) genBitboardMoves(from Square, att Bitboard, moves *[]Move) {
	for att != 0 {
		*moves = append(*moves, MakeMove(from, att.Pop()))
	}
}

// genPawnAdvanceMoves moves pawns one square. No promotions.
func (pos *Position) genPawnAdvanceMoves(kind int, moves *[]Move) {
	if kind&Quiet == 0 {
		return
	}
	us := pos.Us()
	ours := pos.byPiece[us][Pawn] &^ pawnPromoRank(us)
	if us == White {
		ours &^= South(pos.all)
	} else {
		ours &^= North(pos.all)
	}
	for ours != 0 {
		from := ours.Pop()
		*moves = append(*moves, MakeMove(from, pawnPush(us, from)))
	}
}

// genPawnDoubleAdvanceMoves moves pawns two squares from the start rank.
func (pos *Position) genPawnDoubleAdvanceMoves(kind int, moves *[]Move) {
	if kind&Quiet == 0 {
		return
	}
	us := pos.Us()
	ours := pos.byPiece[us][Pawn]
	if us == White {
		ours &= BbRank2 &^ South(pos.all) &^ South(South(pos.all))
	} else {
		ours &= BbRank7 &^ North(pos.all) &^ North(North(pos.all))
	}
	for ours != 0 {
		from := ours.Pop()
		*moves = append(*moves, MakeMove(from, pawnPush(us, pawnPush(us, from))))
	}
}

// genPawnAttackMoves generates pawn captures, including en passant.
// No promotions.
func (pos *Position) genPawnAttackMoves(kind int, moves *[]Move) {
	if kind&Violent == 0 {
		return
	}
	us := pos.Us()
	theirs := pos.byColor[us.Opposite()]
	if pos.curr.enpassant != NoSquare {
		theirs |= pos.curr.enpassant.Bitboard()
	}
	ours := pos.byPiece[us][Pawn] &^ pawnPromoRank(us)
	for bb := ours; bb != 0; {
		from := bb.Pop()
		for att := bbPawnAttack[us][from] & theirs; att != 0; {
			*moves = append(*moves, MakeMove(from, att.Pop()))
		}
	}
}

// genPawnPromotions generates promotions, both capturing and advancing.
// Tactical selects knight to rook, Violent selects queens.
func (pos *Position) genPawnPromotions(kind int, moves *[]Move) {
	if kind&(Violent|Tactical) == 0 {
		return
	}
	pMin, pMax := Queen, Rook
	if kind&Violent != 0 {
		pMax = Queen
	}
	if kind&Tactical != 0 {
		pMin = Knight
	}

	us := pos.Us()
	theirs := pos.byColor[us.Opposite()]
	for ours := pos.byPiece[us][Pawn] & pawnPromoRank(us); ours != 0; {
		from := ours.Pop()
		if to := pawnPush(us, from); !pos.all.Has(to) {
			for p := pMin; p <= pMax; p++ {
				*moves = append(*moves, MakePromotion(from, to, p))
			}
		}
		for att := bbPawnAttack[us][from] & theirs; att != 0; {
			to := att.Pop()
			for p := pMin; p <= pMax; p++ {
				*moves = append(*moves, MakePromotion(from, to, p))
			}
		}
	}
}

func (pos *Position) genKnightMoves(kind int, moves *[]Move) {
	mask := pos.getMask(kind)
	for bb := pos.byPiece[pos.Us()][Knight]; bb != 0; {
		from := bb.Pop()
		pos.genBitboardMoves(from, bbKnightAttack[from]&mask, moves)
	}
}

func (pos *Position) genSliderMoves(fig Figure, kind int, moves *[]Move) {
	mask := pos.getMask(kind)
	for bb := pos.byPiece[pos.Us()][fig]; bb != 0; {
		from := bb.Pop()
		var att Bitboard
		switch fig {
		case Bishop:
			att = BishopAttacks(from, pos.all)
		case Rook:
			att = RookAttacks(from, pos.all)
		case Queen:
			att = QueenAttacks(from, pos.all)
		}
		pos.genBitboardMoves(from, att&mask, moves)
	}
}

func (pos *Position) genKingMovesNear(kind int, moves *[]Move) {
	mask := pos.getMask(kind)
	from := pos.KingSquare(pos.Us())
	pos.genBitboardMoves(from, bbKingAttack[from]&mask, moves)
}

// genKingCastles generates castling moves. Castling requires the
// right to be present, the squares between king and rook empty, and
// none of the king's traversal squares attacked.
func (pos *Position) genKingCastles(kind int, moves *[]Move) {
	if kind&Tactical == 0 {
		return
	}
	us, them := pos.Us(), pos.Them()
	rank := us.KingHomeRank()
	oo, ooo := WhiteOO, WhiteOOO
	if us == Black {
		oo, ooo = BlackOO, BlackOOO
	}

	if pos.curr.castle&oo != 0 {
		r4 := RankFile(rank, 4)
		r5 := RankFile(rank, 5)
		r6 := RankFile(rank, 6)
		if pos.IsEmpty(r5) && pos.IsEmpty(r6) &&
			!pos.IsAttackedBy(r4, them) && !pos.IsAttackedBy(r5, them) && !pos.IsAttackedBy(r6, them) {
			*moves = append(*moves, MakeMove(r4, r6))
		}
	}
	if pos.curr.castle&ooo != 0 {
		r1 := RankFile(rank, 1)
		r2 := RankFile(rank, 2)
		r3 := RankFile(rank, 3)
		r4 := RankFile(rank, 4)
		if pos.IsEmpty(r1) && pos.IsEmpty(r2) && pos.IsEmpty(r3) &&
			!pos.IsAttackedBy(r4, them) && !pos.IsAttackedBy(r3, them) && !pos.IsAttackedBy(r2, them) {
			*moves = append(*moves, MakeMove(r4, r2))
		}
	}
}

// pawnPush returns the square one rank forward for col.
func pawnPush(col Color, sq Square) Square {
	if col == White {
		return sq + 8
	}
	return sq - 8
}

// pawnPromoRank returns the rank from which col's pawns promote.
func pawnPromoRank(col Color) Bitboard {
	if col == White {
		return BbRank7
	}
	return BbRank2
}

// IsPseudoLegal returns true if m is a pseudo-legal move in pos.
// Used to validate moves coming from the shared transposition table,
// which may belong to a colliding position.
func (pos *Position) IsPseudoLegal(m Move) bool {
	if m == NullMove {
		return false
	}
	pi := pos.Get(m.From())
	if pi == NoPiece || pi.Color() != pos.Us() {
		return false
	}
	var moves []Move
	pos.GenerateFigureMoves(pi.Figure(), All, &moves)
	for _, pm := range moves {
		if pm == m {
			return true
		}
	}
	return false
}

// UCIToMove parses a move in wire format ("e2e4", "h7h8q") and
// validates it is legal in pos. Returns an error wrapping
// ErrInvalidMove otherwise.
func (pos *Position) UCIToMove(s string) (Move, error) {
	m, err := MoveFromString(s)
	if err != nil {
		return NullMove, errInvalidMove("unparseable move %q", s)
	}
	var moves []Move
	pos.GenerateLegalMoves(&moves)
	for _, lm := range moves {
		if lm == m {
			return m, nil
		}
	}
	return NullMove, errInvalidMove("move %q is not legal here", s)
}
