// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// move.go defines the compact move representation.

package engine

import "fmt"

var (
	errorInvalidMoveString = fmt.Errorf("invalid move string")
)

// Move packs source square, destination square and promotion figure
// into 16 bits:
//
//	bits  0- 5  from square
//	bits  6-11  to square
//	bits 12-14  promotion figure, NoFigure when not a promotion
//	bit     15  spare
//
// Castling is encoded as the king's from-to; en passant as the pawn's
// from-to. Both are recognized by the make routine from the moving
// piece and the destination, so a Move is only meaningful together
// with the position it was generated for.
type Move uint16

// NullMove is the no-move sentinel.
const NullMove Move = 0

// MakeMove builds a move from from to to.
func MakeMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// MakePromotion builds a promotion move to figure fig.
func MakePromotion(from, to Square, fig Figure) Move {
	return Move(from) | Move(to)<<6 | Move(fig)<<12
}

// From returns the source square.
func (m Move) From() Square {
	return Square(m & 0x3f)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m >> 6 & 0x3f)
}

// Promotion returns the promotion figure, NoFigure if none.
func (m Move) Promotion() Figure {
	return Figure(m >> 12 & 0x7)
}

// IsPromotion returns true if m promotes a pawn.
func (m Move) IsPromotion() bool {
	return m>>12&0x7 != 0
}

// String formats the move as from-square, to-square and an optional
// lowercase promotion letter, e.g. "e2e4" or "h7h8q".
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	return m.From().String() + m.To().String() + figureToSymbol[m.Promotion()]
}

// MoveFromString parses a move in the four or five character wire
// format. The returned move is not validated against any position.
func MoveFromString(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, errorInvalidMoveString
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return NullMove, errorInvalidMoveString
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return NullMove, errorInvalidMoveString
	}
	if len(s) == 4 {
		return MakeMove(from, to), nil
	}

	var fig Figure
	switch s[4] {
	case 'n':
		fig = Knight
	case 'b':
		fig = Bishop
	case 'r':
		fig = Rook
	case 'q':
		fig = Queen
	default:
		return NullMove, errorInvalidMoveString
	}
	return MakePromotion(from, to, fig), nil
}
