// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// basic.go defines the fundamental board types: squares, colors,
// figures, pieces and castling rights.

package engine

import "fmt"

var (
	errorInvalidSquare = fmt.Errorf("invalid square")

	figureToSymbol = [FigureArraySize]string{"", "", "n", "b", "r", "q", "k"}
	symbolToFigure = map[byte]Figure{
		'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
		'P': Pawn, 'N': Knight, 'B': Bishop, 'R': Rook, 'Q': Queen, 'K': King,
	}
	pieceToSymbol = [PieceArraySize]byte{
		'.', '.',
		'P', 'p', 'N', 'n', 'B', 'b', 'R', 'r', 'Q', 'q', 'K', 'k',
	}
)

// Square identifies a location on the board.
// Square 0 is a1, square 63 is h8.
type Square uint8

const (
	SquareA1 Square = iota
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
	SquareA2
	SquareB2
	SquareC2
	SquareD2
	SquareE2
	SquareF2
	SquareG2
	SquareH2
	SquareA3
	SquareB3
	SquareC3
	SquareD3
	SquareE3
	SquareF3
	SquareG3
	SquareH3
	SquareA4
	SquareB4
	SquareC4
	SquareD4
	SquareE4
	SquareF4
	SquareG4
	SquareH4
	SquareA5
	SquareB5
	SquareC5
	SquareD5
	SquareE5
	SquareF5
	SquareG5
	SquareH5
	SquareA6
	SquareB6
	SquareC6
	SquareD6
	SquareE6
	SquareF6
	SquareG6
	SquareH6
	SquareA7
	SquareB7
	SquareC7
	SquareD7
	SquareE7
	SquareF7
	SquareG7
	SquareH7
	SquareA8
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8

	SquareArraySize = int(iota)
	SquareMinValue  = SquareA1
	SquareMaxValue  = SquareH8

	// NoSquare is the sentinel for "no square", e.g. no en passant target.
	NoSquare Square = 64
)

// RankFile returns the square with rank r and file f.
// r and f should be between 0 and 7.
func RankFile(r, f int) Square {
	return Square(r*8 + f)
}

// SquareFromString parses a square in standard chess format [a-h][1-8].
func SquareFromString(s string) (Square, error) {
	if len(s) != 2 {
		return SquareA1, errorInvalidSquare
	}
	if s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return SquareA1, errorInvalidSquare
	}
	return RankFile(int(s[1]-'1'), int(s[0]-'a')), nil
}

// Bitboard returns a bitboard that has sq set.
func (sq Square) Bitboard() Bitboard {
	return 1 << uint(sq)
}

// Rank returns a number from 0 to 7 representing the rank of the square.
func (sq Square) Rank() int {
	return int(sq / 8)
}

// File returns a number from 0 to 7 representing the file of the square.
func (sq Square) File() int {
	return int(sq % 8)
}

// POV returns the square from col's point of view, i.e. the board
// is flipped for Black. Used by the piece square tables.
func (sq Square) POV(col Color) Square {
	if col == Black {
		return sq ^ 0x38
	}
	return sq
}

func (sq Square) String() string {
	if sq == NoSquare {
		return "-"
	}
	return string([]byte{
		byte(sq.File()) + 'a',
		byte(sq.Rank()) + '1',
	})
}

// Color represents a side, white or black.
type Color uint8

const (
	White Color = iota
	Black

	ColorArraySize = int(iota)
)

// Opposite returns the other color.
func (c Color) Opposite() Color {
	return c ^ 1
}

// Multiplier returns +1 for White and -1 for Black.
// Used to convert between white-relative and side-relative scores.
func (c Color) Multiplier() int32 {
	return 1 - 2*int32(c)
}

// KingHomeRank returns the rank of the king on the starting position.
func (c Color) KingHomeRank() int {
	return int(c) * 7
}

func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// Figure represents a piece without a color.
type Figure uint8

const (
	NoFigure Figure = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	FigureArraySize = int(iota)
	FigureMinValue  = Pawn
	FigureMaxValue  = King
)

// Piece is a figure owned by one side.
type Piece uint8

const (
	NoPiece Piece = 0

	PieceArraySize = int(King)<<1 + 2
)

// ColorFigure returns a piece with color col and figure fig.
func ColorFigure(col Color, fig Figure) Piece {
	return Piece(fig<<1) + Piece(col)
}

// Color returns the piece's color. Result is undefined for NoPiece.
func (pi Piece) Color() Color {
	return Color(pi & 1)
}

// Figure returns the piece's figure.
func (pi Piece) Figure() Figure {
	return Figure(pi >> 1)
}

func (pi Piece) String() string {
	return string(pieceToSymbol[pi])
}

// Castle is the castling rights mask.
type Castle uint8

const (
	// WhiteOO means White can castle king side.
	WhiteOO Castle = 1 << iota
	// WhiteOOO means White can castle queen side.
	WhiteOOO
	// BlackOO means Black can castle king side.
	BlackOO
	// BlackOOO means Black can castle queen side.
	BlackOOO

	NoCastle  Castle = 0
	AnyCastle Castle = WhiteOO | WhiteOOO | BlackOO | BlackOOO

	CastleArraySize = int(AnyCastle + 1)
)

var castleToSymbol = [...]struct {
	castle Castle
	symbol byte
}{
	{WhiteOO, 'K'}, {WhiteOOO, 'Q'}, {BlackOO, 'k'}, {BlackOOO, 'q'},
}

func (c Castle) String() string {
	if c == NoCastle {
		return "-"
	}
	var r []byte
	for _, cs := range castleToSymbol {
		if c&cs.castle != 0 {
			r = append(r, cs.symbol)
		}
	}
	return string(r)
}
