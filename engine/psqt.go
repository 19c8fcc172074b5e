// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// psqt.go holds the piece square tables. The literal arrays below are
// written in display order, rank 8 first; init flips them into square
// order so psqt[fig][sq.POV(col)] indexes naturally.

package engine

var psqt [FigureArraySize][SquareArraySize]Score

var pawnTable = [SquareArraySize]struct{ m, e int32 }{
	{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
	{50, 80}, {50, 80}, {50, 80}, {50, 80}, {50, 80}, {50, 80}, {50, 80}, {50, 80},
	{10, 45}, {10, 45}, {20, 45}, {30, 45}, {30, 45}, {20, 45}, {10, 45}, {10, 45},
	{5, 25}, {5, 25}, {10, 25}, {25, 25}, {25, 25}, {10, 25}, {5, 25}, {5, 25},
	{0, 12}, {0, 12}, {0, 12}, {20, 12}, {20, 12}, {0, 12}, {0, 12}, {0, 12},
	{5, 5}, {-5, 5}, {-10, 5}, {0, 5}, {0, 5}, {-10, 5}, {-5, 5}, {5, 5},
	{5, 5}, {10, 5}, {10, 5}, {-20, 5}, {-20, 5}, {10, 5}, {10, 5}, {5, 5},
	{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
}

var knightTable = [SquareArraySize]int32{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopTable = [SquareArraySize]int32{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookTable = [SquareArraySize]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenTable = [SquareArraySize]int32{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingTable = [SquareArraySize]struct{ m, e int32 }{
	{-30, -50}, {-40, -40}, {-40, -30}, {-50, -20}, {-50, -20}, {-40, -30}, {-40, -40}, {-30, -50},
	{-30, -30}, {-40, -20}, {-40, -10}, {-50, 0}, {-50, 0}, {-40, -10}, {-40, -20}, {-30, -30},
	{-30, -30}, {-40, -10}, {-40, 20}, {-50, 30}, {-50, 30}, {-40, 20}, {-40, -10}, {-30, -30},
	{-30, -30}, {-40, -10}, {-40, 30}, {-50, 40}, {-50, 40}, {-40, 30}, {-40, -10}, {-30, -30},
	{-20, -30}, {-30, -10}, {-30, 30}, {-40, 40}, {-40, 40}, {-30, 30}, {-30, -10}, {-20, -30},
	{-10, -30}, {-20, -10}, {-20, 20}, {-20, 30}, {-20, 30}, {-20, 20}, {-20, -10}, {-10, -30},
	{20, -30}, {20, -30}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {20, -30}, {20, -30},
	{20, -50}, {30, -30}, {10, -30}, {0, -30}, {0, -30}, {10, -30}, {30, -30}, {20, -50},
}

func init() {
	// Flip from display order (rank 8 first) into square order.
	for row := 0; row < 8; row++ {
		for f := 0; f < 8; f++ {
			sq := RankFile(7-row, f)
			i := row*8 + f
			psqt[Pawn][sq] = Score{pawnTable[i].m, pawnTable[i].e}
			psqt[Knight][sq] = Score{knightTable[i], knightTable[i]}
			psqt[Bishop][sq] = Score{bishopTable[i], bishopTable[i]}
			psqt[Rook][sq] = Score{rookTable[i], rookTable[i]}
			psqt[Queen][sq] = Score{queenTable[i], queenTable[i]}
			psqt[King][sq] = Score{kingTable[i].m, kingTable[i].e}
		}
	}
}
