package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateStartposIsBalanced(t *testing.T) {
	pos, _ := PositionFromFEN(FENStartPos)
	score := Evaluate(pos)
	assert.True(t, abs(score) < 50, "start position should be near equal, got %d", score)
}

func TestEvaluateSideToMoveRelative(t *testing.T) {
	// White is a queen up. White to move sees a positive score,
	// black to move the mirror negative.
	white, _ := PositionFromFEN("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	black, _ := PositionFromFEN("4k3/8/8/8/8/8/8/Q3K3 b - - 0 1")
	ws, bs := Evaluate(white), Evaluate(black)
	assert.True(t, ws > 500, "white should be winning, got %d", ws)
	assert.True(t, bs < -500, "black should be losing, got %d", bs)
}

func TestEvaluateMirrorSymmetry(t *testing.T) {
	// The same structure color-flipped evaluates to the same score
	// for the side to move.
	a, _ := PositionFromFEN("4k3/pppp4/8/8/8/8/PPPP4/4K3 w - - 0 1")
	b, _ := PositionFromFEN("4k3/pppp4/8/8/8/8/PPPP4/4K3 b - - 0 1")
	assert.Equal(t, Evaluate(a), Evaluate(b))
}

func TestEvaluateBishopPair(t *testing.T) {
	pair, _ := PositionFromFEN("4k3/8/8/8/8/8/8/2BBK3 w - - 0 1")
	single, _ := PositionFromFEN("4k3/8/8/8/8/8/8/2B1K3 w - - 0 1")
	diff := Evaluate(pair) - Evaluate(single)
	assert.True(t, diff > figureBonus[Bishop], "the second bishop should bring the pair bonus, diff %d", diff)
}

func TestPhaseBounds(t *testing.T) {
	start, _ := PositionFromFEN(FENStartPos)
	assert.EqualValues(t, 0, Phase(start), "full material is the opening")

	kk, _ := PositionFromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.EqualValues(t, 256, Phase(kk), "bare kings are the endgame")

	middle, _ := PositionFromFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	p := Phase(middle)
	assert.True(t, p > 0 && p < 256, "partial material should be in between, got %d", p)
}

func TestPawnStructureClassification(t *testing.T) {
	// d5 passed; a2 doubled (a3 in front of it); a2, a3, d5 and h2
	// isolated (no pawns on the b, c, e or g files).
	pos, _ := PositionFromFEN("4k3/8/8/3P4/8/P7/P6P/4K3 w - - 0 1")

	passed := PassedPawns(pos, White)
	assert.True(t, passed.Has(SquareD5))

	doubled := DoubledPawns(pos, White)
	assert.True(t, doubled.Has(SquareA2))
	assert.False(t, doubled.Has(SquareA3))

	isolated := IsolatedPawns(pos, White)
	assert.True(t, isolated.Has(SquareH2))
	assert.True(t, isolated.Has(SquareD5))
	assert.True(t, isolated.Has(SquareA2))
}

func TestPassedPawnBlockedByEnemy(t *testing.T) {
	pos, _ := PositionFromFEN("4k3/4p3/8/3P4/8/8/8/4K3 w - - 0 1")
	// The e7 pawn guards d6, so d5 is not passed.
	assert.False(t, PassedPawns(pos, White).Has(SquareD5))
}

func TestConnectedPawns(t *testing.T) {
	pos, _ := PositionFromFEN("4k3/8/8/8/3PP3/8/8/4K3 w - - 0 1")
	connected := ConnectedPawns(pos, White)
	assert.True(t, connected.Has(SquareD4))
	assert.True(t, connected.Has(SquareE4))
}

func TestRookOpenFileScoresHigher(t *testing.T) {
	open, _ := PositionFromFEN("4k3/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	closed, _ := PositionFromFEN("4k3/5ppp/8/8/8/8/P7/R3K3 w - - 0 1")
	openRook := EvaluatePosition(open)
	closedRook := EvaluatePosition(closed)
	// The pawn itself adds material; compare the rook file bonus via
	// the white accumulators minus material.
	openScore := openRook.pad[White].accum.M
	closedScore := closedRook.pad[White].accum.M - figureBonus[Pawn] - psqt[Pawn][SquareA2].M - wMobility[Pawn].M
	assert.True(t, openScore > closedScore, "open file rook should score higher: %d vs %d", openScore, closedScore)
}
