package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func popAll(ml *moveList) []Move {
	var out []Move
	for {
		m, _ := ml.popBack()
		if m == NullMove {
			break
		}
		out = append(out, m)
	}
	return out
}

func TestOrderingHashMoveFirst(t *testing.T) {
	pos, _ := PositionFromFEN(kiwipete)
	eng := NewEngine(pos, nil, nil)

	hash := MakeMove(SquareE2, SquareA6)
	var ml moveList
	pos.GenerateMoves(All, &ml.moves)
	eng.scoreMoves(&ml, hash, prevMoveKey{}, 0)

	first, score := ml.popBack()
	assert.Equal(t, hash, first)
	assert.Equal(t, hashMoveScore, score)
}

func TestOrderingMVVLVA(t *testing.T) {
	// White can capture the queen or a pawn with the same rook.
	pos, _ := PositionFromFEN("4k3/3q4/8/8/8/3R2p1/8/4K3 w - - 0 1")
	eng := NewEngine(pos, nil, nil)

	var ml moveList
	pos.GenerateMoves(All, &ml.moves)
	eng.scoreMoves(&ml, NullMove, prevMoveKey{}, 0)

	moves := popAll(&ml)
	require.NotEmpty(t, moves)
	assert.Equal(t, MakeMove(SquareD3, SquareD7), moves[0], "queen capture must come first")
}

func TestOrderingKillersBeforeQuiets(t *testing.T) {
	pos, _ := PositionFromFEN(FENStartPos)
	eng := NewEngine(pos, nil, nil)
	killer := MakeMove(SquareB1, SquareC3)
	eng.heur.saveKiller(0, killer)

	var ml moveList
	pos.GenerateMoves(All, &ml.moves)
	eng.scoreMoves(&ml, NullMove, prevMoveKey{}, 0)

	moves := popAll(&ml)
	assert.Equal(t, killer, moves[0], "the killer must lead a quiet position")
}

func TestOrderingCounterMove(t *testing.T) {
	pos, _ := PositionFromFEN(FENStartPos)
	pos.DoMove(MakeMove(SquareE2, SquareE4))

	eng := NewEngine(pos, nil, nil)
	prev := prevMoveKey{pos.LastMove(), pos.LastMoved()}
	counter := MakeMove(SquareB8, SquareC6)
	eng.heur.counterMove[Black][SquareE4] = counter

	var ml moveList
	pos.GenerateMoves(All, &ml.moves)
	eng.scoreMoves(&ml, NullMove, prev, 0)

	moves := popAll(&ml)
	assert.Equal(t, counter, moves[0])
}

func TestOrderingPromotionBand(t *testing.T) {
	pos, _ := PositionFromFEN("8/5P1k/8/8/8/8/8/4K3 w - - 0 1")
	eng := NewEngine(pos, nil, nil)

	var ml moveList
	pos.GenerateMoves(All, &ml.moves)
	eng.scoreMoves(&ml, NullMove, prevMoveKey{}, 0)

	moves := popAll(&ml)
	require.NotEmpty(t, moves)
	assert.Equal(t, MakePromotion(SquareF7, SquareF8, Queen), moves[0],
		"queen promotion must outrank the other promotions and king moves")
}

func TestMVVLVAValues(t *testing.T) {
	// Victim dominates: PxQ beats QxR beats RxB.
	assert.True(t, mvvlva(Queen, Pawn) > mvvlva(Rook, Queen))
	assert.True(t, mvvlva(Rook, Queen) > mvvlva(Bishop, Rook))
	// For the same victim the cheapest attacker wins.
	assert.True(t, mvvlva(Rook, Pawn) > mvvlva(Rook, Queen))
}
