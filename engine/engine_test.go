package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// play searches pos to depth with a fresh engine and private table.
func play(t *testing.T, fen string, depth int32) (*Engine, int32, []Move) {
	t.Helper()
	pos, err := PositionFromFEN(fen)
	require.NoError(t, err)
	tt, err := NewHashTable(16)
	require.NoError(t, err)
	eng := NewEngine(pos, nil, tt)
	tc := NewFixedDepthTimeControl(depth)
	score, pv := eng.Play(tc)
	return eng, score, pv
}

var mateIn1 = []struct {
	fen string
	bm  string
}{
	{"6k1/5ppp/8/8/8/8/8/R3K3 w Q - 0 1", "a1a8"},
	{"k7/8/1K6/8/8/8/8/7R w - - 0 1", "h1h8"},
	{"6k1/8/6K1/8/8/8/8/1Q6 w - - 0 1", "b1b8"},
}

func TestMateIn1(t *testing.T) {
	for i, d := range mateIn1 {
		_, score, pv := play(t, d.fen, 3)
		require.NotEmpty(t, pv, "#%d no pv for %s", i, d.fen)
		assert.Equal(t, d.bm, pv[0].String(), "#%d %s", i, d.fen)
		assert.True(t, score > 9000, "#%d expected a mate score, got %d", i, score)
		assert.True(t, score > KnownWinScore, "#%d mate scores sit above the threshold", i)
	}
}

func TestMateIn2(t *testing.T) {
	// The rook ladder 1.Ra7 Kd8 2.Rb8# must be found by depth 2N+1.
	_, score, pv := play(t, "2k5/8/8/8/8/8/R7/1R5K w - - 0 1", 5)
	require.NotEmpty(t, pv)
	assert.True(t, score > KnownWinScore, "expected mate, got %d", score)
	assert.EqualValues(t, 3, MovesToMate(score), "mate in 3 plies, got score %d", score)
}

func TestLoneKingAgainstRook(t *testing.T) {
	// White has a bare king against king and rook: the search must
	// return a legal move and a clearly losing score.
	fen := "8/8/8/8/8/8/k1K5/r7 w - - 0 1"
	_, score, pv := play(t, fen, 3)
	require.NotEmpty(t, pv)
	assert.True(t, score < -300, "a rook down should score badly, got %d", score)

	pos, _ := PositionFromFEN(fen)
	var moves []Move
	pos.GenerateLegalMoves(&moves)
	assert.Contains(t, moves, pv[0])
}

func TestStalemateIsDraw(t *testing.T) {
	_, score, pv := play(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", 4)
	assert.Empty(t, pv, "stalemate has no move")
	assert.EqualValues(t, 0, score)
}

func TestKRvKEndgameIsWinning(t *testing.T) {
	if testing.Short() {
		t.Skip("depth 10 search in short mode")
	}
	_, score, pv := play(t, "8/5k2/8/8/8/8/R4K2/8 w - - 0 1", 10)
	require.NotEmpty(t, pv)
	assert.True(t, score > 300, "a rook up should score comfortably above zero, got %d", score)

	pos, _ := PositionFromFEN("8/5k2/8/8/8/8/R4K2/8 w - - 0 1")
	var moves []Move
	pos.GenerateLegalMoves(&moves)
	assert.Contains(t, moves, pv[0], "returned move must be legal")
}

func TestItalianDoesNotHangMaterial(t *testing.T) {
	if testing.Short() {
		t.Skip("depth 10 search in short mode")
	}
	fen := "r1bqkb1r/pppp1ppp/2n2n2/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4"
	_, _, pv := play(t, fen, 10)
	require.NotEmpty(t, pv)

	pos, _ := PositionFromFEN(fen)
	assert.True(t, see(pos, pv[0]) >= 0, "returned move %v hangs material", pv[0])
}

// plainNegamax is the reference implementation for the pruning
// regression guard: bare negamax with the same quiescence at the
// horizon and no heuristics at all. With full windows and pruning
// disabled the optimized search must return exactly this value.
func plainNegamax(eng *Engine, depth int32) int32 {
	pos := eng.Position
	us := pos.Us()

	if eng.ply() > 0 && eng.isDrawn() {
		return 0
	}
	if depth <= 0 {
		return eng.searchQuiescence(-InfinityScore, InfinityScore, 0)
	}

	var moves []Move
	pos.GenerateMoves(All, &moves)
	best := -InfinityScore
	moveCount := 0
	for _, m := range moves {
		pos.DoMove(m)
		if pos.IsChecked(us) {
			pos.UndoMove()
			continue
		}
		moveCount++
		score := -plainNegamax(eng, depth-1)
		pos.UndoMove()
		if score > best {
			best = score
		}
	}
	if moveCount == 0 {
		if pos.IsChecked(us) {
			return MatedScore + eng.ply()
		}
		return 0
	}
	return best
}

func TestFullWindowMatchesPlainNegamax(t *testing.T) {
	for _, fen := range []string{
		FENStartPos,
		"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
		"6k1/5ppp/8/8/8/8/8/R3K3 w Q - 0 1",
	} {
		pos, _ := PositionFromFEN(fen)
		tt, _ := NewHashTable(4)
		eng := NewEngine(pos, nil, tt)
		eng.Pruning = false
		eng.timeControl = NewFixedDepthTimeControl(3)
		eng.rootPly = pos.Ply
		eng.checkpoint = checkpointStep

		got := eng.searchTree(-InfinityScore, InfinityScore, 3)

		ref := NewEngine(pos.Clone(), nil, nil)
		ref.timeControl = NewFixedDepthTimeControl(3)
		ref.rootPly = ref.Position.Ply
		ref.checkpoint = checkpointStep
		want := plainNegamax(ref, 3)

		assert.Equal(t, want, got, "%s: optimized search diverged from plain negamax", fen)
	}
}

func TestAspirationMatchesFullWindow(t *testing.T) {
	for _, fen := range []string{
		FENStartPos,
		"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
	} {
		pos, _ := PositionFromFEN(fen)

		// Aspirated run, warmed up by a previous iteration.
		tt1, _ := NewHashTable(8)
		asp := NewEngine(pos.Clone(), nil, tt1)
		asp.Pruning = false
		asp.timeControl = NewFixedDepthTimeControl(6)
		asp.rootPly = asp.Position.Ply
		asp.checkpoint = checkpointStep
		est := asp.search(4, 0)
		aspScore := asp.search(5, est)

		// Full window run on a fresh table.
		tt2, _ := NewHashTable(8)
		full := NewEngine(pos.Clone(), nil, tt2)
		full.Pruning = false
		full.timeControl = NewFixedDepthTimeControl(6)
		full.rootPly = full.Position.Ply
		full.checkpoint = checkpointStep
		fullScore := full.searchTree(-InfinityScore, InfinityScore, 5)

		assert.Equal(t, fullScore, aspScore, "%s: aspiration changed the result", fen)
	}
}

func TestSearchStopsOnTimeControl(t *testing.T) {
	pos, _ := PositionFromFEN(FENStartPos)
	eng := NewEngine(pos, nil, nil)
	tc := NewFixedDepthTimeControl(20)
	tc.Stop()
	score, pv := eng.Play(tc)
	// Depth 1 and 2 always run so a move is always available.
	require.NotEmpty(t, pv)
	_ = score
	assert.True(t, eng.Stats.Depth >= 1)
}

func TestScoreDelegatesToEvaluator(t *testing.T) {
	pos, _ := PositionFromFEN(FENStartPos)
	eng := NewEngine(pos, nil, nil)
	assert.Equal(t, Evaluate(pos), eng.Score())

	eng.SetEvaluator(constEvaluator(77))
	assert.EqualValues(t, 77, eng.Score())

	eng.SetEvaluator(nil)
	assert.Equal(t, Evaluate(pos), eng.Score())
}

// constEvaluator is a stub neural evaluator returning a fixed score.
type constEvaluator int32

func (c constEvaluator) LoadNetwork(path string) bool          { return true }
func (c constEvaluator) Evaluate(pos *Position) int32          { return int32(c) }
func (c constEvaluator) RefreshAccumulator(pos *Position)      {}
func (c constEvaluator) UpdateBeforeMove(pos *Position, m Move) {}
func (c constEvaluator) UpdateAfterMove(pos *Position, m Move)  {}
