// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine implements the board, move generation and position
// searching of the lumina chess engine.
//
// Position (basic.go, position.go) uses:
//
//   - Bitboards for representation - https://www.chessprogramming.org/Bitboards
//   - Magic bitboards for sliding move generation - https://www.chessprogramming.org/Magic_Bitboards
//
// Search (engine.go) features implemented are:
//
//   - Aspiration window - https://www.chessprogramming.org/Aspiration_Windows
//   - Check extension - https://www.chessprogramming.org/Check_Extensions
//   - Futility pruning - https://www.chessprogramming.org/Futility_Pruning
//   - Internal iterative deepening - https://www.chessprogramming.org/Internal_Iterative_Deepening
//   - Killer move heuristic - https://www.chessprogramming.org/Killer_Heuristic
//   - Late move pruning - https://www.chessprogramming.org/Futility_Pruning#MoveCountBasedPruning
//   - Late move reductions (LMR) - https://www.chessprogramming.org/Late_Move_Reductions
//   - Mate distance pruning - https://www.chessprogramming.org/Mate_Distance_Pruning
//   - Multi-cut - https://www.chessprogramming.org/Multi-Cut
//   - Negamax framework - https://www.chessprogramming.org/Alpha-Beta#Negamax_Framework
//   - Null move pruning (NMP) - https://www.chessprogramming.org/Null_Move_Pruning
//   - Principal variation search (PVS) - https://www.chessprogramming.org/Principal_Variation_Search
//   - ProbCut - https://www.chessprogramming.org/ProbCut
//   - Quiescence search - https://www.chessprogramming.org/Quiescence_Search
//   - Razoring - https://www.chessprogramming.org/Razoring
//   - Singular extensions - https://www.chessprogramming.org/Singular_Extensions
//   - Static exchange evaluation - https://www.chessprogramming.org/Static_Exchange_Evaluation
//   - Zobrist hashing - https://www.chessprogramming.org/Zobrist_Hashing
//
// The search runs on several workers sharing a transposition table
// (parallel.go), the Lazy SMP scheme.
package engine

import (
	"math"
	"sync/atomic"
)

const (
	checkpointStep = 4096 // nodes between stop flag and deadline polls

	initialAspirationWindow int32 = 25 // a quarter of a pawn
	aspirationDepthLimit    int32 = 5  // no aspiration window below this depth

	razorDepthLimit int32 = 3   // razor only close to the frontier
	razorMargin     int32 = 300 // per ply of remaining depth

	futilityDepthLimit  int32 = 7
	futilityMarginBase  int32 = 100
	futilityMarginSlope int32 = 80

	lmpDepthLimit int32 = 6 // late move pruning depth bound
	lmrDepthLimit int32 = 3 // no reductions below this depth

	probCutDepthLimit int32 = 5 // minimum depth for ProbCut
	probCutMargin     int32 = 100

	multiCutDepthLimit int32 = 8 // minimum depth for multi-cut
	multiCutMoves            = 6 // moves tried by the multi-cut probe
	multiCutRequired         = 3 // cutoffs required to prune

	singularDepthLimit int32 = 8 // minimum depth for the singular test

	iidDepthLimit int32 = 5 // minimum depth for internal iterative deepening

	deltaPruningMargin int32 = 200
	qsDepthFloor       int32 = -6 // quiescence own negative depth bound
)

// lmrReductions[depth][moveNumber] is the late move reduction in plies.
var lmrReductions [64][64]int32

func init() {
	for depth := 1; depth < 64; depth++ {
		for moves := 1; moves < 64; moves++ {
			lmrReductions[depth][moves] = int32(0.75 + math.Log(float64(depth))*math.Log(float64(moves))/2.25)
		}
	}
}

// Stats stores statistics about a search.
type Stats struct {
	CacheHit  uint64 // positions found in the transposition table
	CacheMiss uint64 // positions not found in the transposition table
	Nodes     uint64 // nodes searched
	Depth     int32  // depth of the last completed iteration
	SelDepth  int32  // maximum ply reached on the principal variation
}

// CacheHitRatio returns the ratio of transposition table hits over
// the total number of lookups.
func (s *Stats) CacheHitRatio() float32 {
	if s.CacheHit+s.CacheMiss == 0 {
		return 0
	}
	return float32(s.CacheHit) / float32(s.CacheHit+s.CacheMiss)
}

// Logger logs search progress.
type Logger interface {
	// BeginSearch signals a new search has started.
	BeginSearch()
	// EndSearch signals the end of the search.
	EndSearch()
	// PrintPV logs the principal variation after iterative deepening
	// completed one depth.
	PrintPV(stats Stats, score int32, pv []Move)
}

// NulLogger is a logger that does nothing.
type NulLogger struct{}

func (nl *NulLogger) BeginSearch()                             {}
func (nl *NulLogger) EndSearch()                               {}
func (nl *NulLogger) PrintPV(stats Stats, score int32, pv []Move) {}

// plyState is the per-ply search frame.
type plyState struct {
	ml         moveList // main move buffer
	vml        moveList // violent move buffer for quiescence and ProbCut
	quiets     []Move   // quiet moves searched at this node
	staticEval int32
	excluded   Move // move excluded by the running singular test
}

// Engine searches for the best move of a position. One Engine is one
// search worker: the position, the rollback stack and the heuristic
// tables are worker-local, only the transposition table is shared.
type Engine struct {
	Position *Position // current position, cloned per worker
	Log      Logger
	Stats    Stats

	// Pruning enables the speculative heuristics (razoring, null
	// move, ProbCut, multi-cut, futility, late move pruning and
	// reductions, singular extensions). Disabled only by the
	// correctness regression tests, which compare the bare search
	// against plain negamax.
	Pruning bool

	tt   *HashTable
	heur *heuristics
	nnue Evaluator

	timeControl *TimeControl
	stopFlag    *atomic.Bool   // shared cooperative stop, may be nil
	globalNodes *atomic.Uint64 // shared node counter, may be nil

	rootPly    int
	stopped    bool
	checkpoint uint64
	flushed    uint64 // nodes already added to globalNodes
	plies      [maxPly + 1]plyState
}

// NewEngine creates a new engine to search pos.
// If pos is nil the starting position is used; if tt is nil a private
// table of the default size is allocated.
func NewEngine(pos *Position, log Logger, tt *HashTable) *Engine {
	if log == nil {
		log = &NulLogger{}
	}
	if tt == nil {
		tt, _ = NewHashTable(DefaultHashTableSizeMB)
	}
	eng := &Engine{
		Log:     log,
		Pruning: true,
		tt:      tt,
		heur:    newHeuristics(),
	}
	eng.SetPosition(pos)
	return eng
}

// SetPosition sets the current position.
// If pos is nil, the starting position is set.
func (eng *Engine) SetPosition(pos *Position) {
	if pos == nil {
		pos, _ = PositionFromFEN(FENStartPos)
	}
	eng.Position = pos
	if eng.nnue != nil {
		eng.nnue.RefreshAccumulator(pos)
	}
}

// SetEvaluator installs a neural evaluator. Passing nil reverts to
// the hand-crafted evaluation.
func (eng *Engine) SetEvaluator(ev Evaluator) {
	eng.nnue = ev
	if ev != nil && eng.Position != nil {
		ev.RefreshAccumulator(eng.Position)
	}
}

// DoMove executes a move.
func (eng *Engine) DoMove(m Move) {
	if eng.nnue != nil {
		eng.nnue.UpdateBeforeMove(eng.Position, m)
		eng.Position.DoMove(m)
		eng.nnue.UpdateAfterMove(eng.Position, m)
		return
	}
	eng.Position.DoMove(m)
}

// UndoMove undoes the last move.
func (eng *Engine) UndoMove() {
	eng.Position.UndoMove()
	if eng.nnue != nil {
		eng.nnue.RefreshAccumulator(eng.Position)
	}
}

// Score evaluates the current position from the side to move's point
// of view, delegating to the neural evaluator when one is installed.
func (eng *Engine) Score() int32 {
	if eng.nnue != nil {
		return eng.nnue.Evaluate(eng.Position)
	}
	return Evaluate(eng.Position)
}

// ply returns the ply from the root of the search.
func (eng *Engine) ply() int32 {
	return int32(eng.Position.Ply - eng.rootPly)
}

// countNode updates the node counters and polls the stop conditions
// every checkpointStep nodes.
func (eng *Engine) countNode() {
	eng.Stats.Nodes++
	if !eng.stopped && eng.Stats.Nodes >= eng.checkpoint {
		eng.checkpoint = eng.Stats.Nodes + checkpointStep
		eng.flushNodes()
		if eng.timeControl.Stopped() || (eng.stopFlag != nil && eng.stopFlag.Load()) {
			eng.stopped = true
		}
	}
}

func (eng *Engine) flushNodes() {
	if eng.globalNodes != nil {
		eng.globalNodes.Add(eng.Stats.Nodes - eng.flushed)
		eng.flushed = eng.Stats.Nodes
	}
}

// isDrawn returns true for fifty-move, repetition and insufficient
// material draws. Repetition needs only a twofold occurrence inside
// the search because the opponent could force the third.
func (eng *Engine) isDrawn() bool {
	pos := eng.Position
	if pos.FiftyMoveRule() {
		return true
	}
	if pos.InsufficientMaterial() {
		return true
	}
	return pos.countRepetitions() >= 2
}

// retrieveHash probes the shared transposition table, rejecting
// entries whose move is not pseudo-legal here (hash collisions) and
// converting mate scores to be relative to the root.
func (eng *Engine) retrieveHash() (hashEntry, bool) {
	entry, ok := eng.tt.get(eng.Position.Zobrist())
	if !ok {
		eng.Stats.CacheMiss++
		return hashEntry{}, false
	}
	if entry.move != NullMove && !eng.Position.IsPseudoLegal(entry.move) {
		eng.Stats.CacheMiss++
		return hashEntry{}, false
	}

	ply := eng.ply()
	if int32(entry.score) > KnownWinScore {
		entry.score -= int16(ply)
	} else if int32(entry.score) < KnownLossScore {
		entry.score += int16(ply)
	}
	eng.Stats.CacheHit++
	return entry, true
}

// updateHash stores the result of a node in the transposition table.
// Mate scores are stored relative to the current position so they
// remain valid when reached through a different move order.
func (eng *Engine) updateHash(α, β, depth, score, static int32, move Move) {
	if eng.stopped || eng.plies[eng.ply()].excluded != NullMove {
		return
	}

	ply := eng.ply()
	stored := score
	if stored > KnownWinScore {
		stored += ply
	} else if stored < KnownLossScore {
		stored -= ply
	}

	eng.tt.put(eng.Position.Zobrist(), hashEntry{
		move:   move,
		score:  int16(stored),
		static: int16(static),
		depth:  int8(depth),
		kind:   getBound(α, β, score),
	})
}

// searchQuiescence resolves captures and queen promotions until the
// position is quiet enough for the static evaluation to be trusted.
//
// α, β represent the lower and upper bounds; qdepth decreases from 0
// and bottoms out at qsDepthFloor to stop pathological extensions in
// wild positions.
func (eng *Engine) searchQuiescence(α, β, qdepth int32) int32 {
	eng.countNode()
	if eng.stopped {
		return α
	}

	pos := eng.Position
	us := pos.Us()
	ply := eng.ply()

	standPat := eng.Score()
	if standPat >= β {
		return β
	}
	if qdepth <= qsDepthFloor || ply >= maxPly {
		return standPat
	}
	// Fail soft below alpha so razoring can see how hopeless the
	// position really is.
	best := standPat
	if standPat > α {
		α = standPat
	}

	ps := &eng.plies[ply]
	ps.vml.clear()
	pos.GenerateMoves(Violent, &ps.vml.moves)
	eng.scoreViolentMoves(&ps.vml)

	for {
		m, _ := ps.vml.popBack()
		if m == NullMove {
			break
		}

		// Prune losing captures.
		if seeSign(pos, m) {
			continue
		}
		// Delta pruning: even winning the piece cannot raise alpha.
		victim := pos.Get(m.To()).Figure()
		if victim == NoFigure && m.To() == pos.EnpassantSquare() {
			victim = Pawn
		}
		if !m.IsPromotion() && standPat+figureBonus[victim]+deltaPruningMargin < α {
			continue
		}

		eng.DoMove(m)
		if pos.IsChecked(us) {
			eng.UndoMove()
			continue
		}
		score := -eng.searchQuiescence(-β, -α, qdepth-1)
		eng.UndoMove()

		if score >= β {
			return β
		}
		if score > best {
			best = score
			if score > α {
				α = score
			}
		}
	}
	return best
}

// searchTree implements the negamax alpha-beta framework.
//
// α, β represent the lower and upper bounds; depth is the remaining
// depth (decreasing). The returned score is from the current side to
// move's point of view. It is not clamped to [α, β]: razoring,
// ProbCut, quiescence and exact table hits can return scores outside
// the window.
func (eng *Engine) searchTree(α, β, depth int32) int32 {
	ply := eng.ply()
	pvNode := α+1 < β
	pos := eng.Position
	us, them := pos.Us(), pos.Them()
	ps := &eng.plies[ply]

	eng.countNode()
	if eng.stopped {
		return α
	}
	if pvNode && ply > eng.Stats.SelDepth {
		eng.Stats.SelDepth = ply
	}

	// Step 1. Draws are not scored any deeper, except at the root
	// where a move must still be produced.
	if ply > 0 && (eng.isDrawn() || ply >= maxPly) {
		if ply >= maxPly {
			return eng.Score()
		}
		return 0
	}

	// Step 2. Mate distance pruning: the best achievable mate from
	// here bounds the window.
	if ply > 0 {
		α = max(α, MatedScore+ply)
		β = min(β, MateScore-ply-1)
		if α >= β {
			return α
		}
	}

	// Step 3. Probe the shared transposition table. A running
	// singular test skips the probe, the stored entry is the move
	// being tested.
	var entry hashEntry
	var hasEntry bool
	hash := NullMove
	if ps.excluded == NullMove {
		entry, hasEntry = eng.retrieveHash()
		hash = entry.move
		if hasEntry && depth <= int32(entry.depth) && ply > 0 {
			score := int32(entry.score)
			if entry.kind == exact {
				return score
			}
			if !pvNode {
				// Only exact bounds short-circuit PV nodes.
				if entry.kind == failedHigh && score >= β {
					return β
				}
				if entry.kind == failedLow && score <= α {
					return α
				}
			}
		}
	}

	// Drop into quiescence at the frontier.
	if depth <= 0 {
		score := eng.searchQuiescence(α, β, 0)
		eng.updateHash(α, β, depth, score, 0, NullMove)
		return score
	}

	sideIsChecked := pos.IsChecked(us)

	// Step 4. Static evaluation, cached in the frame for the
	// improving flag of deeper plies.
	static := int32(0)
	if !sideIsChecked {
		if hasEntry && entry.static != 0 {
			static = int32(entry.static)
		} else {
			static = eng.Score()
		}
	}
	ps.staticEval = static
	improving := !sideIsChecked && ply >= 2 && static > eng.plies[ply-2].staticEval

	if eng.Pruning && !pvNode && !sideIsChecked && ps.excluded == NullMove &&
		KnownLossScore < α && β < KnownWinScore {
		// Step 5. Razoring: hopeless static eval near the frontier
		// drops straight into quiescence.
		if depth <= razorDepthLimit && static+razorMargin*depth < α {
			score := eng.searchQuiescence(α, β, 0)
			if score < α {
				return score
			}
		}

		// Step 6. Null move pruning: if passing still fails high at
		// reduced depth, the moves here are unlikely to matter.
		// Unsound in pawn-only endgames because of zugzwang.
		if depth >= 2 && static >= β && pos.HasNonPawns(us) && pos.LastMove() != NullMove {
			reduction := 3 + depth/6 + min(3, (static-β)/200)
			eng.DoMove(NullMove)
			score := -eng.searchTree(-β, -β+1, depth-reduction-1)
			eng.UndoMove()
			if eng.stopped {
				return α
			}
			if score >= β && !IsMateScore(score) {
				return β
			}
		}

		// Step 7. ProbCut: a good capture that beats a raised beta at
		// reduced depth almost certainly beats beta at full depth.
		if depth >= probCutDepthLimit {
			rβ := min(β+probCutMargin, InfinityScore)
			ps.vml.clear()
			pos.GenerateMoves(Violent, &ps.vml.moves)
			eng.scoreViolentMoves(&ps.vml)
			tried := 0
			for tried < multiCutMoves {
				m, _ := ps.vml.popBack()
				if m == NullMove {
					break
				}
				if !seeAbove(pos, m, rβ-static) {
					continue
				}
				eng.DoMove(m)
				if pos.IsChecked(us) {
					eng.UndoMove()
					continue
				}
				tried++
				score := -eng.searchTree(-rβ, -rβ+1, depth-4)
				eng.UndoMove()
				if eng.stopped {
					return α
				}
				if score >= rβ {
					eng.updateHash(rβ-1, rβ, depth-3, score, static, m)
					return score
				}
			}
		}
	}

	// Step 8. Internal iterative deepening: a PV node without a hash
	// move is searched shallow first to populate the table.
	if pvNode && hash == NullMove && depth >= iidDepthLimit && ps.excluded == NullMove {
		eng.searchTree(α, β, depth-2)
		if entry, hasEntry = eng.retrieveHash(); hasEntry {
			hash = entry.move
		}
	}

	// Step 9. Generate and order all moves.
	prev := prevMoveKey{pos.LastMove(), pos.LastMoved()}
	ps.ml.clear()
	pos.GenerateMoves(All, &ps.ml.moves)
	eng.scoreMoves(&ps.ml, hash, prev, ply)

	// Multi-cut: if several of the best moves fail high at reduced
	// depth, the node is trusted to be a cut node.
	if eng.Pruning && !pvNode && !sideIsChecked && depth >= multiCutDepthLimit &&
		ps.excluded == NullMove && hasEntry && entry.kind == failedHigh &&
		KnownLossScore < β && β < KnownWinScore {
		cuts, tried := 0, 0
		for i := len(ps.ml.moves) - 1; i >= 0 && tried < multiCutMoves; i-- {
			m := ps.ml.moves[i]
			eng.DoMove(m)
			if pos.IsChecked(us) {
				eng.UndoMove()
				continue
			}
			tried++
			score := -eng.searchTree(-β, -β+1, depth-4)
			eng.UndoMove()
			if eng.stopped {
				return α
			}
			if score >= β {
				if cuts++; cuts >= multiCutRequired {
					return β
				}
			}
		}
	}

	// Step 10. The move loop.
	bestMove, bestScore := NullMove, -InfinityScore
	localα := α
	moveCount := int32(0)
	skipQuiets := false
	ps.quiets = ps.quiets[:0]

	lmpLimit := 3 + depth*depth
	if !improving {
		lmpLimit /= 2
	}

	for {
		m, mscore := ps.ml.popBack()
		if m == NullMove {
			break
		}
		if m == ps.excluded {
			continue
		}

		isQuiet := pos.Get(m.To()) == NoPiece && !m.IsPromotion() &&
			!(pos.Get(m.From()).Figure() == Pawn && m.To() == pos.EnpassantSquare())

		if isQuiet && skipQuiets {
			continue
		}

		if eng.Pruning && isQuiet && !pvNode && !sideIsChecked && bestScore > KnownLossScore && moveCount > 0 {
			// Step 10a. Late move pruning: quiet moves past the move
			// count threshold are skipped wholesale.
			if depth <= lmpDepthLimit && moveCount >= lmpLimit {
				skipQuiets = true
				continue
			}
			// Step 10b. Futility pruning: the static eval is too far
			// below alpha for a quiet move to repair.
			if depth <= futilityDepthLimit && static+futilityMarginBase+futilityMarginSlope*depth < localα {
				continue
			}
		}

		// Step 10c. Losing captures are skipped at shallow depth;
		// quiescence will pick the sound ones up again.
		if eng.Pruning && !isQuiet && !sideIsChecked && depth <= razorDepthLimit &&
			bestScore > KnownLossScore && moveCount > 0 && seeSign(pos, m) {
			continue
		}

		// Step 10d. Extensions.
		ext := int32(0)
		if eng.Pruning {
			if sideIsChecked {
				ext = 1
			} else if m == hash && eng.isSingular(&entry, hasEntry, m, depth, ply) {
				ext = 1
			}
		}

		// Step 10e. Make the move; pseudo-legal moves that leave the
		// king in check are dropped here.
		eng.DoMove(m)
		if pos.IsChecked(us) {
			eng.UndoMove()
			continue
		}
		eng.tt.prefetch(pos.Zobrist())
		moveCount++
		givesCheck := pos.IsChecked(them)
		newDepth := depth - 1 + ext

		// Step 10f. Late move reduction for quiet non-first moves.
		lmr := int32(0)
		if eng.Pruning && isQuiet && moveCount > 1 && depth >= lmrDepthLimit && !sideIsChecked && !givesCheck {
			lmr = lmrReductions[min(depth, 63)][min(moveCount, 63)]
			if pvNode {
				lmr--
			}
			if !improving {
				lmr++
			}
			if mscore >= counterMoveScore {
				// Killers and counter moves are reduced less.
				lmr--
			}
			lmr = max(0, min(lmr, newDepth-1))
		}

		// Step 10g. Principal variation search: the first move gets
		// the full window, the rest a null window, re-searched wider
		// on a fail-high.
		var score int32
		if moveCount == 1 {
			score = -eng.searchTree(-β, -localα, newDepth)
		} else {
			score = -eng.searchTree(-localα-1, -localα, newDepth-lmr)
			if score > localα && lmr > 0 {
				score = -eng.searchTree(-localα-1, -localα, newDepth)
			}
			if score > localα && score < β && pvNode {
				score = -eng.searchTree(-β, -localα, newDepth)
			}
		}

		// Step 10h.
		eng.UndoMove()
		if eng.stopped {
			return α
		}

		if isQuiet {
			ps.quiets = append(ps.quiets, m)
		}

		// Step 10i.
		if score >= β {
			if isQuiet {
				eng.heur.goodQuiet(us, prev, pos.Get(m.From()), m, depth, ply)
				for _, q := range ps.quiets {
					if q != m {
						eng.heur.badQuiet(us, prev, pos.Get(q.From()), q, depth)
					}
				}
			}
			eng.updateHash(α, β, depth, β, static, m)
			return β
		}
		if score > bestScore {
			bestMove, bestScore = m, score
			if score > localα {
				localα = score
			}
		}
	}

	// Step 9 fallthrough: no legal moves is mate or stalemate. During
	// a singular test the excluded move may have been the only one.
	if moveCount == 0 {
		if ps.excluded != NullMove {
			return α
		}
		if sideIsChecked {
			return MatedScore + ply
		}
		return 0
	}

	// Quiet moves that failed to raise alpha lose history points.
	if bestScore <= α {
		for _, q := range ps.quiets {
			eng.heur.badQuiet(us, prev, pos.Get(q.From()), q, depth)
		}
	}

	// Step 11. Store the result: EXACT if alpha was raised, UPPER
	// otherwise. LOWER was stored at the cutoff above.
	eng.updateHash(α, β, depth, max(bestScore, α), static, bestMove)
	return max(bestScore, α)
}

// isSingular reports whether the hash move is singular: every other
// move fails low at reduced depth against a margin below the stored
// score, so the hash move's line deserves one extra ply.
//
// The test excludes the hash move and re-searches this same node; the
// excluded marker doubles as the recursion guard.
func (eng *Engine) isSingular(entry *hashEntry, hasEntry bool, m Move, depth, ply int32) bool {
	if depth < singularDepthLimit || ply == 0 || !hasEntry ||
		eng.plies[ply].excluded != NullMove ||
		entry.kind == failedLow || int32(entry.depth) < depth-3 ||
		IsMateScore(int32(entry.score)) {
		return false
	}

	// The re-search runs at this same ply and would clobber the move
	// loop's buffers; save and restore them around the test.
	ps := &eng.plies[ply]
	savedMoves := append([]Move(nil), ps.ml.moves...)
	savedOrder := append([]int32(nil), ps.ml.order...)
	savedQuiets := append([]Move(nil), ps.quiets...)
	savedStatic := ps.staticEval

	rBeta := max(int32(entry.score)-2*depth, MatedScore+1)
	ps.excluded = m
	score := eng.searchTree(rBeta-1, rBeta, (depth-1)/2)
	ps.excluded = NullMove

	ps.ml.moves = append(ps.ml.moves[:0], savedMoves...)
	ps.ml.order = append(ps.ml.order[:0], savedOrder...)
	ps.quiets = append(ps.quiets[:0], savedQuiets...)
	ps.staticEval = savedStatic
	return score < rBeta
}

// search runs one iteration of iterative deepening, wrapping the tree
// search in an aspiration window around the previous estimate. On a
// fail the failing side is widened by doubling until a score lands
// inside the window.
func (eng *Engine) search(depth, estimated int32) int32 {
	α, β := -InfinityScore, InfinityScore
	δ := initialAspirationWindow
	if depth >= aspirationDepthLimit && !IsMateScore(estimated) {
		α = max(estimated-δ, -InfinityScore)
		β = min(estimated+δ, InfinityScore)
	}

	score := estimated
	for !eng.stopped {
		score = eng.searchTree(α, β, depth)
		if score <= α {
			α = max(α-δ, -InfinityScore)
			δ *= 2
		} else if score >= β {
			β = min(β+δ, InfinityScore)
			δ *= 2
		} else {
			break
		}
	}
	return score
}

// Play searches the current position under tc.
//
// Returns the score and the principal variation: pv[0] is the best
// move found. The pv is empty if the game is already finished or the
// search was stopped before completing the first depth.
func (eng *Engine) Play(tc *TimeControl) (score int32, pv []Move) {
	eng.Log.BeginSearch()
	eng.Stats = Stats{}
	eng.rootPly = eng.Position.Ply
	eng.timeControl = tc
	eng.stopped = false
	eng.checkpoint = checkpointStep
	eng.heur.age()
	for i := range eng.plies {
		eng.plies[i].excluded = NullMove
	}

	for depth := int32(1); tc.NextDepth(depth); depth++ {
		got := eng.search(depth, score)
		if eng.stopped {
			break
		}
		score = got
		eng.Stats.Depth = depth
		pv = eng.principalVariation(depth)
		eng.Log.PrintPV(eng.Stats, score, pv)
	}

	eng.flushNodes()
	eng.Log.EndSearch()
	return score, pv
}

// principalVariation walks the best-move chain out of the shared
// transposition table. Different workers may see slightly different
// chains; the line is the best known at observation time.
func (eng *Engine) principalVariation(depth int32) []Move {
	pos := eng.Position
	seen := make(map[uint64]bool)
	var pv []Move

	for int32(len(pv)) < depth {
		if seen[pos.Zobrist()] {
			break
		}
		seen[pos.Zobrist()] = true

		entry, ok := eng.tt.get(pos.Zobrist())
		if !ok || entry.move == NullMove || !pos.IsPseudoLegal(entry.move) {
			break
		}
		us := pos.Us()
		pos.DoMove(entry.move)
		if pos.IsChecked(us) {
			pos.UndoMove()
			break
		}
		pv = append(pv, entry.move)
	}

	for range pv {
		pos.UndoMove()
	}
	return pv
}
