// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// parallel.go implements the search coordinator: the Lazy SMP worker
// pool, the shared clock and stop flag, the node counters and the
// published best root move.
//
// Workers run independent iterative deepening loops on their own
// Position clones and coordinate only through the shared
// transposition table: a deeper search by one worker accelerates the
// others via hash hits. Work distribution is implicit.

package engine

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/luminachess/lumina/internal/logging"
)

var log = logging.GetLog()

// SearchState is the coordinator's lifecycle state.
type SearchState int32

const (
	// StateIdle means no search is running.
	StateIdle SearchState = iota
	// StateSearching means workers are running.
	StateSearching
	// StateStopping means workers are unwinding after a stop request.
	StateStopping
	// StateCompleted means all workers joined and the result is latched.
	StateCompleted
)

// Result is the outcome of a search.
type Result struct {
	BestMove Move
	Score    int32 // centipawns, side to move relative
	Depth    int32
	Nodes    uint64
	PV       []Move
}

// Coordinator owns the shared search state and drives the workers.
// It implements the engine's integration surface: position setup,
// search, stop, and table sizing.
type Coordinator struct {
	pos  *Position
	tt   *HashTable
	book Book
	tb   Tablebase
	nnue Evaluator

	state    atomic.Int32
	stop     atomic.Bool
	nodes    atomic.Uint64
	resultMu sync.Mutex
	result   Result
	hasBest  bool

	// PublishPV, when set, observes every completed depth of the
	// main worker.
	PublishPV func(stats Stats, score int32, pv []Move)
}

// NewCoordinator creates a coordinator with a table of hashSizeMB
// megabytes and the starting position.
func NewCoordinator(hashSizeMB int) (*Coordinator, error) {
	tt, err := NewHashTable(hashSizeMB)
	if err != nil {
		return nil, err
	}
	pos, _ := PositionFromFEN(FENStartPos)
	return &Coordinator{pos: pos, tt: tt}, nil
}

// State returns the coordinator's lifecycle state.
func (c *Coordinator) State() SearchState {
	return SearchState(c.state.Load())
}

// Position returns the current position.
func (c *Coordinator) Position() *Position {
	return c.pos
}

// SetPosition parses fen and installs the position.
func (c *Coordinator) SetPosition(fen string) error {
	pos, err := PositionFromFEN(fen)
	if err != nil {
		return err
	}
	c.pos = pos
	return nil
}

// SetPositionFromMoves installs the starting position and plays the
// given wire format moves on it.
func (c *Coordinator) SetPositionFromMoves(moves []string) error {
	pos, _ := PositionFromFEN(FENStartPos)
	for _, s := range moves {
		m, err := pos.UCIToMove(s)
		if err != nil {
			return fmt.Errorf("move %q: %w", s, err)
		}
		pos.DoMove(m)
	}
	c.pos = pos
	return nil
}

// SetHashSize resizes the transposition table, clearing its contents.
// Must not be called while a search is running.
func (c *Coordinator) SetHashSize(sizeMB int) error {
	tt, err := NewHashTable(sizeMB)
	if err != nil {
		return err
	}
	c.tt = tt
	return nil
}

// SetBook installs an opening book probed before searching.
func (c *Coordinator) SetBook(b Book) { c.book = b }

// SetTablebase installs an endgame tablebase prober.
func (c *Coordinator) SetTablebase(tb Tablebase) { c.tb = tb }

// SetEvaluator installs a neural evaluator for all workers.
func (c *Coordinator) SetEvaluator(ev Evaluator) { c.nnue = ev }

// Stop requests a running search to stop. Safe from any goroutine.
func (c *Coordinator) Stop() {
	if c.State() == StateSearching {
		c.state.Store(int32(StateStopping))
	}
	c.stop.Store(true)
}

// Nodes returns the aggregated node count of the last search.
func (c *Coordinator) Nodes() uint64 {
	return c.nodes.Load()
}

// Hashfull estimates the transposition table usage in permille.
func (c *Coordinator) Hashfull() int {
	return c.tt.hashfull()
}

// publish latches a completed depth's result if it improves on the
// already published one.
func (c *Coordinator) publish(stats Stats, score int32, pv []Move) {
	if len(pv) == 0 {
		return
	}
	c.resultMu.Lock()
	if stats.Depth > c.result.Depth || !c.hasBest {
		c.result = Result{
			BestMove: pv[0],
			Score:    score,
			Depth:    stats.Depth,
			PV:       append([]Move(nil), pv...),
		}
		c.hasBest = true
	}
	c.resultMu.Unlock()
	if c.PublishPV != nil {
		c.PublishPV(stats, score, pv)
	}
}

// publishLogger routes a worker's per-depth reports into the
// coordinator.
type publishLogger struct {
	c *Coordinator
}

func (pl *publishLogger) BeginSearch() {}
func (pl *publishLogger) EndSearch()   {}
func (pl *publishLogger) PrintPV(stats Stats, score int32, pv []Move) {
	pl.c.publish(stats, score, pv)
}

// Depth skipping pattern for helper workers, taken from Ethereal.
// Helpers start iterative deepening offset from the main worker so
// the shared table fills across depths instead of in lockstep.
var (
	smpSkipSize   = []int32{1, 1, 1, 2, 2, 2, 1, 3, 2, 2, 1, 3, 3, 2, 2, 1}
	smpSkipDepths = []int32{1, 2, 2, 4, 4, 3, 2, 5, 4, 3, 2, 6, 5, 4, 3, 2}
)

// Search runs a search of the current position with workerCount
// parallel workers, bounded by depthLimit plies and, when positive,
// timeLimit wall time.
//
// Returns ErrSearchCancelled or ErrDeadlineExceeded when no depth
// completed before the search ended; if at least depth 1 completed
// the best known move is returned instead of an error.
func (c *Coordinator) Search(depthLimit int32, timeLimit time.Duration, workerCount int) (Result, error) {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	if c.State() == StateSearching || c.State() == StateStopping {
		return Result{}, fmt.Errorf("search already running")
	}

	c.state.Store(int32(StateSearching))
	c.stop.Store(false)
	c.nodes.Store(0)
	c.resultMu.Lock()
	c.result, c.hasBest = Result{}, false
	c.resultMu.Unlock()
	start := time.Now()

	// Out-of-search shortcuts: book and tablebase.
	if c.book != nil {
		if m, ok := c.book.Probe(c.pos); ok {
			log.Debugf("book move %v", m)
			c.state.Store(int32(StateCompleted))
			return Result{BestMove: m, Depth: 0, PV: []Move{m}}, nil
		}
	}
	if c.tb != nil && c.tb.CanProbe(c.pos) {
		if m, _, ok := c.tb.ProbeRoot(c.pos); ok {
			log.Debugf("tablebase move %v", m)
			c.state.Store(int32(StateCompleted))
			return Result{BestMove: m, Depth: 0, PV: []Move{m}}, nil
		}
	}

	tc := NewTimeControl(depthLimit, timeLimit)
	c.tt.NewSearch()

	var g errgroup.Group
	for i := 0; i < workerCount; i++ {
		idx := i
		g.Go(func() error {
			c.runWorker(idx, tc)
			return nil
		})
	}

	// The main worker finishing its budget ends the search for all.
	_ = g.Wait()
	c.state.Store(int32(StateCompleted))

	c.resultMu.Lock()
	res := c.result
	hasBest := c.hasBest
	c.resultMu.Unlock()
	res.Nodes = c.nodes.Load()

	if !hasBest {
		switch {
		case timeLimit > 0 && !time.Now().Before(start.Add(timeLimit)):
			return res, ErrDeadlineExceeded
		case c.stop.Load():
			// Set only by an external Stop; the main worker finishing
			// normally goes through tc.Stop instead.
			return res, ErrSearchCancelled
		default:
			// No legal moves: mate or stalemate at the root.
			return res, nil
		}
	}
	return res, nil
}

// runWorker runs one worker's iterative deepening loop. Worker 0 is
// the main worker: it publishes results and, on finishing, stops the
// helpers. Helpers skip depths in a staggered pattern.
func (c *Coordinator) runWorker(idx int, tc *TimeControl) {
	eng := NewEngine(c.pos.Clone(), nil, c.tt)
	eng.stopFlag = &c.stop
	eng.globalNodes = &c.nodes
	if c.nnue != nil {
		eng.SetEvaluator(c.nnue)
	}

	if idx == 0 {
		eng.Log = &publishLogger{c: c}
		eng.Play(tc)
		// Main worker done: release the helpers.
		tc.Stop()
		return
	}

	cycle := int32(idx-1) % int32(len(smpSkipSize))
	eng.rootPly = eng.Position.Ply
	eng.timeControl = tc
	eng.stopped = false
	eng.checkpoint = checkpointStep
	eng.heur.clear()

	// Helpers honor the same depth budget as the main worker so a
	// depth-capped search stays reproducible.
	score := int32(0)
	for depth := int32(1); depth <= tc.Depth(); depth++ {
		if tc.Stopped() || c.stop.Load() {
			break
		}
		score = eng.search(depth, score)
		if (depth+cycle)%smpSkipDepths[cycle] == 0 {
			depth += smpSkipSize[cycle]
		}
	}
	eng.flushNodes()
}
