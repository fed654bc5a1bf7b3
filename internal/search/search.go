//
// corvid - chess engine core in Go
//

// Package search implements iterative-deepening negamax with
// alpha-beta pruning, quiescence, transposition-table lookup, and
// late-move reduction, driven from a position's current legal move
// list and ordered by a movepicker.Picker.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"

	"github.com/mwendt/corvid/internal/config"
	"github.com/mwendt/corvid/internal/evaluator"
	"github.com/mwendt/corvid/internal/history"
	myLogging "github.com/mwendt/corvid/internal/logging"
	"github.com/mwendt/corvid/internal/move"
	"github.com/mwendt/corvid/internal/position"
	"github.com/mwendt/corvid/internal/transpositiontable"
	. "github.com/mwendt/corvid/internal/types"
	"github.com/mwendt/corvid/internal/util"
)

// maxQuiescenceDepth caps how many plies the quiescence search may
// explore beyond the point the main search handed off at.
const maxQuiescenceDepth = 16

// nodeCheckMask makes the time and node-cap checks happen once every
// 1024 nodes rather than on every one, since the clock read would
// otherwise dominate the hot loop. The stop flag itself is read on
// every node.
const nodeCheckMask = 1023

// Search runs iterative-deepening negamax searches against a Position
// and owns the transposition table and history heuristic across calls,
// so repeated searches of the same game benefit from earlier work. A
// Search must not be used from two goroutines at once; use StartSearch
// plus the OnIteration/OnPV callbacks for a non-blocking driver.
type Search struct {
	log *logging.Logger

	tt      *transpositiontable.TtTable
	history *history.Table
	eval    *evaluator.Evaluator

	isRunning *semaphore.Weighted
	stopFlag  *util.Bool

	// OnIteration, if set, is called after each iterative-deepening
	// depth completes. OnPV, if set, is called right after it with the
	// same result, once per completed depth.
	OnIteration func(Result)
	OnPV        func(Result)

	mu         sync.Mutex
	limits     Limits
	nodes      uint64
	stats      Statistics
	startTime  time.Time
	deadline   time.Time
	lastResult Result
}

// NewSearch creates a Search with an empty transposition table sized
// per config.Settings.Search.TTSize and an empty history table.
func NewSearch() *Search {
	return &Search{
		log:       myLogging.GetSearchLog(),
		tt:        transpositiontable.NewTtTable(config.Settings.Search.TTSize),
		history:   history.New(),
		eval:      evaluator.New(),
		isRunning: semaphore.NewWeighted(1),
		stopFlag:  util.NewBool(false),
	}
}

// NewGame clears the transposition table and history heuristic. Call
// it between unrelated games; within one game, earlier search results
// remain useful and should be kept.
func (s *Search) NewGame() {
	s.tt.Clear()
	s.history.Clear()
}

// IsSearching reports whether a search is currently in progress.
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until any in-progress search has finished.
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.Background(), 1)
	s.isRunning.Release(1)
}

// StopSearch asks an in-progress search to stop at its next check
// point. The search returns the best move of its last completed
// iterative-deepening depth (a first iteration cut short is returned
// as it stands); it never reports an error for this.
func (s *Search) StopSearch() {
	s.stopFlag.Store(true)
}

// Result returns the result of the most recently completed (or
// cancelled) search.
func (s *Search) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

// Statistics returns the node and pruning counters of the most recent
// search.
func (s *Search) Statistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// StartSearch launches a search of p under sl in its own goroutine and
// returns immediately. Use WaitWhileSearching, the OnIteration/OnPV
// callbacks, or StopSearch to observe or cancel it, and Result to read
// its outcome once it finishes.
func (s *Search) StartSearch(p *position.Position, sl Limits) {
	go s.run(p, sl)
}

// Search runs a search of p under sl to completion, or until StopSearch
// is called from another goroutine, and returns its result directly.
func (s *Search) Search(p *position.Position, sl Limits) Result {
	s.run(p, sl)
	return s.Result()
}

func (s *Search) run(p *position.Position, sl Limits) {
	if !s.isRunning.TryAcquire(1) {
		s.log.Warning("search already running")
		return
	}
	defer s.isRunning.Release(1)

	if sl.Infinite {
		sl = Limits{Infinite: true}
	}

	s.startTime = time.Now()
	s.stopFlag.Store(false)
	s.nodes = 0
	s.stats = Statistics{}
	s.limits = sl
	s.deadline = time.Time{}

	if sl.MoveTime > 0 {
		s.deadline = s.startTime.Add(sl.MoveTime)
	}

	maxDepth := sl.Depth
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	s.log.Infof("searching %s", p.StringFen())

	var result Result
	prevBest := move.MoveNone
	for depth := 1; depth <= maxDepth; depth++ {
		var pv []move.Move
		value := s.negamax(p, depth, 0, -ValueInf, ValueInf, &pv)

		if s.stopFlag.Load() && depth > 1 {
			break
		}

		best := pvBestMove(pv)
		if depth > 1 && best != prevBest {
			s.stats.BestMoveChanges++
		}
		prevBest = best

		result = Result{
			BestMove: best,
			Value:    value,
			PV:       pv,
			Depth:    depth,
			Nodes:    s.nodes,
			Elapsed:  time.Since(s.startTime),
			Stats:    s.stats,
		}
		s.mu.Lock()
		s.lastResult = result
		s.mu.Unlock()

		if s.OnIteration != nil {
			s.OnIteration(result)
		}
		if s.OnPV != nil {
			s.OnPV(result)
		}

		if s.shouldStop(sl, depth) {
			break
		}
	}

	s.log.Infof("search finished: depth=%d %s nodes=%s (%d nps)", result.Depth, result.Value.String(),
		out.Sprintf("%d", result.Nodes), util.Nps(result.Nodes, result.Elapsed))
}

func pvBestMove(pv []move.Move) move.Move {
	if len(pv) == 0 {
		return move.MoveNone
	}
	return pv[0]
}

// shouldStop reports whether the outer iterative-deepening loop should
// stop after having just completed depthCompleted.
func (s *Search) shouldStop(sl Limits, depthCompleted int) bool {
	if s.stopFlag.Load() {
		return true
	}
	if sl.Infinite {
		return false
	}
	if sl.Depth > 0 && depthCompleted >= sl.Depth {
		return true
	}
	if sl.Nodes > 0 && s.nodes >= sl.Nodes {
		return true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return true
	}
	return false
}

// checkCancel is polled from inside negamax and quiescence. It reads
// the stop flag on every call and checks the node and time caps at
// nodeCheckMask granularity. It latches the stop flag itself once a
// node or time cap is hit, so later checks short-circuit on the flag
// alone.
func (s *Search) checkCancel() bool {
	if s.stopFlag.Load() {
		return true
	}
	if s.nodes&nodeCheckMask != 0 {
		return false
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.stopFlag.Store(true)
		return true
	}
	if s.limits.Nodes > 0 && s.nodes >= s.limits.Nodes {
		s.stopFlag.Store(true)
		return true
	}
	return false
}
