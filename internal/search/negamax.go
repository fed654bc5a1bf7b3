//
// corvid - chess engine core in Go
//

package search

import (
	"github.com/mwendt/corvid/internal/config"
	"github.com/mwendt/corvid/internal/move"
	"github.com/mwendt/corvid/internal/movepicker"
	"github.com/mwendt/corvid/internal/position"
	. "github.com/mwendt/corvid/internal/types"
)

// negamax searches position p to the given depth, ply plies below the
// search root, and returns a value from the side to move's point of
// view. The principal variation that produced it is written through
// pv, most-recent-first from the caller's point of view (pv[0] is the
// move played at this node).
func (s *Search) negamax(p *position.Position, depth, ply int, alpha, beta Value, pv *[]move.Move) Value {
	*pv = (*pv)[:0]
	s.nodes++
	s.stats.Nodes++

	if p.IsCheckmate() {
		return -ValueCheckMate + Value(ply)
	}
	if p.IsDraw() {
		return ValueDraw
	}

	if depth <= 0 {
		if config.Settings.Search.UseQuiescence && isCaptureOrPromotion(p.LastMove()) {
			return s.quiescence(p, ply, maxQuiescenceDepth, alpha, beta)
		}
		return s.eval.Evaluate(p)
	}

	if s.checkCancel() {
		return s.eval.Evaluate(p)
	}

	key := p.ZobristKey()
	alphaOrig := alpha
	ttMove := move.MoveNone

	if config.Settings.Search.UseTT {
		if entry := s.tt.Probe(key); entry != nil {
			s.stats.TTHits++
			ttMove = entry.Move()
			if int(entry.Depth()) >= depth {
				value := valueFromTT(entry.Value(), ply)
				switch entry.Vtype() {
				case ValueTypeExact:
					if ttMove != move.MoveNone {
						*pv = append(*pv, ttMove)
					}
					return value
				case ValueTypeUpper:
					if value < beta {
						beta = value
					}
				case ValueTypeLower:
					if value > alpha {
						alpha = value
					}
				}
				if alpha >= beta {
					return value
				}
			}
		} else {
			s.stats.TTMisses++
		}
	}

	inCheck := p.IsCheck()
	picker := movepicker.New(p, p.Moves(), ttMove, s.history)

	bestValue := ValueNA
	bestMove := move.MoveNone
	var childPV []move.Move
	moveCount := 0

	for m, ok := picker.Next(); ok; m, ok = picker.Next() {
		moveCount++
		movedPiece := p.GetPiece(m.From())
		lmrExcluded := isLmrExcluded(m)

		_ = p.Make(m)

		var value Value
		fullSearch := true
		if config.Settings.Search.UseLmr &&
			depth >= config.Settings.Search.LmrDepth &&
			moveCount > config.Settings.Search.LmrMovesSearched &&
			!lmrExcluded && !inCheck {
			r := lmrReduction(depth, moveCount)
			s.stats.LmrReductions++
			value = -s.negamax(p, depth-1-r, ply+1, -alpha-1, -alpha, &childPV)
			fullSearch = value > alpha
			if fullSearch {
				s.stats.LmrResearches++
			}
		}
		if fullSearch {
			value = -s.negamax(p, depth-1, ply+1, -beta, -alpha, &childPV)
		}

		_ = p.Undo()

		if moveCount == 1 || value > bestValue {
			bestValue = value
			bestMove = m
			*pv = append((*pv)[:0], m)
			*pv = append(*pv, childPV...)
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			s.stats.BetaCutoffs++
			s.history.Update(movedPiece, m, depth)
			break
		}
	}

	if config.Settings.Search.UseTT {
		kind := ValueTypeExact
		switch {
		case bestValue <= alphaOrig:
			kind = ValueTypeUpper
		case bestValue >= beta:
			kind = ValueTypeLower
		}
		s.tt.Put(key, bestMove, int8(depth), valueToTT(bestValue, ply), kind, ValueNA)
	}

	return bestValue
}

// quiescence extends the search beyond the horizon along
// capture/promotion lines only, until no capture improves on the
// stand-pat evaluation, a beta cutoff occurs, or qdepth plies have
// been explored. When UseSEE is set in the search config, bad captures
// (negative static-exchange value) are pruned rather than searched.
func (s *Search) quiescence(p *position.Position, ply, qdepth int, alpha, beta Value) Value {
	s.nodes++
	s.stats.Nodes++
	s.stats.QNodes++

	if p.IsCheckmate() {
		return -ValueCheckMate + Value(ply)
	}
	if p.IsDraw() {
		return ValueDraw
	}

	standPat := s.eval.Evaluate(p)
	if qdepth <= 0 {
		return standPat
	}
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	if s.checkCancel() {
		return standPat
	}

	picker := movepicker.New(p, p.Moves(), move.MoveNone, nil)

	for m, ok := picker.Next(); ok; m, ok = picker.Next() {
		if !isCaptureOrPromotion(m) {
			continue
		}
		if config.Settings.Search.UseSEE && m.Type().IsCapture() && movepicker.SEE(p, m) < 0 {
			continue
		}

		_ = p.Make(m)
		value := -s.quiescence(p, ply+1, qdepth-1, -beta, -alpha)
		_ = p.Undo()

		if value >= beta {
			return value
		}
		if value > alpha {
			alpha = value
		}
	}

	return alpha
}

// isCaptureOrPromotion reports whether m is a capture (en passant
// included) or a promotion: the only move classes that send a horizon
// node into quiescence, and the only ones quiescence itself explores.
func isCaptureOrPromotion(m move.Move) bool {
	t := m.Type()
	return t.IsCapture() || t.IsPromotion()
}

// isLmrExcluded reports whether m is exempt from late move reduction:
// captures, promotions, and castles are always searched at full depth.
func isLmrExcluded(m move.Move) bool {
	t := m.Type()
	return t.IsCapture() || t.IsPromotion() || t == move.KingCastle || t == move.QueenCastle
}

// valueToTT adjusts a mate-distance value computed at ply plies below
// the root into a root-independent "plies to mate from here" value
// suitable for storing in the transposition table, where it may later
// be probed from a different ply.
func valueToTT(v Value, ply int) Value {
	switch {
	case v >= ValueCheckMateThreshold:
		return v + Value(ply)
	case v <= -ValueCheckMateThreshold:
		return v - Value(ply)
	default:
		return v
	}
}

// valueFromTT is the inverse of valueToTT, re-expressing a stored mate
// value relative to the ply it is now being read at.
func valueFromTT(v Value, ply int) Value {
	switch {
	case v >= ValueCheckMateThreshold:
		return v - Value(ply)
	case v <= -ValueCheckMateThreshold:
		return v + Value(ply)
	default:
		return v
	}
}
