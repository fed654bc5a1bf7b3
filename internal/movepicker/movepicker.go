//
// corvid - chess engine core in Go
//

package movepicker

import (
	"github.com/mwendt/corvid/internal/history"
	"github.com/mwendt/corvid/internal/move"
	"github.com/mwendt/corvid/internal/position"
)

// phase is one stage of move ordering. Moves are returned hash move
// first, then every capture in descending SEE order, then every quiet
// move in descending history-score order.
type phase int8

const (
	hashPhase phase = iota
	capturePhase
	quietPhase
	sentinelPhase
)

type entry struct {
	move  move.Move
	phase phase
	value int64
}

// Picker yields the legal moves of a position one at a time, in
// search order, without allocating or sorting the full list up
// front: each call to Next does an incremental max-find over
// whichever phase is active, so a cutoff after the first move or two
// never pays for ordering the rest.
type Picker struct {
	entries     []entry
	searchIndex int
	phase       phase
}

// New builds a picker for every move in moves. hashMove (move.MoveNone
// if there isn't one) is always returned first regardless of its
// ordering score. hist supplies quiet-move ordering; it may be nil, in
// which case every quiet move scores zero and quiets come out in the
// order the earlier phases' swaps left them in, which is not in general
// generation order.
func New(p *position.Position, moves *move.List, hashMove move.Move, hist *history.Table) *Picker {
	pk := &Picker{entries: make([]entry, moves.Len())}
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		e := entry{move: m}
		switch {
		case hashMove != move.MoveNone && m == hashMove:
			e.phase = hashPhase
		case m.Type().IsCapture():
			e.phase = capturePhase
			e.value = int64(see(p, m))
		default:
			e.phase = quietPhase
			if hist != nil {
				e.value = hist.Get(p.GetPiece(m.From()), m)
			}
		}
		pk.entries[i] = e
	}
	return pk
}

// End reports whether every move has been returned.
func (pk *Picker) End() bool {
	return pk.searchIndex == len(pk.entries)
}

// Next returns the next move in search order and true, or MoveNone and
// false once every move has been exhausted.
func (pk *Picker) Next() (move.Move, bool) {
	if pk.End() {
		return move.MoveNone, false
	}

	found := pk.searchIndex
	for pk.phase != sentinelPhase {
		count := 0
		for i := pk.searchIndex; i < len(pk.entries); i++ {
			if pk.entries[i].phase != pk.phase {
				continue
			}
			count++
			if pk.entries[found].phase != pk.phase || pk.entries[i].value > pk.entries[found].value {
				found = i
			}
		}
		if count > 0 {
			break
		}
		pk.phase++
	}

	pk.entries[pk.searchIndex], pk.entries[found] = pk.entries[found], pk.entries[pk.searchIndex]
	m := pk.entries[pk.searchIndex].move
	pk.searchIndex++
	return m, true
}
