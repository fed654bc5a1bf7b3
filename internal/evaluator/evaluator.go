//
// corvid - chess engine core in Go
//

// Package evaluator scores a position from the side-to-move's point of
// view using material balance and piece-square placement only: no
// mobility, king safety, or pawn-structure terms.
package evaluator

import (
	"github.com/mwendt/corvid/internal/position"
	. "github.com/mwendt/corvid/internal/types"
)

// UpperBound is the magnitude returned for a checkmated side to move,
// signed negative from its own point of view.
const UpperBound Value = ValueCheckMate

// Evaluator computes a static score for a position. It holds no
// per-position state, so a single instance is safe to reuse across an
// entire search tree.
type Evaluator struct{}

// New creates an Evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// Evaluate returns sign*(material + 2*placement), where sign is +1 if
// white is to move and -1 if black is to move, except at the two leaf
// overrides: a checkmated side to move scores -UpperBound and any other
// drawn position scores 0.
func (e *Evaluator) Evaluate(p *position.Position) Value {
	sign := Value(p.NextPlayer().Direction())

	if p.IsCheckmate() {
		return -UpperBound
	}
	if p.IsDraw() {
		return ValueDraw
	}

	var material, placement Value
	for sq := SqA1; sq < SqNone; sq++ {
		piece := p.GetPiece(sq)
		if piece == PieceNone {
			continue
		}
		dir := Value(piece.ColorOf().Direction())
		material += dir * piece.TypeOf().ValueOf()
		placement += dir * PosMidValue(piece, sq)
	}

	return sign * (material + 2*placement)
}
