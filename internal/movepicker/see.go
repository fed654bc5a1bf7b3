//
// corvid - chess engine core in Go
//

// Package movepicker orders the moves a search node considers: the
// hash move first, then captures ordered by static exchange
// evaluation, then quiet moves ordered by the history heuristic.
package movepicker

import (
	"github.com/mwendt/corvid/internal/move"
	"github.com/mwendt/corvid/internal/position"
	. "github.com/mwendt/corvid/internal/types"
)

// SEE computes the static exchange evaluation of m: the net material
// change after every attacker and defender of the destination square
// has traded in least-valuable-first order, from the mover's point of
// view. It assumes m has already been validated as a legal move of the
// position to move. Exported for reuse by search's quiescence pruning.
func SEE(p *position.Position, m move.Move) Value {
	return see(p, m)
}

// see computes the static exchange evaluation of m: the net material
// change after every attacker and defender of the destination square
// has traded in least-valuable-first order. It assumes m has already
// been validated as a legal move of the position to move.
func see(p *position.Position, m move.Move) Value {
	if m.Type() == move.EnPassant {
		return Pawn.ValueOf()
	}

	var gain [32]Value
	ply := 0
	toSquare := m.To()
	fromSquare := m.From()
	movedPiece := p.GetPiece(fromSquare)
	side := p.NextPlayer()

	occupied := p.OccupiedAll()
	remainingAttacks := attacksTo(p, toSquare, White, occupied) | attacksTo(p, toSquare, Black, occupied)

	gain[ply] = p.GetPiece(toSquare).ValueOf()

	for {
		ply++
		side = side.Flip()

		if m.Type().IsPromotion() && ply == 1 {
			gain[ply] = m.Type().PromotionPiece().ValueOf() - Pawn.ValueOf() - gain[ply-1]
		} else {
			gain[ply] = movedPiece.ValueOf() - gain[ply-1]
		}

		if max(-gain[ply-1], gain[ply]) < 0 {
			break
		}

		remainingAttacks.PopSquare(fromSquare)
		occupied.PopSquare(fromSquare)

		remainingAttacks |= revealedAttacks(p, toSquare, occupied, White) | revealedAttacks(p, toSquare, occupied, Black)

		fromSquare = leastValuableAttacker(p, remainingAttacks, side)
		if fromSquare == SqNone {
			break
		}
		movedPiece = p.GetPiece(fromSquare)
	}

	ply--
	for ply > 0 {
		gain[ply-1] = -max(-gain[ply-1], gain[ply])
		ply--
	}
	return gain[0]
}

// attacksTo returns every square from which color attacks square,
// given occupied as the blocker set to slide against. En passant is
// excluded: the move preceding it is never itself a capture, so it
// never matters for SEE.
func attacksTo(p *position.Position, square Square, color Color, occupied Bitboard) Bitboard {
	return (GetPawnAttacks(color.Flip(), square) & p.PiecesBb(color, Pawn)) |
		(GetPseudoAttacks(Knight, square) & p.PiecesBb(color, Knight)) |
		(GetPseudoAttacks(King, square) & p.PiecesBb(color, King)) |
		(GetAttacksBb(Rook, square, occupied) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen))) |
		(GetAttacksBb(Bishop, square, occupied) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)))
}

// revealedAttacks returns only the sliding attacks on square that the
// removal of a blocker may have newly exposed.
func revealedAttacks(p *position.Position, square Square, occupied Bitboard, color Color) Bitboard {
	return (GetAttacksBb(Rook, square, occupied) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen)) & occupied) |
		(GetAttacksBb(Bishop, square, occupied) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)) & occupied)
}

// leastValuableAttacker returns the square of color's cheapest piece
// among the given attackers, or SqNone if it has none.
func leastValuableAttacker(p *position.Position, attackers Bitboard, color Color) Square {
	for _, pt := range [6]PieceType{Pawn, Knight, Bishop, Rook, Queen, King} {
		if bb := attackers & p.PiecesBb(color, pt); bb != 0 {
			return bb.Lsb()
		}
	}
	return SqNone
}

func max(x, y Value) Value {
	if x > y {
		return x
	}
	return y
}
