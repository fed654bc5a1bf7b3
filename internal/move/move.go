//
// corvid - chess engine core in Go
//

// Package move defines the packed move representation shared by the move
// generator, search, and move ordering.
package move

import (
	"strings"

	. "github.com/mwendt/corvid/internal/types"
)

// Move is a 16-bit packed chess move.
//
//	BITMAP 16-bit
//	|type:4 |from:6 |to:6  |
//	15    12 11    6 5    0
type Move uint16

// MoveType distinguishes quiet moves, captures, castling, en passant, and
// the eight promotion variants (plain/capturing x knight/bishop/rook/queen).
type MoveType uint8

// Move types, in the order their 4-bit field encodes them.
const (
	Quiet MoveType = iota
	PawnDouble
	KingCastle
	QueenCastle
	Capture
	EnPassant
	KnightPromo
	RookPromo
	BishopPromo
	QueenPromo
	KnightPromoCapture
	RookPromoCapture
	BishopPromoCapture
	QueenPromoCapture
	moveTypeLength
)

// IsValid reports whether mt is one of the 14 defined move types.
func (mt MoveType) IsValid() bool {
	return mt < moveTypeLength
}

// IsCapture reports whether a move of this type removes an enemy piece
// (en passant included, plain promotions excluded).
func (mt MoveType) IsCapture() bool {
	switch mt {
	case Capture, EnPassant, KnightPromoCapture, RookPromoCapture, BishopPromoCapture, QueenPromoCapture:
		return true
	default:
		return false
	}
}

// IsPromotion reports whether a move of this type replaces the pawn with
// a promoted piece, capturing or not.
func (mt MoveType) IsPromotion() bool {
	switch mt {
	case KnightPromo, RookPromo, BishopPromo, QueenPromo,
		KnightPromoCapture, RookPromoCapture, BishopPromoCapture, QueenPromoCapture:
		return true
	default:
		return false
	}
}

// PromotionPiece returns the piece type a promotion move of this type
// produces. Must be ignored when !mt.IsPromotion().
func (mt MoveType) PromotionPiece() PieceType {
	switch mt {
	case KnightPromo, KnightPromoCapture:
		return Knight
	case RookPromo, RookPromoCapture:
		return Rook
	case BishopPromo, BishopPromoCapture:
		return Bishop
	case QueenPromo, QueenPromoCapture:
		return Queen
	default:
		return PtNone
	}
}

func (mt MoveType) String() string {
	switch mt {
	case Quiet:
		return "Quiet"
	case PawnDouble:
		return "PawnDouble"
	case KingCastle:
		return "KingCastle"
	case QueenCastle:
		return "QueenCastle"
	case Capture:
		return "Capture"
	case EnPassant:
		return "EnPassant"
	case KnightPromo:
		return "KnightPromo"
	case RookPromo:
		return "RookPromo"
	case BishopPromo:
		return "BishopPromo"
	case QueenPromo:
		return "QueenPromo"
	case KnightPromoCapture:
		return "KnightPromoCapture"
	case RookPromoCapture:
		return "RookPromoCapture"
	case BishopPromoCapture:
		return "BishopPromoCapture"
	case QueenPromoCapture:
		return "QueenPromoCapture"
	default:
		return "Invalid"
	}
}

const (
	toShift   uint   = 0
	fromShift uint   = 6
	typeShift uint   = 12
	squareMask Move  = 0x3F
	toMask     Move  = squareMask
	fromMask   Move  = squareMask << fromShift
)

// MoveNone is the zero value: a1a1 Quiet, never produced by the generator
// and used as a "no move" sentinel.
const MoveNone Move = 0

// Invalid is the sentinel returned by lookups (e.g. find-by-notation) that
// fail to match any move in the current position's move list.
const Invalid Move = Move(moveTypeLength) << typeShift

// New packs a source square, destination square, and move type into a Move.
func New(from, to Square, t MoveType) Move {
	return Move(to)<<toShift | Move(from)<<fromShift | Move(t)<<typeShift
}

// From returns the move's source square.
func (m Move) From() Square {
	return Square((m & fromMask) >> fromShift)
}

// To returns the move's destination square.
func (m Move) To() Square {
	return Square((m & toMask) >> toShift)
}

// Type returns the move's MoveType.
func (m Move) Type() MoveType {
	return MoveType(m >> typeShift)
}

// IsValid reports whether m has in-range squares and a defined move type.
// MoveNone and Invalid are not valid in this sense.
func (m Move) IsValid() bool {
	return m != MoveNone && m != Invalid &&
		m.From().IsValid() && m.To().IsValid() && m.Type().IsValid()
}

// String renders m in long algebraic notation: source square, destination
// square, and for promotions a trailing lowercase piece letter in
// {q, r, b, n}. E.g. "e2e4", "e7e8q".
func (m Move) String() string {
	if m == MoveNone || m == Invalid {
		return "0000"
	}
	var sb strings.Builder
	sb.WriteString(m.From().String())
	sb.WriteString(m.To().String())
	if t := m.Type(); t.IsPromotion() {
		sb.WriteString(strings.ToLower(t.PromotionPiece().Char()))
	}
	return sb.String()
}
