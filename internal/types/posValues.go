//
// corvid - chess engine core in Go
//

package types

import (
	"github.com/mwendt/corvid/internal/assert"
)

// PosMidValue returns the pre computed positional value for the piece
// on the given square. Evaluation is material plus a single flat
// piece-square placement term - there is no game-phase interpolation
// between a midgame and an endgame table.
func PosMidValue(p Piece, sq Square) Value {
	if assert.DEBUG {
		assert.Assert(initialized, "Pos values have not been initialized by the types package init().")
	}
	return posMidValue[p][sq]
}

// initPosValues pre computes an array containing the placement value of
// each piece for each square. The tables below are written as seen from
// white's side of the board, so white pieces index them flipped and
// black pieces index them directly.
func initPosValues() {
	for pc := WhiteKing; pc <= BlackQueen; pc++ {
		for sq := SqA1; sq <= SqH8; sq++ {
			switch pc {
			case WhiteKing:
				posMidValue[pc][sq] = kingMidGame[63-sq]
			case WhitePawn:
				posMidValue[pc][sq] = pawnsMidGame[63-sq]
			case WhiteKnight:
				posMidValue[pc][sq] = knightMidGame[63-sq]
			case WhiteBishop:
				posMidValue[pc][sq] = bishopMidGame[63-sq]
			case WhiteRook:
				posMidValue[pc][sq] = rookMidGame[63-sq]
			case WhiteQueen:
				posMidValue[pc][sq] = queenMidGame[63-sq]
			case BlackKing:
				posMidValue[pc][sq] = kingMidGame[sq]
			case BlackPawn:
				posMidValue[pc][sq] = pawnsMidGame[sq]
			case BlackKnight:
				posMidValue[pc][sq] = knightMidGame[sq]
			case BlackBishop:
				posMidValue[pc][sq] = bishopMidGame[sq]
			case BlackRook:
				posMidValue[pc][sq] = rookMidGame[sq]
			case BlackQueen:
				posMidValue[pc][sq] = queenMidGame[sq]
			default:
			}
		}
	}
}

var (
	posMidValue = [PieceLength][SqLength]Value{}

	// positional values for pieces
	// @formatter:off
	// PAWN Table
	pawnsMidGame = [SqLength]Value{
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 5, 5, 5, 5, 5, 5, 0,
		5, 5, 10, 30, 30, 10, 5, 5,
		0, 0, 0, 30, 30, 0, 0, 0,
		5, -5, -10, 0, 0, -10, -5, 5,
		5, 10, 10, -30, -30, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0}

	// KNIGHT Table
	knightMidGame = [SqLength]Value{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -25, -20, -30, -30, -20, -25, -50}

	// BISHOP Table
	bishopMidGame = [SqLength]Value{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -40, -10, -10, -40, -10, -20}

	// ROOK Table
	rookMidGame = [SqLength]Value{
		5, 5, 5, 5, 5, 5, 5, 5,
		10, 10, 10, 10, 10, 10, 10, 10,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		-15, -10, 15, 15, 15, 15, -10, -15}

	// QUEEN Table
	queenMidGame = [SqLength]Value{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-5, 0, 2, 2, 2, 2, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20}

	// KING Table
	kingMidGame = [SqLength]Value{
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-10, -20, -20, -30, -30, -30, -20, -10,
		0, 0, -20, -20, -20, -20, 0, 0,
		20, 50, 0, -20, -20, 0, 50, 20}
	// @formatter:on
)
