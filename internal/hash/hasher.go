//
// corvid - chess engine core in Go
//

// Package hash implements the Zobrist hashing scheme used to key the
// transposition table: one bitstring per (square, piece) pair, one for
// the side to move, one per castling right, and a single flag for the
// presence of an en-passant target (not one bitstring per file).
package hash

import (
	"math/rand"

	"github.com/mwendt/corvid/internal/types"
)

// pieceSquareCount covers all twelve pieces on all 64 squares.
const pieceSquareCount = 64 * 12

// bitstringCount is the full 64*12 + 1 (turn) + 4 (castling rights)
// + 1 (en-passant present) Zobrist bitstring table.
const bitstringCount = pieceSquareCount + 1 + 4 + 1

// defaultSeed is fixed so that two Hashers (and therefore two
// transposition tables built in different processes) agree on the same
// key space. There is nothing special about the value itself.
const defaultSeed = 20210101

// Hasher owns the table of random bitstrings and combines them into a
// single Key for a given board/castling/turn/en-passant state.
type Hasher struct {
	bitstrings [bitstringCount]types.Key
}

// New builds a Hasher whose bitstrings are drawn from a PRNG seeded with
// defaultSeed, so all Hashers constructed this way are identical.
func New() *Hasher {
	return NewSeeded(defaultSeed)
}

// NewSeeded builds a Hasher with an explicit seed, primarily for tests
// that want to rule out a reproducible key space as a source of
// collisions.
func NewSeeded(seed int64) *Hasher {
	h := &Hasher{}
	r := rand.New(rand.NewSource(seed))
	for i := range h.bitstrings {
		h.bitstrings[i] = types.Key(r.Uint64())
	}
	return h
}

// PieceSquare returns the bitstring for a piece standing on a square.
func (h *Hasher) PieceSquare(p types.Piece, sq types.Square) types.Key {
	return h.bitstrings[int(sq)*12+int(p)]
}

// Turn returns the bitstring XORed in whenever it is Black to move.
func (h *Hasher) Turn() types.Key {
	return h.bitstrings[pieceSquareCount]
}

// castlingBitIndex maps a single castling-right bit to its bitstring.
// CastlingWhiteOO, CastlingWhiteOOO, CastlingBlackOO, CastlingBlackOOO
// are the four one-bit values of types.CastlingRights.
func castlingBitIndex(right types.CastlingRights) int {
	switch right {
	case types.CastlingWhiteOO:
		return 0
	case types.CastlingWhiteOOO:
		return 1
	case types.CastlingBlackOO:
		return 2
	case types.CastlingBlackOOO:
		return 3
	default:
		panic("hash: castlingBitIndex called with a non-single-bit right")
	}
}

// CastlingRight returns the bitstring for a single castling-right bit.
// Callers XOR this in once per bit that is currently held, and XOR it
// again whenever that bit is gained or lost.
func (h *Hasher) CastlingRight(right types.CastlingRights) types.Key {
	return h.bitstrings[pieceSquareCount+1+castlingBitIndex(right)]
}

// EnPassant returns the bitstring XORed in whenever an en-passant
// capture is available in the current position, regardless of which
// file it is on.
func (h *Hasher) EnPassant() types.Key {
	return h.bitstrings[bitstringCount-1]
}

// Full computes a Zobrist key from scratch, for initial setup and for
// verifying incrementally-maintained keys in tests.
func (h *Hasher) Full(board [64]types.Piece, turn types.Color, castling types.CastlingRights, epSquare types.Square) types.Key {
	var key types.Key
	if turn == types.Black {
		key ^= h.Turn()
	}
	if epSquare != types.SqNone {
		key ^= h.EnPassant()
	}
	for _, right := range []types.CastlingRights{
		types.CastlingWhiteOO, types.CastlingWhiteOOO, types.CastlingBlackOO, types.CastlingBlackOOO,
	} {
		if castling.Has(right) {
			key ^= h.CastlingRight(right)
		}
	}
	for sq := types.SqA1; sq < types.SqNone; sq++ {
		if p := board[sq]; p.IsValid() {
			key ^= h.PieceSquare(p, sq)
		}
	}
	return key
}
