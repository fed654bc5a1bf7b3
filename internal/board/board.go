//
// corvid - chess engine core in Go
//

// Package board holds the raw chess board representation: a 64-entry
// mailbox plus the fourteen bitboards (six piece types by two colors,
// plus the two color-aggregate occupancies) kept in lockstep with it.
// It knows nothing about moves, turns, or rules - only how pieces sit
// on squares.
package board

import (
	"strconv"
	"strings"

	"github.com/mwendt/corvid/internal/assert"
	. "github.com/mwendt/corvid/internal/types"
)

// Board is a plain value type: copying it (e.g. `b2 := b1`) deep-copies
// every bitboard and the mailbox, which is exactly what the position's
// state stack needs when it clones a state for `make`.
type Board struct {
	mailbox    [SqLength]Piece
	piecesBb   [ColorLength][PtLength]Bitboard
	occupiedBb [ColorLength]Bitboard
	kingSquare [ColorLength]Square
}

// Empty returns a Board with no pieces on it.
func Empty() Board {
	b := Board{}
	for sq := SqA1; sq < SqNone; sq++ {
		b.mailbox[sq] = PieceNone
	}
	b.kingSquare[White] = SqNone
	b.kingSquare[Black] = SqNone
	return b
}

// PieceAt returns the piece on sq, or PieceNone if it is empty.
func (b *Board) PieceAt(sq Square) Piece {
	return b.mailbox[sq]
}

// PiecesBb returns the bitboard of pieces of type pt and color c.
func (b *Board) PiecesBb(c Color, pt PieceType) Bitboard {
	return b.piecesBb[c][pt]
}

// Occupied returns the combined bitboard of all pieces of color c.
func (b *Board) Occupied(c Color) Bitboard {
	return b.occupiedBb[c]
}

// OccupiedAll returns the bitboard of every occupied square.
func (b *Board) OccupiedAll() Bitboard {
	return b.occupiedBb[White] | b.occupiedBb[Black]
}

// KingSquare returns the square of color c's king.
func (b *Board) KingSquare(c Color) Square {
	return b.kingSquare[c]
}

// Array returns a copy of the 64-entry mailbox, for callers (e.g. the
// hasher) that need to scan every square without depending on board's
// internal layout.
func (b *Board) Array() [SqLength]Piece {
	return b.mailbox
}

// Put places piece p on sq, which must currently be empty.
func (b *Board) Put(p Piece, sq Square) {
	if assert.DEBUG {
		assert.Assert(b.mailbox[sq] == PieceNone, "board.Put: square %s already occupied", sq.String())
	}
	c := p.ColorOf()
	pt := p.TypeOf()
	b.mailbox[sq] = p
	b.piecesBb[c][pt].PushSquare(sq)
	b.occupiedBb[c].PushSquare(sq)
	if pt == King {
		b.kingSquare[c] = sq
	}
}

// Remove empties sq, which must currently hold a piece, and returns
// what was there.
func (b *Board) Remove(sq Square) Piece {
	p := b.mailbox[sq]
	if assert.DEBUG {
		assert.Assert(p != PieceNone, "board.Remove: square %s already empty", sq.String())
	}
	c := p.ColorOf()
	pt := p.TypeOf()
	b.mailbox[sq] = PieceNone
	b.piecesBb[c][pt].PopSquare(sq)
	b.occupiedBb[c].PopSquare(sq)
	return p
}

// Move relocates whatever piece sits on from to to, which must be
// empty. It does not handle captures - callers must Remove the
// captured piece (if any) first.
func (b *Board) Move(from, to Square) {
	b.Put(b.Remove(from), to)
}

// String renders the board as an 8x8 grid, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			sb.WriteString("| ")
			sb.WriteString(b.mailbox[SquareOf(f, Rank8-r)].Char())
			sb.WriteString(" ")
		}
		sb.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return sb.String()
}

// FenPlacement renders just the piece-placement field of a FEN string.
func (b *Board) FenPlacement() string {
	var sb strings.Builder
	for r := Rank1; r <= Rank8; r++ {
		empty := 0
		for f := FileA; f <= FileH; f++ {
			p := b.mailbox[SquareOf(f, Rank8-r)]
			if p == PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r < Rank8 {
			sb.WriteString("/")
		}
	}
	return sb.String()
}
