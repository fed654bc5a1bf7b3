//
// corvid - chess engine core in Go
//

package types

import "strings"

// Piece is a colored chess piece. It packs to an index in [0,11] as
// 6*color + type, matching the board's piece-bitboard array layout.
type Piece int8

// Pieces, in 6*color+type packing order.
const (
	WhiteKing Piece = iota
	WhitePawn
	WhiteRook
	WhiteKnight
	WhiteBishop
	WhiteQueen
	BlackKing
	BlackPawn
	BlackRook
	BlackKnight
	BlackBishop
	BlackQueen
	PieceNone
	PieceLength = PieceNone
)

// MakePiece packs a color and piece type into a Piece.
func MakePiece(c Color, pt PieceType) Piece {
	return Piece(6*int(c) + int(pt))
}

// IsValid reports whether p is one of the twelve colored pieces.
func (p Piece) IsValid() bool {
	return p >= WhiteKing && p < PieceNone
}

// ColorOf returns the color of the piece.
func (p Piece) ColorOf() Color {
	return Color(p / 6)
}

// TypeOf returns the piece type, independent of color.
func (p Piece) TypeOf() PieceType {
	return PieceType(p % 6)
}

// ValueOf returns the unsigned material weight of the piece's type.
func (p Piece) ValueOf() Value {
	return p.TypeOf().ValueOf()
}

// PieceFromChar parses a single FEN piece letter ("P","n","Q", ...).
// Returns PieceNone if s does not name a valid piece.
func PieceFromChar(s string) Piece {
	if len(s) != 1 {
		return PieceNone
	}
	c := White
	ch := s
	if strings.ToLower(s) == s {
		c = Black
	} else {
		ch = strings.ToLower(s)
	}
	var pt PieceType
	switch ch {
	case "k":
		pt = King
	case "p":
		pt = Pawn
	case "r":
		pt = Rook
	case "n":
		pt = Knight
	case "b":
		pt = Bishop
	case "q":
		pt = Queen
	default:
		return PieceNone
	}
	return MakePiece(c, pt)
}

// Char returns the algebraic piece letter: upper case for White, lower
// case for Black, "-" for PieceNone.
func (p Piece) Char() string {
	if !p.IsValid() {
		return "-"
	}
	c := p.TypeOf().Char()
	if p.ColorOf() == Black {
		return strings.ToLower(c)
	}
	return c
}

// String is an alias for Char.
func (p Piece) String() string {
	return p.Char()
}
