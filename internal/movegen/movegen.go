//
// corvid - chess engine core in Go
//

// Package movegen generates fully legal moves for a board position in a
// single pass: it computes the set of squares that resolve any check
// (the check mask), a pin mask per pinned piece (the line from the
// king through that piece to its pinner), and the set of squares
// attacked by the side not to move, then emits only moves that respect
// all three. There is no pseudo-legal-then-filter phase and no trial
// make/unmake per candidate move.
package movegen

import (
	"github.com/mwendt/corvid/internal/board"
	"github.com/mwendt/corvid/internal/move"
	. "github.com/mwendt/corvid/internal/types"
)

// allSquares is a check mask that restricts nothing: every square
// resolves a "check" that isn't happening.
const allSquares Bitboard = ^Bitboard(0)

// Generate produces every legal move for the side to move (us) given
// the board, castling rights, and en-passant target square, and
// reports whether us is currently in check. It is a pure function of
// its arguments - it never mutates b.
func Generate(b *board.Board, us Color, castling CastlingRights, epSquare Square) (*move.List, bool) {
	list := move.NewList()

	them := us.Flip()
	kingSq := b.KingSquare(us)
	occAll := b.OccupiedAll()
	occUs := b.Occupied(us)
	occThem := b.Occupied(them)

	occWithoutOurKing := occAll &^ kingSq.Bb()
	attackedByThem := attacksBy(b, them, occWithoutOurKing)
	inCheck := attackedByThem.Has(kingSq)

	checkers := attackersTo(b, kingSq, them, occAll)
	checkerCount := checkers.PopCount()

	checkMask := allSquares
	if checkerCount == 1 {
		checkerSq := checkers.Lsb()
		checkMask = checkers | Intermediate(kingSq, checkerSq)
	}

	generateKingMoves(list, b, us, kingSq, occUs, attackedByThem)

	if checkerCount < 2 {
		pinMask := computePinMasks(b, us, kingSq, occAll, occUs)

		generatePawnMoves(list, b, us, them, occAll, occThem, epSquare, checkMask, pinMask)
		generateStepMoves(list, b, Knight, us, occUs, occThem, checkMask, pinMask)
		generateSliderMoves(list, b, Bishop, us, occAll, occUs, occThem, checkMask, pinMask)
		generateSliderMoves(list, b, Rook, us, occAll, occUs, occThem, checkMask, pinMask)
		generateSliderMoves(list, b, Queen, us, occAll, occUs, occThem, checkMask, pinMask)

		if !inCheck {
			generateCastlingMoves(list, b, us, castling, occAll, attackedByThem)
		}
	}

	return list, inCheck
}

// attacksBy returns the union of every square attacked by color c's
// pieces, given the occupancy to slide against.
func attacksBy(b *board.Board, c Color, occ Bitboard) Bitboard {
	var att Bitboard

	for bb := b.PiecesBb(c, Pawn); bb != 0; {
		sq := bb.PopLsb()
		att |= GetPawnAttacks(c, sq)
	}
	for bb := b.PiecesBb(c, Knight); bb != 0; {
		sq := bb.PopLsb()
		att |= GetPseudoAttacks(Knight, sq)
	}
	for bb := b.PiecesBb(c, King); bb != 0; {
		sq := bb.PopLsb()
		att |= GetPseudoAttacks(King, sq)
	}
	for bb := b.PiecesBb(c, Bishop) | b.PiecesBb(c, Queen); bb != 0; {
		sq := bb.PopLsb()
		att |= GetAttacksBb(Bishop, sq, occ)
	}
	for bb := b.PiecesBb(c, Rook) | b.PiecesBb(c, Queen); bb != 0; {
		sq := bb.PopLsb()
		att |= GetAttacksBb(Rook, sq, occ)
	}
	return att
}

// attackersTo returns the bitboard of by's pieces that attack sq given
// occupancy occ.
func attackersTo(b *board.Board, sq Square, by Color, occ Bitboard) Bitboard {
	return (GetPawnAttacks(by.Flip(), sq) & b.PiecesBb(by, Pawn)) |
		(GetPseudoAttacks(Knight, sq) & b.PiecesBb(by, Knight)) |
		(GetPseudoAttacks(King, sq) & b.PiecesBb(by, King)) |
		(GetAttacksBb(Bishop, sq, occ) & (b.PiecesBb(by, Bishop) | b.PiecesBb(by, Queen))) |
		(GetAttacksBb(Rook, sq, occ) & (b.PiecesBb(by, Rook) | b.PiecesBb(by, Queen)))
}

// computePinMasks finds, for every square holding a piece of color us
// that is pinned to its king, the line it is restricted to moving
// along (the squares between the king and the pinner, plus the pinner
// itself). Unpinned squares map to allSquares, i.e. no restriction.
//
// The technique: treat the king as if it were a rook and a bishop and
// look for an aligned enemy slider of the matching kind on the far
// side of exactly one of our own pieces - that piece is pinned.
func computePinMasks(b *board.Board, us Color, kingSq Square, occAll, occUs Bitboard) [SqLength]Bitboard {
	var pinMask [SqLength]Bitboard
	for sq := SqA1; sq < SqNone; sq++ {
		pinMask[sq] = allSquares
	}

	them := us.Flip()
	rookLike := GetPseudoAttacks(Rook, kingSq) & (b.PiecesBb(them, Rook) | b.PiecesBb(them, Queen))
	bishopLike := GetPseudoAttacks(Bishop, kingSq) & (b.PiecesBb(them, Bishop) | b.PiecesBb(them, Queen))

	for bb := rookLike | bishopLike; bb != 0; {
		pinnerSq := bb.PopLsb()
		between := Intermediate(kingSq, pinnerSq)
		blockers := between & occAll
		if blockers.PopCount() == 1 && blockers&occUs == blockers {
			pinnedSq := blockers.Lsb()
			pinMask[pinnedSq] = between | pinnerSq.Bb()
		}
	}
	return pinMask
}

func generateStepMoves(list *move.List, b *board.Board, pt PieceType, us Color, occUs, occThem Bitboard, checkMask Bitboard, pinMask [SqLength]Bitboard) {
	for bb := b.PiecesBb(us, pt); bb != 0; {
		from := bb.PopLsb()
		targets := GetPseudoAttacks(pt, from) &^ occUs & checkMask & pinMask[from]
		emitTargets(list, from, targets, occThem)
	}
}

func generateSliderMoves(list *move.List, b *board.Board, pt PieceType, us Color, occAll, occUs, occThem Bitboard, checkMask Bitboard, pinMask [SqLength]Bitboard) {
	for bb := b.PiecesBb(us, pt); bb != 0; {
		from := bb.PopLsb()
		targets := GetAttacksBb(pt, from, occAll) &^ occUs & checkMask & pinMask[from]
		emitTargets(list, from, targets, occThem)
	}
}

func emitTargets(list *move.List, from Square, targets, occThem Bitboard) {
	for targets != 0 {
		to := targets.PopLsb()
		if occThem.Has(to) {
			list.PushBack(move.New(from, to, move.Capture))
		} else {
			list.PushBack(move.New(from, to, move.Quiet))
		}
	}
}

func generateKingMoves(list *move.List, b *board.Board, us Color, kingSq Square, occUs Bitboard, attackedByThem Bitboard) {
	targets := GetPseudoAttacks(King, kingSq) &^ occUs &^ attackedByThem
	occThem := b.Occupied(us.Flip())
	emitTargets(list, kingSq, targets, occThem)
}

func generateCastlingMoves(list *move.List, b *board.Board, us Color, castling CastlingRights, occAll, attackedByThem Bitboard) {
	if us == White {
		if castling.Has(CastlingWhiteOO) &&
			occAll&Intermediate(SqE1, SqH1) == 0 &&
			attackedByThem&(SqE1.Bb()|SqF1.Bb()|SqG1.Bb()) == 0 {
			list.PushBack(move.New(SqE1, SqG1, move.KingCastle))
		}
		if castling.Has(CastlingWhiteOOO) &&
			occAll&Intermediate(SqE1, SqA1) == 0 &&
			attackedByThem&(SqE1.Bb()|SqD1.Bb()|SqC1.Bb()) == 0 {
			list.PushBack(move.New(SqE1, SqC1, move.QueenCastle))
		}
		return
	}
	if castling.Has(CastlingBlackOO) &&
		occAll&Intermediate(SqE8, SqH8) == 0 &&
		attackedByThem&(SqE8.Bb()|SqF8.Bb()|SqG8.Bb()) == 0 {
		list.PushBack(move.New(SqE8, SqG8, move.KingCastle))
	}
	if castling.Has(CastlingBlackOOO) &&
		occAll&Intermediate(SqE8, SqA8) == 0 &&
		attackedByThem&(SqE8.Bb()|SqD8.Bb()|SqC8.Bb()) == 0 {
		list.PushBack(move.New(SqE8, SqC8, move.QueenCastle))
	}
}

var promoTypes = [4]move.MoveType{move.QueenPromo, move.RookPromo, move.BishopPromo, move.KnightPromo}
var promoCaptureTypes = [4]move.MoveType{move.QueenPromoCapture, move.RookPromoCapture, move.BishopPromoCapture, move.KnightPromoCapture}

func generatePawnMoves(list *move.List, b *board.Board, us, them Color, occAll, occThem Bitboard, epSquare Square, checkMask Bitboard, pinMask [SqLength]Bitboard) {
	dir := us.MoveDirection()
	promoRank := us.PromotionRankBb()
	doubleRank := us.PawnDoubleRank()

	for bb := b.PiecesBb(us, Pawn); bb != 0; {
		from := bb.PopLsb()
		allowed := checkMask & pinMask[from]

		// single push
		to := from.To(dir)
		if to.IsValid() && !occAll.Has(to) {
			if allowed.Has(to) {
				addPawnMove(list, from, to, promoRank, false)
			}
			// double push, only possible if the single-push square was empty
			if doubleRank.Has(to) {
				to2 := to.To(dir)
				if to2.IsValid() && !occAll.Has(to2) && allowed.Has(to2) {
					list.PushBack(move.New(from, to2, move.PawnDouble))
				}
			}
		}

		// captures
		for targets := GetPawnAttacks(us, from) & occThem; targets != 0; {
			capTo := targets.PopLsb()
			if allowed.Has(capTo) {
				addPawnMove(list, from, capTo, promoRank, true)
			}
		}

		// en passant
		if epSquare != SqNone && GetPawnAttacks(us, from).Has(epSquare) {
			capturedSq := epSquare.To(them.MoveDirection())
			if (allowed.Has(epSquare) || allowed.Has(capturedSq)) &&
				legalEnPassant(b, us, them, from, epSquare, capturedSq) {
				list.PushBack(move.New(from, epSquare, move.EnPassant))
			}
		}
	}
}

func addPawnMove(list *move.List, from, to Square, promoRank Bitboard, capture bool) {
	if promoRank.Has(to) {
		types := promoTypes
		if capture {
			types = promoCaptureTypes
		}
		for _, t := range types {
			list.PushBack(move.New(from, to, t))
		}
		return
	}
	if capture {
		list.PushBack(move.New(from, to, move.Capture))
	} else {
		list.PushBack(move.New(from, to, move.Quiet))
	}
}

// legalEnPassant guards against the rare case where capturing en
// passant would expose the king to a rank attack that only exists
// because both pawns leave the rank simultaneously - a pin that
// neither pawn's individual pin mask can see.
func legalEnPassant(b *board.Board, us, them Color, from, epSquare, capturedSq Square) bool {
	kingSq := b.KingSquare(us)
	occAfter := b.OccupiedAll()
	occAfter &^= from.Bb()
	occAfter &^= capturedSq.Bb()
	occAfter |= epSquare.Bb()

	rookLike := b.PiecesBb(them, Rook) | b.PiecesBb(them, Queen)
	if GetAttacksBb(Rook, kingSq, occAfter)&rookLike != 0 {
		return false
	}
	bishopLike := b.PiecesBb(them, Bishop) | b.PiecesBb(them, Queen)
	if GetAttacksBb(Bishop, kingSq, occAfter)&bishopLike != 0 {
		return false
	}
	return true
}
