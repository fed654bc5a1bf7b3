//
// corvid - chess engine core in Go
//

// Package position tracks a game as an ordered stack of fully
// materialized States plus a cursor into that stack. Making a move
// clones the current state, mutates the clone, and regenerates its
// legal move list; undo and redo simply move the cursor; nothing is
// reconstructed from a diff log.
package position

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mwendt/corvid/internal/board"
	"github.com/mwendt/corvid/internal/hash"
	"github.com/mwendt/corvid/internal/move"
	"github.com/mwendt/corvid/internal/movegen"
	. "github.com/mwendt/corvid/internal/types"
)

// StartFen is the piece placement and state of a standard new game.
const StartFen string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position is a game in progress: a stack of States and a cursor
// pointing at the current one. Moves beyond the cursor (from earlier
// redo-able undos) are discarded the moment a new move diverges from
// them.
type Position struct {
	hasher *hash.Hasher
	states []State
	cursor int
}

// NewPosition creates a position at the standard starting setup, or at
// the given FEN if one is supplied, keyed with the default Zobrist
// hasher. Additional arguments are ignored. Use NewPositionFen directly
// to supply a specific *hash.Hasher.
func NewPosition(fen ...string) *Position {
	f := StartFen
	if len(fen) > 0 {
		f = fen[0]
	}
	p, err := NewPositionFen(f, nil)
	if err != nil {
		p, _ = NewPositionFen(StartFen, nil)
	}
	return p
}

// NewPositionFen creates a position from a FEN string, or returns an
// error if the FEN is malformed. hasher supplies the Zobrist bitstring
// table used to key every state this Position ever holds; a nil hasher
// falls back to hash.New()'s default-seeded table. Passing an explicit
// *hash.Hasher (built with hash.New or hash.NewSeeded) lets a driver
// share one hasher across positions and the transposition table it
// probes, or use a non-default seed in tests.
func NewPositionFen(fen string, hasher *hash.Hasher) (*Position, error) {
	if hasher == nil {
		hasher = hash.New()
	}
	p := &Position{hasher: hasher}
	s, err := parseFen(fen)
	if err != nil {
		return nil, err
	}
	s.Moves, s.Check = movegen.Generate(&s.Board, s.Turn, s.Castling, s.EpSquare)
	s.Hash = p.hasher.Full(s.Board.Array(), s.Turn, s.Castling, s.EpSquare)
	p.states = []State{*s}
	p.cursor = 0
	return p, nil
}

// current returns a pointer to the state the cursor is on.
func (p *Position) current() *State {
	return &p.states[p.cursor]
}

// Moves returns the legal moves available in the current state.
func (p *Position) Moves() *move.List {
	return p.current().Moves
}

// Make plays m, which must be one of the moves Moves() currently
// returns. Any previously-undone future (states beyond the cursor) is
// discarded, since a diverging move invalidates it.
func (p *Position) Make(m move.Move) error {
	cur := p.current()
	if !cur.Moves.Contains(m) {
		return fmt.Errorf("position: %s is not a legal move in this position", m.String())
	}
	next := p.applyMove(cur, m)
	p.states = append(p.states[:p.cursor+1], next)
	p.cursor++
	return nil
}

// Skip plays a null move: the side to move changes but the board does
// not, other than clearing any en-passant target. The search package
// does not call it; callers must not call it while in check.
func (p *Position) Skip() {
	cur := p.current()
	next := State{
		Board:         cur.Board,
		Turn:          cur.Turn.Flip(),
		Castling:      cur.Castling,
		EpSquare:      SqNone,
		HalfMoveClock: cur.HalfMoveClock,
		Ply:           cur.Ply + 1,
		LastMove:      move.MoveNone,
		CapturedPiece: PieceNone,
	}

	key := cur.Hash
	key ^= p.hasher.Turn()
	if cur.EpSquare != SqNone {
		key ^= p.hasher.EnPassant()
	}

	next.Moves, next.Check = movegen.Generate(&next.Board, next.Turn, next.Castling, next.EpSquare)
	next.Hash = key
	p.states = append(p.states[:p.cursor+1], next)
	p.cursor++
}

// Undo moves the cursor back one state. Returns an error if already at
// the start of the game.
func (p *Position) Undo() error {
	if p.cursor == 0 {
		return errors.New("position: cannot undo before the start of the game")
	}
	p.cursor--
	return nil
}

// Redo moves the cursor forward to a state previously left behind by
// Undo. Returns an error if there is no such state (either at the end
// of the game, or because Make discarded it by diverging).
func (p *Position) Redo() error {
	if p.cursor+1 >= len(p.states) {
		return errors.New("position: no move to redo")
	}
	p.cursor++
	return nil
}

// FindMove looks up the legal move from src to dst in the current
// position. If promo is not PtNone it disambiguates among the four
// promotion pieces; it is ignored otherwise. Returns move.Invalid if
// no such move exists.
func (p *Position) FindMove(src, dst Square, promo PieceType) move.Move {
	moves := p.current().Moves
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.From() != src || m.To() != dst {
			continue
		}
		if promo == PtNone {
			return m
		}
		if t := m.Type(); t.IsPromotion() && t.PromotionPiece() == promo {
			return m
		}
	}
	return move.Invalid
}

// FindMoveString parses long algebraic notation ("e2e4", "e7e8q") and
// looks up the matching legal move, or move.Invalid if none matches.
func (p *Position) FindMoveString(s string) move.Move {
	if len(s) < 4 {
		return move.Invalid
	}
	src := MakeSquare(s[0:2])
	dst := MakeSquare(s[2:4])
	if src == SqNone || dst == SqNone {
		return move.Invalid
	}
	promo := PtNone
	if len(s) >= 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		}
	}
	return p.FindMove(src, dst, promo)
}

// IsCheck reports whether the side to move is in check.
func (p *Position) IsCheck() bool {
	return p.current().Check
}

// IsCheckmate reports whether the side to move is in check with no
// legal moves.
func (p *Position) IsCheckmate() bool {
	cur := p.current()
	return cur.Check && cur.Moves.Len() == 0
}

// IsStalemate reports whether the side to move is not in check but
// has no legal moves.
func (p *Position) IsStalemate() bool {
	cur := p.current()
	return !cur.Check && cur.Moves.Len() == 0
}

// IsDraw reports whether the current state is drawn: stalemate, the
// fifty-move rule, insufficient mating material, or a threefold
// repetition.
func (p *Position) IsDraw() bool {
	cur := p.current()
	if p.IsStalemate() {
		return true
	}
	if cur.HalfMoveClock >= 100 {
		return true
	}
	if hasInsufficientMaterial(&cur.Board) {
		return true
	}
	return p.isRepetition(2)
}

// isRepetition reports whether the current position has occurred reps
// times earlier in the game. Repetitions cannot reach further back
// than the last halfmove-clock reset (capture or pawn move), and only
// positions with the same side to move can repeat, hence the stride
// of two plies.
func (p *Position) isRepetition(reps int) bool {
	cur := p.current()
	count := 0
	lastClock := cur.HalfMoveClock
	for i := p.cursor - 2; i >= 0; i -= 2 {
		s := &p.states[i]
		if s.HalfMoveClock >= lastClock {
			break
		}
		lastClock = s.HalfMoveClock
		if s.Hash == cur.Hash {
			count++
			if count >= reps {
				return true
			}
		}
	}
	return false
}

// hasInsufficientMaterial reports whether neither side has enough
// material on the board to force checkmate: no pawns, rooks, or
// queens remain, and neither side has more than one minor piece.
func hasInsufficientMaterial(b *board.Board) bool {
	for _, c := range [2]Color{White, Black} {
		if b.PiecesBb(c, Pawn) != 0 || b.PiecesBb(c, Rook) != 0 || b.PiecesBb(c, Queen) != 0 {
			return false
		}
	}
	whiteMinors := b.PiecesBb(White, Knight).PopCount() + b.PiecesBb(White, Bishop).PopCount()
	blackMinors := b.PiecesBb(Black, Knight).PopCount() + b.PiecesBb(Black, Bishop).PopCount()
	return whiteMinors <= 1 && blackMinors <= 1
}

// applyMove builds the state that results from playing m on cur. It
// never mutates cur.
func (p *Position) applyMove(cur *State, m move.Move) State {
	next := State{
		Board:         cur.Board,
		Turn:          cur.Turn.Flip(),
		Castling:      cur.Castling,
		EpSquare:      SqNone,
		HalfMoveClock: cur.HalfMoveClock + 1,
		Ply:           cur.Ply + 1,
		LastMove:      m,
		CapturedPiece: PieceNone,
	}

	us := cur.Turn
	them := us.Flip()
	from, to := m.From(), m.To()
	fromPiece := next.Board.PieceAt(from)

	// Incremental Zobrist update: start from the parent key and XOR out
	// exactly the bitstrings that change, rather than recomputing from
	// scratch. h.Full is kept only as a cross-check for tests and for
	// building the very first state from a FEN.
	h := p.hasher
	key := cur.Hash
	key ^= h.Turn()
	if cur.EpSquare != SqNone {
		key ^= h.EnPassant()
	}

	movePiece := func(piece Piece, src, dst Square) {
		next.Board.Remove(src)
		next.Board.Put(piece, dst)
		key ^= h.PieceSquare(piece, src)
		key ^= h.PieceSquare(piece, dst)
	}
	removePiece := func(sq Square) Piece {
		piece := next.Board.Remove(sq)
		key ^= h.PieceSquare(piece, sq)
		return piece
	}

	switch m.Type() {
	case move.Quiet:
		movePiece(fromPiece, from, to)
		if fromPiece.TypeOf() == Pawn {
			next.HalfMoveClock = 0
		}
	case move.PawnDouble:
		movePiece(fromPiece, from, to)
		next.EpSquare = from.To(us.MoveDirection())
		next.HalfMoveClock = 0
	case move.Capture:
		next.CapturedPiece = removePiece(to)
		movePiece(fromPiece, from, to)
		next.HalfMoveClock = 0
	case move.EnPassant:
		capturedSq := to.To(them.MoveDirection())
		next.CapturedPiece = removePiece(capturedSq)
		movePiece(fromPiece, from, to)
		next.HalfMoveClock = 0
	case move.KingCastle:
		movePiece(fromPiece, from, to)
		rookFrom, rookTo := kingsideRookSquares(us)
		movePiece(MakePiece(us, Rook), rookFrom, rookTo)
	case move.QueenCastle:
		movePiece(fromPiece, from, to)
		rookFrom, rookTo := queensideRookSquares(us)
		movePiece(MakePiece(us, Rook), rookFrom, rookTo)
	default: // one of the 8 promotion move types
		if m.Type().IsCapture() {
			next.CapturedPiece = removePiece(to)
		}
		removePiece(from)
		promoted := MakePiece(us, m.Type().PromotionPiece())
		next.Board.Put(promoted, to)
		key ^= h.PieceSquare(promoted, to)
		next.HalfMoveClock = 0
	}

	if next.EpSquare != SqNone {
		key ^= h.EnPassant()
	}

	touched := GetCastlingRights(from) | GetCastlingRights(to)
	lost := next.Castling & touched
	for _, right := range [4]CastlingRights{CastlingWhiteOO, CastlingWhiteOOO, CastlingBlackOO, CastlingBlackOOO} {
		if lost.Has(right) {
			key ^= h.CastlingRight(right)
		}
	}
	next.Castling.Remove(touched)

	next.Moves, next.Check = movegen.Generate(&next.Board, next.Turn, next.Castling, next.EpSquare)
	next.Hash = key
	return next
}

func kingsideRookSquares(c Color) (Square, Square) {
	if c == White {
		return SqH1, SqF1
	}
	return SqH8, SqF8
}

func queensideRookSquares(c Color) (Square, Square) {
	if c == White {
		return SqA1, SqD1
	}
	return SqA8, SqD8
}

// //////////////////////////////////////////////////////////
// Accessors
// //////////////////////////////////////////////////////////

// ZobristKey returns the current position's Zobrist hash key.
func (p *Position) ZobristKey() Key {
	return p.current().Hash
}

// Board returns a copy of the current state's board. Being a value
// copy, the caller may inspect it freely without aliasing the
// position's own state.
func (p *Position) Board() board.Board {
	return p.current().Board
}

// NextPlayer returns the side to move.
func (p *Position) NextPlayer() Color {
	return p.current().Turn
}

// GetPiece returns the piece on sq, or PieceNone if empty.
func (p *Position) GetPiece(sq Square) Piece {
	return p.current().Board.PieceAt(sq)
}

// PiecesBb returns the bitboard of pieces of type pt and color c.
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.current().Board.PiecesBb(c, pt)
}

// OccupiedAll returns the bitboard of every occupied square.
func (p *Position) OccupiedAll() Bitboard {
	return p.current().Board.OccupiedAll()
}

// OccupiedBb returns the bitboard of every square occupied by color c.
func (p *Position) OccupiedBb(c Color) Bitboard {
	return p.current().Board.Occupied(c)
}

// CastlingRights returns the castling rights still available.
func (p *Position) CastlingRights() CastlingRights {
	return p.current().Castling
}

// GetEnPassantSquare returns the en-passant target square, or SqNone.
func (p *Position) GetEnPassantSquare() Square {
	return p.current().EpSquare
}

// KingSquare returns the square of color c's king.
func (p *Position) KingSquare(c Color) Square {
	return p.current().Board.KingSquare(c)
}

// HalfMoveClock returns the fifty-move-rule half-move counter.
func (p *Position) HalfMoveClock() int {
	return p.current().HalfMoveClock
}

// Ply returns the number of half-moves played since the start of the
// game (or since the position was set up from a non-initial FEN).
func (p *Position) Ply() int {
	return p.current().Ply
}

// FullMoveNumber returns the conventional 1-based full-move counter,
// derived from the half-move ply count.
func (p *Position) FullMoveNumber() int {
	return p.current().FullMoveNumber()
}

// LastMove returns the move that produced the current state, or
// move.MoveNone at the start of the game.
func (p *Position) LastMove() move.Move {
	return p.current().LastMove
}

// LastCapturedPiece returns the piece captured by LastMove, or
// PieceNone if the last move did not capture (or there is none).
func (p *Position) LastCapturedPiece() Piece {
	return p.current().CapturedPiece
}

// IsCapturingMove reports whether m captures a piece (en passant
// included) in the current position.
func (p *Position) IsCapturingMove(m move.Move) bool {
	return m.Type().IsCapture()
}

// String renders the position's FEN, board matrix, and side to move.
func (p *Position) String() string {
	cur := p.current()
	var sb strings.Builder
	sb.WriteString(p.StringFen())
	sb.WriteString("\n")
	sb.WriteString(cur.Board.String())
	sb.WriteString(fmt.Sprintf("Next player: %s\n", cur.Turn.String()))
	return sb.String()
}

// StringFen renders the current state as a FEN string.
func (p *Position) StringFen() string {
	cur := p.current()
	var sb strings.Builder
	sb.WriteString(cur.Board.FenPlacement())
	sb.WriteString(" ")
	sb.WriteString(cur.Turn.String())
	sb.WriteString(" ")
	sb.WriteString(cur.Castling.String())
	sb.WriteString(" ")
	sb.WriteString(cur.EpSquare.String())
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(cur.HalfMoveClock))
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(cur.FullMoveNumber()))
	return sb.String()
}

// //////////////////////////////////////////////////////////
// FEN parsing
// //////////////////////////////////////////////////////////

var (
	regexFenPos         = regexp.MustCompile("^[0-8pPnNbBrRqQkK/]+$")
	regexWorB           = regexp.MustCompile("^[wb]$")
	regexCastlingRights = regexp.MustCompile("^(K?Q?k?q?|-)$")
	regexEnPassant      = regexp.MustCompile("^([a-h][1-8]|-)$")
)

// parseFen builds an initial State from a FEN string. The move list
// and hash are left for the caller to fill in, since both need a
// fully-built board to compute.
func parseFen(fen string) (*State, error) {
	fen = strings.TrimSpace(fen)
	parts := strings.Split(fen, " ")
	if len(parts) == 0 || parts[0] == "" {
		return nil, errors.New("position: fen must not be empty")
	}
	if !regexFenPos.MatchString(parts[0]) {
		return nil, errors.New("position: fen piece placement contains invalid characters")
	}

	b := board.Empty()
	rank, file := Rank8, FileA
	for _, c := range parts[0] {
		switch {
		case c == '/':
			if file != FileH+1 {
				return nil, errors.New("position: fen rank does not cover exactly 8 files")
			}
			rank--
			file = FileA
		case c >= '1' && c <= '8':
			file += File(c - '0')
		default:
			piece := PieceFromChar(string(c))
			if piece == PieceNone {
				return nil, fmt.Errorf("position: invalid piece character %q", string(c))
			}
			b.Put(piece, SquareOf(file, rank))
			file++
		}
	}
	if rank != Rank1 || file != FileH+1 {
		return nil, errors.New("position: fen piece placement did not cover exactly 64 squares")
	}

	s := &State{Board: b, Turn: White, Castling: CastlingNone, EpSquare: SqNone, Ply: 0}

	if len(parts) >= 2 {
		if !regexWorB.MatchString(parts[1]) {
			return nil, errors.New("position: fen side to move contains invalid characters")
		}
		if parts[1] == "b" {
			s.Turn = Black
			s.Ply = 1
		}
	}

	if len(parts) >= 3 {
		if !regexCastlingRights.MatchString(parts[2]) {
			return nil, errors.New("position: fen castling rights contains invalid characters")
		}
		for _, c := range parts[2] {
			switch c {
			case 'K':
				s.Castling.Add(CastlingWhiteOO)
			case 'Q':
				s.Castling.Add(CastlingWhiteOOO)
			case 'k':
				s.Castling.Add(CastlingBlackOO)
			case 'q':
				s.Castling.Add(CastlingBlackOOO)
			}
		}
	}

	if len(parts) >= 4 {
		if !regexEnPassant.MatchString(parts[3]) {
			return nil, errors.New("position: fen en passant square contains invalid characters")
		}
		if parts[3] != "-" {
			s.EpSquare = MakeSquare(parts[3])
		}
	}

	if len(parts) >= 5 {
		n, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, fmt.Errorf("position: invalid halfmove clock: %w", err)
		}
		s.HalfMoveClock = n
	}

	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil {
			return nil, fmt.Errorf("position: invalid fullmove number: %w", err)
		}
		if n == 0 {
			n = 1
		}
		s.Ply = 2*n - 2 + int(s.Turn)
	}

	return s, nil
}
