//
// corvid - chess engine core in Go
//

package position

import (
	"github.com/mwendt/corvid/internal/board"
	"github.com/mwendt/corvid/internal/move"
	. "github.com/mwendt/corvid/internal/types"
)

// State is one fully-materialized snapshot of the game: the board, the
// side to move, castling rights, the en-passant target, the fifty-move
// clock, the Zobrist key, and the legal move list computed for it.
// Position keeps a stack of these rather than a diff-based undo log,
// so make/undo/redo are plain index moves into the stack and nothing
// needs to be reconstructed.
type State struct {
	Board         board.Board
	Turn          Color
	Castling      CastlingRights
	EpSquare      Square
	HalfMoveClock int
	Ply           int
	Hash          Key
	Check         bool
	Moves         *move.List
	LastMove      move.Move
	CapturedPiece Piece
}

// FullMoveNumber returns the conventional 1-based full move counter
// derived from the half-move ply count.
func (s *State) FullMoveNumber() int {
	return s.Ply/2 + 1
}
