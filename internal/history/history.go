//
// corvid - chess engine core in Go
//

// Package history implements the history heuristic: a piece/to-square
// table of scores, bumped by depth-squared whenever a quiet move
// causes a beta cutoff, that the move picker uses to order the quiet
// moves it has no hash or capture information about.
package history

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mwendt/corvid/internal/move"
	. "github.com/mwendt/corvid/internal/types"
)

var out = message.NewPrinter(language.German)

// Table is a 12x64 piece-by-destination-square history heuristic.
type Table struct {
	scores [PieceLength][SqLength]int64
}

// New creates an empty history table.
func New() *Table {
	return &Table{}
}

// Get returns the current score for a move made by piece p.
func (t *Table) Get(p Piece, m move.Move) int64 {
	return t.scores[p][m.To()]
}

// Update bumps the score for a quiet move made by piece p that caused
// a beta cutoff at the given depth. Captures, en passant, and
// promotion-captures are not tracked: their ordering comes from SEE,
// not from how often they have cut off search.
func (t *Table) Update(p Piece, m move.Move, depth int) {
	if m.Type().IsCapture() {
		return
	}
	t.scores[p][m.To()] += int64(depth) * int64(depth)
}

// Clear resets every entry to zero, e.g. between searches of
// unrelated positions.
func (t *Table) Clear() {
	t.scores = [PieceLength][SqLength]int64{}
}

func (t *Table) String() string {
	var sb strings.Builder
	for p := Piece(0); p < PieceLength; p++ {
		for sq := SqA1; sq < SqNone; sq++ {
			if s := t.scores[p][sq]; s != 0 {
				sb.WriteString(out.Sprintf("%s->%s: %d\n", p.String(), sq.String(), s))
			}
		}
	}
	return sb.String()
}
