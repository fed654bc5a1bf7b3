//
// corvid - chess engine core in Go
//

package movepicker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwendt/corvid/internal/position"
	. "github.com/mwendt/corvid/internal/types"
)

// TestSEEWinningCapture covers a pawn taking an undefended rook: the
// static exchange evaluation must be positive, the material won.
func TestSEEWinningCapture(t *testing.T) {
	a := assert.New(t)

	p := position.NewPosition("4k3/8/8/3r4/4P3/8/8/4K3 w - - 0 1")
	m := p.FindMoveString("e4d5")
	a.True(m.IsValid())

	a.True(SEE(p, m) > 0)
}

// TestSEELosingCapture covers a rook capturing a pawn that is defended
// by another pawn: the recapture leaves the side that moved down a rook
// for a pawn, so SEE must be negative.
func TestSEELosingCapture(t *testing.T) {
	a := assert.New(t)

	p := position.NewPosition("4k3/8/8/4r3/4P3/3P4/8/4K3 b - - 0 1")
	m := p.FindMoveString("e5e4")
	a.True(m.IsValid())

	a.True(SEE(p, m) < 0)
}

// TestSEEEqualTrade covers a pawn capturing a pawn that its rook defends
// from behind: pawn for pawn, the exchange nets exactly zero.
func TestSEEEqualTrade(t *testing.T) {
	a := assert.New(t)

	p := position.NewPosition("3rk3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	m := p.FindMoveString("e4d5")
	a.True(m.IsValid())

	a.Equal(ValueZero, SEE(p, m))
}

// TestSEEFreePawn covers a simple pawn-takes-pawn with no recapture
// available: the mover wins a clean pawn.
func TestSEEFreePawn(t *testing.T) {
	a := assert.New(t)

	p := position.NewPosition("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	m := p.FindMoveString("e4d5")
	a.True(m.IsValid())

	a.Equal(Pawn.ValueOf(), SEE(p, m))
}
